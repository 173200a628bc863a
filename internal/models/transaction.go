package models

import "time"

// TransactionType determines the direction of a transaction; Amount itself is
// always a magnitude.
type TransactionType string

const (
	TxTypePayment    TransactionType = "payment"
	TxTypeReload     TransactionType = "reload"
	TxTypeRefund     TransactionType = "refund"
	TxTypeAdjustment TransactionType = "adjustment"
)

type TransactionStatus string

const (
	TxStatusPending   TransactionStatus = "pending"
	TxStatusCompleted TransactionStatus = "completed"
	TxStatusFailed    TransactionStatus = "failed"
	TxStatusCancelled TransactionStatus = "cancelled"
)

// LineItem is a single receipt line. Monetary fields are in minor units.
type LineItem struct {
	Name      string `json:"name,omitempty"`
	Quantity  int    `json:"quantity,omitempty"`
	UnitPrice int64  `json:"unit_price"`
	Amount    int64  `json:"amount"`
}

// Transaction is a payment, reload, refund or adjustment against a customer.
// TransactionID is server-issued for online-created transactions and has the
// temporary "offline-<epoch-millis>-<random>" form for offline-created ones.
type Transaction struct {
	TransactionID  string            `json:"transaction_id"`
	IdempotencyKey string            `json:"idempotency_key,omitempty"`
	CustomerID     string            `json:"customer_id,omitempty"`
	CardID         string            `json:"card_id,omitempty"`
	Type           TransactionType   `json:"type"`
	Amount         int64             `json:"amount"` // minor units, magnitude only
	Items          []LineItem        `json:"items,omitempty"`
	Status         TransactionStatus `json:"status"`
	OfflineCreated bool              `json:"offline_created,omitempty"`
	Synced         bool              `json:"synced,omitempty"`
	SyncError      string            `json:"sync_error,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

// CreateTransactionRequest represents the request body for creating a
// transaction. Monetary fields are in major units and converted to cents
// before dispatch.
type CreateTransactionRequest struct {
	CustomerID string            `json:"customer_id,omitempty"`
	CardID     string            `json:"card_id,omitempty"`
	Type       TransactionType   `json:"type"`
	Amount     float64           `json:"amount"`
	Items      []LineItemRequest `json:"items,omitempty"`
}

type LineItemRequest struct {
	Name      string  `json:"name,omitempty"`
	Quantity  int     `json:"quantity,omitempty"`
	UnitPrice float64 `json:"unit_price"`
	Amount    float64 `json:"amount"`
}

// SyncResult summarises one reconciliation pass over the offline queue.
type SyncResult struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
	Total   int `json:"total"`
}

// ServerStatus is the payload of the server's /status endpoint.
type ServerStatus struct {
	Version    string    `json:"version"`
	ServerTime time.Time `json:"server_time"`
}
