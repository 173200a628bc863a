package models

import "time"

type Customer struct {
	ID        string    `json:"id"`
	CardID    string    `json:"card_id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	Balance   int64     `json:"balance"` // minor units (cents)
	CreatedAt time.Time `json:"created_at"`
}

// RegisterCustomerRequest represents the request body for registering a customer.
// Balance is given in major units and converted to cents before transmission.
type RegisterCustomerRequest struct {
	CardID   string  `json:"card_id"`
	Name     string  `json:"name"`
	Email    string  `json:"email,omitempty"`
	Phone    string  `json:"phone,omitempty"`
	PhotoURL string  `json:"photo_url,omitempty"`
	Balance  float64 `json:"balance,omitempty"`
}

// UpdateBalanceRequest represents the request body for a balance delta.
// Amount is given in major units; the wire format uses cents.
type UpdateBalanceRequest struct {
	Amount float64 `json:"amount"`
}
