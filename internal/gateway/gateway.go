// Package gateway is the HTTP client for the remote POS server. One method
// per resource operation; no retries here, fallback policy lives in the
// repositories. Monetary fields cross the wire in minor units.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pos-terminal/internal/models"
	"pos-terminal/internal/settings"
	"pos-terminal/pkg/utils"
)

type Gateway struct {
	client   *http.Client
	settings *settings.Settings
}

func New(s *settings.Settings) *Gateway {
	return &Gateway{
		client:   &http.Client{Timeout: 10 * time.Second},
		settings: s,
	}
}

// do performs one request against <base URL><path>. The base URL is resolved
// from settings on every call.
func (g *Gateway) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.settings.BaseURL(ctx)+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("pos api: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("pos api: reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("pos api: decoding response: %w", err)
		}
	}
	return nil
}

func (g *Gateway) Status(ctx context.Context) (*models.ServerStatus, error) {
	var status models.ServerStatus
	if err := g.do(ctx, http.MethodGet, "/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ---- customers ----

func (g *Gateway) GetCustomerByCardID(ctx context.Context, cardID string) (*models.Customer, error) {
	var customer models.Customer
	path := "/customers/card/" + url.PathEscape(utils.NormalizeCardID(cardID))
	if err := g.do(ctx, http.MethodGet, path, nil, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (g *Gateway) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	if err := g.do(ctx, http.MethodGet, "/customers/"+url.PathEscape(id), nil, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (g *Gateway) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := g.do(ctx, http.MethodGet, "/customers", nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// registerPayload is the wire form of a registration: balance already in cents.
type registerPayload struct {
	CardID   string `json:"card_id"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
	Balance  int64  `json:"balance"`
}

func (g *Gateway) RegisterCustomer(ctx context.Context, req *models.RegisterCustomerRequest) (*models.Customer, error) {
	payload := registerPayload{
		CardID:   utils.NormalizeCardID(req.CardID),
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		PhotoURL: req.PhotoURL,
		Balance:  utils.AmountToCents(req.Balance),
	}
	var customer models.Customer
	if err := g.do(ctx, http.MethodPost, "/customers", payload, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// UpdateBalance sends a balance delta in cents and returns the authoritative
// resulting record.
func (g *Gateway) UpdateBalance(ctx context.Context, id string, cents int64) (*models.Customer, error) {
	payload := map[string]int64{"amount": cents}
	var customer models.Customer
	if err := g.do(ctx, http.MethodPost, "/customers/"+url.PathEscape(id)+"/balance", payload, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// ---- transactions ----

func (g *Gateway) CreateTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	var created models.Transaction
	if err := g.do(ctx, http.MethodPost, "/transactions", tx, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (g *Gateway) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := g.do(ctx, http.MethodGet, "/transactions/"+url.PathEscape(id), nil, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (g *Gateway) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := g.do(ctx, http.MethodGet, "/transactions", nil, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

func (g *Gateway) ListTransactionsByCard(ctx context.Context, cardID string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	path := "/transactions/card/" + url.PathEscape(utils.NormalizeCardID(cardID))
	if err := g.do(ctx, http.MethodGet, path, nil, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// SyncTransaction submits one queued transaction to the sync endpoint. The
// offline-created marker is stripped from the payload; the idempotency key
// stays so a retried submission is recognisable server-side.
func (g *Gateway) SyncTransaction(ctx context.Context, tx models.Transaction) error {
	tx.OfflineCreated = false
	return g.do(ctx, http.MethodPost, "/transactions/sync", tx, nil)
}
