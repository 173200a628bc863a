// Package store implements the terminal's local cache of customers and
// transactions. Collections are whole JSON documents over the durable kv
// backend; every mutation is a full read-modify-write of one collection.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"pos-terminal/internal/kv"
	"pos-terminal/internal/models"
	"pos-terminal/pkg/utils"
)

const (
	customersKey     = "customers:all"
	cardIndexKey     = "customers:card_index"
	transactionsKey  = "transactions:all"
	schemaVersionKey = "schema:version"

	// SchemaVersion stamps the on-disk representation so future layouts can
	// migrate old caches.
	SchemaVersion = "1"
)

type Store struct {
	kv kv.KV
	mu sync.Mutex
}

func New(kvs kv.KV) *Store {
	return &Store{kv: kvs}
}

// Init stamps the schema version on first use.
func (s *Store) Init(ctx context.Context) error {
	_, err := s.kv.Get(ctx, schemaVersionKey)
	if errors.Is(err, kv.ErrNotFound) {
		return s.kv.Set(ctx, schemaVersionKey, SchemaVersion)
	}
	return err
}

// readCollection loads one JSON collection. A missing or corrupt document is
// an empty collection; only persistence-layer errors propagate.
func (s *Store) readCollection(ctx context.Context, key string, out interface{}) error {
	raw, err := s.kv.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return nil
	}
	return nil
}

func (s *Store) writeCollection(ctx context.Context, key string, in interface{}) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, key, string(data))
}

// ---- customers ----

func (s *Store) GetAllCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := s.readCollection(ctx, customersKey, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (s *Store) GetCustomerByID(ctx context.Context, id string) (*models.Customer, error) {
	customers, err := s.GetAllCustomers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		if customers[i].ID == id {
			return &customers[i], nil
		}
	}
	return nil, nil
}

// GetCustomerByCardID resolves through the maintained card-id index instead of
// scanning the collection.
func (s *Store) GetCustomerByCardID(ctx context.Context, cardID string) (*models.Customer, error) {
	index, err := s.readCardIndex(ctx)
	if err != nil {
		return nil, err
	}
	id, ok := index[utils.NormalizeCardID(cardID)]
	if !ok {
		return nil, nil
	}
	return s.GetCustomerByID(ctx, id)
}

// PutCustomer upserts by id, then rebuilds only that customer's index entry.
func (s *Store) PutCustomer(ctx context.Context, c *models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	customers, err := s.GetAllCustomers(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range customers {
		if customers[i].ID == c.ID {
			customers[i] = *c
			replaced = true
			break
		}
	}
	if !replaced {
		customers = append(customers, *c)
	}
	if err := s.writeCollection(ctx, customersKey, customers); err != nil {
		return err
	}

	index, err := s.readCardIndex(ctx)
	if err != nil {
		return err
	}
	index[utils.NormalizeCardID(c.CardID)] = c.ID
	return s.writeCollection(ctx, cardIndexKey, index)
}

// ReplaceAllCustomers overwrites the collection and rebuilds the full index.
// Used after a complete online fetch.
func (s *Store) ReplaceAllCustomers(ctx context.Context, customers []models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writeCollection(ctx, customersKey, customers); err != nil {
		return err
	}
	index := make(map[string]string, len(customers))
	for i := range customers {
		index[utils.NormalizeCardID(customers[i].CardID)] = customers[i].ID
	}
	return s.writeCollection(ctx, cardIndexKey, index)
}

func (s *Store) readCardIndex(ctx context.Context) (map[string]string, error) {
	index := make(map[string]string)
	if err := s.readCollection(ctx, cardIndexKey, &index); err != nil {
		return nil, err
	}
	if index == nil {
		index = make(map[string]string)
	}
	return index, nil
}

// ---- transactions ----

func (s *Store) GetAllTransactions(ctx context.Context) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.readCollection(ctx, transactionsKey, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

func (s *Store) GetTransactionByID(ctx context.Context, id string) (*models.Transaction, error) {
	transactions, err := s.GetAllTransactions(ctx)
	if err != nil {
		return nil, err
	}
	for i := range transactions {
		if transactions[i].TransactionID == id {
			return &transactions[i], nil
		}
	}
	return nil, nil
}

func (s *Store) GetTransactionsByCardID(ctx context.Context, cardID string) ([]models.Transaction, error) {
	transactions, err := s.GetAllTransactions(ctx)
	if err != nil {
		return nil, err
	}
	cardID = utils.NormalizeCardID(cardID)
	var matched []models.Transaction
	for _, tx := range transactions {
		if utils.NormalizeCardID(tx.CardID) == cardID {
			matched = append(matched, tx)
		}
	}
	return matched, nil
}

// AppendTransaction adds to the end of the collection, preserving queue order.
func (s *Store) AppendTransaction(ctx context.Context, tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	transactions, err := s.GetAllTransactions(ctx)
	if err != nil {
		return err
	}
	transactions = append(transactions, *tx)
	return s.writeCollection(ctx, transactionsKey, transactions)
}

// ReplaceAllTransactions overwrites the collection in one bulk write. Used
// after sync and after a full online fetch.
func (s *Store) ReplaceAllTransactions(ctx context.Context, transactions []models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeCollection(ctx, transactionsKey, transactions)
}
