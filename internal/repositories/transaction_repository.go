package repositories

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"pos-terminal/internal/connectivity"
	"pos-terminal/internal/gateway"
	"pos-terminal/internal/metrics"
	"pos-terminal/internal/models"
	"pos-terminal/internal/store"
	"pos-terminal/pkg/utils"
)

// TransactionRepository creates transactions (online or queued offline) and
// reconciles the offline queue with the server.
type TransactionRepository struct {
	Gateway   *gateway.Gateway
	Store     *store.Store
	Policy    *connectivity.Policy
	Customers *CustomerRepository

	now func() time.Time
}

func NewTransactionRepository(gw *gateway.Gateway, st *store.Store, policy *connectivity.Policy, customers *CustomerRepository) *TransactionRepository {
	return &TransactionRepository{
		Gateway:   gw,
		Store:     st,
		Policy:    policy,
		Customers: customers,
		now:       time.Now,
	}
}

// Create normalizes monetary fields to cents, decides online/offline once,
// and dispatches. An online submission that fails degrades to the offline
// queue, so a transaction is never lost to a transient failure. Whatever the
// path, a customer-linked transaction then debits that customer's balance by
// the transaction amount; a failure there is logged and swallowed because the
// persisted transaction record is authoritative.
func (r *TransactionRepository) Create(ctx context.Context, req *models.CreateTransactionRequest) (*models.Transaction, error) {
	tx := &models.Transaction{
		IdempotencyKey: uuid.NewString(),
		CustomerID:     req.CustomerID,
		CardID:         utils.NormalizeCardID(req.CardID),
		Type:           req.Type,
		Amount:         utils.AmountToCents(req.Amount),
		Items:          normalizeItems(req.Items),
	}

	offline := r.Policy.ShouldOperateOffline(ctx)

	var created *models.Transaction
	var err error
	if offline {
		created, err = r.queueOffline(ctx, tx)
	} else {
		created, err = r.Gateway.CreateTransaction(ctx, tx)
		if err != nil {
			log.Printf("[TransactionRepo] remote create failed, queueing offline: %v", err)
			created, err = r.queueOffline(ctx, tx)
		}
	}
	if err != nil {
		return nil, err
	}

	if created.CustomerID != "" {
		// Debit convention: a transaction always debits its customer by the
		// transaction amount.
		if _, err := r.Customers.UpdateBalance(ctx, created.CustomerID, -utils.CentsToAmount(created.Amount)); err != nil {
			log.Printf("[TransactionRepo] balance update for %s failed: %v", created.CustomerID, err)
		}
	}
	return created, nil
}

func normalizeItems(items []models.LineItemRequest) []models.LineItem {
	if len(items) == 0 {
		return nil
	}
	normalized := make([]models.LineItem, len(items))
	for i, item := range items {
		normalized[i] = models.LineItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: utils.AmountToCents(item.UnitPrice),
			Amount:    utils.AmountToCents(item.Amount),
		}
	}
	return normalized
}

func (r *TransactionRepository) queueOffline(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	queued := *tx
	queued.TransactionID = r.offlineID()
	queued.Status = models.TxStatusPending
	queued.OfflineCreated = true
	queued.CreatedAt = r.now()

	if err := r.Store.AppendTransaction(ctx, &queued); err != nil {
		return nil, err
	}
	metrics.OfflineQueuedTotal.Inc()
	return &queued, nil
}

// offlineID issues a temporary id, distinguishable from server ids and
// collision-avoidant via timestamp plus random suffix.
func (r *TransactionRepository) offlineID() string {
	return fmt.Sprintf("offline-%d-%d", r.now().UnixMilli(), rand.Intn(1000))
}

// SyncOfflineTransactions pushes every pending offline-created transaction to
// the server, sequentially in append order. Per-transaction failures are
// recorded on the record and counted; they never abort the pass. The updated
// collection is written back in one bulk write.
func (r *TransactionRepository) SyncOfflineTransactions(ctx context.Context) (*models.SyncResult, error) {
	if r.Policy.ShouldOperateOffline(ctx) {
		return nil, ErrSyncRequiresOnline
	}

	transactions, err := r.Store.GetAllTransactions(ctx)
	if err != nil {
		return nil, err
	}

	result := &models.SyncResult{}
	for i := range transactions {
		tx := &transactions[i]
		if !tx.OfflineCreated || tx.Status != models.TxStatusPending {
			continue
		}
		result.Total++

		if err := r.Gateway.SyncTransaction(ctx, *tx); err != nil {
			result.Failed++
			tx.SyncError = err.Error()
			metrics.SyncTransactionsTotal.WithLabelValues("failed").Inc()
			log.Printf("[Sync] %s failed: %v", tx.TransactionID, err)
			continue
		}

		result.Success++
		tx.Status = models.TxStatusCompleted
		tx.Synced = true
		tx.SyncError = ""
		metrics.SyncTransactionsTotal.WithLabelValues("success").Inc()
	}

	// Nothing selected: the server was never contacted and there is nothing
	// to write back.
	if result.Total == 0 {
		return result, nil
	}

	if err := r.Store.ReplaceAllTransactions(ctx, transactions); err != nil {
		return nil, err
	}
	log.Printf("[Sync] pass complete: %d ok, %d failed of %d", result.Success, result.Failed, result.Total)
	return result, nil
}

// ---- reads ----

func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	if r.Policy.ShouldOperateOffline(ctx) {
		return r.Store.GetTransactionByID(ctx, id)
	}
	tx, err := r.Gateway.GetTransaction(ctx, id)
	if err != nil {
		log.Printf("[TransactionRepo] remote fetch failed, using cache: %v", err)
		return r.Store.GetTransactionByID(ctx, id)
	}
	return tx, nil
}

func (r *TransactionRepository) GetAll(ctx context.Context) ([]models.Transaction, error) {
	if r.Policy.ShouldOperateOffline(ctx) {
		return r.Store.GetAllTransactions(ctx)
	}
	transactions, err := r.Gateway.ListTransactions(ctx)
	if err != nil {
		log.Printf("[TransactionRepo] remote list failed, using cache: %v", err)
		return r.Store.GetAllTransactions(ctx)
	}
	// The full list is safe to mirror wholesale; partial reads are not, to
	// avoid clobbering the offline queue.
	if err := r.Store.ReplaceAllTransactions(ctx, transactions); err != nil {
		log.Printf("[TransactionRepo] cache mirror failed: %v", err)
	}
	return transactions, nil
}

func (r *TransactionRepository) GetByCardID(ctx context.Context, cardID string) ([]models.Transaction, error) {
	if r.Policy.ShouldOperateOffline(ctx) {
		return r.Store.GetTransactionsByCardID(ctx, cardID)
	}
	transactions, err := r.Gateway.ListTransactionsByCard(ctx, cardID)
	if err != nil {
		log.Printf("[TransactionRepo] remote list by card failed, using cache: %v", err)
		return r.Store.GetTransactionsByCardID(ctx, cardID)
	}
	return transactions, nil
}
