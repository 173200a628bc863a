package repositories

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"pos-terminal/internal/connectivity"
	"pos-terminal/internal/gateway"
	"pos-terminal/internal/kv"
	"pos-terminal/internal/models"
	"pos-terminal/internal/settings"
	"pos-terminal/internal/store"
)

type env struct {
	Store        *store.Store
	Settings     *settings.Settings
	Policy       *connectivity.Policy
	Gateway      *gateway.Gateway
	Customers    *CustomerRepository
	Transactions *TransactionRepository
}

func newEnv(t *testing.T, baseURL string) *env {
	t.Helper()

	kvs, err := kv.NewFileStore(t.TempDir())
	require.NoError(t, err)

	st := store.New(kvs)
	require.NoError(t, st.Init(context.Background()))

	set := settings.New(kvs, baseURL)
	policy := connectivity.New(set)
	gw := gateway.New(set)

	customers := NewCustomerRepository(gw, st, policy)
	transactions := NewTransactionRepository(gw, st, policy, customers)

	return &env{
		Store:        st,
		Settings:     set,
		Policy:       policy,
		Gateway:      gw,
		Customers:    customers,
		Transactions: transactions,
	}
}

// fakeAPI simulates the remote POS server with switchable per-endpoint
// behavior.
type fakeAPI struct {
	mu sync.Mutex

	rejectSync   bool
	rejectCreate bool
	rejectReads  bool

	syncOrder   []string
	createHits  int
	balanceHits int

	customers map[string]models.Customer // by id
	txCounter int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{customers: make(map[string]models.Customer)}
}

func (f *fakeAPI) setRejectSync(v bool) {
	f.mu.Lock()
	f.rejectSync = v
	f.mu.Unlock()
}

func (f *fakeAPI) start(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("GET /customers/card/{cardId}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.rejectReads {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		for _, c := range f.customers {
			if c.CardID == r.PathValue("cardId") {
				json.NewEncoder(w).Encode(c)
				return
			}
		}
		http.Error(w, "not found", http.StatusNotFound)
	})

	mux.HandleFunc("GET /customers/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.rejectReads {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		c, ok := f.customers[r.PathValue("id")]
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(c)
	})

	mux.HandleFunc("GET /customers", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.rejectReads {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		list := make([]models.Customer, 0, len(f.customers))
		for _, c := range f.customers {
			list = append(list, c)
		}
		json.NewEncoder(w).Encode(list)
	})

	mux.HandleFunc("POST /customers", func(w http.ResponseWriter, r *http.Request) {
		var payload models.Customer
		json.NewDecoder(r.Body).Decode(&payload)
		f.mu.Lock()
		payload.ID = "srv-c1"
		f.customers[payload.ID] = payload
		f.mu.Unlock()
		json.NewEncoder(w).Encode(payload)
	})

	mux.HandleFunc("POST /customers/{id}/balance", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Amount int64 `json:"amount"`
		}
		json.NewDecoder(r.Body).Decode(&req)

		f.mu.Lock()
		defer f.mu.Unlock()
		f.balanceHits++
		c, ok := f.customers[r.PathValue("id")]
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		c.Balance += req.Amount
		f.customers[c.ID] = c
		json.NewEncoder(w).Encode(c)
	})

	mux.HandleFunc("POST /transactions", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.createHits++
		if f.rejectCreate {
			http.Error(w, "rejected", http.StatusBadGateway)
			return
		}
		var tx models.Transaction
		json.NewDecoder(r.Body).Decode(&tx)
		f.txCounter++
		tx.TransactionID = "srv-t1"
		tx.Status = models.TxStatusCompleted
		json.NewEncoder(w).Encode(tx)
	})

	mux.HandleFunc("POST /transactions/sync", func(w http.ResponseWriter, r *http.Request) {
		var tx models.Transaction
		json.NewDecoder(r.Body).Decode(&tx)

		f.mu.Lock()
		defer f.mu.Unlock()
		if f.rejectSync {
			http.Error(w, "sync rejected", http.StatusInternalServerError)
			return
		}
		f.syncOrder = append(f.syncOrder, tx.TransactionID)
		w.WriteHeader(http.StatusOK)
	})

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}
