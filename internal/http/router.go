package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pos-terminal/internal/handlers"
	"pos-terminal/internal/middleware"
	"pos-terminal/internal/monitoring"
)

// NewRouter wires the loopback surface UI screens call.
func NewRouter(
	customerHandler *handlers.CustomerHandler,
	transactionHandler *handlers.TransactionHandler,
	statusHandler *handlers.StatusHandler,
	healthHandler *handlers.HealthHandler,
	backupHandler *handlers.BackupHandler,
	hub *monitoring.Hub,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.PanicRecovery)
	r.Use(middleware.MetricsMiddleware)

	// Health and metrics
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Connectivity controls
	r.HandleFunc("/offline-mode", statusHandler.GetOfflineMode).Methods("GET")
	r.HandleFunc("/offline-mode", statusHandler.SetOfflineMode).Methods("PUT")
	r.HandleFunc("/api-status", statusHandler.APIStatus).Methods("GET")
	r.HandleFunc("/settings/base-url", statusHandler.GetBaseURL).Methods("GET")
	r.HandleFunc("/settings/base-url", statusHandler.SetBaseURL).Methods("PUT")

	// Customers
	r.HandleFunc("/customers", customerHandler.List).Methods("GET")
	r.HandleFunc("/customers", customerHandler.Register).Methods("POST")
	r.HandleFunc("/customers/card/{cardId}", customerHandler.GetByCard).Methods("GET")
	r.HandleFunc("/customers/{id}", customerHandler.GetByID).Methods("GET")
	r.HandleFunc("/customers/{id}/balance", customerHandler.UpdateBalance).Methods("POST")

	// Transactions
	r.HandleFunc("/transactions", transactionHandler.List).Methods("GET")
	r.HandleFunc("/transactions", transactionHandler.Create).Methods("POST")
	r.HandleFunc("/transactions/sync", transactionHandler.Sync).Methods("POST")
	r.HandleFunc("/transactions/card/{cardId}", transactionHandler.ListByCard).Methods("GET")
	r.HandleFunc("/transactions/{id}", transactionHandler.Get).Methods("GET")
	r.HandleFunc("/transactions/{id}/receipt", transactionHandler.Receipt).Methods("GET")

	// Backup
	r.HandleFunc("/backup", backupHandler.Upload).Methods("POST")
	r.HandleFunc("/backup/restore", backupHandler.Restore).Methods("POST")

	// Live events for UI screens
	r.HandleFunc("/ws/events", hub.HandleWS)

	return r
}
