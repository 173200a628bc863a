package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"pos-terminal/internal/models"
	"pos-terminal/internal/monitoring"
	"pos-terminal/internal/receipt"
	"pos-terminal/internal/repositories"
	"pos-terminal/pkg/utils"
)

type TransactionHandler struct {
	Repo      *repositories.TransactionRepository
	Customers *repositories.CustomerRepository
	Hub       *monitoring.Hub
}

func NewTransactionHandler(repo *repositories.TransactionRepository, customers *repositories.CustomerRepository, hub *monitoring.Hub) *TransactionHandler {
	return &TransactionHandler{Repo: repo, Customers: customers, Hub: hub}
}

func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	switch req.Type {
	case models.TxTypePayment, models.TxTypeReload, models.TxTypeRefund, models.TxTypeAdjustment:
	default:
		utils.Error(w, http.StatusBadRequest, "unknown transaction type")
		return
	}

	tx, err := h.Repo.Create(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.Hub.Publish(monitoring.EventTransaction, fmt.Sprintf("%s recorded", tx.Type), tx)
	utils.JSON(w, http.StatusCreated, tx)
}

func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	tx, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if tx == nil {
		utils.Error(w, http.StatusNotFound, "transaction not found")
		return
	}
	utils.JSON(w, http.StatusOK, tx)
}

func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.Repo.GetAll(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	utils.JSON(w, http.StatusOK, transactions)
}

func (h *TransactionHandler) ListByCard(w http.ResponseWriter, r *http.Request) {
	cardID := mux.Vars(r)["cardId"]

	transactions, err := h.Repo.GetByCardID(r.Context(), cardID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	utils.JSON(w, http.StatusOK, transactions)
}

func (h *TransactionHandler) Sync(w http.ResponseWriter, r *http.Request) {
	result, err := h.Repo.SyncOfflineTransactions(r.Context())
	if errors.Is(err, repositories.ErrSyncRequiresOnline) {
		utils.Error(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.Hub.Publish(monitoring.EventSync,
		fmt.Sprintf("sync complete: %d of %d succeeded", result.Success, result.Total), result)
	utils.JSON(w, http.StatusOK, result)
}

// Receipt renders a PDF for one transaction, resolving the linked customer
// from the repository when present.
func (h *TransactionHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	tx, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if tx == nil {
		utils.Error(w, http.StatusNotFound, "transaction not found")
		return
	}

	var customer *models.Customer
	if tx.CustomerID != "" {
		customer, _ = h.Customers.GetByID(r.Context(), tx.CustomerID)
	}

	pdf, err := receipt.Render(tx, customer)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="receipt-%s.pdf"`, id))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
