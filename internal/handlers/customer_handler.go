package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"pos-terminal/internal/models"
	"pos-terminal/internal/repositories"
	"pos-terminal/pkg/utils"
)

type CustomerHandler struct {
	Repo *repositories.CustomerRepository
}

func NewCustomerHandler(repo *repositories.CustomerRepository) *CustomerHandler {
	return &CustomerHandler{Repo: repo}
}

func (h *CustomerHandler) GetByCard(w http.ResponseWriter, r *http.Request) {
	cardID := mux.Vars(r)["cardId"]

	customer, err := h.Repo.GetByCardID(r.Context(), cardID)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if customer == nil {
		utils.Error(w, http.StatusNotFound, "customer not found")
		return
	}
	utils.JSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	customer, err := h.Repo.GetByID(r.Context(), id)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if customer == nil {
		utils.Error(w, http.StatusNotFound, "customer not found")
		return
	}
	utils.JSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Repo.GetAll(r.Context())
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if customers == nil {
		customers = []models.Customer{}
	}
	utils.JSON(w, http.StatusOK, customers)
}

func (h *CustomerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CardID == "" {
		utils.Error(w, http.StatusBadRequest, "card_id is required")
		return
	}

	customer, err := h.Repo.Register(r.Context(), &req)
	if errors.Is(err, repositories.ErrOfflineRegistration) {
		utils.Error(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		utils.Error(w, http.StatusBadGateway, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, customer)
}

func (h *CustomerHandler) UpdateBalance(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.UpdateBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	customer, err := h.Repo.UpdateBalance(r.Context(), id, req.Amount)
	if errors.Is(err, repositories.ErrCustomerNotFound) {
		utils.Error(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, customer)
}
