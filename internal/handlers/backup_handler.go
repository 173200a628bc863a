package handlers

import (
	"encoding/json"
	"net/http"

	"pos-terminal/internal/backup"
	"pos-terminal/pkg/utils"
)

type BackupHandler struct {
	Service *backup.Service // nil when backup is not configured
}

func NewBackupHandler(service *backup.Service) *BackupHandler {
	return &BackupHandler{Service: service}
}

func (h *BackupHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		utils.Error(w, http.StatusServiceUnavailable, "backup not configured")
		return
	}

	key, err := h.Service.Upload(r.Context())
	if err != nil {
		utils.Error(w, http.StatusBadGateway, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"key": key})
}

func (h *BackupHandler) Restore(w http.ResponseWriter, r *http.Request) {
	if h.Service == nil {
		utils.Error(w, http.StatusServiceUnavailable, "backup not configured")
		return
	}

	var req struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Key == "" {
		utils.Error(w, http.StatusBadRequest, "key is required")
		return
	}

	if err := h.Service.Restore(r.Context(), req.Key); err != nil {
		utils.Error(w, http.StatusBadGateway, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"restored": req.Key})
}
