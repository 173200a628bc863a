package handlers

import (
	"encoding/json"
	"net/http"

	"pos-terminal/internal/connectivity"
	"pos-terminal/internal/gateway"
	"pos-terminal/internal/monitoring"
	"pos-terminal/internal/settings"
	"pos-terminal/pkg/utils"
)

// StatusHandler exposes the connectivity controls UI screens call:
// offline-mode get/set, remote API status, and the persisted base URL.
type StatusHandler struct {
	Policy   *connectivity.Policy
	Gateway  *gateway.Gateway
	Settings *settings.Settings
	Hub      *monitoring.Hub
}

func NewStatusHandler(policy *connectivity.Policy, gw *gateway.Gateway, s *settings.Settings, hub *monitoring.Hub) *StatusHandler {
	return &StatusHandler{Policy: policy, Gateway: gw, Settings: s, Hub: hub}
}

func (h *StatusHandler) GetOfflineMode(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]bool{"offline_mode": h.Policy.IsOfflineMode()})
}

func (h *StatusHandler) SetOfflineMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OfflineMode bool `json:"offline_mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Policy.SetOfflineMode(r.Context(), req.OfflineMode); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	message := "manual offline mode disabled"
	if req.OfflineMode {
		message = "manual offline mode enabled"
	}
	h.Hub.Publish(monitoring.EventConnectivity, message, map[string]bool{"offline_mode": req.OfflineMode})
	utils.JSON(w, http.StatusOK, map[string]bool{"offline_mode": req.OfflineMode})
}

// APIStatus reports the remote server's /status payload, or online=false when
// the server cannot be reached.
func (h *StatusHandler) APIStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.Gateway.Status(r.Context())
	if err != nil {
		utils.JSON(w, http.StatusOK, map[string]interface{}{
			"online": false,
			"error":  err.Error(),
		})
		return
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"online":      true,
		"version":     status.Version,
		"server_time": status.ServerTime,
	})
}

func (h *StatusHandler) GetBaseURL(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{"api_base_url": h.Settings.BaseURL(r.Context())})
}

func (h *StatusHandler) SetBaseURL(w http.ResponseWriter, r *http.Request) {
	var req struct {
		APIBaseURL string `json:"api_base_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.APIBaseURL == "" {
		utils.Error(w, http.StatusBadRequest, "api_base_url is required")
		return
	}

	if err := h.Settings.SetBaseURL(r.Context(), req.APIBaseURL); err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	// Takes effect on the next gateway call; nothing to restart.
	utils.JSON(w, http.StatusOK, map[string]string{"api_base_url": h.Settings.BaseURL(r.Context())})
}
