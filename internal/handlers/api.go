package handlers

import (
	"encoding/json"
	"net/http"

	"bangarr/internal/core"
	"bangarr/internal/database/models"
	"bangarr/internal/utils"
)

// Service is what the handlers need from the core manager.
type Service interface {
	FetchWatching() []models.WatchingItem
	GetSystemStatus() core.SystemStatus
}

type APIHandler struct {
	service Service
	logger  *utils.Logger
}

func NewAPIHandler(service Service, logger *utils.Logger) *APIHandler {
	return &APIHandler{service: service, logger: logger}
}

// A helper function to respond with JSON. HTML escaping is disabled so
// non-ASCII titles reach Sonarr byte-for-byte.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload != nil {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.Encode(payload)
	}
}

// GetWatchingList serves the Sonarr custom-list payload. Upstream failures
// have already degraded to an empty list, so this always answers 200.
func (h *APIHandler) GetWatchingList(w http.ResponseWriter, r *http.Request) {
	items := h.service.FetchWatching()
	if items == nil {
		items = []models.WatchingItem{}
	}
	respondJSON(w, http.StatusOK, items)
}

func (h *APIHandler) GetSystemStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.GetSystemStatus())
}

func (h *APIHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
