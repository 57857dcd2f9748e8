package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pizzapos-backend/internal/store"
)

// SyncHandler exposes the offline switch. Forcing offline makes every
// read and write go straight to the local mirror; going back online
// re-subscribes every collection.
type SyncHandler struct {
	Store *store.Store
}

func (h SyncHandler) RegisterRoutes(r chi.Router) {
	r.Get("/sync/status", h.status)
	r.Post("/sync/offline", h.setOffline)
}

func (h SyncHandler) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"offline": h.Store.Offline(),
	})
}

func (h SyncHandler) setOffline(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Offline bool `json:"offline"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	h.Store.SetOffline(req.Offline)
	writeJSON(w, http.StatusOK, map[string]any{
		"offline": h.Store.Offline(),
	})
}
