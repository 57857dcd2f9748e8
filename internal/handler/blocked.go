package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pizzapos-backend/internal/domain"
	"pizzapos-backend/internal/store"
)

// BlockedHandler manages the out-of-stock list. An entry's existence
// is the block; names match products or ingredients.
type BlockedHandler struct {
	Store *store.Store
}

func (h BlockedHandler) RegisterRoutes(r chi.Router) {
	r.Get("/blocked", h.list)
	r.Post("/blocked", h.block)
	r.Delete("/blocked/{name}", h.unblock)
}

func (h BlockedHandler) list(w http.ResponseWriter, r *http.Request) {
	items := h.Store.ListBlocked(r.Context())
	resp := make([]map[string]any, 0, len(items))
	for _, b := range items {
		resp = append(resp, map[string]any{
			"name":      b.Name,
			"blockedBy": b.BlockedBy,
			"createdAt": b.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h BlockedHandler) block(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name"`
		BlockedBy string `json:"blockedBy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	h.Store.BlockItem(r.Context(), domain.BlockedItem{
		Name:      req.Name,
		BlockedBy: req.BlockedBy,
		CreatedAt: time.Now(),
	})
	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (h BlockedHandler) unblock(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	h.Store.UnblockItem(r.Context(), name)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
