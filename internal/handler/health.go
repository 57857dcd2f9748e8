package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pizzapos-backend/internal/ports"
	"pizzapos-backend/internal/store"
)

// HealthHandler exposes a readiness probe. The service is never "down"
// just because the database is: local mode keeps taking orders.
type HealthHandler struct {
	DB    ports.HealthChecker
	Store *store.Store
}

func (h HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.handleHealth)
}

func (h HealthHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	remote := "disabled"
	if h.DB != nil {
		remote = "ok"
		if err := h.DB.Health(ctx); err != nil {
			remote = "unreachable"
			status = "degraded"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  status,
		"remote":  remote,
		"offline": h.Store.Offline(),
	})
}
