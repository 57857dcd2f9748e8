package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pizzapos-backend/internal/domain"
	"pizzapos-backend/internal/store"
)

type CustomerHandler struct {
	Store *store.Store
}

func (h CustomerHandler) RegisterRoutes(r chi.Router) {
	r.Get("/customers", h.list)
	r.Post("/customers", h.upsert)
	r.Delete("/customers/{phone}", h.delete)
}

func (h CustomerHandler) list(w http.ResponseWriter, r *http.Request) {
	items := h.Store.ListCustomers(r.Context())
	resp := make([]map[string]any, 0, len(items))
	for _, c := range items {
		resp = append(resp, customerPayload(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h CustomerHandler) upsert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string `json:"name"`
		Phone        string `json:"phone"`
		Address      string `json:"address"`
		Neighborhood string `json:"neighborhood"`
		Reference    string `json:"reference"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Name == "" || req.Phone == "" {
		writeError(w, http.StatusBadRequest, "name and phone are required")
		return
	}
	saved := h.Store.UpsertCustomer(r.Context(), domain.Customer{
		Name:         req.Name,
		Phone:        req.Phone,
		Address:      req.Address,
		Neighborhood: req.Neighborhood,
		Reference:    req.Reference,
	})
	writeJSON(w, http.StatusOK, customerPayload(saved))
}

func (h CustomerHandler) delete(w http.ResponseWriter, r *http.Request) {
	phone := chi.URLParam(r, "phone")
	if phone == "" {
		writeError(w, http.StatusBadRequest, "phone is required")
		return
	}
	h.Store.DeleteCustomer(r.Context(), phone)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func customerPayload(c domain.Customer) map[string]any {
	return map[string]any{
		"id":           c.ID,
		"name":         c.Name,
		"phone":        c.Phone,
		"address":      c.Address,
		"neighborhood": c.Neighborhood,
		"reference":    c.Reference,
		"orderCount":   c.OrderCount,
		"totalSpent":   c.TotalSpent,
	}
}
