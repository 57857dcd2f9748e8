package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"pizzapos-backend/internal/domain"
	"pizzapos-backend/internal/store"
)

type EmployeeHandler struct {
	Store *store.Store
}

func (h EmployeeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/employees", h.list)
	r.Post("/employees", h.upsert)
	r.Delete("/employees/{id}", h.delete)
}

func (h EmployeeHandler) list(w http.ResponseWriter, r *http.Request) {
	items := h.Store.ListEmployees(r.Context())
	resp := make([]map[string]any, 0, len(items))
	for _, e := range items {
		resp = append(resp, employeePayload(e))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h EmployeeHandler) upsert(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID        *int64 `json:"id"`
		Name      string `json:"name"`
		Role      string `json:"role"`
		PayPeriod int64  `json:"payPeriod"`
		IsDriver  bool   `json:"isDriver"`
		Active    *bool  `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	e := domain.Employee{
		Name:      req.Name,
		Role:      req.Role,
		PayPeriod: req.PayPeriod,
		IsDriver:  req.IsDriver,
		Active:    true,
	}
	if req.ID != nil {
		e.ID = *req.ID
	}
	if req.Active != nil {
		e.Active = *req.Active
	}
	saved := h.Store.SaveEmployee(r.Context(), e)
	writeJSON(w, http.StatusOK, employeePayload(saved))
}

func (h EmployeeHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	h.Store.DeleteEmployee(r.Context(), id)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func employeePayload(e domain.Employee) map[string]any {
	return map[string]any{
		"id":        e.ID,
		"name":      e.Name,
		"role":      e.Role,
		"payPeriod": e.PayPeriod,
		"isDriver":  e.IsDriver,
		"active":    e.Active,
	}
}
