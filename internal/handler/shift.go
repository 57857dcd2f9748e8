package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"pizzapos-backend/internal/domain"
	"pizzapos-backend/internal/store"
)

// ShiftHandler manages the active roster. Shifts live only in the
// local store; they describe who is in the building right now, which
// has no meaning to a remote mirror.
type ShiftHandler struct {
	Store *store.Store
}

func (h ShiftHandler) RegisterRoutes(r chi.Router) {
	r.Get("/shifts", h.list)
	r.Put("/shifts/{employeeID}", h.set)
	r.Delete("/shifts/{employeeID}", h.clear)
}

func (h ShiftHandler) list(w http.ResponseWriter, r *http.Request) {
	shifts := h.Store.Local().ListShifts()
	resp := make([]map[string]any, 0, len(shifts))
	for _, sh := range shifts {
		resp = append(resp, map[string]any{
			"employeeId": sh.EmployeeID,
			"name":       sh.Name,
			"period":     sh.Period,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h ShiftHandler) set(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid employee id")
		return
	}
	var req struct {
		Period int `json:"period"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	var employee *domain.Employee
	for _, e := range h.Store.ListEmployees(r.Context()) {
		if e.ID == id {
			employee = &e
			break
		}
	}
	if employee == nil {
		writeError(w, http.StatusNotFound, "employee not found")
		return
	}

	h.Store.Local().SetShift(domain.ActiveShift{
		EmployeeID: id,
		Name:       employee.Name,
		Period:     req.Period,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h ShiftHandler) clear(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid employee id")
		return
	}
	h.Store.Local().ClearShift(id)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
