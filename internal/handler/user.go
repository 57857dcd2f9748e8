package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"pizzapos-backend/internal/repository"
	"pizzapos-backend/internal/server/authctx"
	"pizzapos-backend/internal/service"
)

type UserHandler struct {
	Service service.UserService
}

func (h UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/users", h.list)
	r.Delete("/users/{id}", h.delete)
}

func (h UserHandler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := make([]map[string]any, 0, len(users))
	for _, u := range users {
		resp = append(resp, map[string]any{
			"id":        u.ID,
			"name":      u.Name,
			"email":     u.Email,
			"role":      string(u.Role),
			"isGoogle":  u.IsGoogle,
			"createdAt": u.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h UserHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	u := authctx.FromContext(r.Context())
	if u == nil {
		writeError(w, http.StatusForbidden, "forbidden")
		return
	}

	switch err := h.Service.Delete(r.Context(), u.ID, id); {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	case errors.Is(err, service.ErrSelfDelete):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrLastAdmin):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "user not found")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
