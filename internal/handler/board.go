package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"pizzapos-backend/internal/board"
	"pizzapos-backend/internal/domain"
	"pizzapos-backend/internal/server/authctx"
	"pizzapos-backend/internal/store"
)

// BoardHandler drives the Kanban view. Reads come from the live
// cache, mutations go through the state machine and the sync layer.
type BoardHandler struct {
	Store *store.Store
	Cache *board.Cache
}

func (h BoardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/board", h.columns)
	r.Get("/board/history", h.history)
	r.Get("/board/cancel-reasons", h.cancelReasons)
	r.Post("/board/{number}/advance", h.advance)
	r.Post("/board/{number}/drop", h.drop)
	r.Post("/board/{number}/cancel", h.cancel)
	r.Post("/board/{number}/archive", h.archive)
	r.Post("/board/{number}/restore", h.restore)
}

func (h BoardHandler) columns(w http.ResponseWriter, r *http.Request) {
	cols := h.Cache.Columns(time.Now())
	writeJSON(w, http.StatusOK, map[string]any{
		"confirmed": columnPayload(cols.Confirmed),
		"kitchen":   columnPayload(cols.Kitchen),
		"delivery":  columnPayload(cols.Delivery),
		"completed": columnPayload(cols.Completed),
		"canceled":  columnPayload(cols.Canceled),
	})
}

func (h BoardHandler) history(w http.ResponseWriter, r *http.Request) {
	days := board.History(h.Cache.Orders(), time.Now())
	resp := make([]map[string]any, 0, len(days))
	for _, day := range days {
		resp = append(resp, map[string]any{
			"date":   day.Date,
			"orders": columnPayload(day.Orders),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h BoardHandler) cancelReasons(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.CancelReasons)
}

// scheduledStaff resolves the active shift roster to employee records
// for driver vetting.
func (h BoardHandler) scheduledStaff(r *http.Request) []domain.Employee {
	shifts := h.Store.Local().ListShifts()
	if len(shifts) == 0 {
		return nil
	}
	onShift := make(map[int64]bool, len(shifts))
	for _, sh := range shifts {
		onShift[sh.EmployeeID] = true
	}
	var out []domain.Employee
	for _, e := range h.Store.ListEmployees(r.Context()) {
		if onShift[e.ID] {
			out = append(out, e)
		}
	}
	return out
}

func (h BoardHandler) advance(w http.ResponseWriter, r *http.Request) {
	o, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req struct {
		Driver     string `json:"driver"`
		SkipDriver bool   `json:"skipDriver"`
	}
	// Body is optional: advancing out of any column but the kitchen
	// needs no extra input.
	_ = json.NewDecoder(r.Body).Decode(&req)

	next, driver, err := board.Advance(o, board.AdvanceInput{
		Driver:     req.Driver,
		SkipDriver: req.SkipDriver,
		Scheduled:  h.scheduledStaff(r),
	})
	if err != nil {
		writeBoardError(w, err)
		return
	}
	if err := h.Store.SetOrderStatus(r.Context(), o.Number, next, driver); err != nil {
		writeBoardError(w, err)
		return
	}
	h.respondWith(w, r, o.Number)
}

func (h BoardHandler) drop(w http.ResponseWriter, r *http.Request) {
	o, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req struct {
		Target     string `json:"target"`
		Driver     string `json:"driver"`
		SkipDriver bool   `json:"skipDriver"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	target := domain.OrderStatus(req.Target)
	if err := board.CheckDrop(o, target); err != nil {
		writeBoardError(w, err)
		return
	}
	// A valid drop is a one-step advance, so the same driver rules
	// apply when the order leaves the kitchen.
	next, driver, err := board.Advance(o, board.AdvanceInput{
		Driver:     req.Driver,
		SkipDriver: req.SkipDriver,
		Scheduled:  h.scheduledStaff(r),
	})
	if err != nil {
		writeBoardError(w, err)
		return
	}
	if err := h.Store.SetOrderStatus(r.Context(), o.Number, next, driver); err != nil {
		writeBoardError(w, err)
		return
	}
	h.respondWith(w, r, o.Number)
}

func (h BoardHandler) cancel(w http.ResponseWriter, r *http.Request) {
	o, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	actor := "unknown"
	if u := authctx.FromContext(r.Context()); u != nil {
		actor = u.Email
	}
	info, err := board.Cancel(o, req.Reason, actor, time.Now())
	if err != nil {
		writeBoardError(w, err)
		return
	}
	if err := h.Store.CancelOrder(r.Context(), o.Number, info); err != nil {
		writeBoardError(w, err)
		return
	}
	h.respondWith(w, r, o.Number)
}

func (h BoardHandler) archive(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, board.Archive)
}

func (h BoardHandler) restore(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, board.Restore)
}

func (h BoardHandler) move(w http.ResponseWriter, r *http.Request, step func(domain.Order) (domain.OrderStatus, error)) {
	o, ok := h.lookup(w, r)
	if !ok {
		return
	}
	next, err := step(o)
	if err != nil {
		writeBoardError(w, err)
		return
	}
	if err := h.Store.SetOrderStatus(r.Context(), o.Number, next, ""); err != nil {
		writeBoardError(w, err)
		return
	}
	h.respondWith(w, r, o.Number)
}

func (h BoardHandler) lookup(w http.ResponseWriter, r *http.Request) (domain.Order, bool) {
	number, err := strconv.ParseInt(chi.URLParam(r, "number"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order number")
		return domain.Order{}, false
	}
	o, ok := h.Store.GetOrder(r.Context(), number)
	if !ok {
		writeError(w, http.StatusNotFound, "order not found")
		return domain.Order{}, false
	}
	return o, true
}

func (h BoardHandler) respondWith(w http.ResponseWriter, r *http.Request, number int64) {
	o, ok := h.Store.GetOrder(r.Context(), number)
	if !ok {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, orderPayload(o))
}

func writeBoardError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, board.ErrInvalidTransition),
		errors.Is(err, board.ErrDragNotAllowed):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, board.ErrDriverRequired),
		errors.Is(err, board.ErrReasonRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func columnPayload(orders []domain.Order) []map[string]any {
	out := make([]map[string]any, 0, len(orders))
	for _, o := range orders {
		out = append(out, orderPayload(o))
	}
	return out
}
