package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"pizzapos-backend/internal/report"
	"pizzapos-backend/internal/store"
)

type ReportHandler struct {
	Store *store.Store
}

func (h ReportHandler) RegisterRoutes(r chi.Router) {
	r.Get("/reports/summary", h.summary)
	r.Get("/reports/drivers", h.drivers)
	r.Get("/reports/fiado", h.fiado)
	r.Get("/reports/products", h.products)
	r.Get("/reports/compare", h.compare)
}

func (h ReportHandler) summary(w http.ResponseWriter, r *http.Request) {
	start, end, ok, msg := dateRangeQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	orders := filterOrdersByDate(h.Store.ListOrders(r.Context()), start, end)
	writeJSON(w, http.StatusOK, report.Summarize(orders))
}

func (h ReportHandler) drivers(w http.ResponseWriter, r *http.Request) {
	start, end, ok, msg := dateRangeQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	orders := filterOrdersByDate(h.Store.ListOrders(r.Context()), start, end)
	writeJSON(w, http.StatusOK, report.Drivers(orders))
}

func (h ReportHandler) fiado(w http.ResponseWriter, r *http.Request) {
	// Fiado tabs are open-ended; the whole history counts.
	writeJSON(w, http.StatusOK, report.FiadoBalances(h.Store.ListOrders(r.Context())))
}

func (h ReportHandler) products(w http.ResponseWriter, r *http.Request) {
	start, end, ok, msg := dateRangeQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	orders := filterOrdersByDate(h.Store.ListOrders(r.Context()), start, end)
	writeJSON(w, http.StatusOK, report.TopProducts(orders, limit))
}

// compare serves the dashboard trend cards: the requested period next
// to any second period picked by the caller. Without an explicit
// prevStartDate/prevEndDate pair it falls back to the equally long
// period right before the first.
func (h ReportHandler) compare(w http.ResponseWriter, r *http.Request) {
	start, end, ok, msg := dateRangeQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if start == nil || end == nil {
		writeError(w, http.StatusBadRequest, "startDate and endDate are required")
		return
	}

	prevStart, err := parseDateQuery(r, "prevStartDate")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid prevStartDate")
		return
	}
	prevEnd, err := parseDateQuery(r, "prevEndDate")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid prevEndDate")
		return
	}
	if (prevStart == nil) != (prevEnd == nil) {
		writeError(w, http.StatusBadRequest, "prevStartDate and prevEndDate go together")
		return
	}
	if prevStart == nil {
		days := int(end.Sub(*start).Hours()/24) + 1
		pe := start.AddDate(0, 0, -1)
		ps := pe.AddDate(0, 0, -(days - 1))
		prevStart, prevEnd = &ps, &pe
	} else if prevStart.After(*prevEnd) {
		writeError(w, http.StatusBadRequest, "prevStartDate must be before prevEndDate")
		return
	}

	all := h.Store.ListOrders(r.Context())
	current := filterOrdersByDate(all, start, end)
	previous := filterOrdersByDate(all, prevStart, prevEnd)
	writeJSON(w, http.StatusOK, report.Compare(current, previous))
}
