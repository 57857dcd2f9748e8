package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"pizzapos-backend/internal/export"
	"pizzapos-backend/internal/store"
)

// ExportHandler streams the CSV/XLSX backups. CSV stays the default
// because it is what the register computer's spreadsheet opens
// without an import dialog.
type ExportHandler struct {
	Store *store.Store
}

func (h ExportHandler) RegisterRoutes(r chi.Router) {
	r.Get("/export/orders", h.orders)
	r.Get("/export/customers", h.customers)
}

func (h ExportHandler) orders(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	start, end, ok, msg := dateRangeQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	orders := filterOrdersByDate(h.Store.ListOrders(r.Context()), start, end)

	suffix := time.Now().Format("20060102_150405")
	if start != nil && end != nil {
		suffix = fmt.Sprintf("%s_%s", start.Format("20060102"), end.Format("20060102"))
	}

	switch format {
	case "csv":
		data, err := export.OrdersCSV(orders)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		serveFile(w, data, fmt.Sprintf("pedidos_%s.csv", suffix), "text/csv; charset=utf-8")
	case "xlsx", "excel":
		data, err := export.OrdersXLSX(orders)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		serveFile(w, data, fmt.Sprintf("pedidos_%s.xlsx", suffix), xlsxContentType)
	default:
		writeError(w, http.StatusBadRequest, "invalid format (use csv or xlsx)")
	}
}

func (h ExportHandler) customers(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	customers := h.Store.ListCustomers(r.Context())
	suffix := time.Now().Format("20060102_150405")

	switch format {
	case "csv":
		data, err := export.CustomersCSV(customers)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		serveFile(w, data, fmt.Sprintf("clientes_%s.csv", suffix), "text/csv; charset=utf-8")
	case "xlsx", "excel":
		data, err := export.CustomersXLSX(customers)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		serveFile(w, data, fmt.Sprintf("clientes_%s.xlsx", suffix), xlsxContentType)
	default:
		writeError(w, http.StatusBadRequest, "invalid format (use csv or xlsx)")
	}
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func serveFile(w http.ResponseWriter, data []byte, filename, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = w.Write(data)
}
