package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"pizzapos-backend/internal/cart"
	"pizzapos-backend/internal/catalog"
	"pizzapos-backend/internal/domain"
	"pizzapos-backend/internal/receipt"
	"pizzapos-backend/internal/service"
	"pizzapos-backend/internal/store"
)

type OrderHandler struct {
	Catalog *catalog.Catalog
	Store   *store.Store
	Orders  service.OrderService
}

func (h OrderHandler) RegisterRoutes(r chi.Router) {
	r.Post("/orders", h.create)
	r.Get("/orders", h.list)
	r.Get("/orders/{number}", h.get)
	r.Get("/orders/{number}/receipt", h.customerReceipt)
	r.Get("/orders/{number}/ticket", h.kitchenTicket)
}

type orderItemRequest struct {
	Product     string   `json:"product"`
	Flavors     []string `json:"flavors"`
	Pieces      int      `json:"pieces"`
	Qty         int      `json:"qty"`
	Observation string   `json:"observation"`
}

type createOrderRequest struct {
	Type     string             `json:"type"`
	Customer struct {
		Name         string `json:"name"`
		Phone        string `json:"phone"`
		Address      string `json:"address"`
		Neighborhood string `json:"neighborhood"`
		Reference    string `json:"reference"`
	} `json:"customer"`
	Items         []orderItemRequest `json:"items"`
	PaymentMethod string             `json:"paymentMethod"`
	ChangeFor     int64              `json:"changeFor"`
	DeliveryFee   int64              `json:"deliveryFee"`
	Discount      struct {
		Kind  string `json:"kind"`
		Value int64  `json:"value"`
	} `json:"discount"`
	Operator string `json:"operator"`
}

// buildCart replays the requested lines through the cart rules:
// availability, flavor limits, mean pricing and line merging all
// apply the same way they would at the counter.
func (h OrderHandler) buildCart(blocked map[string]bool, items []orderItemRequest) (*cart.Cart, error) {
	c := &cart.Cart{}
	for _, item := range items {
		qty := item.Qty
		if qty < 1 {
			qty = 1
		}
		names := item.Flavors
		if len(names) == 0 && item.Product != "" {
			names = []string{item.Product}
		}
		for _, name := range names {
			p, ok := h.Catalog.Get(name)
			if !ok {
				return nil, fmt.Errorf("unknown product %q", name)
			}
			if av := catalog.CheckAvailability(p, blocked); !av.Available {
				return nil, fmt.Errorf("%q is unavailable (%s is blocked)", name, av.BlockedBy)
			}
		}
		for i := 0; i < qty; i++ {
			if item.Pieces > 0 {
				if err := c.AddPizza(h.Catalog, names, item.Pieces, item.Observation); err != nil {
					return nil, err
				}
				continue
			}
			if len(names) != 1 {
				return nil, fmt.Errorf("non-pizza lines take a single product")
			}
			p, _ := h.Catalog.Get(names[0])
			c.AddItem(p, item.Observation)
		}
	}
	return c, nil
}

func (h OrderHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	blocked := catalog.BlockedSet(h.Store.ListBlocked(r.Context()))
	c, err := h.buildCart(blocked, req.Items)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.Orders.PlaceOrder(r.Context(), service.PlaceOrderInput{
		Cart: c,
		Type: domain.OrderType(req.Type),
		Customer: domain.CustomerSnapshot{
			Name:         req.Customer.Name,
			Phone:        req.Customer.Phone,
			Address:      req.Customer.Address,
			Neighborhood: req.Customer.Neighborhood,
			Reference:    req.Customer.Reference,
		},
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		ChangeFor:     req.ChangeFor,
		DeliveryFee:   req.DeliveryFee,
		Discount: cart.Discount{
			Kind:  domain.DiscountKind(req.Discount.Kind),
			Value: req.Discount.Value,
		},
		Operator: req.Operator,
	})
	if err != nil {
		var verr *cart.ValidationError
		if errors.As(err, &verr) {
			writeViolations(w, verr.Violations)
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, orderPayload(order))
}

func (h OrderHandler) list(w http.ResponseWriter, r *http.Request) {
	start, end, ok, msg := dateRangeQuery(r)
	if !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	orders := filterOrdersByDate(h.Store.ListOrders(r.Context()), start, end)

	if status := r.URL.Query().Get("status"); status != "" {
		filtered := make([]domain.Order, 0, len(orders))
		for _, o := range orders {
			if string(o.Status) == status {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}

	resp := make([]map[string]any, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, orderPayload(o))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h OrderHandler) get(w http.ResponseWriter, r *http.Request) {
	o, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, orderPayload(o))
}

func (h OrderHandler) customerReceipt(w http.ResponseWriter, r *http.Request) {
	o, ok := h.lookup(w, r)
	if !ok {
		return
	}
	settings := h.Store.GetSettings(r.Context())
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(receipt.Customer(o, settings)))
}

func (h OrderHandler) kitchenTicket(w http.ResponseWriter, r *http.Request) {
	o, ok := h.lookup(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(receipt.Kitchen(o)))
}

func (h OrderHandler) lookup(w http.ResponseWriter, r *http.Request) (domain.Order, bool) {
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

func orderPayload(o domain.Order) map[string]any {
	items := make([]map[string]any, 0, len(o.Items))
	for _, item := range o.Items {
		entry := map[string]any{
			"id":        item.ID,
			"name":      item.Name,
			"category":  string(item.Category),
			"qty":       item.Qty,
			"unitPrice": item.UnitPrice,
		}
		if len(item.Flavors) > 1 {
			entry["flavors"] = item.Flavors
		}
		if item.Pieces > 0 {
			entry["pieces"] = item.Pieces
		}
		if item.Observation != "" {
			entry["observation"] = item.Observation
		}
		items = append(items, entry)
	}

	payload := map[string]any{
		"number": o.Number,
		"type":   string(o.Type),
		"status": string(o.Status),
		"customer": map[string]any{
			"name":         o.Customer.Name,
			"phone":        o.Customer.Phone,
			"address":      o.Customer.Address,
			"neighborhood": o.Customer.Neighborhood,
			"reference":    o.Customer.Reference,
		},
		"items":         items,
		"subtotal":      o.Subtotal,
		"discount":      o.Discount,
		"deliveryFee":   o.DeliveryFee,
		"total":         o.Total,
		"paymentMethod": string(o.PaymentMethod),
		"operator":      o.Operator,
		"createdAt":     o.CreatedAt.UTC().Format(time.RFC3339),
		"deadline":      o.Deadline.UTC().Format(time.RFC3339),
	}
	if o.ChangeFor > 0 {
		payload["changeFor"] = o.ChangeFor
	}
	if o.Driver != "" {
		payload["driver"] = o.Driver
	}
	if o.Cancel != nil {
		payload["cancel"] = map[string]any{
			"reason":     o.Cancel.Reason,
			"actor":      o.Cancel.Actor,
			"canceledAt": o.Cancel.CanceledAt.UTC().Format(time.RFC3339),
		}
	}
	return payload
}
