package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pizzapos-backend/internal/catalog"
	"pizzapos-backend/internal/domain"
	"pizzapos-backend/internal/store"
)

// ProductHandler serves the menu with live availability. Blocked
// names come through the sync layer so a blocked ingredient greys out
// every pizza that carries it.
type ProductHandler struct {
	Catalog *catalog.Catalog
	Store   *store.Store
}

func (h ProductHandler) RegisterRoutes(r chi.Router) {
	r.Get("/products", h.list)
	r.Get("/products/{name}", h.get)
}

func (h ProductHandler) list(w http.ResponseWriter, r *http.Request) {
	blocked := catalog.BlockedSet(h.Store.ListBlocked(r.Context()))
	category := r.URL.Query().Get("category")

	resp := make([]map[string]any, 0)
	for _, p := range h.Catalog.Products() {
		if category != "" && string(p.Category) != category {
			continue
		}
		resp = append(resp, productPayload(p, blocked))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h ProductHandler) get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	p, ok := h.Catalog.Get(name)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown product")
		return
	}
	blocked := catalog.BlockedSet(h.Store.ListBlocked(r.Context()))
	writeJSON(w, http.StatusOK, productPayload(p, blocked))
}

func productPayload(p domain.Product, blocked map[string]bool) map[string]any {
	av := catalog.CheckAvailability(p, blocked)
	payload := map[string]any{
		"name":      p.Name,
		"category":  string(p.Category),
		"available": av.Available,
	}
	if av.BlockedBy != "" {
		payload["blockedBy"] = av.BlockedBy
	}
	if len(p.Ingredients) > 0 {
		payload["ingredients"] = p.Ingredients
	}
	if len(p.Tiers) > 0 {
		tiers := make([]map[string]any, 0, len(p.Tiers))
		for _, t := range p.Tiers {
			tiers = append(tiers, map[string]any{
				"pieces":     t.Pieces,
				"price":      t.Price,
				"maxFlavors": catalog.MaxFlavors(t.Pieces, p.Tiers),
			})
		}
		payload["tiers"] = tiers
	} else {
		payload["price"] = p.Price
	}
	return payload
}
