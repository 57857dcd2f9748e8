package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pizzapos-backend/internal/store"
)

type SettingsHandler struct {
	Store *store.Store
}

func (h SettingsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/settings", h.get)
	r.Put("/settings", h.update)
}

func (h SettingsHandler) get(w http.ResponseWriter, r *http.Request) {
	s := h.Store.GetSettings(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"businessName":    s.BusinessName,
		"businessAddress": s.BusinessAddress,
		"businessPhone":   s.BusinessPhone,
		"receiptFooter":   s.ReceiptFooter,
		"storeOpen":       s.StoreOpen,
		"enforceShift":    s.EnforceShift,
		"deliverySlaMin":  s.DeliverySLAMin,
		"pickupSlaMin":    s.PickupSLAMin,
		"currencyCode":    s.CurrencyCode,
	})
}

func (h SettingsHandler) update(w http.ResponseWriter, r *http.Request) {
	current := h.Store.GetSettings(r.Context())
	req := struct {
		BusinessName    *string `json:"businessName"`
		BusinessAddress *string `json:"businessAddress"`
		BusinessPhone   *string `json:"businessPhone"`
		ReceiptFooter   *string `json:"receiptFooter"`
		StoreOpen       *bool   `json:"storeOpen"`
		EnforceShift    *bool   `json:"enforceShift"`
		DeliverySLAMin  *int    `json:"deliverySlaMin"`
		PickupSLAMin    *int    `json:"pickupSlaMin"`
	}{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if req.BusinessName != nil {
		current.BusinessName = *req.BusinessName
	}
	if req.BusinessAddress != nil {
		current.BusinessAddress = *req.BusinessAddress
	}
	if req.BusinessPhone != nil {
		current.BusinessPhone = *req.BusinessPhone
	}
	if req.ReceiptFooter != nil {
		current.ReceiptFooter = *req.ReceiptFooter
	}
	if req.StoreOpen != nil {
		current.StoreOpen = *req.StoreOpen
	}
	if req.EnforceShift != nil {
		current.EnforceShift = *req.EnforceShift
	}
	if req.DeliverySLAMin != nil {
		if *req.DeliverySLAMin < 1 {
			writeError(w, http.StatusBadRequest, "deliverySlaMin must be positive")
			return
		}
		current.DeliverySLAMin = *req.DeliverySLAMin
	}
	if req.PickupSLAMin != nil {
		if *req.PickupSLAMin < 1 {
			writeError(w, http.StatusBadRequest, "pickupSlaMin must be positive")
			return
		}
		current.PickupSLAMin = *req.PickupSLAMin
	}

	saved := h.Store.SaveSettings(r.Context(), current)
	writeJSON(w, http.StatusOK, map[string]any{
		"storeOpen":    saved.StoreOpen,
		"enforceShift": saved.EnforceShift,
	})
}
