package service

import (
	"context"
	"log/slog"
	"time"

	"pizzapos-backend/internal/cart"
	"pizzapos-backend/internal/domain"
	"pizzapos-backend/internal/store"
)

// OrderService turns a validated cart into a numbered order through
// the sync layer and keeps the customer record current afterwards.
type OrderService struct {
	Store  *store.Store
	Logger *slog.Logger
}

// PlaceOrderInput carries the checkout form.
type PlaceOrderInput struct {
	Cart          *cart.Cart
	Type          domain.OrderType
	Customer      domain.CustomerSnapshot
	PaymentMethod domain.PaymentMethod
	ChangeFor     int64
	DeliveryFee   int64
	Discount      cart.Discount
	Operator      string
}

// PlaceOrder validates, totals, stamps a deadline from the per-type
// SLA and submits. Customer bookkeeping happens in the background so
// a slow or dead remote never delays the ticket.
func (s OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (domain.Order, error) {
	settings := s.Store.GetSettings(ctx)
	shiftCount := len(s.Store.Local().ListShifts())

	err := cart.Validate(cart.CheckoutInput{
		Cart:          in.Cart,
		Type:          in.Type,
		Customer:      in.Customer,
		PaymentMethod: in.PaymentMethod,
		ChangeFor:     in.ChangeFor,
		DeliveryFee:   in.DeliveryFee,
		Discount:      in.Discount,
		StoreOpen:     settings.StoreOpen,
		EnforceShift:  settings.EnforceShift,
		ShiftCount:    shiftCount,
	})
	if err != nil {
		return domain.Order{}, err
	}

	totals := cart.ComputeTotals(in.Cart, in.Discount, in.Type, in.DeliveryFee)
	now := time.Now()
	sla := time.Duration(settings.DeliverySLAMin) * time.Minute
	if in.Type == domain.OrderPickup {
		sla = time.Duration(settings.PickupSLAMin) * time.Minute
	}

	order := domain.Order{
		Type:          in.Type,
		Status:        domain.StatusConfirmed,
		Customer:      in.Customer,
		Items:         in.Cart.Items(),
		Subtotal:      totals.Subtotal,
		Discount:      totals.Discount,
		DeliveryFee:   totals.DeliveryFee,
		Total:         totals.Total,
		PaymentMethod: in.PaymentMethod,
		ChangeFor:     in.ChangeFor,
		Operator:      in.Operator,
		CreatedAt:     now,
		Deadline:      now.Add(sla),
	}

	created, err := s.Store.CreateOrder(ctx, order)
	if err != nil {
		return domain.Order{}, err
	}

	go s.recordCustomer(created)
	return created, nil
}

// recordCustomer refreshes the customer's contact record from the
// order snapshot. Running totals wait for completion; the sync layer
// bumps them on the status change. Failures are logged and swallowed;
// the order already exists.
func (s OrderService) recordCustomer(o domain.Order) {
	defer func() {
		if r := recover(); r != nil {
			s.Logger.Warn("customer bookkeeping panicked", "order", o.Number, "panic", r)
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.Store.UpsertCustomer(ctx, domain.Customer{
		Name:         o.Customer.Name,
		Phone:        o.Customer.Phone,
		Address:      o.Customer.Address,
		Neighborhood: o.Customer.Neighborhood,
		Reference:    o.Customer.Reference,
	})
}
