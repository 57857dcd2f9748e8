package cart

import (
	"strings"

	"pizzapos-backend/internal/domain"
)

// ValidationError aggregates every violation found before submission.
// The caller gets all of them at once rather than fail-fast.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "order validation failed: " + strings.Join(e.Violations, "; ")
}

// CheckoutInput is everything order validation needs to look at.
type CheckoutInput struct {
	Cart          *Cart
	Type          domain.OrderType
	Customer      domain.CustomerSnapshot
	PaymentMethod domain.PaymentMethod
	ChangeFor     int64
	DeliveryFee   int64
	Discount      Discount
	StoreOpen     bool
	EnforceShift  bool
	ShiftCount    int
}

// Validate collects every violation. A nil return means the order may
// be submitted.
func Validate(in CheckoutInput) error {
	var v []string

	if !in.StoreOpen {
		v = append(v, "store is closed")
	}
	if in.EnforceShift && in.ShiftCount == 0 {
		v = append(v, "no staff scheduled for the current shift")
	}
	if in.Cart == nil || in.Cart.Empty() {
		v = append(v, "cart is empty")
	}
	if strings.TrimSpace(in.Customer.Name) == "" {
		v = append(v, "customer name is required")
	}
	if strings.TrimSpace(in.Customer.Phone) == "" {
		v = append(v, "customer phone is required")
	}

	if in.Type == domain.OrderDelivery {
		if strings.TrimSpace(in.Customer.Address) == "" {
			v = append(v, "delivery address is required")
		}
		if strings.TrimSpace(in.Customer.Neighborhood) == "" {
			v = append(v, "delivery neighborhood is required")
		}
		if in.DeliveryFee <= 0 {
			v = append(v, "delivery fee must be positive")
		}
	}

	if in.PaymentMethod == domain.PayCash {
		totals := Totals{}
		if in.Cart != nil {
			totals = ComputeTotals(in.Cart, in.Discount, in.Type, in.DeliveryFee)
		}
		if in.ChangeFor == 0 && totals.Total > 0 {
			v = append(v, "change-for amount is required for cash payment")
		} else if in.ChangeFor != 0 && in.ChangeFor < totals.Total {
			v = append(v, "change-for amount is below the order total")
		}
	}

	if len(v) > 0 {
		return &ValidationError{Violations: v}
	}
	return nil
}
