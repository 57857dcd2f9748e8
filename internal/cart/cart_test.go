package cart

import (
	"errors"
	"strings"
	"testing"

	"pizzapos-backend/internal/catalog"
	"pizzapos-backend/internal/domain"
)

func testCatalog() *catalog.Catalog {
	return catalog.New([]domain.Product{
		{
			Name:     "A",
			Category: domain.CategoryPizza,
			Tiers: []domain.SizeTier{
				{Pieces: 4, Price: 2000},
				{Pieces: 8, Price: 3000},
				{Pieces: 12, Price: 5000},
			},
		},
		{
			Name:     "B",
			Category: domain.CategoryPizza,
			Tiers: []domain.SizeTier{
				{Pieces: 4, Price: 2500},
				{Pieces: 8, Price: 4000},
				{Pieces: 12, Price: 6000},
			},
		},
		{
			Name:     "C",
			Category: domain.CategoryPizza,
			Tiers: []domain.SizeTier{
				{Pieces: 4, Price: 2500},
				{Pieces: 8, Price: 3500},
				{Pieces: 12, Price: 5500},
			},
		},
		{Name: "Coke", Category: domain.CategoryDrink, Price: 600},
	})
}

func TestAddPizzaMeanPrice(t *testing.T) {
	c := New()
	// Flavors at 30.00 and 40.00 on the 8-piece tier -> unit price 35.00.
	if err := c.AddPizza(testCatalog(), []string{"A", "B"}, 8, ""); err != nil {
		t.Fatalf("AddPizza: %v", err)
	}
	items := c.Items()
	if len(items) != 1 {
		t.Fatalf("got %d lines, want 1", len(items))
	}
	if items[0].UnitPrice != 3500 {
		t.Errorf("UnitPrice = %d, want 3500", items[0].UnitPrice)
	}
	if c.Subtotal() != 3500 {
		t.Errorf("Subtotal = %d, want 3500", c.Subtotal())
	}
}

func TestAddPizzaFlavorLimit(t *testing.T) {
	c := New()
	// Smallest tier allows two flavors only.
	err := c.AddPizza(testCatalog(), []string{"A", "B", "C"}, 4, "")
	if !errors.Is(err, ErrTooManyFlavors) {
		t.Errorf("err = %v, want ErrTooManyFlavors", err)
	}
	// Three flavors are fine on the 8-piece tier.
	if err := c.AddPizza(testCatalog(), []string{"A", "B", "C"}, 8, ""); err != nil {
		t.Errorf("AddPizza 8 pieces: %v", err)
	}
}

func TestMergeIdenticalLines(t *testing.T) {
	cat := testCatalog()

	tests := []struct {
		name      string
		first     func(c *Cart)
		second    func(c *Cart)
		wantLines int
		wantQty   int
	}{
		{
			name:      "identicalPizzasMerge",
			first:     func(c *Cart) { _ = c.AddPizza(cat, []string{"A", "B"}, 8, " Sem cebola ") },
			second:    func(c *Cart) { _ = c.AddPizza(cat, []string{"B", "A"}, 8, "sem cebola") },
			wantLines: 1,
			wantQty:   2,
		},
		{
			name:      "differentSizeSplits",
			first:     func(c *Cart) { _ = c.AddPizza(cat, []string{"A"}, 8, "") },
			second:    func(c *Cart) { _ = c.AddPizza(cat, []string{"A"}, 12, "") },
			wantLines: 2,
			wantQty:   1,
		},
		{
			name:      "differentObservationSplits",
			first:     func(c *Cart) { _ = c.AddPizza(cat, []string{"A"}, 8, "well done") },
			second:    func(c *Cart) { _ = c.AddPizza(cat, []string{"A"}, 8, "extra sauce") },
			wantLines: 2,
			wantQty:   1,
		},
		{
			name: "identicalDrinksMerge",
			first: func(c *Cart) {
				p, _ := cat.Get("Coke")
				c.AddItem(p, "")
			},
			second: func(c *Cart) {
				p, _ := cat.Get("Coke")
				c.AddItem(p, "")
			},
			wantLines: 1,
			wantQty:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			tt.first(c)
			tt.second(c)
			items := c.Items()
			if len(items) != tt.wantLines {
				t.Fatalf("lines = %d, want %d", len(items), tt.wantLines)
			}
			if items[0].Qty != tt.wantQty {
				t.Errorf("first line qty = %d, want %d", items[0].Qty, tt.wantQty)
			}
		})
	}
}

func TestSetQuantityFloor(t *testing.T) {
	c := New()
	_ = c.AddPizza(testCatalog(), []string{"A"}, 8, "")
	id := c.Items()[0].ID

	c.SetQuantity(id, 3)
	if got := c.Items()[0].Qty; got != 3 {
		t.Errorf("qty = %d, want 3", got)
	}
	c.SetQuantity(id, 0)
	if got := c.Items()[0].Qty; got != 1 {
		t.Errorf("qty after clamp = %d, want 1", got)
	}

	c.Remove(id)
	if !c.Empty() {
		t.Error("cart should be empty after Remove")
	}
}

func TestDiscountCaps(t *testing.T) {
	tests := []struct {
		name     string
		d        Discount
		subtotal int64
		want     int64
	}{
		{"fixedUnderSubtotal", Discount{domain.DiscountFixed, 500}, 3500, 500},
		{"fixedCappedAtSubtotal", Discount{domain.DiscountFixed, 9000}, 3500, 3500},
		{"fixedNegativeIgnored", Discount{domain.DiscountFixed, -100}, 3500, 0},
		{"percentPlain", Discount{domain.DiscountPercent, 10}, 3500, 350},
		{"percentCappedAtHundred", Discount{domain.DiscountPercent, 150}, 3500, 3500},
		{"noDiscount", Discount{}, 3500, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.Apply(tt.subtotal); got != tt.want {
				t.Errorf("Apply(%d) = %d, want %d", tt.subtotal, got, tt.want)
			}
		})
	}
}

func TestComputeTotals(t *testing.T) {
	c := New()
	// 30.00 + 40.00 at size 8 -> unit 35.00, fee 5.00 -> total 40.00.
	_ = c.AddPizza(testCatalog(), []string{"A", "B"}, 8, "")

	got := ComputeTotals(c, Discount{}, domain.OrderDelivery, 500)
	want := Totals{Subtotal: 3500, Discount: 0, DeliveryFee: 500, Total: 4000}
	if got != want {
		t.Errorf("ComputeTotals = %+v, want %+v", got, want)
	}

	// Pickup drops the fee even when one is passed.
	got = ComputeTotals(c, Discount{}, domain.OrderPickup, 500)
	if got.DeliveryFee != 0 || got.Total != 3500 {
		t.Errorf("pickup totals = %+v, want fee 0 total 3500", got)
	}

	// Total floors at zero.
	got = ComputeTotals(c, Discount{Kind: domain.DiscountFixed, Value: 99999}, domain.OrderPickup, 0)
	if got.Total != 0 {
		t.Errorf("floored total = %d, want 0", got.Total)
	}
}

func TestValidateCollectsEveryViolation(t *testing.T) {
	err := Validate(CheckoutInput{
		Cart:          New(),
		Type:          domain.OrderDelivery,
		PaymentMethod: domain.PayCash,
		StoreOpen:     false,
		EnforceShift:  true,
		ShiftCount:    0,
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}

	want := []string{
		"store is closed",
		"no staff scheduled",
		"cart is empty",
		"customer name",
		"customer phone",
		"delivery address",
		"delivery neighborhood",
		"delivery fee",
	}
	for _, fragment := range want {
		found := false
		for _, v := range verr.Violations {
			if strings.Contains(v, fragment) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing violation containing %q in %v", fragment, verr.Violations)
		}
	}
}

func TestValidateCashChange(t *testing.T) {
	c := New()
	_ = c.AddPizza(testCatalog(), []string{"A"}, 8, "") // subtotal 3000

	base := CheckoutInput{
		Cart:          c,
		Type:          domain.OrderPickup,
		Customer:      domain.CustomerSnapshot{Name: "Ana", Phone: "11999990000"},
		PaymentMethod: domain.PayCash,
		StoreOpen:     true,
	}

	in := base
	if err := Validate(in); err == nil {
		t.Error("missing change-for should fail validation")
	}

	in.ChangeFor = 2000
	if err := Validate(in); err == nil {
		t.Error("change below total should fail validation")
	}

	in.ChangeFor = 5000
	if err := Validate(in); err != nil {
		t.Errorf("valid order rejected: %v", err)
	}

	// A fully discounted order owes nothing, so no change is needed.
	in = base
	in.Discount = Discount{Kind: domain.DiscountPercent, Value: 100}
	if err := Validate(in); err != nil {
		t.Errorf("zero-total cash order rejected: %v", err)
	}
}
