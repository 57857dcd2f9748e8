package cart

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"pizzapos-backend/internal/catalog"
	"pizzapos-backend/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrUnknownProduct = errors.New("unknown product")
	ErrUnknownSize    = errors.New("unknown size")
	ErrTooManyFlavors = errors.New("too many flavors for size")
)

// Cart accumulates order lines before submission.
type Cart struct {
	items []domain.CartItem
}

func New() *Cart {
	return &Cart{}
}

func (c *Cart) Items() []domain.CartItem {
	out := make([]domain.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Empty() bool {
	return len(c.items) == 0
}

// AddItem appends a single-price product (drink, dessert, extra).
func (c *Cart) AddItem(p domain.Product, observation string) {
	c.merge(domain.CartItem{
		ID:          uuid.NewString(),
		Name:        p.Name,
		Category:    p.Category,
		UnitPrice:   p.Price,
		Qty:         1,
		Observation: observation,
	})
}

// AddPizza builds a pizza line from the selected flavors at the chosen
// size. The unit price is the arithmetic mean of each flavor's price at
// that tier. Flavor count is capped per size (2 on the smallest tier,
// 4 on larger ones).
func (c *Cart) AddPizza(cat *catalog.Catalog, flavors []string, pieces int, observation string) error {
	if len(flavors) == 0 {
		return ErrUnknownProduct
	}

	var sum int64
	var tiers []domain.SizeTier
	for _, name := range flavors {
		p, ok := cat.Get(name)
		if !ok || p.Category != domain.CategoryPizza {
			return fmt.Errorf("%w: %s", ErrUnknownProduct, name)
		}
		price, ok := p.TierPrice(pieces)
		if !ok {
			return fmt.Errorf("%w: %d pieces", ErrUnknownSize, pieces)
		}
		sum += price
		tiers = p.Tiers
	}

	if max := catalog.MaxFlavors(pieces, tiers); len(flavors) > max {
		return fmt.Errorf("%w: %d flavors, max %d", ErrTooManyFlavors, len(flavors), max)
	}

	sorted := make([]string, len(flavors))
	copy(sorted, flavors)
	sort.Strings(sorted)

	c.merge(domain.CartItem{
		ID:          uuid.NewString(),
		Name:        strings.Join(sorted, " / "),
		Category:    domain.CategoryPizza,
		Flavors:     sorted,
		Pieces:      pieces,
		UnitPrice:   sum / int64(len(flavors)),
		Qty:         1,
		Observation: observation,
	})
	return nil
}

// merge folds the new line into an existing one when flavor set, size,
// price and normalized observation all match; otherwise appends.
func (c *Cart) merge(line domain.CartItem) {
	for i := range c.items {
		if sameLine(c.items[i], line) {
			c.items[i].Qty += line.Qty
			return
		}
	}
	c.items = append(c.items, line)
}

func sameLine(a, b domain.CartItem) bool {
	if a.Name != b.Name || a.Pieces != b.Pieces || a.UnitPrice != b.UnitPrice {
		return false
	}
	if len(a.Flavors) != len(b.Flavors) {
		return false
	}
	for i := range a.Flavors {
		if a.Flavors[i] != b.Flavors[i] {
			return false
		}
	}
	return normalizeObs(a.Observation) == normalizeObs(b.Observation)
}

func normalizeObs(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SetQuantity clamps to a floor of one; lines leave the cart only
// through Remove.
func (c *Cart) SetQuantity(id string, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Qty = qty
			return
		}
	}
}

func (c *Cart) Remove(id string) {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

func (c *Cart) Subtotal() int64 {
	var sum int64
	for _, it := range c.items {
		sum += it.UnitPrice * int64(it.Qty)
	}
	return sum
}

// Discount is the order-level discount setting.
type Discount struct {
	Kind  domain.DiscountKind
	Value int64 // cents for fixed, whole percent for percent
}

// Apply computes the discount amount against the subtotal. Fixed
// discounts cap at the subtotal, percent discounts at 100%.
func (d Discount) Apply(subtotal int64) int64 {
	switch d.Kind {
	case domain.DiscountFixed:
		if d.Value > subtotal {
			return subtotal
		}
		if d.Value < 0 {
			return 0
		}
		return d.Value
	case domain.DiscountPercent:
		pct := d.Value
		if pct > 100 {
			pct = 100
		}
		if pct < 0 {
			pct = 0
		}
		return subtotal * pct / 100
	default:
		return 0
	}
}

// Totals holds the computed order amounts.
type Totals struct {
	Subtotal    int64
	Discount    int64
	DeliveryFee int64
	Total       int64
}

// ComputeTotals applies the discount and delivery fee. The fee is
// dropped for pickup orders and the total never goes below zero.
func ComputeTotals(c *Cart, d Discount, orderType domain.OrderType, deliveryFee int64) Totals {
	sub := c.Subtotal()
	disc := d.Apply(sub)
	fee := deliveryFee
	if orderType != domain.OrderDelivery {
		fee = 0
	}
	total := sub - disc + fee
	if total < 0 {
		total = 0
	}
	return Totals{Subtotal: sub, Discount: disc, DeliveryFee: fee, Total: total}
}
