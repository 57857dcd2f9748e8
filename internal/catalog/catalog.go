package catalog

import "pizzapos-backend/internal/domain"

// Catalog is the static product list. Loaded once, never mutated.
type Catalog struct {
	products []domain.Product
	byName   map[string]domain.Product
}

func New(products []domain.Product) *Catalog {
	byName := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byName[p.Name] = p
	}
	return &Catalog{products: products, byName: byName}
}

// Default returns the catalog built from the seed menu.
func Default() *Catalog {
	return New(seedProducts())
}

func (c *Catalog) Products() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Get(name string) (domain.Product, bool) {
	p, ok := c.byName[name]
	return p, ok
}

// MaxFlavors is the split-pizza limit per size: two flavors on the
// smallest tier, four on the larger ones. Fixed business rule.
func MaxFlavors(pieces int, tiers []domain.SizeTier) int {
	smallest := 0
	for _, t := range tiers {
		if smallest == 0 || t.Pieces < smallest {
			smallest = t.Pieces
		}
	}
	if pieces == smallest {
		return 2
	}
	return 4
}

// Availability is the result of checking a product against the blocked set.
type Availability struct {
	Available bool
	BlockedBy string
}

// CheckAvailability reports whether the product can be sold given the
// blocked names. A product is unavailable when its own name is blocked
// or any one of its ingredients is; the first match wins.
func CheckAvailability(p domain.Product, blocked map[string]bool) Availability {
	if blocked[p.Name] {
		return Availability{Available: false, BlockedBy: p.Name}
	}
	for _, ing := range p.Ingredients {
		if blocked[ing] {
			return Availability{Available: false, BlockedBy: ing}
		}
	}
	return Availability{Available: true}
}

// BlockedSet converts the blocked-item records into a lookup set.
func BlockedSet(items []domain.BlockedItem) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, b := range items {
		set[b.Name] = true
	}
	return set
}
