package catalog

import (
	"testing"

	"pizzapos-backend/internal/domain"
)

func TestCheckAvailability(t *testing.T) {
	margherita := domain.Product{
		Name:        "Margherita",
		Ingredients: []string{"mozzarella", "tomato", "basil"},
	}

	tests := []struct {
		name      string
		product   domain.Product
		blocked   []string
		available bool
		blockedBy string
	}{
		{
			name:      "nothingBlocked",
			product:   margherita,
			blocked:   nil,
			available: true,
		},
		{
			name:      "productNameBlocked",
			product:   margherita,
			blocked:   []string{"Margherita"},
			available: false,
			blockedBy: "Margherita",
		},
		{
			name:      "ingredientBlocked",
			product:   margherita,
			blocked:   []string{"tomato"},
			available: false,
			blockedBy: "tomato",
		},
		{
			name:      "firstMatchingIngredientWins",
			product:   margherita,
			blocked:   []string{"tomato", "basil"},
			available: false,
			blockedBy: "tomato",
		},
		{
			name:      "nameBeatsIngredient",
			product:   margherita,
			blocked:   []string{"Margherita", "mozzarella"},
			available: false,
			blockedBy: "Margherita",
		},
		{
			name:      "unrelatedBlockDoesNotAffect",
			product:   margherita,
			blocked:   []string{"pepperoni"},
			available: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := make(map[string]bool)
			for _, b := range tt.blocked {
				set[b] = true
			}
			got := CheckAvailability(tt.product, set)
			if got.Available != tt.available {
				t.Errorf("Available = %v, want %v", got.Available, tt.available)
			}
			if got.BlockedBy != tt.blockedBy {
				t.Errorf("BlockedBy = %q, want %q", got.BlockedBy, tt.blockedBy)
			}
		})
	}
}

func TestMaxFlavors(t *testing.T) {
	tiers := []domain.SizeTier{
		{Pieces: 4, Price: 2500},
		{Pieces: 8, Price: 4200},
		{Pieces: 12, Price: 5600},
	}

	if got := MaxFlavors(4, tiers); got != 2 {
		t.Errorf("MaxFlavors(4) = %d, want 2", got)
	}
	if got := MaxFlavors(8, tiers); got != 4 {
		t.Errorf("MaxFlavors(8) = %d, want 4", got)
	}
	if got := MaxFlavors(12, tiers); got != 4 {
		t.Errorf("MaxFlavors(12) = %d, want 4", got)
	}
}

func TestDefaultCatalogLookup(t *testing.T) {
	c := Default()

	p, ok := c.Get("Margherita")
	if !ok {
		t.Fatal("Margherita missing from seed catalog")
	}
	price, ok := p.TierPrice(8)
	if !ok || price <= 0 {
		t.Errorf("TierPrice(8) = %d, %v; want positive price", price, ok)
	}

	if _, ok := c.Get("no such pizza"); ok {
		t.Error("Get on unknown product should report false")
	}
}
