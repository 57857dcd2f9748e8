package catalog

import "pizzapos-backend/internal/domain"

// seedProducts returns the house menu. Prices in cents; pizza tiers are
// piece counts (4 = small, 8 = medium, 12 = large).
func seedProducts() []domain.Product {
	pizza := func(name string, small, medium, large int64, ingredients ...string) domain.Product {
		return domain.Product{
			Name:        name,
			Category:    domain.CategoryPizza,
			Ingredients: ingredients,
			Tiers: []domain.SizeTier{
				{Pieces: 4, Price: small},
				{Pieces: 8, Price: medium},
				{Pieces: 12, Price: large},
			},
		}
	}
	item := func(name string, cat domain.ProductCategory, price int64) domain.Product {
		return domain.Product{Name: name, Category: cat, Price: price}
	}

	return []domain.Product{
		pizza("Margherita", 2500, 4200, 5600, "mozzarella", "tomato", "basil"),
		pizza("Calabresa", 2400, 4000, 5400, "mozzarella", "calabresa", "onion"),
		pizza("Portuguesa", 2700, 4500, 6000, "mozzarella", "ham", "egg", "onion", "olives"),
		pizza("Frango Catupiry", 2800, 4600, 6200, "mozzarella", "chicken", "catupiry"),
		pizza("Quatro Queijos", 2900, 4800, 6400, "mozzarella", "provolone", "parmesan", "gorgonzola"),
		pizza("Pepperoni", 2800, 4700, 6300, "mozzarella", "pepperoni"),
		pizza("Vegetariana", 2600, 4300, 5800, "mozzarella", "tomato", "bell pepper", "mushroom", "olives"),
		pizza("Bacon", 2700, 4500, 6000, "mozzarella", "bacon", "onion"),
		pizza("Chocolate", 2500, 4200, 5600, "chocolate"),
		pizza("Romeu e Julieta", 2600, 4300, 5800, "mozzarella", "guava paste"),

		item("Coca-Cola 2L", domain.CategoryDrink, 1200),
		item("Coca-Cola Lata", domain.CategoryDrink, 600),
		item("Guarana 2L", domain.CategoryDrink, 1000),
		item("Suco de Laranja", domain.CategoryDrink, 800),
		item("Agua Mineral", domain.CategoryDrink, 400),

		item("Pudim", domain.CategoryDessert, 900),
		item("Mousse de Maracuja", domain.CategoryDessert, 850),

		item("Borda Recheada", domain.CategoryExtra, 800),
		item("Molho Extra", domain.CategoryExtra, 300),
	}
}
