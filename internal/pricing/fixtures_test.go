package pricing_test

import (
	"github.com/pkordes/catering-booking/internal/domain"
)

func intPtr(v int) *int { return &v }

func moneyPtr(m domain.Money) *domain.Money { return &m }

// testCatalog mirrors the seeded default menu.
func testCatalog() domain.Catalog {
	return domain.Catalog{
		Packages: []domain.Package{
			{
				ID:        "intimate-gathering",
				Name:      "Intimate Gathering",
				BasePrice: domain.Dollars(1500),
				MaxPax:    intPtr(30),
				Features:  []string{"Buffet setup", "2 main courses"},
				Active:    true,
			},
			{
				ID:          "grand-celebration",
				Name:        "Grand Celebration",
				BasePrice:   domain.Dollars(3000),
				PricePerPax: moneyPtr(domain.Dollars(25)),
				MinPax:      intPtr(50),
				MaxPax:      intPtr(300),
				Active:      true,
			},
			{
				ID:        "retired-package",
				Name:      "Retired Package",
				BasePrice: domain.Dollars(900),
				Active:    false,
			},
		},
		ServiceTypes: []domain.ServiceType{
			{ID: "food-only", Name: "Food Only"},
			{ID: "mixed", Name: "Food and Service"},
			{ID: "full-service", Name: "Full Service", PricePerGuest: domain.Dollars(15)},
		},
		FoodItems: []domain.FoodItem{
			{ID: "appetizer-platter", Name: "Appetizer Platter", Price: domain.Dollars(150), Category: "appetizers"},
			{ID: "dessert-table", Name: "Dessert Table", Price: domain.Dollars(275), Category: "desserts"},
		},
		Services: []domain.ServiceAddon{
			{ID: "chairs-standard", Name: "Standard Chairs", PricePerUnit: domain.Dollars(20), UnitLabel: "chair"},
			{ID: "waiter", Name: "Waiter", PricePerUnit: domain.Money(4550), UnitLabel: "hour"},
		},
	}
}
