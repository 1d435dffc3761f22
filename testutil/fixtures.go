package testutil

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/catering-booking/internal/domain"
)

// PendingBooking returns a priced pending booking for customerID on day,
// built from the seeded menu: Intimate Gathering for 25 guests with one
// appetizer platter and ten standard chairs, 1850.00 in total.
func PendingBooking(customerID string, day domain.Day) domain.Booking {
	return domain.Booking{
		CustomerID:      customerID,
		CustomerName:    "Maria Santos",
		PackageID:       "intimate-gathering",
		PackageName:     "Intimate Gathering",
		ServiceTypeID:   "mixed",
		ServiceTypeName: "Food and Service",
		EventDate:       day,
		EventTime:       "17:30",
		Venue:           "Garden Pavilion",
		GuestCount:      25,
		FoodAddons: []domain.BookedFoodItem{
			{ID: "appetizer-platter", Name: "Appetizer Platter", Category: "appetizers", Price: domain.Dollars(150)},
		},
		ServiceAddons: []domain.BookedService{{
			ID: "chairs-standard", Name: "Standard Chairs", UnitLabel: "chair",
			PricePerUnit: domain.Dollars(20), Quantity: 10, LineTotal: domain.Dollars(200),
		}},
		Price: domain.PriceBreakdown{
			BasePrice:           domain.Dollars(1500),
			FoodAddonsPrice:     domain.Dollars(150),
			ServicesAddonsPrice: domain.Dollars(200),
			TotalPrice:          domain.Dollars(1850),
		},
		Status: domain.StatusPending,
	}
}

// InsertPackage adds p to the packages table inside tx.
func InsertPackage(t *testing.T, tx pgx.Tx, p domain.Package) {
	t.Helper()
	var perPax *int64
	if p.PricePerPax != nil {
		v := p.PricePerPax.Cents()
		perPax = &v
	}
	_, err := tx.Exec(context.Background(), `
		INSERT INTO packages (id, name, base_price_cents, price_per_pax_cents, min_pax, max_pax, active)
		VALUES (@id, @name, @base_price_cents, @price_per_pax_cents, @min_pax, @max_pax, @active)`,
		pgx.NamedArgs{
			"id":                  p.ID,
			"name":                p.Name,
			"base_price_cents":    p.BasePrice.Cents(),
			"price_per_pax_cents": perPax,
			"min_pax":             p.MinPax,
			"max_pax":             p.MaxPax,
			"active":              p.Active,
		})
	if err != nil {
		t.Fatalf("testutil.InsertPackage: %v", err)
	}
}
