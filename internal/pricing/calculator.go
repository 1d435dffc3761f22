package pricing

import (
	"github.com/pkordes/catering-booking/internal/domain"
)

// ComputePrice prices a resolved selection for guests.
//
//	base     = package.BasePrice + package.PerGuestRate() * guests
//	service  = serviceType.PricePerGuest * guests
//	food     = sum of food item prices (flat per booking, not per guest)
//	services = sum of pricePerUnit * quantity
//	total    = base + service + food + services
//
// domain.GuestCountOutOfRangeError is raised before any arithmetic when
// guests falls outside the package's bounds. Every product and sum is
// overflow-checked; a result that does not fit in Money fails with
// domain.PriceOutOfRangeError instead of wrapping.
func ComputePrice(r Resolved, guests int) (domain.PriceBreakdown, error) {
	bounds := r.Package.GuestBounds()
	if !bounds.Contains(guests) {
		return domain.PriceBreakdown{}, domain.GuestCountOutOfRangeError{
			Min:    bounds.Min,
			Max:    bounds.Upper(),
			Actual: guests,
		}
	}

	var (
		p  domain.PriceBreakdown
		ok = true
	)
	mul := func(m domain.Money, n int) domain.Money {
		v, fits := m.MulChecked(n)
		ok = ok && fits
		return v
	}
	add := func(a, b domain.Money) domain.Money {
		v, fits := a.AddChecked(b)
		ok = ok && fits
		return v
	}

	p.BasePrice = add(r.Package.BasePrice, mul(r.Package.PerGuestRate(), guests))
	if !ok {
		return domain.PriceBreakdown{}, domain.PriceOutOfRangeError{Component: "base"}
	}
	p.ServicePrice = mul(r.ServiceType.PricePerGuest, guests)
	if !ok {
		return domain.PriceBreakdown{}, domain.PriceOutOfRangeError{Component: "service"}
	}
	for _, item := range r.FoodItems {
		p.FoodAddonsPrice = add(p.FoodAddonsPrice, item.Price)
	}
	if !ok {
		return domain.PriceBreakdown{}, domain.PriceOutOfRangeError{Component: "food"}
	}
	for _, line := range r.Services {
		p.ServicesAddonsPrice = add(p.ServicesAddonsPrice, mul(line.Service.PricePerUnit, line.Quantity))
	}
	if !ok {
		return domain.PriceBreakdown{}, domain.PriceOutOfRangeError{Component: "services"}
	}
	p.TotalPrice = add(add(add(p.BasePrice, p.ServicePrice), p.FoodAddonsPrice), p.ServicesAddonsPrice)
	if !ok {
		return domain.PriceBreakdown{}, domain.PriceOutOfRangeError{Component: "total"}
	}
	return p, nil
}

// Snapshot converts resolved add-ons into the denormalized form stored on a
// booking.
func Snapshot(r Resolved) ([]domain.BookedFoodItem, []domain.BookedService) {
	food := make([]domain.BookedFoodItem, 0, len(r.FoodItems))
	for _, item := range r.FoodItems {
		food = append(food, domain.BookedFoodItem{
			ID:       item.ID,
			Name:     item.Name,
			Category: item.Category,
			Price:    item.Price,
		})
	}
	services := make([]domain.BookedService, 0, len(r.Services))
	for _, line := range r.Services {
		services = append(services, domain.BookedService{
			ID:           line.Service.ID,
			Name:         line.Service.Name,
			UnitLabel:    line.Service.UnitLabel,
			PricePerUnit: line.Service.PricePerUnit,
			Quantity:     line.Quantity,
			LineTotal:    line.Service.PricePerUnit.Times(line.Quantity),
		})
	}
	return food, services
}
