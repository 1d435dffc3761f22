// Package pricing turns a customer's catalog selection into a priced booking
// and gates it on closed days.
//
// Everything here is a pure function over data the caller has already
// fetched: no I/O, no clock, no shared state. Callers re-run the functions on
// every new input.
package pricing

import (
	"github.com/pkordes/catering-booking/internal/domain"
)

// ServiceLine is a resolved service add-on with its selected quantity.
type ServiceLine struct {
	Service  domain.ServiceAddon
	Quantity int
}

// Resolved is a selection whose ids have all been mapped to catalog entries.
// Holding a Resolved value means every id was known; ComputePrice relies on it.
type Resolved struct {
	Package     domain.Package
	ServiceType domain.ServiceType
	FoodItems   []domain.FoodItem
	Services    []ServiceLine
}

// Resolve maps every id in sel to its catalog entry.
//
// It fails with domain.UnknownCatalogEntryError on the first unknown or
// inactive id and with domain.InvalidQuantityError on a quantity below zero
// or above domain.MaxServiceQuantity.
// Duplicate food ids collapse to one; zero-quantity service lines are dropped.
func Resolve(catalog domain.Catalog, sel domain.Selection) (Resolved, error) {
	pkg, ok := catalog.FindPackage(sel.PackageID)
	if !ok || !pkg.Active {
		return Resolved{}, domain.UnknownCatalogEntryError{Kind: domain.KindPackage, ID: sel.PackageID}
	}

	st, ok := catalog.FindServiceType(sel.ServiceTypeID)
	if !ok {
		return Resolved{}, domain.UnknownCatalogEntryError{Kind: domain.KindServiceType, ID: sel.ServiceTypeID}
	}

	r := Resolved{Package: pkg, ServiceType: st}

	seen := make(map[string]struct{}, len(sel.FoodItemIDs))
	for _, id := range sel.FoodItemIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		item, ok := catalog.FindFoodItem(id)
		if !ok {
			return Resolved{}, domain.UnknownCatalogEntryError{Kind: domain.KindFood, ID: id}
		}
		r.FoodItems = append(r.FoodItems, item)
	}

	for _, sq := range sel.Services {
		if sq.Quantity < 0 || sq.Quantity > domain.MaxServiceQuantity {
			return Resolved{}, domain.InvalidQuantityError{ServiceID: sq.ServiceID, Quantity: sq.Quantity}
		}
		svc, ok := catalog.FindService(sq.ServiceID)
		if !ok {
			return Resolved{}, domain.UnknownCatalogEntryError{Kind: domain.KindService, ID: sq.ServiceID}
		}
		if sq.Quantity == 0 {
			continue
		}
		r.Services = append(r.Services, ServiceLine{Service: svc, Quantity: sq.Quantity})
	}

	return r, nil
}
