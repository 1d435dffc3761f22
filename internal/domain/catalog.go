// Package domain contains the core data types for the catering booking API.
// It has no infrastructure dependencies and is imported by every other
// internal package (pricing, repo, service, handler).
package domain

// Package is a bundled catering offering.
//
// PricePerPax, MinPax and MaxPax are optional. Their defaulting rules live in
// PerGuestRate and GuestBounds so callers never repeat them.
type Package struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	BasePrice   Money    `json:"base_price"`
	PricePerPax *Money   `json:"price_per_pax,omitempty"`
	MinPax      *int     `json:"min_pax,omitempty"`
	MaxPax      *int     `json:"max_pax,omitempty"`
	Features    []string `json:"features"`
	Active      bool     `json:"active"`
}

// PerGuestRate returns the per-guest surcharge, or zero for flat-rate packages.
func (p Package) PerGuestRate() Money {
	if p.PricePerPax == nil {
		return 0
	}
	return *p.PricePerPax
}

// GuestBounds returns the inclusive guest range accepted by the package.
// Min defaults to 1; Max is zero when the package declares no upper bound.
func (p Package) GuestBounds() GuestBounds {
	b := GuestBounds{Min: 1}
	if p.MinPax != nil && *p.MinPax > 1 {
		b.Min = *p.MinPax
	}
	if p.MaxPax != nil {
		b.Max = *p.MaxPax
	}
	return b
}

// MaxGuestCount caps the guest count of any booking, including packages
// that declare no upper bound.
const MaxGuestCount = 10_000

// GuestBounds is an inclusive guest-count range. Max == 0 means the package
// declares no upper bound; MaxGuestCount still applies.
type GuestBounds struct {
	Min int
	Max int
}

// Upper is the effective inclusive upper bound.
func (b GuestBounds) Upper() int {
	if b.Max == 0 || b.Max > MaxGuestCount {
		return MaxGuestCount
	}
	return b.Max
}

// Contains reports whether n guests fall within the bounds.
func (b GuestBounds) Contains(n int) bool {
	return n >= b.Min && n <= b.Upper()
}

// ServiceType selects food only, service only, or both.
// PricePerGuest is zero for the single-sided variants.
type ServiceType struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	PricePerGuest Money  `json:"price_per_guest"`
}

// FoodItem is a flat-priced menu add-on. Selecting it adds Price once per
// booking regardless of guest count.
type FoodItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    Money  `json:"price"`
	Category string `json:"category"`
}

// ServiceAddon is an extra priced per unit (chairs, tables, staff hours).
type ServiceAddon struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	PricePerUnit Money  `json:"price_per_unit"`
	UnitLabel    string `json:"unit_label"`
}

// Catalog is a snapshot of everything that can be booked.
// It is loaded by the caller and handed to the pricing functions as a value.
type Catalog struct {
	Packages     []Package      `json:"packages"`
	ServiceTypes []ServiceType  `json:"service_types"`
	FoodItems    []FoodItem     `json:"food_items"`
	Services     []ServiceAddon `json:"services"`
}

// FindPackage returns the package with the given id.
func (c Catalog) FindPackage(id string) (Package, bool) {
	for _, p := range c.Packages {
		if p.ID == id {
			return p, true
		}
	}
	return Package{}, false
}

// FindServiceType returns the service type with the given id.
func (c Catalog) FindServiceType(id string) (ServiceType, bool) {
	for _, st := range c.ServiceTypes {
		if st.ID == id {
			return st, true
		}
	}
	return ServiceType{}, false
}

// FindFoodItem returns the food item with the given id.
func (c Catalog) FindFoodItem(id string) (FoodItem, bool) {
	for _, f := range c.FoodItems {
		if f.ID == id {
			return f, true
		}
	}
	return FoodItem{}, false
}

// FindService returns the service add-on with the given id.
func (c Catalog) FindService(id string) (ServiceAddon, bool) {
	for _, s := range c.Services {
		if s.ID == id {
			return s, true
		}
	}
	return ServiceAddon{}, false
}

// ActivePackages returns only the packages currently offered.
func (c Catalog) ActivePackages() []Package {
	out := make([]Package, 0, len(c.Packages))
	for _, p := range c.Packages {
		if p.Active {
			out = append(out, p)
		}
	}
	return out
}
