package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. guest count out of range, unknown add-on).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write collides with existing state, such as
// a duplicate closed day or a concurrent duplicate submission.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrForbidden is returned when the caller's role may not perform an action.
// Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrInvalidTransition is returned when a booking status change is not
// allowed from the booking's current status.
var ErrInvalidTransition = errors.New("invalid status transition")

// CatalogKind names one of the four catalog collections.
type CatalogKind string

const (
	KindPackage     CatalogKind = "package"
	KindServiceType CatalogKind = "service_type"
	KindFood        CatalogKind = "food"
	KindService     CatalogKind = "service"
)

var kindLabels = map[CatalogKind]string{
	KindPackage:     "package",
	KindServiceType: "service type",
	KindFood:        "food item",
	KindService:     "service",
}

// UnknownCatalogEntryError reports a selected id with no catalog entry.
type UnknownCatalogEntryError struct {
	Kind CatalogKind
	ID   string
}

func (e UnknownCatalogEntryError) Error() string {
	return fmt.Sprintf("The selected %s %q is not available", kindLabels[e.Kind], e.ID)
}

// Code is the machine-readable error code used in API responses.
func (e UnknownCatalogEntryError) Code() string { return "unknown_catalog_entry" }

// Is makes the error match ErrValidation.
func (e UnknownCatalogEntryError) Is(target error) bool { return target == ErrValidation }

// MaxServiceQuantity caps the quantity of a single service add-on line.
const MaxServiceQuantity = 1_000

// InvalidQuantityError reports an add-on quantity below zero or above
// MaxServiceQuantity.
type InvalidQuantityError struct {
	ServiceID string
	Quantity  int
}

func (e InvalidQuantityError) Error() string {
	return fmt.Sprintf("Quantity for %q must be between 0 and %d, got %d", e.ServiceID, MaxServiceQuantity, e.Quantity)
}

// Code is the machine-readable error code used in API responses.
func (e InvalidQuantityError) Code() string { return "invalid_quantity" }

// Is makes the error match ErrValidation.
func (e InvalidQuantityError) Is(target error) bool { return target == ErrValidation }

// GuestCountOutOfRangeError reports a guest count outside the package bounds.
// Max is zero when the package has no upper bound.
type GuestCountOutOfRangeError struct {
	Min    int
	Max    int
	Actual int
}

func (e GuestCountOutOfRangeError) Error() string {
	if e.Max == 0 {
		return fmt.Sprintf("Guest count must be at least %d for this package", e.Min)
	}
	return fmt.Sprintf("Guest count must be between %d and %d for this package", e.Min, e.Max)
}

// Code is the machine-readable error code used in API responses.
func (e GuestCountOutOfRangeError) Code() string { return "guest_count_out_of_range" }

// Is makes the error match ErrValidation.
func (e GuestCountOutOfRangeError) Is(target error) bool { return target == ErrValidation }

// PriceOutOfRangeError reports a selection whose price does not fit in
// Money. Catalog prices and the guest and quantity caps keep real
// selections far below this.
type PriceOutOfRangeError struct {
	Component string
}

func (e PriceOutOfRangeError) Error() string {
	return fmt.Sprintf("The %s price for this selection is too large to quote", e.Component)
}

// Code is the machine-readable error code used in API responses.
func (e PriceOutOfRangeError) Code() string { return "price_out_of_range" }

// Is makes the error match ErrValidation.
func (e PriceOutOfRangeError) Is(target error) bool { return target == ErrValidation }

// DateClosedError reports that the requested event day is closed.
type DateClosedError struct {
	Day    Day
	Reason string
}

func (e DateClosedError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("We are closed on %s, please choose another date", e.Day)
	}
	return fmt.Sprintf("We are closed on %s (%s), please choose another date", e.Day, e.Reason)
}

// Code is the machine-readable error code used in API responses.
func (e DateClosedError) Code() string { return "date_closed" }

// Is makes the error match ErrValidation.
func (e DateClosedError) Is(target error) bool { return target == ErrValidation }
