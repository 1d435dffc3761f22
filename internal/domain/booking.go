package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus is the lifecycle state of a booking.
// Bookings are always created pending; the manager portal moves them on.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Valid reports whether s is a known status.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether a booking in state s may move to next.
//
//	pending   -> confirmed | cancelled
//	confirmed -> completed | cancelled
//
// cancelled and completed are terminal.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	}
	return false
}

// Selection is what the customer picked in the booking flow, by id only.
type Selection struct {
	PackageID     string
	ServiceTypeID string
	FoodItemIDs   []string
	Services      []ServiceQuantity
}

// ServiceQuantity is one (service id, quantity) pair of a Selection.
type ServiceQuantity struct {
	ServiceID string
	Quantity  int
}

// PriceBreakdown is the computed price of a booking.
// TotalPrice always equals the sum of the four parts.
type PriceBreakdown struct {
	BasePrice           Money `json:"base_price"`
	ServicePrice        Money `json:"service_price"`
	FoodAddonsPrice     Money `json:"food_addons_price"`
	ServicesAddonsPrice Money `json:"services_addons_price"`
	TotalPrice          Money `json:"total_price"`
}

// BookedFoodItem is the snapshot of a food add-on stored on a booking.
type BookedFoodItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    Money  `json:"price"`
}

// BookedService is the snapshot of a service add-on line stored on a booking.
type BookedService struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	UnitLabel    string `json:"unit_label"`
	PricePerUnit Money  `json:"price_per_unit"`
	Quantity     int    `json:"quantity"`
	LineTotal    Money  `json:"line_total"`
}

// Booking is a priced, validated booking request.
// Package and service-type names and all prices are denormalized copies taken
// at submission time, so later catalog edits never reprice history.
type Booking struct {
	ID              uuid.UUID
	CustomerID      string
	CustomerName    string
	PackageID       string
	PackageName     string
	ServiceTypeID   string
	ServiceTypeName string
	EventDate       Day
	EventTime       string // "15:04", empty when not given
	Venue           string
	ContactPhone    string
	Notes           string
	GuestCount      int
	FoodAddons      []BookedFoodItem
	ServiceAddons   []BookedService
	Price           PriceBreakdown
	Status          BookingStatus
	IdempotencyKey  string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BookingSort selects the ordering column of a booking listing.
type BookingSort string

const (
	SortByEventDate BookingSort = "event_date"
	SortByCreatedAt BookingSort = "created_at"
)

// BookingFilter narrows a booking listing. Zero values mean "no constraint".
type BookingFilter struct {
	CustomerID string
	Statuses   []BookingStatus
	From       *Day
	To         *Day
	SortBy     BookingSort
	Descending bool
}
