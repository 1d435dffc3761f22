// Package events publishes booking lifecycle messages to RabbitMQ so
// notification and reporting consumers never have to poll the database.
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/catering-booking/internal/domain"
)

// Queue names. Both are durable and routed through the default exchange.
const (
	QueueBookingCreated       = "booking.created"
	QueueBookingStatusChanged = "booking.status_changed"
)

// BookingEvent is the JSON payload of every booking message.
// PreviousStatus is only set on status changes.
type BookingEvent struct {
	BookingID       uuid.UUID            `json:"booking_id"`
	CustomerID      string               `json:"customer_id"`
	CustomerName    string               `json:"customer_name"`
	PackageName     string               `json:"package_name"`
	EventDate       domain.Day           `json:"event_date"`
	GuestCount      int                  `json:"guest_count"`
	Status          domain.BookingStatus `json:"status"`
	PreviousStatus  domain.BookingStatus `json:"previous_status,omitempty"`
	TotalPriceCents int64                `json:"total_price_cents"`
	OccurredAt      time.Time            `json:"occurred_at"`
}

// newBookingEvent builds the payload for b.
func newBookingEvent(b domain.Booking, previous domain.BookingStatus, now time.Time) BookingEvent {
	return BookingEvent{
		BookingID:       b.ID,
		CustomerID:      b.CustomerID,
		CustomerName:    b.CustomerName,
		PackageName:     b.PackageName,
		EventDate:       b.EventDate,
		GuestCount:      b.GuestCount,
		Status:          b.Status,
		PreviousStatus:  previous,
		TotalPriceCents: b.Price.TotalPrice.Cents(),
		OccurredAt:      now.UTC(),
	}
}
