package domain

import (
	"time"

	"github.com/google/uuid"
)

// ClosedDay marks a calendar day on which no events may be booked.
// A day is closed if and only if a ClosedDay exists for it; there are no
// recurring closures.
type ClosedDay struct {
	ID        uuid.UUID
	Day       Day
	Reason    string
	CreatedAt time.Time
}
