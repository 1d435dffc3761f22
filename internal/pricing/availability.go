package pricing

import (
	"github.com/pkordes/catering-booking/internal/domain"
)

// Availability is the result of an availability check.
// The zero value is Available.
type Availability struct {
	Closed bool
	Reason string
}

// Available is the open-day result.
var Available = Availability{}

// Err returns a domain.DateClosedError for day if a is closed, nil otherwise.
func (a Availability) Err(day domain.Day) error {
	if !a.Closed {
		return nil
	}
	return domain.DateClosedError{Day: day, Reason: a.Reason}
}

// CheckAvailability reports whether day matches any closed day.
// Matching is exact calendar-day equality; the caller normalizes day to the
// business time zone first.
func CheckAvailability(day domain.Day, closed []domain.ClosedDay) Availability {
	for _, cd := range closed {
		if cd.Day == day {
			return Availability{Closed: true, Reason: cd.Reason}
		}
	}
	return Available
}
