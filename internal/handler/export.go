package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/catering-booking/internal/domain"
	"github.com/pkordes/catering-booking/internal/middleware"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"booking_id", "status", "event_date", "event_time", "customer_name",
	"contact_phone", "venue", "package", "service_type", "guest_count",
	"food_addons", "service_addons", "total_price", "created_at",
}

// ExportBookings handles GET /bookings/export.
// It accepts the same filters as GET /bookings and returns every match as
// CSV for the staff schedule and manager reporting.
func (s *Server) ExportBookings(w http.ResponseWriter, r *http.Request) {
	f, err := filterParams(r)
	if err != nil {
		requestError(w, err.Error())
		return
	}

	bookings, err := s.bookings.Export(r.Context(), middleware.IdentityFrom(r.Context()), f)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	body := buildCSV(bookings)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="bookings.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(body.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = body.WriteTo(w)
}

// buildCSV encodes bookings as CSV.
// Add-ons within a row are pipe-separated ("|") to keep each booking on a single CSV line.
func buildCSV(bookings []domain.Booking) *bytes.Buffer {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	w.Write(csvHeaders)
	for _, b := range bookings {
		//nolint:errcheck
		w.Write(bookingToCSVRecord(b))
	}
	w.Flush()
	return &buf
}

// bookingToCSVRecord flattens a booking into one CSV row.
// Service add-ons are written as "name x quantity".
func bookingToCSVRecord(b domain.Booking) []string {
	food := make([]string, len(b.FoodAddons))
	for i, f := range b.FoodAddons {
		food[i] = f.Name
	}
	services := make([]string, len(b.ServiceAddons))
	for i, s := range b.ServiceAddons {
		services[i] = s.Name + " x " + strconv.Itoa(s.Quantity)
	}
	return []string{
		b.ID.String(),
		string(b.Status),
		b.EventDate.String(),
		b.EventTime,
		b.CustomerName,
		b.ContactPhone,
		b.Venue,
		b.PackageName,
		b.ServiceTypeName,
		strconv.Itoa(b.GuestCount),
		strings.Join(food, "|"),
		strings.Join(services, "|"),
		b.Price.TotalPrice.String(),
		b.CreatedAt.UTC().Format(time.RFC3339),
	}
}
