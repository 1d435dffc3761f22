package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/catering-booking/internal/domain"
	"github.com/pkordes/catering-booking/internal/middleware"
)

// IdempotencyKeyHeader makes POST /bookings safe to retry.
const IdempotencyKeyHeader = "Idempotency-Key"

// CreateQuote handles POST /quotes.
// A closed event day is not an error: the quote reports available=false.
func (s *Server) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var req BookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	q, err := s.bookings.Quote(r.Context(), req.toService())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, quoteToResponse(q))
}

// SubmitBooking handles POST /bookings.
// A replayed Idempotency-Key gets the original booking back, with the same
// 201 the first call received.
func (s *Server) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	var req BookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	key := r.Header.Get(IdempotencyKeyHeader)
	b, err := s.bookings.Submit(r.Context(), middleware.IdentityFrom(r.Context()), req.toService(), key)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/bookings/"+b.ID.String())
	writeJSON(w, http.StatusCreated, bookingToResponse(b))
}

// ListBookings handles GET /bookings.
// Supports ?page=, ?limit=, ?status= (comma-separated), ?from=, ?to=,
// ?sort=event_date|created_at and ?order=asc|desc. Results are scoped to the
// caller's role by the service.
func (s *Server) ListBookings(w http.ResponseWriter, r *http.Request) {
	f, err := filterParams(r)
	if err != nil {
		requestError(w, err.Error())
		return
	}
	page, err := intParam(r, "page")
	if err != nil {
		requestError(w, err.Error())
		return
	}
	limit, err := intParam(r, "limit")
	if err != nil {
		requestError(w, err.Error())
		return
	}
	params := domain.NewPaginationParams(page, limit)

	result, err := s.bookings.List(r.Context(), middleware.IdentityFrom(r.Context()), f, params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data := make([]BookingResponse, len(result.Items))
	for i, b := range result.Items {
		data[i] = bookingToResponse(b)
	}
	writeJSON(w, http.StatusOK, BookingListResponse{
		Data: data,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(result.Total),
		},
	})
}

// GetBooking handles GET /bookings/{id}.
func (s *Server) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	b, err := s.bookings.Get(r.Context(), middleware.IdentityFrom(r.Context()), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingToResponse(b))
}

// UpdateBookingStatus handles PATCH /bookings/{id}/status.
func (s *Server) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req StatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Status == "" {
		requestError(w, "status is required")
		return
	}

	b, err := s.bookings.UpdateStatus(r.Context(), middleware.IdentityFrom(r.Context()), id, req.Status)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookingToResponse(b))
}

// idParam parses the {id} path parameter, writing a 404 if it is not a UUID.
func idParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("not_found", "booking not found"))
		return uuid.Nil, false
	}
	return id, true
}

func intParam(r *http.Request, name string) (*int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", name)
	}
	return &n, nil
}

// filterParams builds a BookingFilter from the listing query parameters.
func filterParams(r *http.Request) (domain.BookingFilter, error) {
	q := r.URL.Query()
	var f domain.BookingFilter

	for _, st := range splitList(q.Get("status")) {
		f.Statuses = append(f.Statuses, domain.BookingStatus(st))
	}

	var err error
	if f.From, err = dayParam(r, "from"); err != nil {
		return domain.BookingFilter{}, err
	}
	if f.To, err = dayParam(r, "to"); err != nil {
		return domain.BookingFilter{}, err
	}

	f.SortBy = domain.BookingSort(q.Get("sort"))
	switch q.Get("order") {
	case "", "asc":
	case "desc":
		f.Descending = true
	default:
		return domain.BookingFilter{}, fmt.Errorf("order must be asc or desc")
	}
	return f, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
