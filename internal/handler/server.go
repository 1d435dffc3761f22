// Package handler implements the HTTP handlers for the catering booking API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, booking.go, etc.) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/catering-booking/internal/domain"
	"github.com/pkordes/catering-booking/internal/middleware"
	"github.com/pkordes/catering-booking/internal/service"
)

// CatalogServicer defines the catalog operations the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching Redis or the database.
type CatalogServicer interface {
	Get(ctx context.Context) (domain.Catalog, error)
	Refresh(ctx context.Context, who domain.Identity) (domain.Catalog, error)
}

// ClosedDayServicer defines the closed-day operations the handlers depend on.
type ClosedDayServicer interface {
	List(ctx context.Context, from, to *domain.Day) ([]domain.ClosedDay, error)
	Create(ctx context.Context, who domain.Identity, day domain.Day, reason string) (domain.ClosedDay, error)
	Delete(ctx context.Context, who domain.Identity, day domain.Day) error
}

// BookingServicer defines the booking operations the handlers depend on.
type BookingServicer interface {
	Quote(ctx context.Context, req service.BookingRequest) (service.Quote, error)
	Submit(ctx context.Context, who domain.Identity, req service.BookingRequest, idempotencyKey string) (domain.Booking, error)
	List(ctx context.Context, who domain.Identity, f domain.BookingFilter, p domain.PaginationParams) (domain.Page[domain.Booking], error)
	Export(ctx context.Context, who domain.Identity, f domain.BookingFilter) ([]domain.Booking, error)
	Get(ctx context.Context, who domain.Identity, id uuid.UUID) (domain.Booking, error)
	UpdateStatus(ctx context.Context, who domain.Identity, id uuid.UUID, next domain.BookingStatus) (domain.Booking, error)
}

// Server holds the services every handler needs.
type Server struct {
	catalog    CatalogServicer
	closedDays ClosedDayServicer
	bookings   BookingServicer
	log        *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger falls back to slog.Default().
func NewServer(catalog CatalogServicer, closedDays ClosedDayServicer, bookings BookingServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{catalog: catalog, closedDays: closedDays, bookings: bookings, log: log}
}

// Routes returns the API router. jwtSecret verifies bearer tokens from the
// identity provider. Cross-cutting middleware (request id, logging, CORS,
// body limits) is applied by the caller.
func (s *Server) Routes(jwtSecret string) http.Handler {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody("not_found", "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("method_not_allowed", "method not allowed"))
	})

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Get("/catalog", s.GetCatalog)
	r.Get("/closed-days", s.ListClosedDays)
	r.With(middleware.OptionalAuth(jwtSecret)).Post("/quotes", s.CreateQuote)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))

		r.With(middleware.RequireRole(domain.RoleCustomer, domain.RoleManager)).Post("/bookings", s.SubmitBooking)
		r.Get("/bookings", s.ListBookings)
		r.With(middleware.RequireRole(domain.RoleStaff, domain.RoleManager)).Get("/bookings/export", s.ExportBookings)
		r.Get("/bookings/{id}", s.GetBooking)
		r.Patch("/bookings/{id}/status", s.UpdateBookingStatus)

		r.With(middleware.RequireRole(domain.RoleManager)).Post("/catalog/refresh", s.RefreshCatalog)
		r.With(middleware.RequireRole(domain.RoleManager)).Post("/closed-days", s.CreateClosedDay)
		r.With(middleware.RequireRole(domain.RoleManager)).Delete("/closed-days/{day}", s.DeleteClosedDay)
	})
	return r
}
