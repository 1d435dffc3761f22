package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/catering-booking/internal/domain"
	"github.com/pkordes/catering-booking/internal/handler"
	"github.com/pkordes/catering-booking/internal/middleware"
	"github.com/pkordes/catering-booking/internal/service"
	"github.com/pkordes/catering-booking/testutil"
)

const testSecret = "test-secret"

// mockCatalog is a test double for handler.CatalogServicer.
type mockCatalog struct {
	get     func(ctx context.Context) (domain.Catalog, error)
	refresh func(ctx context.Context, who domain.Identity) (domain.Catalog, error)
}

func (m *mockCatalog) Get(ctx context.Context) (domain.Catalog, error) { return m.get(ctx) }
func (m *mockCatalog) Refresh(ctx context.Context, who domain.Identity) (domain.Catalog, error) {
	return m.refresh(ctx, who)
}

var _ handler.CatalogServicer = (*mockCatalog)(nil)

// mockClosedDays is a test double for handler.ClosedDayServicer.
type mockClosedDays struct {
	list   func(ctx context.Context, from, to *domain.Day) ([]domain.ClosedDay, error)
	create func(ctx context.Context, who domain.Identity, day domain.Day, reason string) (domain.ClosedDay, error)
	delete func(ctx context.Context, who domain.Identity, day domain.Day) error
}

func (m *mockClosedDays) List(ctx context.Context, from, to *domain.Day) ([]domain.ClosedDay, error) {
	return m.list(ctx, from, to)
}
func (m *mockClosedDays) Create(ctx context.Context, who domain.Identity, day domain.Day, reason string) (domain.ClosedDay, error) {
	return m.create(ctx, who, day, reason)
}
func (m *mockClosedDays) Delete(ctx context.Context, who domain.Identity, day domain.Day) error {
	return m.delete(ctx, who, day)
}

var _ handler.ClosedDayServicer = (*mockClosedDays)(nil)

// mockBookings is a test double for handler.BookingServicer.
// Set only the method fields your test needs.
type mockBookings struct {
	quote        func(ctx context.Context, req service.BookingRequest) (service.Quote, error)
	submit       func(ctx context.Context, who domain.Identity, req service.BookingRequest, key string) (domain.Booking, error)
	list         func(ctx context.Context, who domain.Identity, f domain.BookingFilter, p domain.PaginationParams) (domain.Page[domain.Booking], error)
	export       func(ctx context.Context, who domain.Identity, f domain.BookingFilter) ([]domain.Booking, error)
	get          func(ctx context.Context, who domain.Identity, id uuid.UUID) (domain.Booking, error)
	updateStatus func(ctx context.Context, who domain.Identity, id uuid.UUID, next domain.BookingStatus) (domain.Booking, error)
}

func (m *mockBookings) Quote(ctx context.Context, req service.BookingRequest) (service.Quote, error) {
	return m.quote(ctx, req)
}
func (m *mockBookings) Submit(ctx context.Context, who domain.Identity, req service.BookingRequest, key string) (domain.Booking, error) {
	return m.submit(ctx, who, req, key)
}
func (m *mockBookings) List(ctx context.Context, who domain.Identity, f domain.BookingFilter, p domain.PaginationParams) (domain.Page[domain.Booking], error) {
	return m.list(ctx, who, f, p)
}
func (m *mockBookings) Export(ctx context.Context, who domain.Identity, f domain.BookingFilter) ([]domain.Booking, error) {
	return m.export(ctx, who, f)
}
func (m *mockBookings) Get(ctx context.Context, who domain.Identity, id uuid.UUID) (domain.Booking, error) {
	return m.get(ctx, who, id)
}
func (m *mockBookings) UpdateStatus(ctx context.Context, who domain.Identity, id uuid.UUID, next domain.BookingStatus) (domain.Booking, error) {
	return m.updateStatus(ctx, who, id, next)
}

var _ handler.BookingServicer = (*mockBookings)(nil)

// ---- helpers ---------------------------------------------------------------

// services bundles the doubles a test wires into the router. Nil fields get
// empty doubles whose methods panic if called.
type services struct {
	catalog    *mockCatalog
	closedDays *mockClosedDays
	bookings   *mockBookings
}

// newHTTPHandler wires a Server with the given doubles into the real router.
// This mirrors how main.go wires it in production.
func newHTTPHandler(s services) http.Handler {
	if s.catalog == nil {
		s.catalog = &mockCatalog{}
	}
	if s.closedDays == nil {
		s.closedDays = &mockClosedDays{}
	}
	if s.bookings == nil {
		s.bookings = &mockBookings{}
	}
	srv := handler.NewServer(s.catalog, s.closedDays, s.bookings, nil)
	return srv.Routes(testSecret)
}

func bearer(t *testing.T, id domain.Identity) string {
	t.Helper()
	claims := middleware.Claims{
		Name: id.DisplayName,
		Role: id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + s
}

var (
	manager  = domain.Identity{UserID: "mgr-1", DisplayName: "Manager", Role: domain.RoleManager}
	staff    = domain.Identity{UserID: "staff-1", DisplayName: "Staff", Role: domain.RoleStaff}
	customer = domain.Identity{UserID: "cust-1", DisplayName: "Maria Santos", Role: domain.RoleCustomer}
)

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// do sends a request through h. who may be nil for anonymous calls.
func do(t *testing.T, h http.Handler, method, path string, body io.Reader, who *domain.Identity) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if who != nil {
		req.Header.Set("Authorization", bearer(t, *who))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}

func intPtr(v int) *int { return &v }

func bookingFixture() domain.Booking {
	b := testutil.PendingBooking("cust-1", domain.Day{Year: 2025, Month: time.December, Day: 20})
	b.ID = uuid.New()
	b.CreatedAt = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	b.UpdatedAt = b.CreatedAt
	return b
}

// doWithHeaders is do with extra request headers.
func doWithHeaders(t *testing.T, h http.Handler, method, path string, body io.Reader, who *domain.Identity, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if who != nil {
		req.Header.Set("Authorization", bearer(t, *who))
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// doWithAuth sends a request with a raw Authorization header.
func doWithAuth(t *testing.T, h http.Handler, method, path string, body io.Reader, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	return doWithHeaders(t, h, method, path, body, nil, map[string]string{"Authorization": authorization})
}
