package service_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pkordes/catering-booking/internal/cache"
	"github.com/pkordes/catering-booking/internal/domain"
	"github.com/pkordes/catering-booking/internal/events"
	"github.com/pkordes/catering-booking/internal/repo"
	"github.com/pkordes/catering-booking/internal/service"
)

// Hand-written test doubles. Each method is a function field; set only the
// ones your test needs.

type mockCatalogRepo struct {
	load func(ctx context.Context) (domain.Catalog, error)
}

func (m *mockCatalogRepo) Load(ctx context.Context) (domain.Catalog, error) { return m.load(ctx) }

var _ repo.CatalogRepo = (*mockCatalogRepo)(nil)

type mockClosedDayRepo struct {
	list     func(ctx context.Context, from, to *domain.Day) ([]domain.ClosedDay, error)
	getByDay func(ctx context.Context, day domain.Day) (domain.ClosedDay, error)
	create   func(ctx context.Context, cd domain.ClosedDay) (domain.ClosedDay, error)
	delete   func(ctx context.Context, day domain.Day) error
}

func (m *mockClosedDayRepo) List(ctx context.Context, from, to *domain.Day) ([]domain.ClosedDay, error) {
	return m.list(ctx, from, to)
}
func (m *mockClosedDayRepo) GetByDay(ctx context.Context, day domain.Day) (domain.ClosedDay, error) {
	return m.getByDay(ctx, day)
}
func (m *mockClosedDayRepo) Create(ctx context.Context, cd domain.ClosedDay) (domain.ClosedDay, error) {
	return m.create(ctx, cd)
}
func (m *mockClosedDayRepo) Delete(ctx context.Context, day domain.Day) error {
	return m.delete(ctx, day)
}

var _ repo.ClosedDayRepo = (*mockClosedDayRepo)(nil)

// closedDaySet is an in-memory closed-day store for booking tests.
type closedDaySet map[domain.Day]string

func (c closedDaySet) repo() *mockClosedDayRepo {
	return &mockClosedDayRepo{
		getByDay: func(_ context.Context, day domain.Day) (domain.ClosedDay, error) {
			reason, ok := c[day]
			if !ok {
				return domain.ClosedDay{}, domain.ErrNotFound
			}
			return domain.ClosedDay{ID: uuid.New(), Day: day, Reason: reason}, nil
		},
	}
}

type mockBookingRepo struct {
	create              func(ctx context.Context, b domain.Booking) (domain.Booking, error)
	getByID             func(ctx context.Context, id uuid.UUID) (domain.Booking, error)
	getByIdempotencyKey func(ctx context.Context, customerID, key string) (domain.Booking, error)
	list                func(ctx context.Context, f domain.BookingFilter, p domain.PaginationParams) ([]domain.Booking, int64, error)
	updateStatus        func(ctx context.Context, id uuid.UUID, from, to domain.BookingStatus) (domain.Booking, error)
}

func (m *mockBookingRepo) Create(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	return m.create(ctx, b)
}
func (m *mockBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	return m.getByID(ctx, id)
}
func (m *mockBookingRepo) GetByIdempotencyKey(ctx context.Context, customerID, key string) (domain.Booking, error) {
	return m.getByIdempotencyKey(ctx, customerID, key)
}
func (m *mockBookingRepo) List(ctx context.Context, f domain.BookingFilter, p domain.PaginationParams) ([]domain.Booking, int64, error) {
	return m.list(ctx, f, p)
}
func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.BookingStatus) (domain.Booking, error) {
	return m.updateStatus(ctx, id, from, to)
}

var _ repo.BookingRepo = (*mockBookingRepo)(nil)

type staticCatalog domain.Catalog

func (c staticCatalog) Get(context.Context) (domain.Catalog, error) { return domain.Catalog(c), nil }

var _ service.CatalogSource = staticCatalog{}

type mockLock struct {
	acquire func(ctx context.Context, customerID, key string) (string, bool, error)
	release func(ctx context.Context, customerID, key, token string) error
}

func (m *mockLock) Acquire(ctx context.Context, customerID, key string) (string, bool, error) {
	return m.acquire(ctx, customerID, key)
}
func (m *mockLock) Release(ctx context.Context, customerID, key, token string) error {
	return m.release(ctx, customerID, key, token)
}

var (
	_ service.SubmissionLocker = (*mockLock)(nil)
	_ service.SubmissionLocker = (*cache.SubmissionLock)(nil)
	_ service.EventPublisher   = (*events.AMQPPublisher)(nil)
)

// mockPublisher records published events with testify/mock.
type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) BookingCreated(ctx context.Context, b domain.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockPublisher) BookingStatusChanged(ctx context.Context, b domain.Booking, previous domain.BookingStatus) error {
	return m.Called(ctx, b, previous).Error(0)
}

var _ service.EventPublisher = (*mockPublisher)(nil)

func intPtr(v int) *int { return &v }

func moneyPtr(m domain.Money) *domain.Money { return &m }

// testCatalog is a small slice of the default menu.
func testCatalog() domain.Catalog {
	return domain.Catalog{
		Packages: []domain.Package{
			{ID: "intimate-gathering", Name: "Intimate Gathering", BasePrice: domain.Dollars(1500), MaxPax: intPtr(30), Active: true},
			{
				ID: "grand-celebration", Name: "Grand Celebration", BasePrice: domain.Dollars(3000),
				PricePerPax: moneyPtr(domain.Dollars(25)), MinPax: intPtr(50), MaxPax: intPtr(300), Active: true,
			},
		},
		ServiceTypes: []domain.ServiceType{
			{ID: "food-only", Name: "Food Only"},
			{ID: "full-service", Name: "Full Service", PricePerGuest: domain.Dollars(15)},
		},
		FoodItems: []domain.FoodItem{
			{ID: "appetizer-platter", Name: "Appetizer Platter", Price: domain.Dollars(150), Category: "appetizers"},
			{ID: "dessert-table", Name: "Dessert Table", Price: domain.Dollars(275), Category: "desserts"},
		},
		Services: []domain.ServiceAddon{
			{ID: "chairs-standard", Name: "Standard Chairs", PricePerUnit: domain.Dollars(20), UnitLabel: "chair"},
		},
	}
}
