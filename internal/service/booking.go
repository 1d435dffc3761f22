package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pkordes/catering-booking/internal/domain"
	"github.com/pkordes/catering-booking/internal/events"
	"github.com/pkordes/catering-booking/internal/pricing"
	"github.com/pkordes/catering-booking/internal/repo"
)

const (
	maxNotesLength          = 2000
	maxIdempotencyKeyLength = 128
	eventTimeLayout         = "15:04"
)

// CatalogSource supplies the current catalog. CatalogService satisfies it.
type CatalogSource interface {
	Get(ctx context.Context) (domain.Catalog, error)
}

// SubmissionLocker guards concurrent submissions sharing an idempotency key.
// cache.SubmissionLock satisfies it.
type SubmissionLocker interface {
	Acquire(ctx context.Context, customerID, key string) (token string, ok bool, err error)
	Release(ctx context.Context, customerID, key, token string) error
}

// EventPublisher announces booking lifecycle changes.
// events.AMQPPublisher and events.NopPublisher satisfy it.
type EventPublisher interface {
	BookingCreated(ctx context.Context, b domain.Booking) error
	BookingStatusChanged(ctx context.Context, b domain.Booking, previous domain.BookingStatus) error
}

// BookingRequest is a customer's booking form, before pricing.
type BookingRequest struct {
	Selection    domain.Selection
	GuestCount   int
	EventDate    domain.Day
	EventTime    string
	Venue        string
	ContactPhone string
	Notes        string
}

// Quote is the advisory price of a BookingRequest.
// A closed day does not make quoting fail; Available is false instead.
type Quote struct {
	Price         domain.PriceBreakdown
	FoodAddons    []domain.BookedFoodItem
	ServiceAddons []domain.BookedService
	Available     bool
	ClosedReason  string
}

// BookingService implements quoting, submission, listing and status changes.
type BookingService struct {
	catalog    CatalogSource
	closedDays repo.ClosedDayRepo
	bookings   repo.BookingRepo
	lock       SubmissionLocker
	events     EventPublisher
	log        *slog.Logger
	loc        *time.Location
	now        func() time.Time
}

// BookingOption configures optional BookingService collaborators.
type BookingOption func(*BookingService)

// WithSubmissionLock enables the in-flight duplicate submission guard.
func WithSubmissionLock(l SubmissionLocker) BookingOption {
	return func(s *BookingService) { s.lock = l }
}

// WithPublisher sets where booking events go.
func WithPublisher(p EventPublisher) BookingOption {
	return func(s *BookingService) { s.events = p }
}

// WithLogger sets the logger used for side-effect failures.
func WithLogger(l *slog.Logger) BookingOption {
	return func(s *BookingService) { s.log = l }
}

// WithClock sets the clock and the business time zone that decides "today".
func WithClock(now func() time.Time, loc *time.Location) BookingOption {
	return func(s *BookingService) {
		s.now = now
		s.loc = loc
	}
}

// NewBookingService constructs a BookingService. Without options it has no
// submission lock, discards events, and uses the wall clock in UTC.
func NewBookingService(catalog CatalogSource, closedDays repo.ClosedDayRepo, bookings repo.BookingRepo, opts ...BookingOption) *BookingService {
	s := &BookingService{
		catalog:    catalog,
		closedDays: closedDays,
		bookings:   bookings,
		events:     events.NopPublisher{},
		log:        slog.Default(),
		loc:        time.UTC,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today is the current calendar day in the business time zone.
func (s *BookingService) Today() domain.Day {
	return domain.DayOf(s.now().In(s.loc))
}

// Quote prices req and reports whether its day is open.
// Returns domain.ErrValidation for unknown catalog entries, bad quantities or
// guest counts outside the package bounds.
func (s *BookingService) Quote(ctx context.Context, req BookingRequest) (Quote, error) {
	if req.EventDate.IsZero() {
		return Quote{}, fmt.Errorf("%w: event_date is required", domain.ErrValidation)
	}
	resolved, price, err := s.price(ctx, req)
	if err != nil {
		return Quote{}, fmt.Errorf("service.BookingService.Quote: %w", err)
	}
	avail, err := s.availability(ctx, req.EventDate)
	if err != nil {
		return Quote{}, fmt.Errorf("service.BookingService.Quote: %w", err)
	}

	food, services := pricing.Snapshot(resolved)
	return Quote{
		Price:         price,
		FoodAddons:    food,
		ServiceAddons: services,
		Available:     !avail.Closed,
		ClosedReason:  avail.Reason,
	}, nil
}

// Submit validates, prices and stores req as a pending booking for who.
//
// The price is always recomputed from the catalog and the closed-day list is
// re-read, so a day closed after quoting is rejected with DateClosedError.
// A non-empty idempotencyKey makes the call safe to retry: a replay returns
// the booking stored by the first call, and a concurrent duplicate gets
// domain.ErrConflict.
func (s *BookingService) Submit(ctx context.Context, who domain.Identity, req BookingRequest, idempotencyKey string) (domain.Booking, error) {
	if who.Anonymous() || (who.Role != domain.RoleCustomer && who.Role != domain.RoleManager) {
		return domain.Booking{}, fmt.Errorf("%w: only customers can submit bookings", domain.ErrForbidden)
	}
	req = normalizeRequest(req)
	key := strings.TrimSpace(idempotencyKey)
	if err := validateSubmission(req, key, s.Today()); err != nil {
		return domain.Booking{}, err
	}

	if key != "" {
		if s.lock != nil {
			release, err := s.acquire(ctx, who.UserID, key)
			if err != nil {
				return domain.Booking{}, err
			}
			defer release()
		}
		prior, err := s.bookings.GetByIdempotencyKey(ctx, who.UserID, key)
		switch {
		case err == nil:
			return replay(prior, req, key)
		case !errors.Is(err, domain.ErrNotFound):
			return domain.Booking{}, fmt.Errorf("service.BookingService.Submit: %w", err)
		}
	}

	resolved, price, err := s.price(ctx, req)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Submit: %w", err)
	}
	avail, err := s.availability(ctx, req.EventDate)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Submit: %w", err)
	}
	if err := avail.Err(req.EventDate); err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Submit: %w", err)
	}

	food, services := pricing.Snapshot(resolved)
	b := domain.Booking{
		CustomerID:      who.UserID,
		CustomerName:    who.DisplayName,
		PackageID:       resolved.Package.ID,
		PackageName:     resolved.Package.Name,
		ServiceTypeID:   resolved.ServiceType.ID,
		ServiceTypeName: resolved.ServiceType.Name,
		EventDate:       req.EventDate,
		EventTime:       req.EventTime,
		Venue:           req.Venue,
		ContactPhone:    req.ContactPhone,
		Notes:           req.Notes,
		GuestCount:      req.GuestCount,
		FoodAddons:      food,
		ServiceAddons:   services,
		Price:           price,
		Status:          domain.StatusPending,
		IdempotencyKey:  key,
	}

	created, err := s.bookings.Create(ctx, b)
	if errors.Is(err, domain.ErrConflict) && key != "" {
		// Lost a race the lock did not see (lock disabled or expired).
		created, err = s.bookings.GetByIdempotencyKey(ctx, who.UserID, key)
		if err == nil {
			return replay(created, req, key)
		}
	}
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Submit: %w", err)
	}

	if err := s.events.BookingCreated(ctx, created); err != nil {
		s.log.WarnContext(ctx, "publish booking.created failed", "booking_id", created.ID, "err", err)
	}
	return created, nil
}

// replay returns the booking stored under key when req asks for the same
// booking, and ErrConflict when the key is reused for a different one.
func replay(prior domain.Booking, req BookingRequest, key string) (domain.Booking, error) {
	if !sameBooking(prior, req) {
		return domain.Booking{}, fmt.Errorf("%w: idempotency key %q was already used for a different booking", domain.ErrConflict, key)
	}
	return prior, nil
}

// sameBooking compares a normalized request with a stored booking. Food ids
// compare as a set and service lines by total quantity per service, matching
// how Resolve collapses a selection.
func sameBooking(b domain.Booking, req BookingRequest) bool {
	if b.PackageID != req.Selection.PackageID ||
		b.ServiceTypeID != req.Selection.ServiceTypeID ||
		b.GuestCount != req.GuestCount ||
		b.EventDate != req.EventDate ||
		b.EventTime != req.EventTime ||
		b.Venue != req.Venue ||
		b.ContactPhone != req.ContactPhone ||
		b.Notes != req.Notes {
		return false
	}

	food := make(map[string]struct{}, len(req.Selection.FoodItemIDs))
	for _, id := range req.Selection.FoodItemIDs {
		food[id] = struct{}{}
	}
	if len(food) != len(b.FoodAddons) {
		return false
	}
	for _, item := range b.FoodAddons {
		if _, ok := food[item.ID]; !ok {
			return false
		}
	}

	qty := make(map[string]int, len(req.Selection.Services))
	for _, sq := range req.Selection.Services {
		if sq.Quantity != 0 {
			qty[sq.ServiceID] += sq.Quantity
		}
	}
	for _, line := range b.ServiceAddons {
		qty[line.ID] -= line.Quantity
	}
	for _, n := range qty {
		if n != 0 {
			return false
		}
	}
	return true
}

// List returns one page of bookings visible to who.
// Customers only see their own bookings and staff only see confirmed ones,
// whatever the filter asks for.
func (s *BookingService) List(ctx context.Context, who domain.Identity, f domain.BookingFilter, p domain.PaginationParams) (domain.Page[domain.Booking], error) {
	f, err := scopeFilter(who, f)
	if err != nil {
		return domain.Page[domain.Booking]{}, err
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return domain.Page[domain.Booking]{}, fmt.Errorf("%w: to must not be before from", domain.ErrValidation)
	}
	for _, st := range f.Statuses {
		if !st.Valid() {
			return domain.Page[domain.Booking]{}, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, st)
		}
	}
	switch f.SortBy {
	case "", domain.SortByEventDate, domain.SortByCreatedAt:
	default:
		return domain.Page[domain.Booking]{}, fmt.Errorf("%w: cannot sort by %q", domain.ErrValidation, f.SortBy)
	}

	items, total, err := s.bookings.List(ctx, f, p)
	if err != nil {
		return domain.Page[domain.Booking]{}, fmt.Errorf("service.BookingService.List: %w", err)
	}
	if items == nil {
		items = []domain.Booking{}
	}
	return domain.Page[domain.Booking]{Items: items, Total: total, Params: p}, nil
}

// Export returns every booking visible to who that matches f, in listing
// order. It pages through List so the repo never loads an unbounded result.
func (s *BookingService) Export(ctx context.Context, who domain.Identity, f domain.BookingFilter) ([]domain.Booking, error) {
	out := []domain.Booking{}
	for page := 1; ; page++ {
		p := domain.PaginationParams{Page: page, Limit: domain.MaxPageLimit}
		pg, err := s.List(ctx, who, f, p)
		if err != nil {
			return nil, err
		}
		out = append(out, pg.Items...)
		if len(pg.Items) < p.Limit || int64(len(out)) >= pg.Total {
			return out, nil
		}
	}
}

// Get returns a single booking visible to who.
// Bookings outside the caller's scope are reported as domain.ErrNotFound so
// their existence is not leaked.
func (s *BookingService) Get(ctx context.Context, who domain.Identity, id uuid.UUID) (domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Get: %w", err)
	}
	if !canView(who, b) {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Get: %w", domain.ErrNotFound)
	}
	return b, nil
}

// UpdateStatus moves a booking to status next.
// Managers may make any allowed transition; a customer may only cancel their
// own pending booking. Disallowed transitions return domain.ErrInvalidTransition.
func (s *BookingService) UpdateStatus(ctx context.Context, who domain.Identity, id uuid.UUID, next domain.BookingStatus) (domain.Booking, error) {
	if !next.Valid() {
		return domain.Booking{}, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, next)
	}
	current, err := s.Get(ctx, who, id)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.UpdateStatus: %w", err)
	}

	switch who.Role {
	case domain.RoleManager:
	case domain.RoleCustomer:
		if next != domain.StatusCancelled || current.Status != domain.StatusPending {
			return domain.Booking{}, fmt.Errorf("%w: customers can only cancel pending bookings", domain.ErrForbidden)
		}
	default:
		return domain.Booking{}, fmt.Errorf("%w: only managers can change booking status", domain.ErrForbidden)
	}

	if !current.Status.CanTransitionTo(next) {
		return domain.Booking{}, fmt.Errorf("service.BookingService.UpdateStatus: %w: cannot move a %s booking to %s", domain.ErrInvalidTransition, current.Status, next)
	}

	updated, err := s.bookings.UpdateStatus(ctx, id, current.Status, next)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.UpdateStatus: %w", err)
	}

	if err := s.events.BookingStatusChanged(ctx, updated, current.Status); err != nil {
		s.log.WarnContext(ctx, "publish booking.status_changed failed", "booking_id", updated.ID, "err", err)
	}
	return updated, nil
}

// price resolves req against the current catalog and computes its price.
func (s *BookingService) price(ctx context.Context, req BookingRequest) (pricing.Resolved, domain.PriceBreakdown, error) {
	catalog, err := s.catalog.Get(ctx)
	if err != nil {
		return pricing.Resolved{}, domain.PriceBreakdown{}, err
	}
	resolved, err := pricing.Resolve(catalog, req.Selection)
	if err != nil {
		return pricing.Resolved{}, domain.PriceBreakdown{}, err
	}
	price, err := pricing.ComputePrice(resolved, req.GuestCount)
	if err != nil {
		return pricing.Resolved{}, domain.PriceBreakdown{}, err
	}
	return resolved, price, nil
}

// availability reads the closed-day record for day, if any.
func (s *BookingService) availability(ctx context.Context, day domain.Day) (pricing.Availability, error) {
	cd, err := s.closedDays.GetByDay(ctx, day)
	if errors.Is(err, domain.ErrNotFound) {
		return pricing.Available, nil
	}
	if err != nil {
		return pricing.Availability{}, err
	}
	return pricing.CheckAvailability(day, []domain.ClosedDay{cd}), nil
}

// acquire takes the submission lock. Redis failures are logged and the
// submission proceeds, relying on the database constraint alone.
func (s *BookingService) acquire(ctx context.Context, customerID, key string) (func(), error) {
	token, ok, err := s.lock.Acquire(ctx, customerID, key)
	if err != nil {
		s.log.WarnContext(ctx, "submission lock unavailable", "err", err)
		return func() {}, nil
	}
	if !ok {
		return nil, fmt.Errorf("%w: a booking with this idempotency key is already being submitted", domain.ErrConflict)
	}
	return func() {
		if err := s.lock.Release(context.WithoutCancel(ctx), customerID, key, token); err != nil {
			s.log.WarnContext(ctx, "submission lock release failed", "err", err)
		}
	}, nil
}

func normalizeRequest(req BookingRequest) BookingRequest {
	req.EventTime = strings.TrimSpace(req.EventTime)
	req.Venue = strings.TrimSpace(req.Venue)
	req.ContactPhone = strings.TrimSpace(req.ContactPhone)
	req.Notes = strings.TrimSpace(req.Notes)
	return req
}

// validateSubmission enforces the form rules the pricing core does not cover.
//   - EventDate is required and must not be before today.
//   - EventTime, if set, is "HH:MM".
//   - Notes are at most maxNotesLength characters.
func validateSubmission(req BookingRequest, key string, today domain.Day) error {
	if req.EventDate.IsZero() {
		return fmt.Errorf("%w: event_date is required", domain.ErrValidation)
	}
	if req.EventDate.Before(today) {
		return fmt.Errorf("%w: event_date must not be in the past", domain.ErrValidation)
	}
	if req.EventTime != "" {
		if _, err := time.Parse(eventTimeLayout, req.EventTime); err != nil {
			return fmt.Errorf("%w: event_time must be HH:MM", domain.ErrValidation)
		}
	}
	if utf8.RuneCountInString(req.Notes) > maxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", domain.ErrValidation, maxNotesLength)
	}
	if len(key) > maxIdempotencyKeyLength {
		return fmt.Errorf("%w: Idempotency-Key must be at most %d characters", domain.ErrValidation, maxIdempotencyKeyLength)
	}
	return nil
}

// scopeFilter narrows f to what who may see.
func scopeFilter(who domain.Identity, f domain.BookingFilter) (domain.BookingFilter, error) {
	switch who.Role {
	case domain.RoleManager:
		return f, nil
	case domain.RoleStaff:
		f.Statuses = []domain.BookingStatus{domain.StatusConfirmed}
		return f, nil
	case domain.RoleCustomer:
		if who.UserID == "" {
			break
		}
		f.CustomerID = who.UserID
		return f, nil
	}
	return domain.BookingFilter{}, fmt.Errorf("%w: sign in to view bookings", domain.ErrForbidden)
}

func canView(who domain.Identity, b domain.Booking) bool {
	switch who.Role {
	case domain.RoleManager:
		return true
	case domain.RoleStaff:
		return b.Status == domain.StatusConfirmed
	case domain.RoleCustomer:
		return who.UserID != "" && b.CustomerID == who.UserID
	}
	return false
}
