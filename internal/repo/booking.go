package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/catering-booking/internal/domain"
)

// BookingRepo defines the persistence operations for bookings.
// It is the single query-building collaborator behind every portal listing.
type BookingRepo interface {
	// Create inserts a pending booking and returns the persisted record.
	// Returns domain.ErrConflict if the customer already used the booking's
	// idempotency key.
	Create(ctx context.Context, b domain.Booking) (domain.Booking, error)

	// GetByID retrieves a booking by primary key.
	// Returns domain.ErrNotFound if no booking with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error)

	// GetByIdempotencyKey retrieves the booking a customer created with key.
	// Returns domain.ErrNotFound if there is none.
	GetByIdempotencyKey(ctx context.Context, customerID, key string) (domain.Booking, error)

	// List returns one page of bookings matching f and the total match count.
	List(ctx context.Context, f domain.BookingFilter, p domain.PaginationParams) ([]domain.Booking, int64, error)

	// UpdateStatus moves a booking from one status to another.
	// Returns domain.ErrConflict if the booking is no longer in status from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.BookingStatus) (domain.Booking, error)
}

// pgBookingRepo is the Postgres implementation of BookingRepo.
type pgBookingRepo struct {
	db db
}

// NewBookingRepo constructs a BookingRepo backed by the provided db connection.
func NewBookingRepo(db db) BookingRepo {
	return &pgBookingRepo{db: db}
}

const bookingColumns = `
	id, customer_id, customer_name, package_id, package_name,
	service_type_id, service_type_name, event_date, event_time, venue,
	contact_phone, notes, guest_count, food_addons, service_addons,
	base_price_cents, service_price_cents, food_addons_price_cents,
	services_addons_price_cents, total_price_cents, status,
	COALESCE(idempotency_key, ''), created_at, updated_at`

func (r *pgBookingRepo) Create(ctx context.Context, b domain.Booking) (domain.Booking, error) {
	q := `
		INSERT INTO bookings (
			customer_id, customer_name, package_id, package_name,
			service_type_id, service_type_name, event_date, event_time, venue,
			contact_phone, notes, guest_count, food_addons, service_addons,
			base_price_cents, service_price_cents, food_addons_price_cents,
			services_addons_price_cents, total_price_cents, status, idempotency_key)
		VALUES (
			@customer_id, @customer_name, @package_id, @package_name,
			@service_type_id, @service_type_name, @event_date, @event_time, @venue,
			@contact_phone, @notes, @guest_count, @food_addons, @service_addons,
			@base_price, @service_price, @food_addons_price,
			@services_addons_price, @total_price, @status, NULLIF(@idempotency_key, ''))
		RETURNING` + bookingColumns

	food := b.FoodAddons
	if food == nil {
		food = []domain.BookedFoodItem{}
	}
	services := b.ServiceAddons
	if services == nil {
		services = []domain.BookedService{}
	}

	args := pgx.NamedArgs{
		"customer_id":           b.CustomerID,
		"customer_name":         b.CustomerName,
		"package_id":            b.PackageID,
		"package_name":          b.PackageName,
		"service_type_id":       b.ServiceTypeID,
		"service_type_name":     b.ServiceTypeName,
		"event_date":            b.EventDate.Time(time.UTC),
		"event_time":            b.EventTime,
		"venue":                 b.Venue,
		"contact_phone":         b.ContactPhone,
		"notes":                 b.Notes,
		"guest_count":           b.GuestCount,
		"food_addons":           food,
		"service_addons":        services,
		"base_price":            b.Price.BasePrice.Cents(),
		"service_price":         b.Price.ServicePrice.Cents(),
		"food_addons_price":     b.Price.FoodAddonsPrice.Cents(),
		"services_addons_price": b.Price.ServicesAddonsPrice.Cents(),
		"total_price":           b.Price.TotalPrice.Cents(),
		"status":                string(b.Status),
		"idempotency_key":       b.IdempotencyKey,
	}

	created, err := scanBooking(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.Create: %w", translateErr(err))
	}
	return created, nil
}

func (r *pgBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Booking, error) {
	q := `SELECT` + bookingColumns + ` FROM bookings WHERE id = @id`

	b, err := scanBooking(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.GetByID: %w", translateErr(err))
	}
	return b, nil
}

func (r *pgBookingRepo) GetByIdempotencyKey(ctx context.Context, customerID, key string) (domain.Booking, error) {
	q := `SELECT` + bookingColumns + `
		FROM bookings
		WHERE customer_id = @customer_id AND idempotency_key = @key`

	b, err := scanBooking(r.db.QueryRow(ctx, q, pgx.NamedArgs{"customer_id": customerID, "key": key}))
	if err != nil {
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.GetByIdempotencyKey: %w", translateErr(err))
	}
	return b, nil
}

func (r *pgBookingRepo) List(ctx context.Context, f domain.BookingFilter, p domain.PaginationParams) ([]domain.Booking, int64, error) {
	where, args := bookingWhere(f)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM bookings `+where, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.BookingRepo.List: count: %w", err)
	}

	args["limit"] = p.Limit
	args["offset"] = p.Offset()
	q := `SELECT` + bookingColumns + ` FROM bookings ` + where + ` ` + bookingOrder(f) + ` LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.BookingRepo.List: %w", err)
	}
	defer rows.Close()

	bookings := []domain.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.BookingRepo.List: scan: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.BookingRepo.List: rows: %w", err)
	}
	return bookings, total, nil
}

func (r *pgBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.BookingStatus) (domain.Booking, error) {
	q := `
		UPDATE bookings
		SET status = @to, updated_at = now()
		WHERE id = @id AND status = @from
		RETURNING` + bookingColumns

	args := pgx.NamedArgs{"id": id, "from": string(from), "to": string(to)}
	b, err := scanBooking(r.db.QueryRow(ctx, q, args))
	if err != nil {
		err = translateErr(err)
		if errors.Is(err, domain.ErrNotFound) {
			err = domain.ErrConflict
		}
		return domain.Booking{}, fmt.Errorf("repo.BookingRepo.UpdateStatus: %w", err)
	}
	return b, nil
}

// bookingWhere builds the WHERE clause and named args for f.
// Returns an empty clause when f has no constraints.
func bookingWhere(f domain.BookingFilter) (string, pgx.NamedArgs) {
	var conds []string
	args := pgx.NamedArgs{}

	if f.CustomerID != "" {
		conds = append(conds, "customer_id = @customer_id")
		args["customer_id"] = f.CustomerID
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		conds = append(conds, "status = ANY(@statuses)")
		args["statuses"] = statuses
	}
	if f.From != nil {
		conds = append(conds, "event_date >= @from")
		args["from"] = f.From.Time(time.UTC)
	}
	if f.To != nil {
		conds = append(conds, "event_date <= @to")
		args["to"] = f.To.Time(time.UTC)
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// bookingOrder returns the ORDER BY clause for f. Column names come from a
// fixed set, never from caller input. id breaks ties so paging is stable.
func bookingOrder(f domain.BookingFilter) string {
	col := "created_at"
	if f.SortBy == domain.SortByEventDate {
		col = "event_date"
	}
	dir := "ASC"
	if f.Descending {
		dir = "DESC"
	}
	return "ORDER BY " + col + " " + dir + ", id " + dir
}

// scanBooking maps a single database row into a domain.Booking.
func scanBooking(s scanner) (domain.Booking, error) {
	var (
		b                                          domain.Booking
		id                                         pgtype.UUID
		eventDate                                  pgtype.Date
		status                                     string
		base, service, food, servicesAddons, total int64
	)
	err := s.Scan(
		&id, &b.CustomerID, &b.CustomerName, &b.PackageID, &b.PackageName,
		&b.ServiceTypeID, &b.ServiceTypeName, &eventDate, &b.EventTime, &b.Venue,
		&b.ContactPhone, &b.Notes, &b.GuestCount, &b.FoodAddons, &b.ServiceAddons,
		&base, &service, &food, &servicesAddons, &total, &status,
		&b.IdempotencyKey, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return domain.Booking{}, err
	}

	b.ID = uuid.UUID(id.Bytes)
	b.EventDate = domain.DayOf(eventDate.Time)
	b.Status = domain.BookingStatus(status)
	b.Price = domain.PriceBreakdown{
		BasePrice:           domain.Money(base),
		ServicePrice:        domain.Money(service),
		FoodAddonsPrice:     domain.Money(food),
		ServicesAddonsPrice: domain.Money(servicesAddons),
		TotalPrice:          domain.Money(total),
	}
	return b, nil
}
