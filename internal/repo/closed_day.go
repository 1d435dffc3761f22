package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/catering-booking/internal/domain"
)

// ClosedDayRepo defines the persistence operations for closed days.
type ClosedDayRepo interface {
	// List returns closed days between from and to inclusive, ordered by day.
	// A nil bound leaves that side open.
	List(ctx context.Context, from, to *domain.Day) ([]domain.ClosedDay, error)

	// GetByDay returns the closed day record for day.
	// Returns domain.ErrNotFound if the day is open.
	GetByDay(ctx context.Context, day domain.Day) (domain.ClosedDay, error)

	// Create inserts a closed day. Returns domain.ErrConflict if the day is
	// already closed.
	Create(ctx context.Context, cd domain.ClosedDay) (domain.ClosedDay, error)

	// Delete reopens a day. Returns domain.ErrNotFound if it was not closed.
	Delete(ctx context.Context, day domain.Day) error
}

// pgClosedDayRepo is the Postgres implementation of ClosedDayRepo.
type pgClosedDayRepo struct {
	db db
}

// NewClosedDayRepo constructs a ClosedDayRepo backed by the provided db connection.
func NewClosedDayRepo(db db) ClosedDayRepo {
	return &pgClosedDayRepo{db: db}
}

func (r *pgClosedDayRepo) List(ctx context.Context, from, to *domain.Day) ([]domain.ClosedDay, error) {
	const q = `
		SELECT id, day, reason, created_at
		FROM closed_days
		WHERE (@from::date IS NULL OR day >= @from::date)
		  AND (@to::date IS NULL OR day <= @to::date)
		ORDER BY day`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"from": dayArg(from), "to": dayArg(to)})
	if err != nil {
		return nil, fmt.Errorf("repo.ClosedDayRepo.List: %w", err)
	}
	defer rows.Close()

	out := []domain.ClosedDay{}
	for rows.Next() {
		cd, err := scanClosedDay(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ClosedDayRepo.List: scan: %w", err)
		}
		out = append(out, cd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ClosedDayRepo.List: rows: %w", err)
	}
	return out, nil
}

func (r *pgClosedDayRepo) GetByDay(ctx context.Context, day domain.Day) (domain.ClosedDay, error) {
	const q = `
		SELECT id, day, reason, created_at
		FROM closed_days
		WHERE day = @day`

	cd, err := scanClosedDay(r.db.QueryRow(ctx, q, pgx.NamedArgs{"day": day.Time(time.UTC)}))
	if err != nil {
		return domain.ClosedDay{}, fmt.Errorf("repo.ClosedDayRepo.GetByDay: %w", translateErr(err))
	}
	return cd, nil
}

func (r *pgClosedDayRepo) Create(ctx context.Context, cd domain.ClosedDay) (domain.ClosedDay, error) {
	const q = `
		INSERT INTO closed_days (day, reason)
		VALUES (@day, @reason)
		RETURNING id, day, reason, created_at`

	args := pgx.NamedArgs{"day": cd.Day.Time(time.UTC), "reason": cd.Reason}
	created, err := scanClosedDay(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.ClosedDay{}, fmt.Errorf("repo.ClosedDayRepo.Create: %w", translateErr(err))
	}
	return created, nil
}

func (r *pgClosedDayRepo) Delete(ctx context.Context, day domain.Day) error {
	const q = `DELETE FROM closed_days WHERE day = @day`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"day": day.Time(time.UTC)})
	if err != nil {
		return fmt.Errorf("repo.ClosedDayRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ClosedDayRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// dayArg converts an optional Day into a DATE parameter; nil becomes NULL.
func dayArg(d *domain.Day) pgtype.Date {
	if d == nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: d.Time(time.UTC), Valid: true}
}

// scanClosedDay maps a single database row into a domain.ClosedDay.
func scanClosedDay(s scanner) (domain.ClosedDay, error) {
	var (
		cd  domain.ClosedDay
		id  pgtype.UUID
		day pgtype.Date
	)
	if err := s.Scan(&id, &day, &cd.Reason, &cd.CreatedAt); err != nil {
		return domain.ClosedDay{}, err
	}
	cd.ID = uuid.UUID(id.Bytes)
	cd.Day = domain.DayOf(day.Time)
	return cd, nil
}
