package repo

import (
	"context"
	"fmt"

	"github.com/pkordes/catering-booking/internal/domain"
)

// CatalogRepo reads the bookable catalog.
type CatalogRepo interface {
	// Load returns all four catalog collections, each in display order.
	// Inactive packages are included; callers decide whether to offer them.
	Load(ctx context.Context) (domain.Catalog, error)
}

// pgCatalogRepo is the Postgres implementation of CatalogRepo.
type pgCatalogRepo struct {
	db db
}

// NewCatalogRepo constructs a CatalogRepo backed by the provided db connection.
func NewCatalogRepo(db db) CatalogRepo {
	return &pgCatalogRepo{db: db}
}

// Load reads the collections sequentially so db may be a pgx.Tx.
func (r *pgCatalogRepo) Load(ctx context.Context) (domain.Catalog, error) {
	var (
		c   domain.Catalog
		err error
	)
	if c.Packages, err = r.packages(ctx); err != nil {
		return domain.Catalog{}, fmt.Errorf("repo.CatalogRepo.Load: %w", err)
	}
	if c.ServiceTypes, err = r.serviceTypes(ctx); err != nil {
		return domain.Catalog{}, fmt.Errorf("repo.CatalogRepo.Load: %w", err)
	}
	if c.FoodItems, err = r.foodItems(ctx); err != nil {
		return domain.Catalog{}, fmt.Errorf("repo.CatalogRepo.Load: %w", err)
	}
	if c.Services, err = r.services(ctx); err != nil {
		return domain.Catalog{}, fmt.Errorf("repo.CatalogRepo.Load: %w", err)
	}
	return c, nil
}

func (r *pgCatalogRepo) packages(ctx context.Context) ([]domain.Package, error) {
	const q = `
		SELECT id, name, description, base_price_cents, price_per_pax_cents,
		       min_pax, max_pax, features, active
		FROM packages
		ORDER BY sort_order, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("packages: %w", err)
	}
	defer rows.Close()

	out := []domain.Package{}
	for rows.Next() {
		var (
			p      domain.Package
			base   int64
			perPax *int64
			minPax *int
			maxPax *int
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &base, &perPax, &minPax, &maxPax, &p.Features, &p.Active); err != nil {
			return nil, fmt.Errorf("packages: scan: %w", err)
		}
		p.BasePrice = domain.Money(base)
		if perPax != nil {
			m := domain.Money(*perPax)
			p.PricePerPax = &m
		}
		p.MinPax = minPax
		p.MaxPax = maxPax
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("packages: rows: %w", err)
	}
	return out, nil
}

func (r *pgCatalogRepo) serviceTypes(ctx context.Context) ([]domain.ServiceType, error) {
	const q = `
		SELECT id, name, description, price_per_guest_cents
		FROM service_types
		ORDER BY sort_order, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("service_types: %w", err)
	}
	defer rows.Close()

	out := []domain.ServiceType{}
	for rows.Next() {
		var (
			st    domain.ServiceType
			price int64
		)
		if err := rows.Scan(&st.ID, &st.Name, &st.Description, &price); err != nil {
			return nil, fmt.Errorf("service_types: scan: %w", err)
		}
		st.PricePerGuest = domain.Money(price)
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("service_types: rows: %w", err)
	}
	return out, nil
}

func (r *pgCatalogRepo) foodItems(ctx context.Context) ([]domain.FoodItem, error) {
	const q = `
		SELECT id, name, price_cents, category
		FROM food_items
		ORDER BY sort_order, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("food_items: %w", err)
	}
	defer rows.Close()

	out := []domain.FoodItem{}
	for rows.Next() {
		var (
			f     domain.FoodItem
			price int64
		)
		if err := rows.Scan(&f.ID, &f.Name, &price, &f.Category); err != nil {
			return nil, fmt.Errorf("food_items: scan: %w", err)
		}
		f.Price = domain.Money(price)
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("food_items: rows: %w", err)
	}
	return out, nil
}

func (r *pgCatalogRepo) services(ctx context.Context) ([]domain.ServiceAddon, error) {
	const q = `
		SELECT id, name, price_per_unit_cents, unit_label
		FROM service_addons
		ORDER BY sort_order, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("service_addons: %w", err)
	}
	defer rows.Close()

	out := []domain.ServiceAddon{}
	for rows.Next() {
		var (
			s     domain.ServiceAddon
			price int64
		)
		if err := rows.Scan(&s.ID, &s.Name, &price, &s.UnitLabel); err != nil {
			return nil, fmt.Errorf("service_addons: scan: %w", err)
		}
		s.PricePerUnit = domain.Money(price)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("service_addons: rows: %w", err)
	}
	return out, nil
}
