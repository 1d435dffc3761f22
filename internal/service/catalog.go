// Package service contains the business logic for the catering booking API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pkordes/catering-booking/internal/cache"
	"github.com/pkordes/catering-booking/internal/domain"
	"github.com/pkordes/catering-booking/internal/repo"
)

// CatalogService serves the offer catalog, through Redis when configured.
type CatalogService struct {
	repo  repo.CatalogRepo
	cache *cache.Cache
	ttl   time.Duration
}

// NewCatalogService constructs a CatalogService. c may be nil, in which case
// every call reads Postgres.
func NewCatalogService(r repo.CatalogRepo, c *cache.Cache, ttl time.Duration) *CatalogService {
	return &CatalogService{repo: r, cache: c, ttl: ttl}
}

// Get returns the full catalog, inactive packages included.
func (s *CatalogService) Get(ctx context.Context) (domain.Catalog, error) {
	if s.cache == nil {
		return s.load(ctx)
	}
	c, err := cache.GetOrSetJSON(ctx, s.cache, cache.KeyCatalog(), s.ttl, s.load)
	if err != nil {
		return domain.Catalog{}, err
	}
	return c, nil
}

// Invalidate drops the cached catalog so the next Get reloads it.
func (s *CatalogService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Del(ctx, cache.KeyCatalog()); err != nil {
		return fmt.Errorf("service.CatalogService.Invalidate: %w", err)
	}
	return nil
}

// Refresh drops the cached catalog and reloads it from Postgres. Managers call
// it after the catalog tables were edited outside the API.
func (s *CatalogService) Refresh(ctx context.Context, who domain.Identity) (domain.Catalog, error) {
	if who.Role != domain.RoleManager {
		return domain.Catalog{}, fmt.Errorf("%w: only managers can refresh the catalog", domain.ErrForbidden)
	}
	if err := s.Invalidate(ctx); err != nil {
		return domain.Catalog{}, err
	}
	return s.Get(ctx)
}

func (s *CatalogService) load(ctx context.Context) (domain.Catalog, error) {
	c, err := s.repo.Load(ctx)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("service.CatalogService.Get: %w", err)
	}
	return c, nil
}
