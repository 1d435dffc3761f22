package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pkordes/catering-booking/internal/domain"
	"github.com/pkordes/catering-booking/internal/repo"
)

const maxClosedDayReason = 200

// ClosedDayService manages the days the business does not accept events.
type ClosedDayService struct {
	repo repo.ClosedDayRepo
}

// NewClosedDayService constructs a ClosedDayService backed by the provided repo.
func NewClosedDayService(r repo.ClosedDayRepo) *ClosedDayService {
	return &ClosedDayService{repo: r}
}

// List returns closed days in [from, to]. Nil bounds are open.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ClosedDayService) List(ctx context.Context, from, to *domain.Day) ([]domain.ClosedDay, error) {
	if from != nil && to != nil && to.Before(*from) {
		return nil, fmt.Errorf("%w: to must not be before from", domain.ErrValidation)
	}
	days, err := s.repo.List(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("service.ClosedDayService.List: %w", err)
	}
	if days == nil {
		return []domain.ClosedDay{}, nil
	}
	return days, nil
}

// Create closes day. Only managers may do this.
// Returns domain.ErrConflict if the day is already closed.
func (s *ClosedDayService) Create(ctx context.Context, who domain.Identity, day domain.Day, reason string) (domain.ClosedDay, error) {
	if who.Role != domain.RoleManager {
		return domain.ClosedDay{}, fmt.Errorf("%w: only managers can close days", domain.ErrForbidden)
	}
	reason = strings.TrimSpace(reason)
	switch {
	case day.IsZero():
		return domain.ClosedDay{}, fmt.Errorf("%w: day is required", domain.ErrValidation)
	case reason == "":
		return domain.ClosedDay{}, fmt.Errorf("%w: reason is required", domain.ErrValidation)
	case utf8.RuneCountInString(reason) > maxClosedDayReason:
		return domain.ClosedDay{}, fmt.Errorf("%w: reason must be at most %d characters", domain.ErrValidation, maxClosedDayReason)
	}

	cd, err := s.repo.Create(ctx, domain.ClosedDay{Day: day, Reason: reason})
	if err != nil {
		return domain.ClosedDay{}, fmt.Errorf("service.ClosedDayService.Create: %w", err)
	}
	return cd, nil
}

// Delete reopens day. Only managers may do this.
// Returns domain.ErrNotFound if the day was not closed.
func (s *ClosedDayService) Delete(ctx context.Context, who domain.Identity, day domain.Day) error {
	if who.Role != domain.RoleManager {
		return fmt.Errorf("%w: only managers can reopen days", domain.ErrForbidden)
	}
	if err := s.repo.Delete(ctx, day); err != nil {
		return fmt.Errorf("service.ClosedDayService.Delete: %w", err)
	}
	return nil
}
