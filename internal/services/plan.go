package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gymadmin/internal/domain"
)

type planService struct {
	planRepo       domain.PlanRepository
	contextTimeout time.Duration
}

// NewPlanService creates a PlanService backed by the given repository.
func NewPlanService(planRepo domain.PlanRepository, timeout time.Duration) domain.PlanService {
	return &planService{
		planRepo:       planRepo,
		contextTimeout: timeout,
	}
}

func validatePlan(plan *domain.Plan) error {
	if strings.TrimSpace(plan.Name) == "" {
		return domain.ErrInvalidInput
	}
	if plan.PriceCents < 0 || plan.DurationDays <= 0 {
		return domain.ErrInvalidInput
	}
	if plan.MaxVisitsPerWeek != nil && *plan.MaxVisitsPerWeek < 1 {
		return domain.ErrInvalidInput
	}
	return nil
}

func (s *planService) Create(ctx context.Context, plan *domain.Plan) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validatePlan(plan); err != nil {
		return err
	}
	now := time.Now()
	plan.CreatedAt = now
	plan.UpdatedAt = now
	return s.planRepo.Create(ctx, plan)
}

func (s *planService) List(ctx context.Context, tenantID string) ([]*domain.Plan, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	plans, err := s.planRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	if plans == nil {
		plans = []*domain.Plan{}
	}
	return plans, nil
}

func (s *planService) Update(ctx context.Context, plan *domain.Plan) (*domain.Plan, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := validatePlan(plan); err != nil {
		return nil, err
	}
	if err := s.planRepo.Update(ctx, plan); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update plan: %w", err)
	}
	return plan, nil
}

func (s *planService) Delete(ctx context.Context, tenantID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.planRepo.Delete(ctx, tenantID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete plan: %w", err)
	}
	return nil
}
