package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gymadmin/internal/domain"
)

type paymentService struct {
	paymentRepo    domain.PaymentRepository
	memberRepo     domain.MemberRepository
	planRepo       domain.PlanRepository
	contextTimeout time.Duration
}

// NewPaymentService creates a PaymentService backed by the given repositories.
func NewPaymentService(paymentRepo domain.PaymentRepository, memberRepo domain.MemberRepository, planRepo domain.PlanRepository, timeout time.Duration) domain.PaymentService {
	return &paymentService{
		paymentRepo:    paymentRepo,
		memberRepo:     memberRepo,
		planRepo:       planRepo,
		contextTimeout: timeout,
	}
}

func (s *paymentService) Record(ctx context.Context, payment *domain.Payment) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if payment.AmountCents <= 0 {
		return domain.ErrInvalidInput
	}
	if _, err := s.memberRepo.GetByID(ctx, payment.TenantID, payment.MemberID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get member: %w", err)
	}
	if payment.PlanID != nil {
		if _, err := s.planRepo.GetByID(ctx, payment.TenantID, *payment.PlanID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("get plan: %w", err)
		}
	}

	now := time.Now()
	if payment.PaidAt.IsZero() {
		payment.PaidAt = now
	}
	payment.CreatedAt = now
	return s.paymentRepo.Create(ctx, payment)
}

func (s *paymentService) ListByMember(ctx context.Context, tenantID, memberID string) ([]*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	payments, err := s.paymentRepo.ListByMember(ctx, tenantID, memberID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	if payments == nil {
		payments = []*domain.Payment{}
	}
	return payments, nil
}

func (s *paymentService) MonthlyRevenue(ctx context.Context, tenantID string, year int) ([]*domain.MonthlyRevenue, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if year < 2000 || year > 2200 {
		return nil, domain.ErrInvalidInput
	}
	totals, err := s.paymentRepo.MonthlyTotals(ctx, tenantID, year)
	if err != nil {
		return nil, fmt.Errorf("monthly totals: %w", err)
	}
	if totals == nil {
		totals = []*domain.MonthlyRevenue{}
	}
	return totals, nil
}
