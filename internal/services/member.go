package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gymadmin/internal/domain"
)

type memberService struct {
	memberRepo     domain.MemberRepository
	planRepo       domain.PlanRepository
	tenantRepo     domain.TenantRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewMemberService creates a MemberService. The email service may be a noop;
// welcome-email failures never fail member creation.
func NewMemberService(memberRepo domain.MemberRepository, planRepo domain.PlanRepository, tenantRepo domain.TenantRepository, emailService domain.EmailService, logger *slog.Logger, timeout time.Duration) domain.MemberService {
	return &memberService{
		memberRepo:     memberRepo,
		planRepo:       planRepo,
		tenantRepo:     tenantRepo,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *memberService) validate(ctx context.Context, member *domain.Member) (*domain.Plan, error) {
	if strings.TrimSpace(member.FirstName) == "" || strings.TrimSpace(member.LastName) == "" {
		return nil, domain.ErrInvalidInput
	}
	if member.PlanID == nil {
		return nil, nil
	}
	plan, err := s.planRepo.GetByID(ctx, member.TenantID, *member.PlanID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return plan, nil
}

func (s *memberService) Create(ctx context.Context, member *domain.Member) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	plan, err := s.validate(ctx, member)
	if err != nil {
		return err
	}

	now := time.Now()
	if member.JoinedAt.IsZero() {
		member.JoinedAt = now
	}
	member.Active = true
	member.CreatedAt = now
	member.UpdatedAt = now
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return fmt.Errorf("create member: %w", err)
	}

	if member.Email != "" {
		data := &domain.MemberWelcomeEmailData{
			Email:     member.Email,
			FirstName: member.FirstName,
		}
		if tenant, err := s.tenantRepo.GetByID(ctx, member.TenantID); err == nil {
			data.GymName = tenant.Name
		}
		if plan != nil {
			data.PlanName = plan.Name
		}
		if err := s.emailService.SendMemberWelcome(ctx, data); err != nil {
			s.logger.WarnContext(ctx, "welcome email failed", "member_id", member.ID, "err", err)
		}
	}
	return nil
}

func (s *memberService) GetByID(ctx context.Context, tenantID, id string) (*domain.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.memberRepo.GetByID(ctx, tenantID, id)
}

func (s *memberService) List(ctx context.Context, tenantID, search string, params domain.PaginationParams) ([]*domain.Member, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	members, total, err := s.memberRepo.List(ctx, tenantID, search, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list members: %w", err)
	}
	if members == nil {
		members = []*domain.Member{}
	}
	return members, total, nil
}

func (s *memberService) Update(ctx context.Context, member *domain.Member) (*domain.Member, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.validate(ctx, member); err != nil {
		return nil, err
	}
	if err := s.memberRepo.Update(ctx, member); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update member: %w", err)
	}
	return member, nil
}

func (s *memberService) Delete(ctx context.Context, tenantID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.memberRepo.Delete(ctx, tenantID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete member: %w", err)
	}
	return nil
}
