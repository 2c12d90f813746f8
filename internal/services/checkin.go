package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gymadmin/internal/domain"
)

type checkInService struct {
	checkInRepo    domain.CheckInRepository
	memberRepo     domain.MemberRepository
	sessionRepo    domain.SessionRepository
	contextTimeout time.Duration
}

// NewCheckInService creates a CheckInService backed by the given repositories.
func NewCheckInService(checkInRepo domain.CheckInRepository, memberRepo domain.MemberRepository, sessionRepo domain.SessionRepository, timeout time.Duration) domain.CheckInService {
	return &checkInService{
		checkInRepo:    checkInRepo,
		memberRepo:     memberRepo,
		sessionRepo:    sessionRepo,
		contextTimeout: timeout,
	}
}

func (s *checkInService) CheckIn(ctx context.Context, tenantID, memberID string, sessionID *string) (*domain.CheckIn, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	member, err := s.memberRepo.GetByID(ctx, tenantID, memberID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get member: %w", err)
	}
	if !member.Active {
		return nil, domain.ErrMemberInactive
	}

	if sessionID != nil {
		session, err := s.sessionRepo.GetByID(ctx, tenantID, *sessionID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("get session: %w", err)
		}
		if session.Capacity != nil {
			count, err := s.checkInRepo.CountBySession(ctx, tenantID, session.ID)
			if err != nil {
				return nil, fmt.Errorf("count check-ins: %w", err)
			}
			if count >= *session.Capacity {
				return nil, domain.ErrSessionFull
			}
		}
	}

	checkIn := domain.NewCheckIn(tenantID, memberID, sessionID, time.Now())
	if err := s.checkInRepo.Create(ctx, checkIn); err != nil {
		return nil, fmt.Errorf("create check-in: %w", err)
	}
	return checkIn, nil
}

func (s *checkInService) ListByMember(ctx context.Context, tenantID, memberID string) ([]*domain.CheckIn, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	checkIns, err := s.checkInRepo.ListByMember(ctx, tenantID, memberID)
	if err != nil {
		return nil, fmt.Errorf("list check-ins: %w", err)
	}
	if checkIns == nil {
		checkIns = []*domain.CheckIn{}
	}
	return checkIns, nil
}
