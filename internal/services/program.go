package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"gymadmin/internal/domain"
	"gymadmin/internal/schedule"
)

type programService struct {
	sessionRepo    domain.SessionRepository
	classRepo      domain.ClassRepository
	tenantRepo     domain.TenantRepository
	contextTimeout time.Duration
}

// NewProgramService creates the scheduling service backed by the given repositories.
func NewProgramService(sessionRepo domain.SessionRepository, classRepo domain.ClassRepository, tenantRepo domain.TenantRepository, timeout time.Duration) domain.ProgramService {
	return &programService{
		sessionRepo:    sessionRepo,
		classRepo:      classRepo,
		tenantRepo:     tenantRepo,
		contextTimeout: timeout,
	}
}

// tenantLocation loads the tenant and resolves its configured timezone. All
// local-date decisions below use this location, never the process zone.
func (s *programService) tenantLocation(ctx context.Context, tenantID string) (*time.Location, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	loc, err := tenant.Location()
	if err != nil {
		return nil, fmt.Errorf("resolve tenant timezone %q: %w", tenant.Timezone, err)
	}
	return loc, nil
}

func (s *programService) ownedClass(ctx context.Context, tenantID, classID string) (*domain.Class, error) {
	class, err := s.classRepo.GetByID(ctx, tenantID, classID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get class: %w", err)
	}
	return class, nil
}

func (s *programService) GenerateProgram(ctx context.Context, tenantID string, in domain.GenerateProgramInput) (*domain.ProgramGenerationResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Reject bad input before touching storage; validation errors win over
	// lookup errors.
	if err := in.Rule.Validate(); err != nil {
		return nil, err
	}
	if in.Capacity != nil && *in.Capacity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.CancelBeforeHours != nil && *in.CancelBeforeHours < 0 {
		return nil, domain.ErrInvalidInput
	}

	loc, err := s.tenantLocation(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedClass(ctx, tenantID, in.ClassID); err != nil {
		return nil, err
	}

	occurrences, err := schedule.Expand(in.Rule, loc)
	if err != nil {
		return nil, err
	}
	if len(occurrences) == 0 {
		// Not an error: the range simply contains no instance of the weekday.
		return &domain.ProgramGenerationResult{Created: 0, Sessions: []*domain.Session{}}, nil
	}

	now := time.Now()
	sessions := make([]*domain.Session, 0, len(occurrences))
	for _, occ := range occurrences {
		sess := domain.NewSession(tenantID, in.ClassID, occ.Start, occ.End, in.Capacity, in.CancelBeforeHours, now, now)
		sess.ID = uuid.NewString()
		sessions = append(sessions, sess)
	}

	if err := s.sessionRepo.InsertMany(ctx, sessions); err != nil {
		return nil, fmt.Errorf("insert sessions: %w", err)
	}
	return &domain.ProgramGenerationResult{Created: len(sessions), Sessions: sessions}, nil
}

func (s *programService) CreateSession(ctx context.Context, tenantID string, session *domain.Session) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	session.TenantID = tenantID
	if !session.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if _, err := s.ownedClass(ctx, tenantID, session.ClassID); err != nil {
		return nil, err
	}

	conflicts, err := s.sessionRepo.FindOverlapping(ctx, tenantID, session.ClassID, session.StartsAt, session.EndsAt, "")
	if err != nil {
		return nil, fmt.Errorf("check overlap: %w", err)
	}
	if len(conflicts) > 0 {
		return nil, &domain.ConflictError{Conflicts: conflicts}
	}

	now := time.Now()
	session.CreatedAt = now
	session.UpdatedAt = now
	if err := s.sessionRepo.Insert(ctx, session); err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return session, nil
}

func (s *programService) DeleteProgram(ctx context.Context, tenantID string, in domain.DeleteProgramInput) (*domain.ProgramDeletionResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := in.Request.Validate(); err != nil {
		return nil, err
	}
	loc, err := s.tenantLocation(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedClass(ctx, tenantID, in.ClassID); err != nil {
		return nil, err
	}

	from, to := in.Request.Window(loc)
	candidates, err := s.sessionRepo.Find(ctx, tenantID, domain.SessionFilter{
		ClassID: in.ClassID,
		From:    &from,
		To:      &to,
	})
	if err != nil {
		return nil, fmt.Errorf("find sessions: %w", err)
	}

	var matched []string
	for _, sess := range candidates {
		if in.Request.Matches(sess.StartsAt, loc) {
			matched = append(matched, sess.ID)
		}
	}
	if len(matched) == 0 {
		return nil, domain.ErrNoMatch
	}

	deleted, err := s.sessionRepo.DeleteMany(ctx, tenantID, matched)
	if err != nil {
		return nil, fmt.Errorf("delete sessions: %w", err)
	}
	return &domain.ProgramDeletionResult{Matched: matched, Deleted: deleted}, nil
}

func (s *programService) ListSessions(ctx context.Context, tenantID string, filter domain.SessionFilter) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sessions, err := s.sessionRepo.Find(ctx, tenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("find sessions: %w", err)
	}
	if sessions == nil {
		sessions = []*domain.Session{}
	}
	return sessions, nil
}

func (s *programService) UpdateSession(ctx context.Context, tenantID, sessionID string, startsAt, endsAt *time.Time, capacity, cancelBeforeHours *int) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sess, err := s.sessionRepo.GetByID(ctx, tenantID, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	if startsAt != nil {
		sess.StartsAt = *startsAt
	}
	if endsAt != nil {
		sess.EndsAt = *endsAt
	}
	if capacity != nil {
		sess.Capacity = capacity
	}
	if cancelBeforeHours != nil {
		sess.CancelBeforeHours = cancelBeforeHours
	}
	if !sess.Valid() {
		return nil, domain.ErrInvalidInput
	}

	// Rescheduling must not introduce an overlap with the rest of the class.
	if startsAt != nil || endsAt != nil {
		conflicts, err := s.sessionRepo.FindOverlapping(ctx, tenantID, sess.ClassID, sess.StartsAt, sess.EndsAt, sess.ID)
		if err != nil {
			return nil, fmt.Errorf("check overlap: %w", err)
		}
		if len(conflicts) > 0 {
			return nil, &domain.ConflictError{Conflicts: conflicts}
		}
	}

	if err := s.sessionRepo.Update(ctx, sess); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update session: %w", err)
	}
	return sess, nil
}

func (s *programService) DeleteSession(ctx context.Context, tenantID, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.sessionRepo.Delete(ctx, tenantID, sessionID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
