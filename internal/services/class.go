package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gymadmin/internal/domain"
)

type classService struct {
	classRepo      domain.ClassRepository
	contextTimeout time.Duration
}

// NewClassService creates a ClassService backed by the given repository.
func NewClassService(classRepo domain.ClassRepository, timeout time.Duration) domain.ClassService {
	return &classService{
		classRepo:      classRepo,
		contextTimeout: timeout,
	}
}

func (s *classService) Create(ctx context.Context, class *domain.Class) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(class.Name) == "" {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	class.CreatedAt = now
	class.UpdatedAt = now
	return s.classRepo.Create(ctx, class)
}

func (s *classService) GetByID(ctx context.Context, tenantID, id string) (*domain.Class, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.classRepo.GetByID(ctx, tenantID, id)
}

func (s *classService) List(ctx context.Context, tenantID string) ([]*domain.Class, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	classes, err := s.classRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	if classes == nil {
		classes = []*domain.Class{}
	}
	return classes, nil
}

func (s *classService) Update(ctx context.Context, class *domain.Class) (*domain.Class, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(class.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := s.classRepo.Update(ctx, class); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update class: %w", err)
	}
	return class, nil
}

func (s *classService) Delete(ctx context.Context, tenantID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.classRepo.Delete(ctx, tenantID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete class: %w", err)
	}
	return nil
}
