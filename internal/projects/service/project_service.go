package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/devfolio/portfolio-api/internal/projects/domain"
	"github.com/devfolio/portfolio-api/internal/projects/repository"
	"github.com/devfolio/portfolio-api/internal/projects/utils"
)

const maxIDAttempts = 5

// ProjectService handles project-related business logic
type ProjectService struct {
	store  repository.Store
	now    func() time.Time
	newID  func() (string, error)
	strict bool
}

// Option configures a ProjectService.
type Option func(*ProjectService)

// WithClock overrides the time source used for createdAt/updatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *ProjectService) { s.now = now }
}

// WithIDGenerator overrides project ID generation.
func WithIDGenerator(newID func() (string, error)) Option {
	return func(s *ProjectService) { s.newID = newID }
}

// WithStrictValidation rejects creates and updates whose resulting record fails
// Project.Validate.
func WithStrictValidation(strict bool) Option {
	return func(s *ProjectService) { s.strict = strict }
}

// NewProjectService creates a new project service
func NewProjectService(store repository.Store, opts ...Option) *ProjectService {
	s := &ProjectService{
		store: store,
		now:   time.Now,
		newID: utils.NewProjectID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the projects matching f, in store order.
func (s *ProjectService) List(ctx context.Context, f domain.Filter) ([]domain.Project, error) {
	projects, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return f.Apply(projects), nil
}

// Create assigns a fresh id and today's UTC date to the payload and appends it to the store.
func (s *ProjectService) Create(ctx context.Context, in domain.NewProject) (*domain.Project, error) {
	if s.strict {
		if err := in.Validate(); err != nil {
			return nil, err
		}
	}

	today := domain.DateOf(s.now().UTC())
	for i := 0; i < maxIDAttempts; i++ {
		id, err := s.newID()
		if err != nil {
			return nil, fmt.Errorf("generate project id: %w", err)
		}

		p, err := s.store.Create(ctx, in.Build(id, today))
		if err == nil {
			return p, nil
		}

		// id collision → retry
		if errors.Is(err, domain.ErrDuplicateID) {
			continue
		}
		return nil, fmt.Errorf("create project: %w", err)
	}

	return nil, fmt.Errorf("failed to generate unique project id")
}

// Update merges patch into the project and refreshes updatedAt. Id and createdAt never change.
func (s *ProjectService) Update(ctx context.Context, id string, patch domain.Patch) (*domain.Project, error) {
	today := domain.DateOf(s.now().UTC())
	p, err := s.store.Update(ctx, id, func(p *domain.Project) error {
		patch.ApplyTo(p)
		if s.strict {
			if err := p.Validate(); err != nil {
				return err
			}
		}
		p.UpdatedAt = domain.Later(today, p.UpdatedAt, p.CreatedAt)
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidProject) {
			return nil, err
		}
		return nil, fmt.Errorf("update project %s: %w", id, err)
	}
	return p, nil
}

// Delete removes the project with the given id.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	return nil
}

// Ping reports whether the underlying store is reachable.
func (s *ProjectService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
