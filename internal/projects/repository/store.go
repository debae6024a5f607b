package repository

import (
	"context"

	"github.com/devfolio/portfolio-api/internal/projects/domain"
)

// Store persists the ordered project sequence. Implementations differ in durability and
// concurrency guarantees, not in semantics: insertion order is list order, Create rejects
// an existing id with domain.ErrDuplicateID, and Update/Delete on a missing id return
// domain.ErrNotFound without changing anything.
type Store interface {
	List(ctx context.Context) ([]domain.Project, error)
	Create(ctx context.Context, p domain.Project) (*domain.Project, error)
	// Update loads the record with the given id, lets mutate change it, and persists it.
	// An error from mutate aborts the update and is returned unchanged.
	Update(ctx context.Context, id string, mutate func(*domain.Project) error) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
