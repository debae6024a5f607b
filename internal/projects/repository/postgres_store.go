package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/devfolio/portfolio-api/internal/projects/domain"
)

// Schema creates the projects table. position keeps insertion order.
const Schema = `
CREATE TABLE IF NOT EXISTS projects (
  position         BIGSERIAL,
  id               TEXT PRIMARY KEY,
  title            TEXT NOT NULL DEFAULT '',
  description      TEXT NOT NULL DEFAULT '',
  full_description TEXT NOT NULL DEFAULT '',
  category         TEXT NOT NULL DEFAULT '',
  tech_stack       TEXT[] NOT NULL DEFAULT '{}',
  github_url       TEXT NOT NULL DEFAULT '',
  demo_url         TEXT NOT NULL DEFAULT '',
  impact           TEXT[] NOT NULL DEFAULT '{}',
  featured         BOOLEAN NOT NULL DEFAULT FALSE,
  published        BOOLEAN NOT NULL DEFAULT FALSE,
  created_at       DATE NOT NULL,
  updated_at       DATE NOT NULL
);
`

const projectColumns = `id, title, description, full_description, category, tech_stack,
       github_url, demo_url, impact, featured, published, created_at, updated_at`

// PostgresStore keeps one row per project. Unlike DocumentStore, updates run in a
// transaction holding a row lock, so concurrent writers do not lose each other's changes.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a store over an open connection.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the projects table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create projects table: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]domain.Project, error) {
	q := `SELECT ` + projectColumns + ` FROM projects ORDER BY position ASC;`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) Create(ctx context.Context, p domain.Project) (*domain.Project, error) {
	const q = `
INSERT INTO projects (id, title, description, full_description, category, tech_stack,
                      github_url, demo_url, impact, featured, published, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
`
	_, err := s.db.ExecContext(ctx, q, projectArgs(p)...)
	if err != nil {
		// unique violation on id
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrDuplicateID
		}
		return nil, fmt.Errorf("failed to insert project: %w", err)
	}
	return &p, nil
}

func (s *PostgresStore) Update(ctx context.Context, id string, mutate func(*domain.Project) error) (*domain.Project, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	q := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1 FOR UPDATE;`
	p, err := scanProject(tx.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if err := mutate(p); err != nil {
		return nil, err
	}
	p.ID = id

	const upd = `
UPDATE projects
SET title = $2, description = $3, full_description = $4, category = $5, tech_stack = $6,
    github_url = $7, demo_url = $8, impact = $9, featured = $10, published = $11,
    created_at = $12, updated_at = $13
WHERE id = $1;
`
	if _, err := tx.ExecContext(ctx, upd, projectArgs(*p)...); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var category string
	var createdAt, updatedAt time.Time
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.FullDescription, &category,
		pq.Array(&p.TechStack),
		&p.GithubURL, &p.DemoURL,
		pq.Array(&p.Impact),
		&p.Featured, &p.Published,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Category = domain.Category(category)
	p.CreatedAt = domain.DateOf(createdAt)
	p.UpdatedAt = domain.DateOf(updatedAt)
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
	if p.Impact == nil {
		p.Impact = []string{}
	}
	return &p, nil
}

func projectArgs(p domain.Project) []any {
	return []any{
		p.ID, p.Title, p.Description, p.FullDescription, string(p.Category),
		pq.Array(nonNilStrings(p.TechStack)),
		p.GithubURL, p.DemoURL,
		pq.Array(nonNilStrings(p.Impact)),
		p.Featured, p.Published,
		p.CreatedAt.Time, p.UpdatedAt.Time,
	}
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
