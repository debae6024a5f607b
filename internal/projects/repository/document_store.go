package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/devfolio/portfolio-api/internal/projects/domain"
)

// Document is a backend holding the whole project sequence as one JSON document.
type Document interface {
	Load(ctx context.Context) ([]domain.Project, error)
	Save(ctx context.Context, projects []domain.Project) error
	Ping(ctx context.Context) error
}

// DocumentStore implements Store with read-modify-write of a whole Document.
//
// No locking is applied. Two concurrent writers may both load the same document and the
// second Save silently discards the first writer's change (last writer wins). This is
// acceptable for a single-operator site; use PostgresStore when that matters.
type DocumentStore struct {
	doc Document
}

// NewDocumentStore wraps a document backend.
func NewDocumentStore(doc Document) *DocumentStore {
	return &DocumentStore{doc: doc}
}

func (s *DocumentStore) List(ctx context.Context) ([]domain.Project, error) {
	return s.doc.Load(ctx)
}

func (s *DocumentStore) Create(ctx context.Context, p domain.Project) (*domain.Project, error) {
	projects, err := s.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	if indexOf(projects, p.ID) >= 0 {
		return nil, domain.ErrDuplicateID
	}

	projects = append(projects, p)
	if err := s.doc.Save(ctx, projects); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *DocumentStore) Update(ctx context.Context, id string, mutate func(*domain.Project) error) (*domain.Project, error) {
	projects, err := s.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(projects, id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}

	updated := projects[i]
	if err := mutate(&updated); err != nil {
		return nil, err
	}
	projects[i] = updated

	if err := s.doc.Save(ctx, projects); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *DocumentStore) Delete(ctx context.Context, id string) error {
	projects, err := s.doc.Load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(projects, id)
	if i < 0 {
		return domain.ErrNotFound
	}

	projects = append(projects[:i], projects[i+1:]...)
	return s.doc.Save(ctx, projects)
}

func (s *DocumentStore) Ping(ctx context.Context) error {
	return s.doc.Ping(ctx)
}

func indexOf(projects []domain.Project, id string) int {
	for i, p := range projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// document is the persisted layout: { "projects": [ ... ] }.
type document struct {
	Projects []domain.Project `json:"projects"`
}

// EncodeDocument renders projects in the persisted layout, indented for hand editing.
func EncodeDocument(projects []domain.Project) ([]byte, error) {
	if projects == nil {
		projects = []domain.Project{}
	}
	data, err := json.MarshalIndent(document{Projects: projects}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal projects: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeDocument parses the persisted layout. Anything that is not a JSON object with a
// "projects" array is reported as domain.ErrStoreCorrupt.
func DecodeDocument(data []byte) ([]domain.Project, error) {
	var raw struct {
		Projects json.RawMessage `json:"projects"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreCorrupt, err)
	}
	if len(raw.Projects) == 0 || bytes.Equal(raw.Projects, []byte("null")) {
		return nil, fmt.Errorf("%w: missing projects field", domain.ErrStoreCorrupt)
	}

	projects := []domain.Project{}
	if err := json.Unmarshal(raw.Projects, &projects); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreCorrupt, err)
	}
	return projects, nil
}
