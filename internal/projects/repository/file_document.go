package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/devfolio/portfolio-api/internal/projects/domain"
)

// FileDocument keeps the project document in a single JSON file.
type FileDocument struct {
	path string
}

// NewFileDocument returns a document backed by the file at path.
func NewFileDocument(path string) *FileDocument {
	return &FileDocument{path: path}
}

// NewFileStore is the default store: a DocumentStore over a JSON file.
func NewFileStore(path string) *DocumentStore {
	return NewDocumentStore(NewFileDocument(path))
}

// Path returns the document location.
func (d *FileDocument) Path() string {
	return d.path
}

// Init writes an empty document if none exists yet.
func (d *FileDocument) Init(ctx context.Context) error {
	if _, err := os.Stat(d.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to stat project store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(d.path), 0o755); err != nil {
		return fmt.Errorf("failed to create project store directory: %w", err)
	}
	return d.Save(ctx, nil)
}

// Load reads and parses the whole document.
func (d *FileDocument) Load(ctx context.Context) ([]domain.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(d.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project store: %w", err)
	}
	return DecodeDocument(data)
}

// Save replaces the whole document. The new content is written to a sibling temp file
// and renamed over the old one, so readers never observe a half-written document.
func (d *FileDocument) Save(ctx context.Context, projects []domain.Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := EncodeDocument(projects)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(d.path), filepath.Base(d.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write project store: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write project store: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write project store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write project store: %w", err)
	}
	if err := os.Rename(tmp.Name(), d.path); err != nil {
		return fmt.Errorf("failed to replace project store: %w", err)
	}
	return nil
}

// Ping checks that the document exists and is readable.
func (d *FileDocument) Ping(ctx context.Context) error {
	f, err := os.Open(d.path)
	if err != nil {
		return err
	}
	return f.Close()
}
