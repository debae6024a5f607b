package domain

import "errors"

var (
	ErrNotFound       = errors.New("project not found")
	ErrDuplicateID    = errors.New("project id already exists")
	ErrStoreCorrupt   = errors.New("project store is corrupt")
	ErrInvalidProject = errors.New("invalid project")
)
