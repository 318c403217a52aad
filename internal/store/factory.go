package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// NewByBackend selects the fallback-store backend. Which resources live here
// versus in the journal document is a configuration concern, not scattered
// conditional logic.
func NewByBackend(backend, path string, db *gorm.DB) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		return NewFileStore(path)
	case BackendPostgres:
		if db == nil {
			return nil, errors.New("postgres store backend requires a database connection")
		}
		return NewGormStore(db), nil
	default:
		return nil, errors.New("unsupported store backend: " + backend)
	}
}
