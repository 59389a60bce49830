// Package store persists specification and template records. Records travel as
// JSON documents; the envelope columns (id, name, timestamps) exist for listing
// and lookup only.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/vfxspecs/exchange/internal/spec"
)

var (
	// ErrInvalidInput indicates the caller passed an invalid id or record.
	ErrInvalidInput = errors.New("store: invalid input")
	// ErrNotFound indicates a missing record.
	ErrNotFound = errors.New("store: not found")
	// ErrDB indicates a database operation failure.
	ErrDB = errors.New("store: db error")
)

// DefaultListLimit bounds spec listings when the caller supplies none.
const DefaultListLimit = 50

// Store is the persistence boundary consumed by the HTTP handlers.
type Store interface {
	CreateSpec(ctx context.Context, s *spec.Spec) error
	GetSpec(ctx context.Context, id string) (*spec.Spec, error)
	ListSpecs(ctx context.Context, limit int) ([]*spec.Spec, error)
	// UpdateSpec merges u over the stored record and returns the result.
	UpdateSpec(ctx context.Context, id string, u spec.Update, now time.Time) (*spec.Spec, error)
	DeleteSpec(ctx context.Context, id string) error

	CreateTemplate(ctx context.Context, t *spec.Template) error
	ListTemplates(ctx context.Context) ([]*spec.Template, error)
	GetTemplate(ctx context.Context, id string) (*spec.Template, error)
	DeleteTemplate(ctx context.Context, id string) error

	Close() error
}
