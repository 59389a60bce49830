package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vfxspecs/exchange/internal/spec"
)

// Memory is an in-process store for tests and local development. Records are
// held as JSON bytes so callers never alias stored state.
type Memory struct {
	mu        sync.RWMutex
	specs     map[string][]byte
	templates map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{
		specs:     make(map[string][]byte),
		templates: make(map[string][]byte),
	}
}

func (m *Memory) CreateSpec(_ context.Context, sp *spec.Spec) error {
	if sp == nil || strings.TrimSpace(sp.ID) == "" {
		return fmt.Errorf("%w: spec id required", ErrInvalidInput)
	}
	b, err := json.Marshal(sp)
	if err != nil {
		return fmt.Errorf("%w: encode spec: %v", ErrInvalidInput, err)
	}
	m.mu.Lock()
	m.specs[sp.ID] = b
	m.mu.Unlock()
	return nil
}

func (m *Memory) GetSpec(_ context.Context, id string) (*spec.Spec, error) {
	m.mu.RLock()
	b, ok := m.specs[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: spec %s", ErrNotFound, id)
	}
	return decodeSpec(string(b))
}

func (m *Memory) ListSpecs(_ context.Context, limit int) ([]*spec.Spec, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	m.mu.RLock()
	out := make([]*spec.Spec, 0, len(m.specs))
	for _, b := range m.specs {
		sp, err := decodeSpec(string(b))
		if err != nil {
			m.mu.RUnlock()
			return nil, err
		}
		out = append(out, sp)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Memory) UpdateSpec(ctx context.Context, id string, u spec.Update, now time.Time) (*spec.Spec, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.specs[id]
	if !ok {
		return nil, fmt.Errorf("%w: spec %s", ErrNotFound, id)
	}
	sp, err := decodeSpec(string(b))
	if err != nil {
		return nil, err
	}
	sp.Apply(u, now)
	nb, err := json.Marshal(sp)
	if err != nil {
		return nil, fmt.Errorf("%w: encode spec: %v", ErrInvalidInput, err)
	}
	m.specs[id] = nb
	return sp, nil
}

func (m *Memory) DeleteSpec(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.specs[id]; !ok {
		return fmt.Errorf("%w: spec %s", ErrNotFound, id)
	}
	delete(m.specs, id)
	return nil
}

func (m *Memory) CreateTemplate(_ context.Context, t *spec.Template) error {
	if t == nil || strings.TrimSpace(t.ID) == "" || strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: template id and name required", ErrInvalidInput)
	}
	b, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("%w: encode template: %v", ErrInvalidInput, err)
	}
	m.mu.Lock()
	m.templates[t.ID] = b
	m.mu.Unlock()
	return nil
}

func (m *Memory) ListTemplates(_ context.Context) ([]*spec.Template, error) {
	m.mu.RLock()
	out := make([]*spec.Template, 0, len(m.templates))
	for _, b := range m.templates {
		t, err := decodeTemplate(string(b))
		if err != nil {
			m.mu.RUnlock()
			return nil, err
		}
		out = append(out, t)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) GetTemplate(_ context.Context, id string) (*spec.Template, error) {
	m.mu.RLock()
	b, ok := m.templates[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: template %s", ErrNotFound, id)
	}
	return decodeTemplate(string(b))
}

func (m *Memory) DeleteTemplate(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.templates[id]; !ok {
		return fmt.Errorf("%w: template %s", ErrNotFound, id)
	}
	delete(m.templates, id)
	return nil
}

func (m *Memory) Close() error { return nil }
