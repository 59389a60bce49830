package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/vfxspecs/exchange/internal/spec"
)

// sqlStore is the shared database/sql implementation behind the sqlite and
// postgres backends. Timestamps are stored as RFC3339 text so both drivers
// share one schema and lexicographic ordering matches chronological.
type sqlStore struct {
	db *sql.DB
	// rebind converts ?-style placeholders to the driver's dialect.
	rebind func(string) string
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS specs (
  id         TEXT PRIMARY KEY,
  name       TEXT NOT NULL,
  data       TEXT NOT NULL,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS templates (
  id         TEXT PRIMARY KEY,
  name       TEXT NOT NULL,
  data       TEXT NOT NULL,
  created_at TEXT NOT NULL
);`

func (s *sqlStore) ensureSchema(ctx context.Context) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: ensure schema: %v", ErrDB, err)
		}
	}
	return nil
}

func (s *sqlStore) q(query string) string {
	if s.rebind != nil {
		return s.rebind(query)
	}
	return query
}

func (s *sqlStore) CreateSpec(ctx context.Context, sp *spec.Spec) error {
	if sp == nil || strings.TrimSpace(sp.ID) == "" {
		return fmt.Errorf("%w: spec id required", ErrInvalidInput)
	}
	b, err := json.Marshal(sp)
	if err != nil {
		return fmt.Errorf("%w: encode spec: %v", ErrInvalidInput, err)
	}
	_, err = s.db.ExecContext(ctx,
		s.q(`INSERT INTO specs (id, name, data, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`),
		sp.ID, sp.Name, string(b), sp.CreatedAt.Format(time.RFC3339Nano), sp.UpdatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("%w: insert spec: %v", ErrDB, err)
	}
	return nil
}

func (s *sqlStore) GetSpec(ctx context.Context, id string) (*spec.Spec, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: id required", ErrInvalidInput)
	}
	var data string
	err := s.db.QueryRowContext(ctx, s.q(`SELECT data FROM specs WHERE id = ?`), id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: spec %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get spec: %v", ErrDB, err)
	}
	return decodeSpec(data)
}

func (s *sqlStore) ListSpecs(ctx context.Context, limit int) ([]*spec.Spec, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := s.db.QueryContext(ctx,
		s.q(`SELECT data FROM specs ORDER BY created_at DESC LIMIT ?`), limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list specs: %v", ErrDB, err)
	}
	defer rows.Close()

	out := make([]*spec.Spec, 0, limit)
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("%w: scan spec: %v", ErrDB, err)
		}
		sp, err := decodeSpec(data)
		if err != nil {
			return nil, err
		}
		out = append(out, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list specs: %v", ErrDB, err)
	}
	return out, nil
}

func (s *sqlStore) UpdateSpec(ctx context.Context, id string, u spec.Update, now time.Time) (*spec.Spec, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: id required", ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: begin: %v", ErrDB, err)
	}
	defer tx.Rollback()

	var data string
	err = tx.QueryRowContext(ctx, s.q(`SELECT data FROM specs WHERE id = ?`), id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: spec %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get spec: %v", ErrDB, err)
	}

	sp, err := decodeSpec(data)
	if err != nil {
		return nil, err
	}
	sp.Apply(u, now)

	b, err := json.Marshal(sp)
	if err != nil {
		return nil, fmt.Errorf("%w: encode spec: %v", ErrInvalidInput, err)
	}
	_, err = tx.ExecContext(ctx,
		s.q(`UPDATE specs SET name = ?, data = ?, updated_at = ? WHERE id = ?`),
		sp.Name, string(b), sp.UpdatedAt.Format(time.RFC3339Nano), id)
	if err != nil {
		return nil, fmt.Errorf("%w: update spec: %v", ErrDB, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit: %v", ErrDB, err)
	}
	return sp, nil
}

func (s *sqlStore) DeleteSpec(ctx context.Context, id string) error {
	return s.deleteRow(ctx, "specs", id)
}

func (s *sqlStore) CreateTemplate(ctx context.Context, t *spec.Template) error {
	if t == nil || strings.TrimSpace(t.ID) == "" || strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("%w: template id and name required", ErrInvalidInput)
	}
	b, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("%w: encode template: %v", ErrInvalidInput, err)
	}
	_, err = s.db.ExecContext(ctx,
		s.q(`INSERT INTO templates (id, name, data, created_at) VALUES (?, ?, ?, ?)`),
		t.ID, t.Name, string(b), t.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("%w: insert template: %v", ErrDB, err)
	}
	return nil
}

func (s *sqlStore) ListTemplates(ctx context.Context) ([]*spec.Template, error) {
	rows, err := s.db.QueryContext(ctx,
		s.q(`SELECT data FROM templates ORDER BY created_at DESC`))
	if err != nil {
		return nil, fmt.Errorf("%w: list templates: %v", ErrDB, err)
	}
	defer rows.Close()

	var out []*spec.Template
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("%w: scan template: %v", ErrDB, err)
		}
		t, err := decodeTemplate(data)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list templates: %v", ErrDB, err)
	}
	return out, nil
}

func (s *sqlStore) GetTemplate(ctx context.Context, id string) (*spec.Template, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: id required", ErrInvalidInput)
	}
	var data string
	err := s.db.QueryRowContext(ctx, s.q(`SELECT data FROM templates WHERE id = ?`), id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: template %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get template: %v", ErrDB, err)
	}
	return decodeTemplate(data)
}

func (s *sqlStore) DeleteTemplate(ctx context.Context, id string) error {
	return s.deleteRow(ctx, "templates", id)
}

func (s *sqlStore) deleteRow(ctx context.Context, tbl, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: id required", ErrInvalidInput)
	}
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM `+tbl+` WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("%w: delete: %v", ErrDB, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (s *sqlStore) Close() error { return s.db.Close() }

func decodeSpec(data string) (*spec.Spec, error) {
	var sp spec.Spec
	if err := json.Unmarshal([]byte(data), &sp); err != nil {
		return nil, fmt.Errorf("%w: decode spec: %v", ErrDB, err)
	}
	return &sp, nil
}

func decodeTemplate(data string) (*spec.Template, error) {
	var t spec.Template
	if err := json.Unmarshal([]byte(data), &t); err != nil {
		return nil, fmt.Errorf("%w: decode template: %v", ErrDB, err)
	}
	return &t, nil
}
