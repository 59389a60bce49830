package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// OpenSQLite opens the default single-node backend. The DSN should enable WAL
// and a busy timeout, e.g.
// "file:exchange.db?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=ON".
func OpenSQLite(ctx context.Context, dsn string) (Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite: %v", ErrDB, err)
	}
	// single writer; WAL readers do not block it
	db.SetMaxOpenConns(1)

	s := &sqlStore{db: db}
	if err := s.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}
