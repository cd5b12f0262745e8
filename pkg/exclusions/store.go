package exclusions

import (
	"context"
	"database/sql"
	"fmt"

	"sweeparr/pkg/logger"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the persisted set of item ids protected from automation. All
// operations are idempotent set operations.
type Store interface {
	Add(ctx context.Context, id string) error
	AddMany(ctx context.Context, ids []string) error
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	Members(ctx context.Context) ([]string, error)
	Snapshot(ctx context.Context) (map[string]struct{}, error)
}

type SQLite struct {
	db *sql.DB
}

// New opens the sqlite database at the given path and applies pending
// migrations. ":memory:" gives an ephemeral store for tests.
func New(filePath string) (Store, error) {
	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open exclusion database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return nil, err
	}

	return SQLite{db: db}, nil
}

// Add records an id as excluded. Adding an already excluded id is a no-op.
func (s SQLite) Add(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO exclusion (item_id) VALUES (?) ON CONFLICT (item_id) DO NOTHING`, id)
	if err != nil {
		return fmt.Errorf("failed to add exclusion: %w", err)
	}

	return nil
}

// AddMany records a batch of ids in one transaction.
func (s SQLite) AddMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	for _, id := range ids {
		_, err := tx.ExecContext(ctx, `INSERT INTO exclusion (item_id) VALUES (?) ON CONFLICT (item_id) DO NOTHING`, id)
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				logger.FromCtx(ctx).Errorw("failed to rollback exclusion transaction", "error", rollbackErr)
			}
			return fmt.Errorf("failed to add exclusions: %w", err)
		}
	}

	return tx.Commit()
}

// Remove deletes an id from the set. Removing an absent id is a no-op.
func (s SQLite) Remove(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM exclusion WHERE item_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to remove exclusion: %w", err)
	}

	return nil
}

// Clear empties the set.
func (s SQLite) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM exclusion`)
	if err != nil {
		return fmt.Errorf("failed to clear exclusions: %w", err)
	}

	return nil
}

// Members lists the excluded ids in insertion order.
func (s SQLite) Members(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT item_id FROM exclusion ORDER BY created_at, item_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list exclusions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// Snapshot returns the set as a map for constant-time membership tests.
// The scanner takes one snapshot per run so mid-run edits can't change an
// in-flight scan.
func (s SQLite) Snapshot(ctx context.Context) (map[string]struct{}, error) {
	ids, err := s.Members(ctx)
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	return set, nil
}
