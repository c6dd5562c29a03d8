// Package catalogstore persists cataloged unit summaries in SQLite and
// serves them back as a catalog source.
package catalogstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vk/flowbricks/internal/catalog"
	"github.com/vk/flowbricks/internal/ctxlog"
	"github.com/vk/flowbricks/internal/model"
	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed unit catalog.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path and applies the schema.
// Use ":memory:" for a throwaway store.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	if path == ":memory:" {
		// Each pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to sqlite: %w", err)
	}

	for _, stmt := range append(pragmas(), schema()...) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("preparing catalog database: %w", err)
		}
	}

	ctxlog.FromContext(ctx).Debug("Catalog store opened.", "path", path)
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Upsert validates units and writes them in one transaction, replacing any
// stored unit with the same id.
func (s *Store) Upsert(ctx context.Context, units ...model.UnitSummary) error {
	if _, err := catalog.NewIndex(units); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT INTO units (unit_id, version, category, domain, payload, indexed_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(unit_id) DO UPDATE SET
			version = excluded.version,
			category = excluded.category,
			domain = excluded.domain,
			payload = excluded.payload,
			indexed_at = excluded.indexed_at
	`
	indexedAt := s.now().UTC().Format(time.RFC3339)
	for _, u := range units {
		payload, err := json.Marshal(u)
		if err != nil {
			return fmt.Errorf("marshaling unit %q: %w", u.ID, err)
		}
		if _, err := tx.ExecContext(ctx, query, u.ID, u.Version, u.Category, u.Domain, string(payload), indexedAt); err != nil {
			return fmt.Errorf("upserting unit %q: %w", u.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing units: %w", err)
	}

	ctxlog.FromContext(ctx).Debug("Units stored.", "count", len(units))
	return nil
}

// Units implements catalog.Source, returning every stored unit ordered by id.
func (s *Store) Units(ctx context.Context) ([]model.UnitSummary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM units ORDER BY unit_id`)
	if err != nil {
		return nil, fmt.Errorf("querying units: %w", err)
	}
	defer rows.Close()

	var units []model.UnitSummary
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating units: %w", err)
	}
	return units, nil
}

// Get returns one stored unit, or catalog.ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (model.UnitSummary, error) {
	row := s.db.QueryRowContext(ctx, `SELECT payload FROM units WHERE unit_id = ?`, id)
	u, err := scanUnit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.UnitSummary{}, fmt.Errorf("%w: %q", catalog.ErrNotFound, id)
	}
	return u, err
}

// Delete removes a stored unit, or returns catalog.ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM units WHERE unit_id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting unit %q: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting unit %q: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", catalog.ErrNotFound, id)
	}
	return nil
}

// Count returns the number of stored units.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM units`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting units: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUnit(row scanner) (model.UnitSummary, error) {
	var payload string
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.UnitSummary{}, err
		}
		return model.UnitSummary{}, fmt.Errorf("scanning unit: %w", err)
	}
	var u model.UnitSummary
	if err := json.Unmarshal([]byte(payload), &u); err != nil {
		return model.UnitSummary{}, fmt.Errorf("decoding stored unit: %w", err)
	}
	return u, nil
}
