// Package sqlite provides a SQLite-backed stage store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aretw0/stagedup/pkg/domain"
	"github.com/aretw0/stagedup/pkg/ports"
)

const schema = `CREATE TABLE IF NOT EXISTS stages (
	id         TEXT PRIMARY KEY,
	up_axis    TEXT NOT NULL,
	prim_count INTEGER NOT NULL,
	body       TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// Store persists stage snapshots in SQLite, one row per stage.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

var _ ports.StageStore = (*Store)(nil)

// Open opens a SQLite stage store and creates its table if needed.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// Save inserts or replaces the stage row.
func (s *Store) Save(ctx context.Context, stageID string, snapshot *domain.StageSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := domain.ValidateStageID(stageID); err != nil {
		return err
	}
	if snapshot == nil {
		return fmt.Errorf("snapshot cannot be nil")
	}

	stored := snapshot.Clone()
	stored.ID = stageID
	body, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to marshal stage: %w", err)
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO stages (id, up_axis, prim_count, body, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   up_axis = excluded.up_axis,
		   prim_count = excluded.prim_count,
		   body = excluded.body,
		   updated_at = excluded.updated_at`,
		stageID,
		stored.UpAxis.String(),
		len(stored.Prims),
		string(body),
		toMillis(s.now()),
	)
	if err != nil {
		return fmt.Errorf("save stage %s: %w", stageID, err)
	}
	return nil
}

// Load reads one stage row.
func (s *Store) Load(ctx context.Context, stageID string) (*domain.StageSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var body string
	err := s.sqlDB.QueryRowContext(ctx, `SELECT body FROM stages WHERE id = ?`, stageID).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStageNotFound
		}
		return nil, fmt.Errorf("load stage %s: %w", stageID, err)
	}

	var snap domain.StageSnapshot
	if err := json.Unmarshal([]byte(body), &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stage: %w", err)
	}
	snap.ID = stageID
	return &snap, nil
}

// Delete removes the stage row.
func (s *Store) Delete(ctx context.Context, stageID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM stages WHERE id = ?`, stageID); err != nil {
		return fmt.Errorf("delete stage %s: %w", stageID, err)
	}
	return nil
}

// List returns stage IDs in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id FROM stages ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan stage id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stages: %w", err)
	}
	return ids, nil
}

// Summary is the row metadata kept next to the stage body.
type Summary struct {
	ID        string
	UpAxis    string
	PrimCount int
	UpdatedAt time.Time
}

// Summaries lists every stage without decoding bodies.
func (s *Store) Summaries(ctx context.Context) ([]Summary, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id, up_axis, prim_count, updated_at FROM stages ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list stage summaries: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		var updated int64
		if err := rows.Scan(&sum.ID, &sum.UpAxis, &sum.PrimCount, &updated); err != nil {
			return nil, fmt.Errorf("scan stage summary: %w", err)
		}
		sum.UpdatedAt = time.UnixMilli(updated).UTC()
		out = append(out, sum)
	}
	return out, rows.Err()
}
