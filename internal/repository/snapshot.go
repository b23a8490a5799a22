package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"CourtPulse/internal/domain/repository"
)

// SnapshotStore persists one section domain's rows in the snapshots
// table. Each element of a batch is one row with the payload JSON-encoded,
// all rows of a batch sharing the same as_of.
type SnapshotStore[T any] struct {
	db     *sql.DB
	sport  string
	domain string
}

// NewSnapshotStore builds a store scoped to one (sport, domain) pair.
func NewSnapshotStore[T any](db *sql.DB, sport, domain string) *SnapshotStore[T] {
	return &SnapshotStore[T]{db: db, sport: sport, domain: domain}
}

var _ repository.SnapshotStore[struct{}] = (*SnapshotStore[struct{}])(nil)

// ReadRecent returns up to limit rows, newest first.
func (s *SnapshotStore[T]) ReadRecent(ctx context.Context, limit int) ([]repository.SnapshotRow[T], error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT as_of, payload
		 FROM snapshots
		 WHERE sport = ? AND domain = ?
		 ORDER BY as_of DESC
		 LIMIT ?`,
		s.sport, s.domain, limit)
	if err != nil {
		return nil, fmt.Errorf("snapshot read %s: %w", s.domain, err)
	}
	defer rows.Close()

	var out []repository.SnapshotRow[T]
	for rows.Next() {
		var (
			asOf time.Time
			raw  string
		)
		if err := rows.Scan(&asOf, &raw); err != nil {
			return nil, fmt.Errorf("snapshot scan %s: %w", s.domain, err)
		}
		var payload T
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return nil, fmt.Errorf("snapshot decode %s: %w", s.domain, err)
		}
		out = append(out, repository.SnapshotRow[T]{AsOf: asOf, Payload: payload})
	}
	return out, rows.Err()
}

// AppendBatch inserts all elements stamped with one shared as_of.
func (s *SnapshotStore[T]) AppendBatch(ctx context.Context, asOf time.Time, payload []T) error {
	if len(payload) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("snapshot append %s: %w", s.domain, err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO snapshots (sport, domain, as_of, payload) VALUES (?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("snapshot append %s: %w", s.domain, err)
	}
	defer stmt.Close()

	for _, item := range payload {
		raw, err := json.Marshal(item)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("snapshot encode %s: %w", s.domain, err)
		}
		if _, err := stmt.ExecContext(ctx, s.sport, s.domain, asOf, string(raw)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("snapshot append %s: %w", s.domain, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("snapshot append %s: %w", s.domain, err)
	}
	return nil
}
