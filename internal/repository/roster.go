package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"CourtPulse/internal/domain/models"
	"CourtPulse/internal/domain/repository"
)

// RosterStore keeps roster sync batches in ClickHouse. Current state is
// the newest batch by last_updated.
type RosterStore struct {
	db *sql.DB
}

func NewRosterStore(db *sql.DB) *RosterStore {
	return &RosterStore{db: db}
}

var _ repository.RosterStore = (*RosterStore)(nil)

// Current returns the newest synced batch, alphabetical by name.
func (s *RosterStore) Current(ctx context.Context) ([]models.PlayerIdentity, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, team, last_updated
		 FROM roster
		 WHERE last_updated = (SELECT max(last_updated) FROM roster)
		 ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("roster read: %w", err)
	}
	defer rows.Close()

	var players []models.PlayerIdentity
	for rows.Next() {
		var p models.PlayerIdentity
		if err := rows.Scan(&p.ID, &p.Name, &p.Team, &p.LastUpdated); err != nil {
			return nil, fmt.Errorf("roster scan: %w", err)
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// ReplaceAll appends a wholesale sync batch stamped with syncedAt.
func (s *RosterStore) ReplaceAll(ctx context.Context, syncedAt time.Time, players []models.PlayerIdentity) error {
	if len(players) == 0 {
		return fmt.Errorf("roster replace: empty batch")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("roster replace: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO roster (id, name, team, last_updated) VALUES (?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("roster replace: %w", err)
	}
	defer stmt.Close()

	for _, p := range players {
		if _, err := stmt.ExecContext(ctx, p.ID, p.Name, p.Team, syncedAt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("roster replace %s: %w", p.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("roster replace: %w", err)
	}
	return nil
}
