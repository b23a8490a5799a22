package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"CourtPulse/internal/domain/models"
	"CourtPulse/internal/domain/repository"
)

// PerformanceStore serves per-game stat lines from ClickHouse. Reads only
// ever see the newest fetched batch for a player, so a half-written newer
// batch cannot mix with the previous one.
type PerformanceStore struct {
	db *sql.DB
}

func NewPerformanceStore(db *sql.DB) *PerformanceStore {
	return &PerformanceStore{db: db}
}

var _ repository.PerformanceStore = (*PerformanceStore)(nil)

// RecentGames returns up to n games for the player from the newest batch,
// most recent game first.
func (s *PerformanceStore) RecentGames(ctx context.Context, playerName string, n int) ([]models.PlayerGame, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT player_name, team, game_date, opponent, is_home, minutes, points, rebounds, assists
		 FROM player_performance
		 WHERE player_name = ?
		   AND fetched_at = (
			 SELECT max(fetched_at) FROM player_performance WHERE player_name = ?
		   )
		 ORDER BY game_date DESC
		 LIMIT ?`,
		playerName, playerName, n)
	if err != nil {
		return nil, fmt.Errorf("performance read %s: %w", playerName, err)
	}
	defer rows.Close()

	var games []models.PlayerGame
	for rows.Next() {
		var (
			g      models.PlayerGame
			isHome uint8
		)
		if err := rows.Scan(&g.PlayerName, &g.Team, &g.GameDate, &g.Opponent, &isHome, &g.Minutes, &g.Points, &g.Rebounds, &g.Assists); err != nil {
			return nil, fmt.Errorf("performance scan %s: %w", playerName, err)
		}
		g.IsHome = isHome == 1
		games = append(games, g)
	}
	return games, rows.Err()
}

// AppendGames stores a freshly fetched batch for one player.
func (s *PerformanceStore) AppendGames(ctx context.Context, fetchedAt time.Time, games []models.PlayerGame) error {
	if len(games) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("performance append: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO player_performance
		 (player_name, team, game_date, opponent, is_home, minutes, points, rebounds, assists, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("performance append: %w", err)
	}
	defer stmt.Close()

	for _, g := range games {
		isHome := uint8(0)
		if g.IsHome {
			isHome = 1
		}
		if _, err := stmt.ExecContext(ctx, g.PlayerName, g.Team, g.GameDate, g.Opponent, isHome, g.Minutes, g.Points, g.Rebounds, g.Assists, fetchedAt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("performance append %s: %w", g.PlayerName, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("performance append: %w", err)
	}
	return nil
}
