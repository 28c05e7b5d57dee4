package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/store"
)

// PlayerRepository handles player biography data access.
type PlayerRepository struct{}

// NewPlayerRepository creates a new player repository.
func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{}
}

// Upsert inserts or updates a player biography row, keyed by the source
// player id. ON CONFLICT DO UPDATE (rather than INSERT OR REPLACE) keeps the
// row in place so fact and injury rows referencing it survive a reload.
func (r *PlayerRepository) Upsert(ctx context.Context, q store.Querier, player *store.PlayerBio) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO stat_player_bio (player_id, full_name, birth_date, position, salary_usd)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (player_id) DO UPDATE SET
			full_name = excluded.full_name,
			birth_date = excluded.birth_date,
			position = excluded.position,
			salary_usd = excluded.salary_usd
	`, player.PlayerID, player.FullName, player.BirthDate, player.Position, player.SalaryUSD)
	if err != nil {
		return fmt.Errorf("upserting player %d: %w", player.PlayerID, err)
	}
	return nil
}

// GetByID finds a player by id.
func (r *PlayerRepository) GetByID(ctx context.Context, q store.Querier, playerID int64) (*store.PlayerBio, error) {
	player := &store.PlayerBio{}
	err := q.QueryRowContext(ctx, `
		SELECT player_id, full_name, birth_date, position, salary_usd
		FROM stat_player_bio
		WHERE player_id = ?
	`, playerID).Scan(&player.PlayerID, &player.FullName, &player.BirthDate, &player.Position, &player.SalaryUSD)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("player not found: %d", playerID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying player: %w", err)
	}

	return player, nil
}

// FindIDByName finds a player id by a case-insensitive partial name match,
// preferring the lowest id when several players match.
func (r *PlayerRepository) FindIDByName(ctx context.Context, q store.Querier, name string) (int64, bool, error) {
	var id int64
	err := q.QueryRowContext(ctx, `
		SELECT player_id FROM stat_player_bio
		WHERE full_name LIKE ?
		ORDER BY player_id
		LIMIT 1
	`, "%"+strings.TrimSpace(name)+"%").Scan(&id)

	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("querying player by name: %w", err)
	}
	return id, true, nil
}

// NameIndex returns a map from trimmed full name to player id, used by
// loaders that reference players by name only. On duplicate names the lowest
// id wins, keeping the mapping deterministic.
func (r *PlayerRepository) NameIndex(ctx context.Context, q store.Querier) (map[string]int64, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT full_name, player_id FROM stat_player_bio ORDER BY player_id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying player names: %w", err)
	}
	defer rows.Close()

	index := make(map[string]int64)
	for rows.Next() {
		var name string
		var id int64
		if err := rows.Scan(&name, &id); err != nil {
			return nil, fmt.Errorf("scanning player name: %w", err)
		}
		index[strings.TrimSpace(name)] = id
	}

	return index, rows.Err()
}
