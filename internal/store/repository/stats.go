package repository

import (
	"context"
	"fmt"

	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/store"
)

// StatsRepository handles the advanced stat fact table.
type StatsRepository struct{}

// NewStatsRepository creates a new stats repository.
func NewStatsRepository() *StatsRepository {
	return &StatsRepository{}
}

// UpsertFact writes one fact row. The (player, season, stat) triple is the
// primary key; what happens on conflict is the caller's policy.
func (r *StatsRepository) UpsertFact(ctx context.Context, q store.Querier, fact *store.AdvancedStatFact, policy store.ConflictPolicy) error {
	var query string
	switch policy {
	case store.Skip:
		query = `
			INSERT INTO fact_player_advanced_stats (player_id, season_id, stat_id, advanced_value)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (player_id, season_id, stat_id) DO NOTHING
		`
	default:
		query = `
			INSERT INTO fact_player_advanced_stats (player_id, season_id, stat_id, advanced_value)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (player_id, season_id, stat_id) DO UPDATE SET
				advanced_value = excluded.advanced_value
		`
	}

	_, err := q.ExecContext(ctx, query, fact.PlayerID, fact.SeasonID, fact.StatID, fact.AdvancedValue)
	if err != nil {
		return fmt.Errorf("upserting fact (%d, %d, %d): %w", fact.PlayerID, fact.SeasonID, fact.StatID, err)
	}
	return nil
}

// CountFacts returns the number of fact rows.
func (r *StatsRepository) CountFacts(ctx context.Context, q store.Querier) (int64, error) {
	var n int64
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM fact_player_advanced_stats`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting facts: %w", err)
	}
	return n, nil
}

// RankedPlayerStat is one row of the top-N ranking view.
type RankedPlayerStat struct {
	PlayerID      int64   `json:"player_id"`
	FullName      string  `json:"full_name"`
	SeasonYear    string  `json:"season_year"`
	AdvancedValue float64 `json:"advanced_value"`
	Rank          int64   `json:"rank"`
}

// TopPlayersByStat returns the top players for a stat abbreviation, highest
// value first. Tied values share a rank and are both included; ties are
// ordered by player_id ascending so the output is stable.
func (r *StatsRepository) TopPlayersByStat(ctx context.Context, q store.Querier, statAbbr string, limit int) ([]*RankedPlayerStat, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT
			b.player_id,
			b.full_name,
			s.season_year,
			f.advanced_value,
			RANK() OVER (ORDER BY f.advanced_value DESC) AS stat_rank
		FROM stat_player_bio b
		JOIN fact_player_advanced_stats f ON b.player_id = f.player_id
		JOIN ref_advanced_stat_type t ON f.stat_id = t.stat_id
		JOIN ref_season s ON f.season_id = s.season_id
		WHERE t.stat_abbreviation = ?
		ORDER BY f.advanced_value DESC, b.player_id ASC
		LIMIT ?
	`, statAbbr, limit)
	if err != nil {
		return nil, fmt.Errorf("querying top players for %q: %w", statAbbr, err)
	}
	defer rows.Close()

	var ranked []*RankedPlayerStat
	for rows.Next() {
		row := &RankedPlayerStat{}
		if err := rows.Scan(&row.PlayerID, &row.FullName, &row.SeasonYear, &row.AdvancedValue, &row.Rank); err != nil {
			return nil, fmt.Errorf("scanning ranked stat: %w", err)
		}
		ranked = append(ranked, row)
	}

	return ranked, rows.Err()
}
