package repository

import (
	"context"
	"fmt"

	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/store"
)

// InjuryRepository handles the injury event log.
type InjuryRepository struct{}

// NewInjuryRepository creates a new injury repository.
func NewInjuryRepository() *InjuryRepository {
	return &InjuryRepository{}
}

// Insert stores one injury event and returns its report id.
func (r *InjuryRepository) Insert(ctx context.Context, q store.Querier, report *store.InjuryReport) (int64, error) {
	var id int64
	err := q.QueryRowContext(ctx, `
		INSERT INTO bg_injury_report (player_id, injury_date, return_date, body_part, severity, source_citation)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING report_id
	`, report.PlayerID, report.InjuryDate, report.ReturnDate, report.BodyPart, report.Severity, report.SourceCitation).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting injury for player %d: %w", report.PlayerID, err)
	}

	report.ReportID = id
	return id, nil
}

// CloseOpenInjury sets the return date on the player's most recent open
// injury. Returns false when the player has no open injury.
func (r *InjuryRepository) CloseOpenInjury(ctx context.Context, q store.Querier, playerID int64, returnDate string) (bool, error) {
	res, err := q.ExecContext(ctx, `
		UPDATE bg_injury_report
		SET return_date = ?
		WHERE report_id = (
			SELECT report_id FROM bg_injury_report
			WHERE player_id = ? AND return_date IS NULL AND injury_date <= ?
			ORDER BY injury_date DESC, report_id DESC
			LIMIT 1
		)
	`, returnDate, playerID, returnDate)
	if err != nil {
		return false, fmt.Errorf("closing injury for player %d: %w", playerID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("closing injury for player %d: %w", playerID, err)
	}
	return n > 0, nil
}

// DeleteForLoad removes all injury rows carrying the given source citation,
// so re-importing an event-log file does not double-count events.
func (r *InjuryRepository) DeleteForLoad(ctx context.Context, q store.Querier, sourceCitation string) (int64, error) {
	res, err := q.ExecContext(ctx, `
		DELETE FROM bg_injury_report WHERE source_citation = ?
	`, sourceCitation)
	if err != nil {
		return 0, fmt.Errorf("deleting injuries for source %q: %w", sourceCitation, err)
	}
	return res.RowsAffected()
}

// InjuryFrequency is one row of the most-injured-players view.
type InjuryFrequency struct {
	PlayerID      int64  `json:"player_id"`
	FullName      string `json:"full_name"`
	TotalInjuries int64  `json:"total_injuries"`
	InjuryRank    int64  `json:"injury_rank"`
}

// MostInjuredPlayers returns the players with the most injury events,
// descending, ties ordered by player_id ascending.
func (r *InjuryRepository) MostInjuredPlayers(ctx context.Context, q store.Querier, limit int) ([]*InjuryFrequency, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT
			b.player_id,
			b.full_name,
			COUNT(i.report_id) AS total_injuries,
			RANK() OVER (ORDER BY COUNT(i.report_id) DESC) AS injury_rank
		FROM stat_player_bio b
		JOIN bg_injury_report i ON b.player_id = i.player_id
		GROUP BY b.player_id, b.full_name
		HAVING COUNT(i.report_id) > 0
		ORDER BY total_injuries DESC, b.player_id ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying most injured players: %w", err)
	}
	defer rows.Close()

	var freqs []*InjuryFrequency
	for rows.Next() {
		f := &InjuryFrequency{}
		if err := rows.Scan(&f.PlayerID, &f.FullName, &f.TotalInjuries, &f.InjuryRank); err != nil {
			return nil, fmt.Errorf("scanning injury frequency: %w", err)
		}
		freqs = append(freqs, f)
	}

	return freqs, rows.Err()
}
