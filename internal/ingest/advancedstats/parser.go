// Package advancedstats loads the wide per-player-per-season advanced stats
// dataset (advanced.csv) into the bio, season, stat-type and fact tables.
package advancedstats

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/ingest"
)

// descriptorColumns are the source columns that identify the row or carry
// basic counting stats. Everything else is an advanced stat to pivot.
var descriptorColumns = map[string]bool{
	"seas_id":    true,
	"season":     true,
	"player_id":  true,
	"player":     true,
	"birth_year": true,
	"pos":        true,
	"age":        true,
	"experience": true,
	"lg":         true,
	"tm":         true,
	"team":       true,
	"g":          true,
	"gs":         true,
	"mp":         true,
}

// StatValue is one pivoted measurement from a wide row.
type StatValue struct {
	Name  string
	Value float64
}

// Record is a validated advanced-stats row: the identifying fields plus the
// stat columns pivoted into (name, value) pairs. Missing or non-numeric stat
// cells are omitted, not errors.
type Record struct {
	PlayerID  int64
	Player    string
	Season    string
	Position  string
	BirthYear string
	Stats     []StatValue
}

// StatColumns returns the advanced stat column names in source order.
func StatColumns(header []string) []string {
	var cols []string
	for _, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" || descriptorColumns[key] {
			continue
		}
		cols = append(cols, key)
	}
	return cols
}

// ParseRow converts one raw row into a Record. It fails when the identifying
// fields (player id, player name, season label) are missing or malformed.
func ParseRow(index map[string]int, statCols []string, row []string) (*Record, error) {
	player := ingest.Field(row, index, "player")
	if player == "" {
		return nil, fmt.Errorf("missing player name")
	}

	rawID := ingest.Field(row, index, "player_id")
	if rawID == "" {
		return nil, fmt.Errorf("missing player_id for %q", player)
	}
	playerID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid player_id %q for %q", rawID, player)
	}

	season := ingest.Field(row, index, "season")
	if season == "" {
		return nil, fmt.Errorf("missing season for %q", player)
	}

	rec := &Record{
		PlayerID:  playerID,
		Player:    player,
		Season:    season,
		Position:  ingest.Field(row, index, "pos"),
		BirthYear: ingest.Field(row, index, "birth_year"),
	}

	for _, col := range statCols {
		raw := ingest.Field(row, index, col)
		if raw == "" || raw == "NA" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		rec.Stats = append(rec.Stats, StatValue{Name: col, Value: value})
	}

	return rec, nil
}
