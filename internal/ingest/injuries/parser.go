// Package injuries loads the injury event log (injuries_2010-2020.csv).
// Each row names a player either Relinquished (went out injured) or
// Acquired (returned from injury).
package injuries

import (
	"fmt"
	"strings"
	"time"

	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/ingest"
)

// EventType distinguishes the two status markers the source uses.
type EventType int

const (
	// Relinquished marks a player leaving the roster with an injury.
	Relinquished EventType = iota
	// Acquired marks a player returning from an injury.
	Acquired
)

// Record is a validated injury event.
type Record struct {
	Date  string // normalized YYYY-MM-DD
	Event EventType
	Name  string
	Notes string
}

var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
	"1/2/06",
}

// ParseRow converts one raw event row into a Record. Rows without a date or
// without a player name in either status column are unloadable.
func ParseRow(index map[string]int, row []string) (*Record, error) {
	rawDate := ingest.Field(row, index, "date")
	if rawDate == "" {
		return nil, fmt.Errorf("missing date")
	}
	date, err := parseDate(rawDate)
	if err != nil {
		return nil, err
	}

	relinquished := ingest.Field(row, index, "relinquished")
	acquired := ingest.Field(row, index, "acquired")

	rec := &Record{Date: date, Notes: ingest.Field(row, index, "notes")}
	switch {
	case relinquished != "":
		rec.Event = Relinquished
		rec.Name = relinquished
	case acquired != "":
		rec.Event = Acquired
		rec.Name = acquired
	default:
		return nil, fmt.Errorf("row names no player")
	}

	return rec, nil
}

func parseDate(raw string) (string, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("unparseable date %q", raw)
}

// NameVariants splits a source name cell into candidate player names. The
// source writes alternates as "Nene Hilario / Nene" and sometimes prefixes a
// parenthesized former name; every plausible variant is returned in order.
func NameVariants(raw string) []string {
	var variants []string
	for _, part := range strings.Split(raw, "/") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		variants = append(variants, name)

		if stripped := stripParens(name); stripped != name && stripped != "" {
			variants = append(variants, stripped)
		}
	}
	return variants
}

// stripParens removes parenthesized segments: "(Mike) James" -> "James".
func stripParens(name string) string {
	for {
		open := strings.Index(name, "(")
		if open < 0 {
			break
		}
		close := strings.Index(name[open:], ")")
		if close < 0 {
			break
		}
		name = name[:open] + name[open+close+1:]
	}
	return strings.Join(strings.Fields(name), " ")
}

// BodyPart derives the short body-part field from the free-text notes.
func BodyPart(notes string) string {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return "Unknown"
	}
	if len(notes) > 50 {
		return notes[:50]
	}
	return notes
}
