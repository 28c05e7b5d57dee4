// Package repository provides data access for the normalized schema. Every
// method takes a store.Querier so callers decide the transaction scope.
package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/store"
)

type cityKey struct {
	name  string
	state string
}

// Resolver maps natural keys from raw rows to the surrogate ids used
// internally, creating reference rows on first sight and reusing them after.
//
// Each resolve is a single atomic upsert-or-fetch on the caller's Querier, so
// reference rows created during a load live and die with the load's
// transaction. The memoization caches are only valid for that transaction:
// create one Resolver per load.
type Resolver struct {
	cities  map[cityKey]int64
	seasons map[string]int64
	stats   map[string]int64
}

// NewResolver creates a resolver for a single load.
func NewResolver() *Resolver {
	return &Resolver{
		cities:  make(map[cityKey]int64),
		seasons: make(map[string]int64),
		stats:   make(map[string]int64),
	}
}

// ResolveCity returns the surrogate id for (name, state), inserting the
// ref_city row if it does not exist yet.
func (r *Resolver) ResolveCity(ctx context.Context, q store.Querier, name, state, country string) (int64, error) {
	name = strings.TrimSpace(name)
	state = strings.TrimSpace(state)
	if name == "" || state == "" {
		return 0, fmt.Errorf("city natural key incomplete: name=%q state=%q", name, state)
	}
	if country == "" {
		country = "USA"
	}

	key := cityKey{name: name, state: state}
	if id, ok := r.cities[key]; ok {
		return id, nil
	}

	var id int64
	err := q.QueryRowContext(ctx, `
		INSERT INTO ref_city (city_name, state_province, country)
		VALUES (?, ?, ?)
		ON CONFLICT (city_name, state_province) DO UPDATE SET country = excluded.country
		RETURNING city_id
	`, name, state, country).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("resolving city %s, %s: %w", name, state, err)
	}

	r.cities[key] = id
	return id, nil
}

// ResolveSeason returns the surrogate id for a season label such as "2015-16"
// or "2016", inserting the ref_season row if it does not exist yet. The id is
// the leading year of the label, so the same label maps to the same id in
// every database.
func (r *Resolver) ResolveSeason(ctx context.Context, q store.Querier, label string) (int64, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return 0, fmt.Errorf("season label is empty")
	}

	if id, ok := r.seasons[label]; ok {
		return id, nil
	}

	seasonID, err := seasonIDFromLabel(label)
	if err != nil {
		return 0, err
	}

	var id int64
	err = q.QueryRowContext(ctx, `
		INSERT INTO ref_season (season_id, season_year, is_current)
		VALUES (?, ?, 0)
		ON CONFLICT (season_year) DO UPDATE SET season_year = excluded.season_year
		RETURNING season_id
	`, seasonID, label).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("resolving season %q: %w", label, err)
	}

	r.seasons[label] = id
	return id, nil
}

// ResolveStat returns the surrogate id for an advanced stat name, inserting
// the ref_advanced_stat_type row if it does not exist yet. The source carries
// abbreviated column names, so name and abbreviation coincide.
func (r *Resolver) ResolveStat(ctx context.Context, q store.Querier, statName string) (int64, error) {
	statName = strings.TrimSpace(statName)
	if statName == "" {
		return 0, fmt.Errorf("stat name is empty")
	}

	if id, ok := r.stats[statName]; ok {
		return id, nil
	}

	var id int64
	err := q.QueryRowContext(ctx, `
		INSERT INTO ref_advanced_stat_type (stat_name, stat_abbreviation)
		VALUES (?, ?)
		ON CONFLICT (stat_name) DO UPDATE SET stat_abbreviation = excluded.stat_abbreviation
		RETURNING stat_id
	`, statName, statName).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("resolving stat %q: %w", statName, err)
	}

	r.stats[statName] = id
	return id, nil
}

// seasonIDFromLabel extracts the leading year: "2015-16" -> 2015, "2016" -> 2016.
func seasonIDFromLabel(label string) (int64, error) {
	lead, _, _ := strings.Cut(label, "-")
	id, err := strconv.ParseInt(strings.TrimSpace(lead), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("season label %q has no leading year", label)
	}
	return id, nil
}
