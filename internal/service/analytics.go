// Package service orchestrates repositories behind the HTTP interface.
package service

import (
	"context"
	"fmt"

	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/store"
	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/store/repository"
)

// DefaultStatAbbr is the stat the top-players view ranks by when the caller
// does not pick one.
const DefaultStatAbbr = "orb_percent"

// AnalyticsService answers the read-only analytical views. It never writes;
// queries against empty tables return empty results, not errors.
type AnalyticsService struct {
	db       *store.Database
	stats    *repository.StatsRepository
	injuries *repository.InjuryRepository
	demos    *repository.DemographicsRepository
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(db *store.Database) *AnalyticsService {
	return &AnalyticsService{
		db:       db,
		stats:    repository.NewStatsRepository(),
		injuries: repository.NewInjuryRepository(),
		demos:    repository.NewDemographicsRepository(),
	}
}

// TopPlayersByStat returns the top-N players by an advanced stat
// abbreviation, ties included and ordered by player id.
func (s *AnalyticsService) TopPlayersByStat(ctx context.Context, statAbbr string, limit int) ([]*repository.RankedPlayerStat, error) {
	if statAbbr == "" {
		statAbbr = DefaultStatAbbr
	}
	if limit <= 0 {
		limit = 5
	}

	ranked, err := s.stats.TopPlayersByStat(ctx, s.db.DB(), statAbbr, limit)
	if err != nil {
		return nil, fmt.Errorf("fetching top players: %w", err)
	}
	if ranked == nil {
		ranked = []*repository.RankedPlayerStat{}
	}
	return ranked, nil
}

// MostInjuredPlayers returns the players with the most injury events.
func (s *AnalyticsService) MostInjuredPlayers(ctx context.Context, limit int) ([]*repository.InjuryFrequency, error) {
	if limit <= 0 {
		limit = 5
	}

	freqs, err := s.injuries.MostInjuredPlayers(ctx, s.db.DB(), limit)
	if err != nil {
		return nil, fmt.Errorf("fetching most injured players: %w", err)
	}
	if freqs == nil {
		freqs = []*repository.InjuryFrequency{}
	}
	return freqs, nil
}

// TopCitiesByIncome returns cities ordered by median household income.
func (s *AnalyticsService) TopCitiesByIncome(ctx context.Context, limit int) ([]*repository.CitySummary, error) {
	if limit <= 0 {
		limit = 10
	}

	cities, err := s.demos.TopCitiesByIncome(ctx, s.db.DB(), limit)
	if err != nil {
		return nil, fmt.Errorf("fetching top cities: %w", err)
	}
	if cities == nil {
		cities = []*repository.CitySummary{}
	}
	return cities, nil
}
