package repository

import (
	"context"
	"fmt"

	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/store"
)

// DemographicsRepository handles the city demographics background table.
type DemographicsRepository struct{}

// NewDemographicsRepository creates a new demographics repository.
func NewDemographicsRepository() *DemographicsRepository {
	return &DemographicsRepository{}
}

// Upsert writes the one-to-one demographics row for a city. The city row must
// already exist (resolve it first).
func (r *DemographicsRepository) Upsert(ctx context.Context, q store.Querier, demo *store.CityDemographics, policy store.ConflictPolicy) error {
	var query string
	switch policy {
	case store.Skip:
		query = `
			INSERT INTO bg_city_demographics (city_id, population, median_household_income, poverty_rate)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (city_id) DO NOTHING
		`
	default:
		query = `
			INSERT INTO bg_city_demographics (city_id, population, median_household_income, poverty_rate)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (city_id) DO UPDATE SET
				population = excluded.population,
				median_household_income = excluded.median_household_income,
				poverty_rate = excluded.poverty_rate
		`
	}

	_, err := q.ExecContext(ctx, query, demo.CityID, demo.Population, demo.MedianHouseholdIncome, demo.PovertyRate)
	if err != nil {
		return fmt.Errorf("upserting demographics for city %d: %w", demo.CityID, err)
	}
	return nil
}

// CitySummary is one row of the city demographics view.
type CitySummary struct {
	CityName              string `json:"city_name"`
	StateProvince         string `json:"state_province"`
	MedianHouseholdIncome int64  `json:"median_household_income"`
	Population            int64  `json:"population"`
}

// TopCitiesByIncome returns cities ordered by median household income,
// highest first.
func (r *DemographicsRepository) TopCitiesByIncome(ctx context.Context, q store.Querier, limit int) ([]*CitySummary, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT c.city_name, c.state_province, d.median_household_income, d.population
		FROM ref_city c
		JOIN bg_city_demographics d ON c.city_id = d.city_id
		ORDER BY d.median_household_income DESC, c.city_id ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying top cities: %w", err)
	}
	defer rows.Close()

	var cities []*CitySummary
	for rows.Next() {
		c := &CitySummary{}
		if err := rows.Scan(&c.CityName, &c.StateProvince, &c.MedianHouseholdIncome, &c.Population); err != nil {
			return nil, fmt.Errorf("scanning city summary: %w", err)
		}
		cities = append(cities, c)
	}

	return cities, rows.Err()
}
