// Package demographics loads the per-zip housing/demographics dataset
// (American_Housing_Data_20231209.csv) into ref_city and
// bg_city_demographics, aggregating zip-level rows up to one row per city.
package demographics

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/ingest"
)

// ZipRecord is a validated per-zip input row.
type ZipRecord struct {
	City         string
	State        string
	Population   int64
	MedianIncome float64
}

// CityAggregate is one output row: population summed and income averaged
// across the city's zip rows.
type CityAggregate struct {
	City         string
	State        string
	Population   int64
	MedianIncome int64
}

// ParseRow converts one raw row into a ZipRecord. City and state are the
// identifying fields; rows missing either are unloadable.
func ParseRow(index map[string]int, row []string) (*ZipRecord, error) {
	city := ingest.Field(row, index, "city")
	state := ingest.Field(row, index, "state")
	if city == "" || state == "" {
		return nil, fmt.Errorf("missing city or state")
	}

	rec := &ZipRecord{City: city, State: state}

	if raw := ingest.Field(row, index, "zip code population"); raw != "" {
		pop, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid population %q for %s, %s", raw, city, state)
		}
		rec.Population = int64(pop)
	}

	if raw := ingest.Field(row, index, "median household income"); raw != "" {
		income, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid income %q for %s, %s", raw, city, state)
		}
		rec.MedianIncome = income
	}

	return rec, nil
}

// Aggregate folds zip-level records into one row per (city, state), sorted by
// state then city so output order is deterministic.
func Aggregate(records []*ZipRecord) []*CityAggregate {
	type accum struct {
		population  int64
		incomeTotal float64
		rows        int
	}

	byCity := make(map[[2]string]*accum)
	for _, rec := range records {
		key := [2]string{rec.City, rec.State}
		a, ok := byCity[key]
		if !ok {
			a = &accum{}
			byCity[key] = a
		}
		a.population += rec.Population
		a.incomeTotal += rec.MedianIncome
		a.rows++
	}

	aggregates := make([]*CityAggregate, 0, len(byCity))
	for key, a := range byCity {
		aggregates = append(aggregates, &CityAggregate{
			City:         key[0],
			State:        key[1],
			Population:   a.population,
			MedianIncome: int64(a.incomeTotal / float64(a.rows)),
		})
	}

	sort.Slice(aggregates, func(i, j int) bool {
		if aggregates[i].State != aggregates[j].State {
			return aggregates[i].State < aggregates[j].State
		}
		return aggregates[i].City < aggregates[j].City
	})

	return aggregates
}
