package demographics

import (
	"context"
	"database/sql"

	"github.com/sirupsen/logrus"

	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/ingest"
	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/store"
	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/store/repository"
)

// DatasetName identifies this source in reports and logs.
const DatasetName = "demographics"

// Loader loads the city demographics dataset.
type Loader struct {
	db     *store.Database
	log    *logrus.Logger
	policy store.ConflictPolicy
	demos  *repository.DemographicsRepository
}

// NewLoader creates a loader for the demographics dataset.
func NewLoader(db *store.Database, log *logrus.Logger, policy store.ConflictPolicy) *Loader {
	return &Loader{
		db:     db,
		log:    log,
		policy: policy,
		demos:  repository.NewDemographicsRepository(),
	}
}

// Load reads the file at path, aggregates its zip-level rows per city, and
// writes one ref_city + bg_city_demographics pair per city inside one
// transaction. RowsLoaded counts cities written; RowsSkipped counts input
// rows that failed validation.
func (l *Loader) Load(ctx context.Context, path string) (*ingest.Report, error) {
	header, rows, err := ingest.ReadFile(path)
	if err != nil {
		return nil, err
	}

	index := ingest.HeaderIndex(header)
	report := &ingest.Report{Dataset: DatasetName}

	var records []*ZipRecord
	for n, row := range rows {
		if ingest.IsEmptyRow(row) {
			continue
		}

		rec, err := ParseRow(index, row)
		if err != nil {
			l.log.WithField("line", n+2).Warnf("[%s] skipping row: %v", DatasetName, err)
			report.RowsSkipped++
			continue
		}
		records = append(records, rec)
	}

	aggregates := Aggregate(records)
	resolver := repository.NewResolver()

	err = l.db.WithTx(ctx, func(tx *sql.Tx) error {
		for _, agg := range aggregates {
			cityID, err := resolver.ResolveCity(ctx, tx, agg.City, agg.State, "USA")
			if err != nil {
				return err
			}

			demo := &store.CityDemographics{
				CityID:                cityID,
				Population:            agg.Population,
				MedianHouseholdIncome: agg.MedianIncome,
				PovertyRate:           0.0,
			}
			if err := l.demos.Upsert(ctx, tx, demo, l.policy); err != nil {
				return err
			}
			report.RowsLoaded++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.log.Infof("[%s] ✓ %s", DatasetName, report)
	return report, nil
}
