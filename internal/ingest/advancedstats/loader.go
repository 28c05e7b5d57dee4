package advancedstats

import (
	"context"
	"database/sql"

	"github.com/sirupsen/logrus"

	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/ingest"
	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/store"
	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/store/repository"
)

// DatasetName identifies this source in reports and logs.
const DatasetName = "advanced_stats"

// Loader loads the advanced stats dataset.
type Loader struct {
	db      *store.Database
	log     *logrus.Logger
	policy  store.ConflictPolicy
	players *repository.PlayerRepository
	stats   *repository.StatsRepository
}

// NewLoader creates a loader for the advanced stats dataset.
func NewLoader(db *store.Database, log *logrus.Logger, policy store.ConflictPolicy) *Loader {
	return &Loader{
		db:      db,
		log:     log,
		policy:  policy,
		players: repository.NewPlayerRepository(),
		stats:   repository.NewStatsRepository(),
	}
}

// Load reads the file at path and loads it inside one transaction. A record
// that fails validation is skipped and counted; a database error aborts and
// rolls back the whole file.
func (l *Loader) Load(ctx context.Context, path string) (*ingest.Report, error) {
	header, rows, err := ingest.ReadFile(path)
	if err != nil {
		return nil, err
	}

	index := ingest.HeaderIndex(header)
	statCols := StatColumns(header)

	report := &ingest.Report{Dataset: DatasetName}
	resolver := repository.NewResolver()

	err = l.db.WithTx(ctx, func(tx *sql.Tx) error {
		for n, row := range rows {
			if ingest.IsEmptyRow(row) {
				continue
			}

			rec, err := ParseRow(index, statCols, row)
			if err != nil {
				l.log.WithField("line", n+2).Warnf("[%s] skipping row: %v", DatasetName, err)
				report.RowsSkipped++
				continue
			}

			bio := &store.PlayerBio{
				PlayerID: rec.PlayerID,
				FullName: rec.Player,
			}
			if rec.BirthYear != "" {
				bio.BirthDate = sql.NullString{String: rec.BirthYear, Valid: true}
			}
			if rec.Position != "" {
				bio.Position = sql.NullString{String: rec.Position, Valid: true}
			}
			if err := l.players.Upsert(ctx, tx, bio); err != nil {
				return err
			}

			seasonID, err := resolver.ResolveSeason(ctx, tx, rec.Season)
			if err != nil {
				l.log.WithField("line", n+2).Warnf("[%s] skipping row: %v", DatasetName, err)
				report.RowsSkipped++
				continue
			}

			for _, sv := range rec.Stats {
				statID, err := resolver.ResolveStat(ctx, tx, sv.Name)
				if err != nil {
					return err
				}

				fact := &store.AdvancedStatFact{
					PlayerID:      rec.PlayerID,
					SeasonID:      seasonID,
					StatID:        statID,
					AdvancedValue: sv.Value,
				}
				if err := l.stats.UpsertFact(ctx, tx, fact, l.policy); err != nil {
					return err
				}
				report.FactRows++
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
