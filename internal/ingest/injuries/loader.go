package injuries

import (
	"context"
	"database/sql"

	"github.com/sirupsen/logrus"

	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/ingest"
	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/store"
	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/store/repository"
)

// DatasetName identifies this source in reports and logs.
const DatasetName = "injuries"

// SourceCitation tags every row this loader writes, and is the key used to
// replace them on re-import.
const SourceCitation = "Kaggle NBA Injuries Dataset"

// Loader loads the injury event log.
type Loader struct {
	db       *store.Database
	log      *logrus.Logger
	players  *repository.PlayerRepository
	injuries *repository.InjuryRepository
}

// NewLoader creates a loader for the injury dataset.
func NewLoader(db *store.Database, log *logrus.Logger) *Loader {
	return &Loader{
		db:       db,
		log:      log,
		players:  repository.NewPlayerRepository(),
		injuries: repository.NewInjuryRepository(),
	}
}

// Load reads the event log at path and loads it inside one transaction.
// Because the source is an event log with no natural per-event key, the load
// first deletes the rows written by a previous run of this dataset, making
// re-imports idempotent. Events naming players absent from stat_player_bio
// are skipped; Acquired events close the player's latest open injury.
func (l *Loader) Load(ctx context.Context, path string) (*ingest.Report, error) {
	header, rows, err := ingest.ReadFile(path)
	if err != nil {
		return nil, err
	}

	index := ingest.HeaderIndex(header)
	report := &ingest.Report{Dataset: DatasetName}

	err = l.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := l.injuries.DeleteForLoad(ctx, tx, SourceCitation); err != nil {
			return err
		}

		nameIndex, err := l.players.NameIndex(ctx, tx)
		if err != nil {
			return err
		}

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

			playerID, ok := matchPlayer(nameIndex, rec.Name)
			if !ok {
				report.RowsSkipped++
				continue
			}

			switch rec.Event {
			case Relinquished:
				injury := &store.InjuryReport{
					PlayerID:       playerID,
					InjuryDate:     rec.Date,
					BodyPart:       sql.NullString{String: BodyPart(rec.Notes), Valid: true},
					SourceCitation: sql.NullString{String: SourceCitation, Valid: true},
				}
				if rec.Notes != "" {
					injury.Severity = sql.NullString{String: rec.Notes, Valid: true}
				}
				if _, err := l.injuries.Insert(ctx, tx, injury); err != nil {
					return err
				}
				report.RowsLoaded++

			case Acquired:
				closed, err := l.injuries.CloseOpenInjury(ctx, tx, playerID, rec.Date)
				if err != nil {
					return err
				}
				if closed {
					report.RowsLoaded++
				} else {
					// Return event with no matching open injury.
					report.RowsSkipped++
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.log.Infof("[%s] ✓ %s", DatasetName, report)
	return report, nil
}

// matchPlayer tries each name variant against the bio name index.
func matchPlayer(nameIndex map[string]int64, raw string) (int64, bool) {
	for _, variant := range NameVariants(raw) {
		if id, ok := nameIndex[variant]; ok {
			return id, true
		}
	}
	return 0, false
}
