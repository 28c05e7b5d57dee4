package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/config"
	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/ingest/advancedstats"
	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/ingest/injuries"
	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/store"
)

func testSetup(t *testing.T) (*store.Database, *logrus.Logger, *config.Config) {
	t.Helper()

	dir := t.TempDir()
	db, err := store.Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.InitSchema(context.Background()); err != nil {
		t.Fatalf("InitSchema: %v", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{
		DatasetsDir:    filepath.Join(dir, "datasets"),
		ConflictPolicy: store.Overwrite,
	}
	if err := os.MkdirAll(cfg.DatasetsDir, 0o755); err != nil {
		t.Fatalf("creating datasets dir: %v", err)
	}
	return db, log, cfg
}

func writeDataset(t *testing.T, cfg *config.Config, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(cfg.DatasetsDir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

const advancedFixture = `seas_id,season,player_id,player,pos,g,mp,per,ws
1,2015-16,10,Player One,C,70,2100,22.5,8.1
`

const injuriesFixture = `Date,Team,Acquired,Relinquished,Notes
2019-01-01,BOS,,Player One,sore knee
`

func TestRunSkipsMissingDatasets(t *testing.T) {
	db, log, cfg := testSetup(t)
	writeDataset(t, cfg, config.AdvancedStatsFile, advancedFixture)

	reports := Run(context.Background(), db, log, cfg)

	if len(reports) != 1 {
		t.Fatalf("reports = %d, want 1", len(reports))
	}
	if reports[0].Dataset != advancedstats.DatasetName {
		t.Errorf("dataset = %s, want %s", reports[0].Dataset, advancedstats.DatasetName)
	}
}

func TestRunOrdersAdvancedStatsFirst(t *testing.T) {
	db, log, cfg := testSetup(t)
	writeDataset(t, cfg, config.AdvancedStatsFile, advancedFixture)
	writeDataset(t, cfg, config.InjuriesFile, injuriesFixture)

	reports := Run(context.Background(), db, log, cfg)

	if len(reports) != 2 {
		t.Fatalf("reports = %d, want 2", len(reports))
	}
	if reports[0].Dataset != advancedstats.DatasetName || reports[1].Dataset != injuries.DatasetName {
		t.Errorf("order = %s, %s", reports[0].Dataset, reports[1].Dataset)
	}

	// The injury row matched the player the first load created.
	if reports[1].RowsLoaded != 1 {
		t.Errorf("injury rows loaded = %d, want 1", reports[1].RowsLoaded)
	}
}

func TestRunContinuesPastFailingDataset(t *testing.T) {
	db, log, cfg := testSetup(t)
	// A header-only advanced file loads zero rows but succeeds; an empty
	// injuries file is a whole-file failure.
	writeDataset(t, cfg, config.AdvancedStatsFile, advancedFixture)
	writeDataset(t, cfg, config.InjuriesFile, "")
	writeDataset(t, cfg, config.DemographicsFile, `Zip Code,City,State,Zip Code Population,Median Household Income
02108,Boston,MA,4000,90000
`)

	reports := Run(context.Background(), db, log, cfg)

	if len(reports) != 2 {
		t.Fatalf("reports = %d, want 2 (injuries failed)", len(reports))
	}
	if reports[0].Dataset != advancedstats.DatasetName || reports[1].Dataset != "demographics" {
		t.Errorf("order = %s, %s", reports[0].Dataset, reports[1].Dataset)
	}
}
