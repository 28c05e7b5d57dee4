// Package pipeline runs the three dataset loaders in order against one
// database, applying the per-file error policy: a dataset that is missing or
// fails loads nothing, and the run continues with the next one.
package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/config"
	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/ingest"
	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/ingest/advancedstats"
	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/ingest/demographics"
	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/ingest/injuries"
	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/store"
)

type loader interface {
	Load(ctx context.Context, path string) (*ingest.Report, error)
}

// Run loads every dataset file present under cfg.DatasetsDir. The advanced
// stats load runs first because the other two reference the player rows it
// creates. Returns the reports of the datasets that loaded.
func Run(ctx context.Context, db *store.Database, log *logrus.Logger, cfg *config.Config) []*ingest.Report {
	datasets := []struct {
		file   string
		loader loader
	}{
		{config.AdvancedStatsFile, advancedstats.NewLoader(db, log, cfg.ConflictPolicy)},
		{config.InjuriesFile, injuries.NewLoader(db, log)},
		{config.DemographicsFile, demographics.NewLoader(db, log, cfg.ConflictPolicy)},
	}

	var reports []*ingest.Report
	for _, d := range datasets {
		path := filepath.Join(cfg.DatasetsDir, d.file)
		if _, err := os.Stat(path); err != nil {
			log.Warnf("dataset file %s not found, skipping", path)
			continue
		}

		report, err := d.loader.Load(ctx, path)
		if err != nil {
			// Whole-file failure: the load's transaction already rolled
			// back, move on to the next dataset.
			log.Errorf("failed to load %s: %v", path, err)
			continue
		}
		reports = append(reports, report)
	}

	return reports
}
