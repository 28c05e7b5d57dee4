// Command importer initializes the schema and runs the three dataset loads
// once, without starting the HTTP interface. Useful for batch re-imports.
package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/config"
	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/ingest/pipeline"
	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/store"
)

func main() {
	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open database %s: %v", cfg.DatabasePath, err)
	}
	defer db.Close()

	ctx := context.Background()

	if err := db.InitSchema(ctx); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}
	if err := db.SeedBasicStatTypes(ctx); err != nil {
		log.Warnf("Seed data warning: %v (continuing anyway)", err)
	}

	if _, err := os.Stat(cfg.DatasetsDir); err != nil {
		log.Fatalf("Datasets folder %s not found", cfg.DatasetsDir)
	}

	log.Printf("Loading datasets from %s...", cfg.DatasetsDir)
	reports := pipeline.Run(ctx, db, log, cfg)
	for _, r := range reports {
		log.Printf("  %s", r)
	}

	log.Println("✓ Import complete")
}
