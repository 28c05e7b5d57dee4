package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/api/rest"
	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/config"
	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/ingest/pipeline"
	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/store"
)

const (
	serviceName    = "nba-stats-hub"
	serviceVersion = "1.0.0"
)

func main() {
	log := logrus.New()
	log.Printf("Starting %s v%s", serviceName, serviceVersion)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	// Open the single database connection; held for the process lifetime.
	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open database %s: %v", cfg.DatabasePath, err)
	}
	defer db.Close()

	log.Printf("✓ Opened database %s", cfg.DatabasePath)

	ctx := context.Background()

	if err := db.InitSchema(ctx); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	// Seed reference data (non-fatal - may already exist)
	if err := db.SeedBasicStatTypes(ctx); err != nil {
		log.Warnf("Seed data warning: %v (continuing anyway)", err)
	}

	// Run the ETL loaders when the datasets folder is present. Skipped rows
	// and missing files are reported, not fatal.
	if _, err := os.Stat(cfg.DatasetsDir); err == nil {
		log.Printf("Loading datasets from %s...", cfg.DatasetsDir)
		reports := pipeline.Run(ctx, db, log, cfg)
		for _, r := range reports {
			log.Printf("  %s", r)
		}
	} else {
		log.Printf("Datasets folder %s not found, skipping import", cfg.DatasetsDir)
	}

	// Start the interactive HTTP interface.
	server := rest.NewServer(cfg.RESTPort, db, log)
	go func() {
		log.Printf("✓ REST API listening on :%s", cfg.RESTPort)
		if err := server.Start(); err != nil {
			log.Printf("REST server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST server shutdown error: %v", err)
	}

	log.Printf("%s stopped", serviceName)
}
