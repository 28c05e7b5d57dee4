package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// schemaDDL is the persisted-state contract. Table and column names must not
// change: existing database files depend on them. Every statement is written
// with IF NOT EXISTS so the batch is safe to run on every process start.
const schemaDDL = `
	-- Reference tables

	CREATE TABLE IF NOT EXISTS ref_city (
		city_id INTEGER PRIMARY KEY AUTOINCREMENT,
		city_name TEXT NOT NULL,
		state_province TEXT NOT NULL,
		country TEXT NOT NULL DEFAULT 'USA',
		UNIQUE (city_name, state_province)
	);

	CREATE TABLE IF NOT EXISTS ref_season (
		season_id INTEGER PRIMARY KEY,
		season_year TEXT NOT NULL UNIQUE,
		is_current INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS ref_advanced_stat_type (
		stat_id INTEGER PRIMARY KEY AUTOINCREMENT,
		stat_name TEXT NOT NULL UNIQUE,
		stat_abbreviation TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS ref_basic_stat_type (
		stat_id INTEGER PRIMARY KEY AUTOINCREMENT,
		stat_name TEXT NOT NULL UNIQUE,
		stat_abbreviation TEXT NOT NULL
	);

	-- Player biography: player_id comes from the source file, not from
	-- AUTOINCREMENT, so the same player keeps the same id across reloads.

	CREATE TABLE IF NOT EXISTS stat_player_bio (
		player_id INTEGER PRIMARY KEY,
		full_name TEXT NOT NULL,
		birth_date TEXT,
		position TEXT,
		salary_usd INTEGER NOT NULL DEFAULT 0
	);

	-- Fact table: one row per observed (player, season, stat) triple.

	CREATE TABLE IF NOT EXISTS fact_player_advanced_stats (
		player_id INTEGER NOT NULL REFERENCES stat_player_bio(player_id),
		season_id INTEGER NOT NULL REFERENCES ref_season(season_id),
		stat_id INTEGER NOT NULL REFERENCES ref_advanced_stat_type(stat_id),
		advanced_value REAL NOT NULL,
		PRIMARY KEY (player_id, season_id, stat_id)
	);

	-- Background tables

	CREATE TABLE IF NOT EXISTS bg_injury_report (
		report_id INTEGER PRIMARY KEY AUTOINCREMENT,
		player_id INTEGER NOT NULL REFERENCES stat_player_bio(player_id),
		injury_date TEXT NOT NULL,
		return_date TEXT,
		body_part TEXT,
		severity TEXT,
		source_citation TEXT
	);

	CREATE TABLE IF NOT EXISTS bg_city_demographics (
		city_id INTEGER PRIMARY KEY REFERENCES ref_city(city_id),
		population INTEGER NOT NULL DEFAULT 0,
		median_household_income INTEGER NOT NULL DEFAULT 0,
		poverty_rate REAL NOT NULL DEFAULT 0.0
	);

	-- User tables

	CREATE TABLE IF NOT EXISTS core_user_account (
		user_id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT (datetime('now'))
	);

	CREATE TABLE IF NOT EXISTS core_user_profile (
		user_id INTEGER PRIMARY KEY REFERENCES core_user_account(user_id),
		display_name TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS mart_user_predictions (
		prediction_id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL REFERENCES core_user_account(user_id),
		player_id INTEGER NOT NULL REFERENCES stat_player_bio(player_id),
		prediction_type TEXT NOT NULL,
		prediction_value TEXT,
		prediction_date TEXT NOT NULL DEFAULT (date('now'))
	);

	CREATE INDEX IF NOT EXISTS idx_fact_adv_season ON fact_player_advanced_stats(season_id);
	CREATE INDEX IF NOT EXISTS idx_fact_adv_stat ON fact_player_advanced_stats(stat_id);
	CREATE INDEX IF NOT EXISTS idx_injury_player ON bg_injury_report(player_id);
	CREATE INDEX IF NOT EXISTS idx_predictions_user ON mart_user_predictions(user_id);
`

// InitSchema applies the schema inside one transaction. SQLite DDL is
// transactional, so a malformed batch leaves the database untouched.
func (db *Database) InitSchema(ctx context.Context) error {
	log.Println("Applying database schema...")

	err := db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, schemaDDL); err != nil {
			return fmt.Errorf("failed to execute schema DDL: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Println("✓ Schema applied")
	return nil
}

// basicStatSeed is the fixed reference data for the basic per-game counting
// stats that the advanced-stats source carries but does not pivot.
var basicStatSeed = []struct {
	name string
	abbr string
}{
	{"games", "g"},
	{"games_started", "gs"},
	{"minutes_played", "mp"},
}

// SeedBasicStatTypes inserts the basic stat lookup rows. Safe to call every
// start: existing rows are left alone.
func (db *Database) SeedBasicStatTypes(ctx context.Context) error {
	return db.WithTx(ctx, func(tx *sql.Tx) error {
		for _, s := range basicStatSeed {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO ref_basic_stat_type (stat_name, stat_abbreviation)
				VALUES (?, ?)
				ON CONFLICT (stat_name) DO NOTHING
			`, s.name, s.abbr)
			if err != nil {
				return fmt.Errorf("failed to seed basic stat %q: %w", s.name, err)
			}
		}
		return nil
	})
}
