package advancedstats

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/store"
	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/store/repository"
)

func testSetup(t *testing.T) (*store.Database, *logrus.Logger) {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.InitSchema(context.Background()); err != nil {
		t.Fatalf("InitSchema: %v", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)
	return db, log
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "advanced.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

const fixture = `seas_id,season,player_id,player,pos,g,mp,per,ws
1,2015-16,10,Player One,C,70,2100,22.5,8.1
2,2015-16,20,Player Two,PG,65,1900,18.0,5.5
3,2015-16,,No Id,SG,10,100,9.0,0.2
`

func TestLoad(t *testing.T) {
	db, log := testSetup(t)
	loader := NewLoader(db, log, store.Overwrite)

	report, err := loader.Load(context.Background(), writeCSV(t, fixture))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if report.RowsLoaded != 2 {
		t.Errorf("RowsLoaded = %d, want 2", report.RowsLoaded)
	}
	if report.RowsSkipped != 1 {
		t.Errorf("RowsSkipped = %d, want 1", report.RowsSkipped)
	}
	// Two loadable rows, two stat columns each.
	if report.FactRows != 4 {
		t.Errorf("FactRows = %d, want 4", report.FactRows)
	}

	n, err := repository.NewStatsRepository().CountFacts(context.Background(), db.DB())
	if err != nil {
		t.Fatalf("CountFacts: %v", err)
	}
	if n != 4 {
		t.Errorf("fact rows in db = %d, want 4", n)
	}
}

func TestLoadIdempotent(t *testing.T) {
	db, log := testSetup(t)
	ctx := context.Background()
	loader := NewLoader(db, log, store.Overwrite)
	path := writeCSV(t, fixture)

	if _, err := loader.Load(ctx, path); err != nil {
		t.Fatalf("first Load: %v", err)
	}
	if _, err := loader.Load(ctx, path); err != nil {
		t.Fatalf("second Load: %v", err)
	}

	n, err := repository.NewStatsRepository().CountFacts(ctx, db.DB())
	if err != nil {
		t.Fatalf("CountFacts: %v", err)
	}
	if n != 4 {
		t.Errorf("fact rows after reload = %d, want 4", n)
	}

	var players int
	if err := db.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM stat_player_bio`).Scan(&players); err != nil {
		t.Fatalf("counting players: %v", err)
	}
	if players != 2 {
		t.Errorf("players after reload = %d, want 2", players)
	}
}

func TestLoadOverwriteConvergesToFile(t *testing.T) {
	db, log := testSetup(t)
	ctx := context.Background()
	loader := NewLoader(db, log, store.Overwrite)

	if _, err := loader.Load(ctx, writeCSV(t, fixture)); err != nil {
		t.Fatalf("first Load: %v", err)
	}

	changed := `seas_id,season,player_id,player,pos,g,mp,per,ws
1,2015-16,10,Player One,C,70,2100,25.0,8.1
`
	if _, err := loader.Load(ctx, writeCSV(t, changed)); err != nil {
		t.Fatalf("second Load: %v", err)
	}

	var per float64
	err := db.DB().QueryRowContext(ctx, `
		SELECT f.advanced_value
		FROM fact_player_advanced_stats f
		JOIN ref_advanced_stat_type t ON f.stat_id = t.stat_id
		WHERE f.player_id = 10 AND t.stat_name = 'per'
	`).Scan(&per)
	if err != nil {
		t.Fatalf("reading fact: %v", err)
	}
	if per != 25.0 {
		t.Errorf("per after re-import = %v, want 25.0", per)
	}
}

func TestLoadRollsBackWholeFile(t *testing.T) {
	db, log := testSetup(t)
	ctx := context.Background()
	loader := NewLoader(db, log, store.Overwrite)

	// Fail the write for the second row, after the first has succeeded.
	_, err := db.DB().ExecContext(ctx, `
		CREATE TRIGGER fail_on_player BEFORE INSERT ON stat_player_bio
		WHEN NEW.player_id = 20
		BEGIN SELECT RAISE(ABORT, 'injected failure'); END
	`)
	if err != nil {
		t.Fatalf("creating trigger: %v", err)
	}

	if _, err := loader.Load(ctx, writeCSV(t, fixture)); err == nil {
		t.Fatal("expected Load to fail")
	}

	var players, facts int
	if err := db.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM stat_player_bio`).Scan(&players); err != nil {
		t.Fatalf("counting players: %v", err)
	}
	if err := db.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM fact_player_advanced_stats`).Scan(&facts); err != nil {
		t.Fatalf("counting facts: %v", err)
	}
	if players != 0 || facts != 0 {
		t.Errorf("rows after failed load = %d players, %d facts, want 0, 0", players, facts)
	}
}
