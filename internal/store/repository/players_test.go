package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/store"
)

func TestPlayerUpsertPreservesReferences(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewPlayerRepository()

	if err := repo.Upsert(ctx, db.DB(), &store.PlayerBio{PlayerID: 1, FullName: "Test Player"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	seedInjury(t, db, 1, "2019-01-10", "test")

	// Re-upserting the bio must update in place, not replace the row, so the
	// injury's foreign key keeps pointing at a live row.
	updated := &store.PlayerBio{
		PlayerID: 1,
		FullName: "Test Player",
		Position: sql.NullString{String: "C", Valid: true},
	}
	if err := repo.Upsert(ctx, db.DB(), updated); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	got, err := repo.GetByID(ctx, db.DB(), 1)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.Position.Valid || got.Position.String != "C" {
		t.Errorf("position = %v, want C", got.Position)
	}

	var n int
	if err := db.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM bg_injury_report WHERE player_id = 1`).Scan(&n); err != nil {
		t.Fatalf("counting injuries: %v", err)
	}
	if n != 1 {
		t.Errorf("injuries after re-upsert = %d, want 1", n)
	}
}

func TestFindIDByName(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewPlayerRepository()

	seedPlayer(t, db, 10, "LeBron James")
	seedPlayer(t, db, 20, "Mike James")

	id, found, err := repo.FindIDByName(ctx, db.DB(), "LeBron James")
	if err != nil {
		t.Fatalf("FindIDByName: %v", err)
	}
	if !found || id != 10 {
		t.Errorf("exact match = (%d, %v), want (10, true)", id, found)
	}

	// Several partial matches: lowest id wins.
	id, found, err = repo.FindIDByName(ctx, db.DB(), "James")
	if err != nil {
		t.Fatalf("FindIDByName: %v", err)
	}
	if !found || id != 10 {
		t.Errorf("partial match = (%d, %v), want (10, true)", id, found)
	}

	_, found, err = repo.FindIDByName(ctx, db.DB(), "Nobody")
	if err != nil {
		t.Fatalf("FindIDByName: %v", err)
	}
	if found {
		t.Error("found unknown player")
	}
}

func TestNameIndexLowestIDWins(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewPlayerRepository()

	seedPlayer(t, db, 5, "Marcus Williams")
	seedPlayer(t, db, 9, "Marcus Williams")

	index, err := repo.NameIndex(ctx, db.DB())
	if err != nil {
		t.Fatalf("NameIndex: %v", err)
	}
	if got := index["Marcus Williams"]; got != 5 {
		t.Errorf("duplicate name maps to %d, want 5", got)
	}
}
