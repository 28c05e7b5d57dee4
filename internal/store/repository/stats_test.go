package repository

import (
	"context"
	"testing"

	"github.com/jfinley12/DatabaseSystemsProject-NBAStatHub/internal/store"
)

func seedPlayer(t *testing.T, db *store.Database, id int64, name string) {
	t.Helper()
	err := NewPlayerRepository().Upsert(context.Background(), db.DB(), &store.PlayerBio{
		PlayerID: id,
		FullName: name,
	})
	if err != nil {
		t.Fatalf("seeding player %d: %v", id, err)
	}
}

func seedFact(t *testing.T, db *store.Database, playerID, seasonID, statID int64, value float64) {
	t.Helper()
	err := NewStatsRepository().UpsertFact(context.Background(), db.DB(), &store.AdvancedStatFact{
		PlayerID:      playerID,
		SeasonID:      seasonID,
		StatID:        statID,
		AdvancedValue: value,
	}, store.Overwrite)
	if err != nil {
		t.Fatalf("seeding fact: %v", err)
	}
}

func TestUpsertFactPolicies(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewStatsRepository()
	r := NewResolver()

	seedPlayer(t, db, 1, "Test Player")
	seasonID, err := r.ResolveSeason(ctx, db.DB(), "2015-16")
	if err != nil {
		t.Fatalf("ResolveSeason: %v", err)
	}
	statID, err := r.ResolveStat(ctx, db.DB(), "per")
	if err != nil {
		t.Fatalf("ResolveStat: %v", err)
	}

	fact := &store.AdvancedStatFact{PlayerID: 1, SeasonID: seasonID, StatID: statID, AdvancedValue: 10.0}
	if err := repo.UpsertFact(ctx, db.DB(), fact, store.Overwrite); err != nil {
		t.Fatalf("UpsertFact: %v", err)
	}

	value := func() float64 {
		var v float64
		err := db.DB().QueryRowContext(ctx,
			`SELECT advanced_value FROM fact_player_advanced_stats WHERE player_id = 1`).Scan(&v)
		if err != nil {
			t.Fatalf("reading fact: %v", err)
		}
		return v
	}

	fact.AdvancedValue = 20.0
	if err := repo.UpsertFact(ctx, db.DB(), fact, store.Overwrite); err != nil {
		t.Fatalf("UpsertFact overwrite: %v", err)
	}
	if got := value(); got != 20.0 {
		t.Errorf("after overwrite value = %v, want 20.0", got)
	}

	fact.AdvancedValue = 30.0
	if err := repo.UpsertFact(ctx, db.DB(), fact, store.Skip); err != nil {
		t.Fatalf("UpsertFact skip: %v", err)
	}
	if got := value(); got != 20.0 {
		t.Errorf("after skip value = %v, want 20.0", got)
	}

	n, err := repo.CountFacts(ctx, db.DB())
	if err != nil {
		t.Fatalf("CountFacts: %v", err)
	}
	if n != 1 {
		t.Errorf("fact rows = %d, want 1", n)
	}
}

func TestTopPlayersByStatTies(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewStatsRepository()
	r := NewResolver()

	seasonID, err := r.ResolveSeason(ctx, db.DB(), "2019-20")
	if err != nil {
		t.Fatalf("ResolveSeason: %v", err)
	}
	statID, err := r.ResolveStat(ctx, db.DB(), "orb_percent")
	if err != nil {
		t.Fatalf("ResolveStat: %v", err)
	}

	values := map[int64]float64{1: 1.0, 2: 9.5, 3: 9.5, 4: 3.2, 5: 0.5}
	names := map[int64]string{1: "Player One", 2: "Player Two", 3: "Player Three", 4: "Player Four", 5: "Player Five"}
	for id, v := range values {
		seedPlayer(t, db, id, names[id])
		seedFact(t, db, id, seasonID, statID, v)
	}

	ranked, err := repo.TopPlayersByStat(ctx, db.DB(), "orb_percent", 5)
	if err != nil {
		t.Fatalf("TopPlayersByStat: %v", err)
	}
	if len(ranked) != 5 {
		t.Fatalf("rows = %d, want 5", len(ranked))
	}

	// Values descending; tied pair ordered by player id ascending.
	wantOrder := []int64{2, 3, 4, 1, 5}
	for i, want := range wantOrder {
		if ranked[i].PlayerID != want {
			t.Errorf("row %d player = %d, want %d", i, ranked[i].PlayerID, want)
		}
	}

	// Tied values share a rank.
	if ranked[0].Rank != 1 || ranked[1].Rank != 1 {
		t.Errorf("tied ranks = %d, %d, want 1, 1", ranked[0].Rank, ranked[1].Rank)
	}
	if ranked[2].Rank != 3 {
		t.Errorf("rank after tie = %d, want 3", ranked[2].Rank)
	}
}

func TestTopPlayersByStatEmpty(t *testing.T) {
	db := openTestDB(t)

	ranked, err := NewStatsRepository().TopPlayersByStat(context.Background(), db.DB(), "per", 5)
	if err != nil {
		t.Fatalf("TopPlayersByStat: %v", err)
	}
	if len(ranked) != 0 {
		t.Errorf("rows = %d, want 0", len(ranked))
	}
}
