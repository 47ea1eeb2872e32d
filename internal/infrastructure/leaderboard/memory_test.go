package leaderboard

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/scoring"
)

func sampleBoard(leagueID string) scoring.Leaderboard {
	return scoring.Leaderboard{
		LeagueID: leagueID,
		Entries: scoring.Rank([]scoring.LeaderboardEntry{
			{SquadID: "sq-1", UserID: "u-1", SquadName: "Route One FC", Points: 42},
			{SquadID: "sq-2", UserID: "u-2", SquadName: "Tiki Taka XI", Points: 57},
		}),
		CalculatedAt: time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC),
	}
}

func TestMemoryStore_PutGetInvalidate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	if _, ok, err := store.Get(ctx, "vpg-eu"); err != nil || ok {
		t.Fatalf("expected miss on empty store, ok=%v err=%v", ok, err)
	}

	if err := store.Put(ctx, sampleBoard("vpg-eu")); err != nil {
		t.Fatalf("put leaderboard: %v", err)
	}

	got, ok, err := store.Get(ctx, "vpg-eu")
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if len(got.Entries) != 2 || got.Entries[0].SquadID != "sq-2" {
		t.Fatalf("unexpected entries: %+v", got.Entries)
	}

	if err := store.Invalidate(ctx, "vpg-eu"); err != nil {
		t.Fatalf("invalidate leaderboard: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "vpg-eu"); ok {
		t.Fatalf("expected miss after invalidate")
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	board := sampleBoard("vpg-eu")
	if err := store.Put(ctx, board); err != nil {
		t.Fatalf("put leaderboard: %v", err)
	}
	board.Entries[0].Points = 0

	got, _, _ := store.Get(ctx, "vpg-eu")
	got.Entries[0].SquadName = "mutated"

	again, _, _ := store.Get(ctx, "vpg-eu")
	if again.Entries[0].Points != 57 {
		t.Fatalf("unexpected points after caller mutation: got=%d want=57", again.Entries[0].Points)
	}
	if again.Entries[0].SquadName != "Tiki Taka XI" {
		t.Fatalf("unexpected squad name after caller mutation: %s", again.Entries[0].SquadName)
	}
}

func TestMemoryStore_IsolatesLeagues(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	_ = store.Put(ctx, sampleBoard("vpg-eu"))
	_ = store.Put(ctx, sampleBoard("pcl-na"))

	_ = store.Invalidate(ctx, "vpg-eu")

	if _, ok, _ := store.Get(ctx, "pcl-na"); !ok {
		t.Fatalf("expected other league snapshot to survive invalidation")
	}
}
