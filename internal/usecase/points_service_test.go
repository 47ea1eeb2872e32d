package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/player"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/playerstats"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/proclubs-fantasy/internal/infrastructure/repository/memory"
	fantasymock "github.com/riskibarqy/proclubs-fantasy/internal/mocks/domain/fantasy"
	scoringmock "github.com/riskibarqy/proclubs-fantasy/internal/mocks/domain/scoring"
	"github.com/riskibarqy/proclubs-fantasy/internal/platform/logging"
)

var matchDay = time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

// seededStats gives vpg-fwd-01 14 points (11 as ST, 3 filling in at CB) and
// vpg-gk-01 4 points.
func seededStats() []playerstats.MatchStat {
	return []playerstats.MatchStat{
		{
			LeagueID: memory.LeagueIDVPGEurope, MatchID: "m-1", PlayerID: "vpg-fwd-01", TeamID: "iron-harbour",
			Position: player.PositionST, Counters: scoring.Counters{Goals: 2, Assists: 1}, PlayedAt: matchDay,
		},
		{
			LeagueID: memory.LeagueIDVPGEurope, MatchID: "m-2", PlayerID: "vpg-fwd-01", TeamID: "iron-harbour",
			Position: player.PositionCB, Counters: scoring.Counters{CleanSheets: 1, YellowCards: 1}, PlayedAt: matchDay.Add(24 * time.Hour),
		},
		{
			LeagueID: memory.LeagueIDVPGEurope, MatchID: "m-1", PlayerID: "vpg-gk-01", TeamID: "nordic-storm",
			Position: player.PositionGK, Counters: scoring.Counters{CleanSheets: 1}, PlayedAt: matchDay,
		},
	}
}

type pointsFixture struct {
	players *memory.PlayerRepository
	squads  *memory.SquadRepository
	service *PointsService
}

func newPointsFixture(t *testing.T, leaderboard scoring.LeaderboardStore) pointsFixture {
	t.Helper()

	players := memory.NewPlayerRepository(memory.SeedPlayers())
	squads := memory.NewSquadRepository()
	service := NewPointsService(
		memory.NewLeagueRepository(memory.SeedLeagues()),
		players,
		squads,
		memory.NewPlayerStatsRepository(seededStats()),
		leaderboard,
		2,
		logging.NewNop(),
	)
	service.now = func() time.Time { return matchDay }

	return pointsFixture{players: players, squads: squads, service: service}
}

func upsertTestSquad(t *testing.T, repo *memory.SquadRepository, id, userID string, playerIDs []string) {
	t.Helper()

	picks := make([]fantasy.SquadPick, 0, len(playerIDs))
	for i, playerID := range playerIDs {
		picks = append(picks, fantasy.SquadPick{PlayerID: playerID, Slot: i})
	}
	if err := repo.Upsert(t.Context(), fantasy.Squad{
		ID:            id,
		UserID:        userID,
		LeagueID:      memory.LeagueIDVPGEurope,
		Name:          "Squad " + id,
		FormationName: "4-4-2",
		Picks:         picks,
		CreatedAt:     matchDay,
		UpdatedAt:     matchDay,
	}); err != nil {
		t.Fatalf("upsert squad %s: %v", id, err)
	}
}

func TestPointsService_Calculate(t *testing.T) {
	t.Parallel()

	service := newPointsFixture(t, nil).service

	got, err := service.Calculate(t.Context(), scoring.MatchStats{
		Counters: scoring.Counters{Goals: 1, CleanSheets: 1},
		Position: "MID",
	})
	if err != nil {
		t.Fatalf("calculate points: %v", err)
	}
	if got != 5 {
		t.Fatalf("unexpected points: got=%d want=5", got)
	}

	for _, stats := range []scoring.MatchStats{
		{Counters: scoring.Counters{Goals: -1}, Position: "FWD"},
		{Counters: scoring.Counters{Goals: 1}, Position: "SW"},
	} {
		if _, err := service.Calculate(t.Context(), stats); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", stats, err)
		}
	}
}

func TestPointsService_PlayerPoints_UsesPositionPlayedPerMatch(t *testing.T) {
	t.Parallel()

	service := newPointsFixture(t, nil).service

	got, err := service.PlayerPoints(t.Context(), memory.LeagueIDVPGEurope, "vpg-fwd-01")
	if err != nil {
		t.Fatalf("player points: %v", err)
	}
	if got.Points != 14 {
		t.Fatalf("unexpected points: got=%d want=14", got.Points)
	}
	if got.Season.Appearances != 2 || got.Season.Goals != 2 || got.Season.CleanSheets != 1 {
		t.Fatalf("unexpected season stats: %+v", got.Season)
	}

	_, err = service.PlayerPoints(t.Context(), memory.LeagueIDVPGEurope, "pcl-fwd-01")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for player of another league, got %v", err)
	}
}

func TestPointsService_SquadPoints(t *testing.T) {
	t.Parallel()

	fx := newPointsFixture(t, nil)
	upsertTestSquad(t, fx.squads, "squad-a", "user-a", valid442IDs)

	got, err := fx.service.SquadPoints(t.Context(), "user-a", memory.LeagueIDVPGEurope)
	if err != nil {
		t.Fatalf("squad points: %v", err)
	}
	if got.Total != 18 {
		t.Fatalf("unexpected squad total: got=%d want=18", got.Total)
	}
	if len(got.Players) != len(valid442IDs) || got.Players[0].Player.ID != "vpg-gk-01" {
		t.Fatalf("players must follow pick order, got %d rows", len(got.Players))
	}

	_, err = fx.service.SquadPoints(t.Context(), "user-missing", memory.LeagueIDVPGEurope)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPointsService_RecalculateThenLeaderboard(t *testing.T) {
	t.Parallel()

	leaderboard := scoringmock.NewLeaderboardStore(t)
	anyCtx := mock.MatchedBy(func(v context.Context) bool { return v != nil })
	leaderboard.On("Invalidate", anyCtx, memory.LeagueIDVPGEurope).Return(nil).Once()
	leaderboard.On("Get", anyCtx, memory.LeagueIDVPGEurope).Return(scoring.Leaderboard{}, false, nil).Once()
	leaderboard.
		On("Put", anyCtx, mock.MatchedBy(func(b scoring.Leaderboard) bool { return b.LeagueID == memory.LeagueIDVPGEurope })).
		Return(nil).
		Once()

	fx := newPointsFixture(t, leaderboard)

	withoutStriker := copyIDs(valid442IDs)
	withoutStriker[9] = "vpg-fwd-03"
	upsertTestSquad(t, fx.squads, "squad-a", "user-a", valid442IDs)
	upsertTestSquad(t, fx.squads, "squad-b", "user-b", withoutStriker)

	result, err := fx.service.RecalculatePlayers(t.Context(), memory.LeagueIDVPGEurope, []string{"vpg-gk-01", "vpg-fwd-01", "vpg-mid-02"})
	if err != nil {
		t.Fatalf("recalculate players: %v", err)
	}
	if result.Players != 3 || result.Workers != 2 {
		t.Fatalf("unexpected recalculation result: %+v", result)
	}

	stored, err := fx.players.GetByIDs(t.Context(), memory.LeagueIDVPGEurope, []string{"vpg-fwd-01"})
	if err != nil || len(stored) != 1 {
		t.Fatalf("get recalculated player: %v", err)
	}
	if stored[0].Points != 14 {
		t.Fatalf("unexpected stored points: got=%d want=14", stored[0].Points)
	}

	board, err := fx.service.Leaderboard(t.Context(), memory.LeagueIDVPGEurope)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(board.Entries) != 2 {
		t.Fatalf("unexpected entry count: got=%d want=2", len(board.Entries))
	}
	first, second := board.Entries[0], board.Entries[1]
	if first.SquadID != "squad-a" || first.Points != 18 || first.Rank != 1 {
		t.Fatalf("unexpected leader: %+v", first)
	}
	if second.SquadID != "squad-b" || second.Points != 4 || second.Rank != 2 {
		t.Fatalf("unexpected runner-up: %+v", second)
	}
	if !board.CalculatedAt.Equal(matchDay) {
		t.Fatalf("unexpected calculated at: %v", board.CalculatedAt)
	}
}

func TestPointsService_Leaderboard_ServesStoredSnapshotUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cached := scoring.Leaderboard{
		LeagueID: memory.LeagueIDVPGEurope,
		Entries:  []scoring.LeaderboardEntry{{Rank: 1, SquadID: "cached", Points: 99}},
	}

	leaderboard := scoringmock.NewLeaderboardStore(t)
	leaderboard.
		On("Get", mock.MatchedBy(func(v context.Context) bool { return v != nil }), memory.LeagueIDVPGEurope).
		Return(cached, true, nil).
		Once()
	squadRepo := fantasymock.NewRepository(t)

	service := NewPointsService(
		memory.NewLeagueRepository(memory.SeedLeagues()),
		memory.NewPlayerRepository(memory.SeedPlayers()),
		squadRepo,
		memory.NewPlayerStatsRepository(nil),
		leaderboard,
		0,
		logging.NewNop(),
	)

	got, err := service.Leaderboard(ctx, memory.LeagueIDVPGEurope)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(got.Entries) != 1 || got.Entries[0].SquadID != "cached" {
		t.Fatalf("expected cached snapshot, got %+v", got.Entries)
	}
}

func TestPointsService_Leaderboard_UnknownLeague(t *testing.T) {
	t.Parallel()

	service := newPointsFixture(t, nil).service
	_, err := service.Leaderboard(t.Context(), "missing-league")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
