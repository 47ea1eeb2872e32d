package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/formation"
	"github.com/riskibarqy/proclubs-fantasy/internal/infrastructure/repository/memory"
	scoringmock "github.com/riskibarqy/proclubs-fantasy/internal/mocks/domain/scoring"
	"github.com/riskibarqy/proclubs-fantasy/internal/platform/logging"
)

func newTestSquadService(t *testing.T, rules fantasy.Rules) *SquadService {
	t.Helper()
	return NewSquadService(
		memory.NewLeagueRepository(memory.SeedLeagues()),
		memory.NewPlayerRepository(memory.SeedPlayers()),
		memory.NewSquadRepository(),
		newTestFormationService(t),
		nil,
		rules,
		staticIDGenerator{id: "squad-001"},
		logging.NewNop(),
	)
}

func TestSquadService_Save_CreateThenUpdate(t *testing.T) {
	t.Parallel()

	service := newTestSquadService(t, fantasy.DefaultRules())

	firstNow := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return firstNow }

	created, err := service.Save(t.Context(), SaveSquadInput{
		UserID:        "user-1",
		LeagueID:      memory.LeagueIDVPGEurope,
		Name:          "Nordic Press",
		FormationName: formation.Name442,
		PlayerIDs:     copyIDs(valid442IDs),
	})
	if err != nil {
		t.Fatalf("save squad create failed: %v", err)
	}

	if created.ID != "squad-001" {
		t.Fatalf("expected squad id squad-001, got %s", created.ID)
	}
	if !created.CreatedAt.Equal(firstNow) || !created.UpdatedAt.Equal(firstNow) {
		t.Fatalf("expected created/updated at %v, got created=%v updated=%v", firstNow, created.CreatedAt, created.UpdatedAt)
	}
	if created.TotalCost() != 975 {
		t.Fatalf("unexpected total cost: got=%d want=975", created.TotalCost())
	}
	if len(created.Picks) != 11 {
		t.Fatalf("unexpected pick count: got=%d want=11", len(created.Picks))
	}
	if got := created.Picks[10]; got.PlayerID != "vpg-fwd-02" || got.Slot != 10 {
		t.Fatalf("expected CF to take the second ST slot, got %+v", got)
	}

	secondNow := firstNow.Add(5 * time.Minute)
	service.now = func() time.Time { return secondNow }

	updated, err := service.Save(t.Context(), SaveSquadInput{
		UserID:        "user-1",
		LeagueID:      memory.LeagueIDVPGEurope,
		Name:          "Nordic Press Reborn",
		FormationName: formation.Name442,
		PlayerIDs:     copyIDs(valid442IDs),
	})
	if err != nil {
		t.Fatalf("save squad update failed: %v", err)
	}

	if updated.ID != created.ID {
		t.Fatalf("expected same squad id on update, got %s vs %s", updated.ID, created.ID)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("expected created_at unchanged, got %v vs %v", updated.CreatedAt, created.CreatedAt)
	}
	if !updated.UpdatedAt.Equal(secondNow) {
		t.Fatalf("expected updated_at %v, got %v", secondNow, updated.UpdatedAt)
	}

	got, err := service.Get(t.Context(), "user-1", memory.LeagueIDVPGEurope)
	if err != nil {
		t.Fatalf("get squad: %v", err)
	}
	if got.Name != "Nordic Press Reborn" {
		t.Fatalf("unexpected squad name: got=%s want=Nordic Press Reborn", got.Name)
	}
}

func TestSquadService_Save_DefaultsFormation(t *testing.T) {
	t.Parallel()

	service := newTestSquadService(t, fantasy.DefaultRules())

	squad, err := service.Save(t.Context(), SaveSquadInput{
		UserID:    "user-2",
		LeagueID:  memory.LeagueIDVPGEurope,
		Name:      "Default Shape",
		PlayerIDs: copyIDs(valid442IDs),
	})
	if err != nil {
		t.Fatalf("save squad: %v", err)
	}
	if squad.FormationName != formation.DefaultName {
		t.Fatalf("unexpected formation: got=%s want=%s", squad.FormationName, formation.DefaultName)
	}
}

func TestSquadService_Save_Rejections(t *testing.T) {
	t.Parallel()

	fiveAtBack := copyIDs(valid442IDs)
	fiveAtBack[8] = "vpg-def-05"

	tests := []struct {
		name      string
		rules     fantasy.Rules
		input     SaveSquadInput
		wantErr   error
		wantCause error
	}{
		{
			name:    "missing name",
			rules:   fantasy.DefaultRules(),
			input:   SaveSquadInput{UserID: "u", LeagueID: memory.LeagueIDVPGEurope, PlayerIDs: copyIDs(valid442IDs)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown formation",
			rules:   fantasy.DefaultRules(),
			input:   SaveSquadInput{UserID: "u", LeagueID: memory.LeagueIDVPGEurope, Name: "x", FormationName: "4-2-4", PlayerIDs: copyIDs(valid442IDs)},
			wantErr: ErrNotFound,
		},
		{
			name:    "unknown league",
			rules:   fantasy.DefaultRules(),
			input:   SaveSquadInput{UserID: "u", LeagueID: "missing", Name: "x", PlayerIDs: copyIDs(valid442IDs)},
			wantErr: ErrNotFound,
		},
		{
			name:      "incomplete lineup",
			rules:     fantasy.DefaultRules(),
			input:     SaveSquadInput{UserID: "u", LeagueID: memory.LeagueIDVPGEurope, Name: "x", PlayerIDs: copyIDs(valid442IDs[:10])},
			wantErr:   ErrInvalidInput,
			wantCause: fantasy.ErrInvalidSquadSize,
		},
		{
			name:      "role counts do not match formation",
			rules:     fantasy.DefaultRules(),
			input:     SaveSquadInput{UserID: "u", LeagueID: memory.LeagueIDVPGEurope, Name: "x", PlayerIDs: fiveAtBack},
			wantErr:   ErrInvalidInput,
			wantCause: fantasy.ErrFormationMismatch,
		},
		{
			name:      "over budget",
			rules:     fantasy.Rules{SquadSize: 11, BudgetCap: 900},
			input:     SaveSquadInput{UserID: "u", LeagueID: memory.LeagueIDVPGEurope, Name: "x", PlayerIDs: copyIDs(valid442IDs)},
			wantErr:   ErrInvalidInput,
			wantCause: fantasy.ErrExceededBudget,
		},
		{
			name:    "player from another league",
			rules:   fantasy.DefaultRules(),
			input:   SaveSquadInput{UserID: "u", LeagueID: memory.LeagueIDVPGEurope, Name: "x", PlayerIDs: append(copyIDs(valid442IDs[:10]), "pcl-fwd-01")},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			service := newTestSquadService(t, tc.rules)
			_, err := service.Save(t.Context(), tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("unexpected error: got=%v want=%v", err, tc.wantErr)
			}
			if tc.wantCause != nil && !errors.Is(err, tc.wantCause) {
				t.Fatalf("unexpected cause: got=%v want=%v", err, tc.wantCause)
			}
		})
	}
}

func TestSquadService_Save_AtExactBudgetCap(t *testing.T) {
	t.Parallel()

	service := newTestSquadService(t, fantasy.Rules{SquadSize: 11, BudgetCap: 975})
	if _, err := service.Save(t.Context(), SaveSquadInput{
		UserID:    "user-3",
		LeagueID:  memory.LeagueIDVPGEurope,
		Name:      "Exact Cap",
		PlayerIDs: copyIDs(valid442IDs),
	}); err != nil {
		t.Fatalf("squad spending exactly the cap must be accepted: %v", err)
	}
}

func TestSquadService_Save_InvalidatesLeaderboardUsingMockery(t *testing.T) {
	t.Parallel()

	leaderboard := scoringmock.NewLeaderboardStore(t)
	leaderboard.
		On("Invalidate", mock.MatchedBy(func(v context.Context) bool { return v != nil }), memory.LeagueIDVPGEurope).
		Return(errors.New("redis down")).
		Once()

	service := NewSquadService(
		memory.NewLeagueRepository(memory.SeedLeagues()),
		memory.NewPlayerRepository(memory.SeedPlayers()),
		memory.NewSquadRepository(),
		newTestFormationService(t),
		leaderboard,
		fantasy.DefaultRules(),
		staticIDGenerator{id: "squad-009"},
		logging.NewNop(),
	)

	if _, err := service.Save(t.Context(), SaveSquadInput{
		UserID:    "user-9",
		LeagueID:  memory.LeagueIDVPGEurope,
		Name:      "Cache Buster",
		PlayerIDs: copyIDs(valid442IDs),
	}); err != nil {
		t.Fatalf("save must not fail on leaderboard invalidation error: %v", err)
	}
}

func TestSquadService_Get_NotFound(t *testing.T) {
	t.Parallel()

	service := newTestSquadService(t, fantasy.DefaultRules())
	_, err := service.Get(t.Context(), "nobody", memory.LeagueIDVPGEurope)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
