package fantasy

import (
	"errors"
	"testing"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/formation"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/player"
)

func pick(id string, pos player.Position, price int64) player.Player {
	return player.Player{ID: id, LeagueID: "l1", TeamID: "t-" + id, Name: "Player " + id, Position: pos, Price: price}
}

func mustFormation(t *testing.T, name string) formation.Formation {
	t.Helper()
	f, err := formation.Get(name)
	if err != nil {
		t.Fatalf("get formation %s: %v", name, err)
	}
	return f
}

// valid442 costs 11 x 90 = 990.
func valid442() []player.Player {
	return []player.Player{
		pick("gk", player.PositionGK, 90),
		pick("lb", player.PositionLB, 90),
		pick("cb1", player.PositionCB, 90),
		pick("cb2", player.PositionCB, 90),
		pick("rb", player.PositionRB, 90),
		pick("lm", player.PositionLM, 90),
		pick("cm1", player.PositionCM, 90),
		pick("cm2", player.PositionCM, 90),
		pick("rm", player.PositionRM, 90),
		pick("st1", player.PositionST, 90),
		pick("st2", player.PositionST, 90),
	}
}

func TestIsValid(t *testing.T) {
	f := mustFormation(t, formation.Name442)

	tests := []struct {
		name   string
		mutate func([]player.Player) []player.Player
		want   bool
	}{
		{name: "exact quotas", mutate: func(p []player.Player) []player.Player { return p }, want: true},
		{
			name: "eleven players with midfield over and attack under quota",
			mutate: func(p []player.Player) []player.Player {
				p[10] = pick("cam", player.PositionCAM, 90)
				return p
			},
			want: false,
		},
		{name: "ten players", mutate: func(p []player.Player) []player.Player { return p[:10] }, want: false},
		{
			name: "twelve players",
			mutate: func(p []player.Player) []player.Player {
				return append(p, pick("cf", player.PositionCF, 90))
			},
			want: false,
		},
		{
			name: "unknown position",
			mutate: func(p []player.Player) []player.Player {
				p[9].Position = "SW"
				return p
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := IsValid(tt.mutate(valid442()), f)
			if got != tt.want {
				t.Fatalf("unexpected IsValid: got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestCheckAdd(t *testing.T) {
	f := mustFormation(t, formation.Name442)
	fourDefenders := []player.Player{
		pick("d1", player.PositionCB, 50),
		pick("d2", player.PositionCB, 50),
		pick("d3", player.PositionLB, 50),
		pick("d4", player.PositionRWB, 50),
	}

	tests := []struct {
		name      string
		selected  []player.Player
		candidate player.Player
		targetErr error
	}{
		{name: "free defender slot", selected: fourDefenders[:3], candidate: pick("d5", player.PositionRB, 50)},
		{name: "defender quota full", selected: fourDefenders, candidate: pick("d5", player.PositionRB, 50), targetErr: ErrRoleQuotaFull},
		{name: "other role still open", selected: fourDefenders, candidate: pick("m1", player.PositionCDM, 50)},
		{name: "duplicate id", selected: fourDefenders[:2], candidate: pick("d1", player.PositionCB, 50), targetErr: ErrDuplicatePlayerInSquad},
		{name: "second goalkeeper", selected: []player.Player{pick("gk", player.PositionGK, 50)}, candidate: pick("gk2", player.PositionGK, 50), targetErr: ErrRoleQuotaFull},
		{name: "unknown position", selected: nil, candidate: pick("x", player.Position("LIBERO"), 50), targetErr: ErrUnknownPlayerPosition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := CheckAdd(tt.selected, f, tt.candidate)
			if tt.targetErr == nil {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if !CanAdd(tt.selected, f, tt.candidate) {
					t.Fatalf("CanAdd disagrees with CheckAdd")
				}
				return
			}
			if !errors.Is(err, tt.targetErr) {
				t.Fatalf("expected error %v, got %v", tt.targetErr, err)
			}
			if CanAdd(tt.selected, f, tt.candidate) {
				t.Fatalf("CanAdd disagrees with CheckAdd")
			}
		})
	}
}

func TestCheckAdd_UnknownPositionKeepsClassifierError(t *testing.T) {
	err := CheckAdd(nil, mustFormation(t, formation.Name433), pick("x", "SW", 10))
	if !errors.Is(err, player.ErrUnknownPosition) {
		t.Fatalf("expected wrapped player.ErrUnknownPosition, got %v", err)
	}
}

func TestCanAdd_NeverExceedsQuotaRegardlessOfSize(t *testing.T) {
	f := mustFormation(t, formation.Name442)
	selected := valid442()[:5] // gk + 4 defenders

	if CanAdd(selected, f, pick("extra-def", player.PositionCB, 10)) {
		t.Fatalf("expected a fifth defender to be rejected")
	}
}

func TestBudget(t *testing.T) {
	squad := valid442()
	// 10 x 90 + 100 = 1000, exactly the default cap.
	squad[0].Price = 100

	rules := DefaultRules()
	if got := TotalCost(squad); got != 1000 {
		t.Fatalf("unexpected total cost: got=%d want=1000", got)
	}
	if IsOverBudget(squad, rules.BudgetCap) {
		t.Fatalf("lineup exactly at the cap must not be over budget")
	}

	squad[0].Price = 101
	if !IsOverBudget(squad, rules.BudgetCap) {
		t.Fatalf("lineup at cap+0.1 must be over budget")
	}

	if TotalCost(nil) != 0 || IsOverBudget(nil, 0) {
		t.Fatalf("empty lineup must cost nothing")
	}
}

func TestRoleCounts(t *testing.T) {
	selected := append(valid442(), pick("x", "SW", 10))
	counts, unknown := RoleCounts(selected)

	want := map[player.Role]int{
		player.RoleGoalkeeper: 1,
		player.RoleDefender:   4,
		player.RoleMidfielder: 4,
		player.RoleForward:    2,
	}
	for role, n := range want {
		if counts[role] != n {
			t.Fatalf("unexpected %s count: got=%d want=%d", role, counts[role], n)
		}
	}
	if len(unknown) != 1 || unknown[0].ID != "x" {
		t.Fatalf("unexpected unknown players: %+v", unknown)
	}
}
