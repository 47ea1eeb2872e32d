package formation

import (
	"errors"
	"testing"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/player"
)

func TestCatalog_QuotaInvariants(t *testing.T) {
	for _, f := range List() {
		t.Run(f.Name, func(t *testing.T) {
			total := 0
			for _, n := range f.Quotas {
				total += n
			}
			if total != 11 {
				t.Fatalf("quotas sum to %d, want 11", total)
			}
			if f.Quotas[player.RoleGoalkeeper] != 1 {
				t.Fatalf("goalkeeper quota = %d, want 1", f.Quotas[player.RoleGoalkeeper])
			}
			if err := f.Validate(); err != nil {
				t.Fatalf("built-in formation failed validation: %v", err)
			}
		})
	}
}

func TestCatalog_StableOrderAndUniqueNames(t *testing.T) {
	first := List()
	second := List()
	if len(first) != len(second) || len(first) == 0 {
		t.Fatalf("unexpected catalog sizes: %d vs %d", len(first), len(second))
	}

	seen := make(map[string]struct{}, len(first))
	for i := range first {
		if first[i].Name != second[i].Name {
			t.Fatalf("catalog order changed at %d: %s vs %s", i, first[i].Name, second[i].Name)
		}
		if _, dup := seen[first[i].Name]; dup {
			t.Fatalf("duplicate formation name %s", first[i].Name)
		}
		seen[first[i].Name] = struct{}{}
	}
	if first[0].Name != DefaultName {
		t.Fatalf("expected default formation first, got %s", first[0].Name)
	}
}

func TestCatalog_ListReturnsCopies(t *testing.T) {
	items := List()
	items[0].Quotas[player.RoleForward] = 9
	items[0].Slots[0].Label = player.PositionST

	again, err := Get(items[0].Name)
	if err != nil {
		t.Fatalf("get formation: %v", err)
	}
	if again.Quotas[player.RoleForward] == 9 || again.Slots[0].Label != player.PositionGK {
		t.Fatalf("catalog was mutated through a listed copy")
	}
}

func TestGet(t *testing.T) {
	f, err := Get("4-4-2")
	if err != nil {
		t.Fatalf("get 4-4-2: %v", err)
	}
	want := map[player.Role]int{
		player.RoleGoalkeeper: 1,
		player.RoleDefender:   4,
		player.RoleMidfielder: 4,
		player.RoleForward:    2,
	}
	for role, n := range want {
		if f.Quota(role) != n {
			t.Fatalf("unexpected %s quota: got=%d want=%d", role, f.Quota(role), n)
		}
	}

	for _, name := range []string{"4-4-3", "", "4-4-2 ", "diamond"} {
		if _, err := Get(name); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound for %q, got %v", name, err)
		}
	}
}

func TestNew_TrimsName(t *testing.T) {
	base, err := Get(Name433)
	if err != nil {
		t.Fatalf("get formation: %v", err)
	}

	f := New("  4-3-3 wide ", base.Slots...)
	if f.Name != "4-3-3 wide" {
		t.Fatalf("unexpected name: got=%q want=%q", f.Name, "4-3-3 wide")
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("validate trimmed formation: %v", err)
	}
}

func TestFormationValidate(t *testing.T) {
	base, err := Get(Name433)
	if err != nil {
		t.Fatalf("get formation: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(f *Formation)
	}{
		{name: "empty name", mutate: func(f *Formation) { f.Name = " " }},
		{name: "padded name", mutate: func(f *Formation) { f.Name = " " + Name433 }},
		{name: "two goalkeepers", mutate: func(f *Formation) {
			*f = New("two-keepers", append([]Slot{{Label: player.PositionGK, X: 50, Y: 10}}, f.Slots[:10]...)...)
		}},
		{name: "ten players", mutate: func(f *Formation) { *f = New("ten", f.Slots[:10]...) }},
		{name: "unknown slot label", mutate: func(f *Formation) {
			slots := append([]Slot(nil), f.Slots...)
			slots[3].Label = "SW"
			*f = New("sweeper", slots...)
		}},
		{name: "coordinates out of range", mutate: func(f *Formation) { f.Slots[1].X = 101 }},
		{name: "role mismatch", mutate: func(f *Formation) { f.Slots[1].Role = player.RoleForward }},
		{name: "quota drift", mutate: func(f *Formation) {
			f.Quotas[player.RoleDefender] = 5
			f.Quotas[player.RoleForward] = 2
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := base.Clone()
			tt.mutate(&f)
			if err := f.Validate(); !errors.Is(err, ErrInvalidFormation) {
				t.Fatalf("expected ErrInvalidFormation, got %v", err)
			}
		})
	}
}
