package fantasy

import (
	"fmt"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/formation"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/player"
)

// Lineup is an immutable selection of players under one formation.
// Every With* method returns a new value and leaves the receiver untouched.
type Lineup struct {
	Formation formation.Formation
	Players   []player.Player
}

// SlotAssignment places one selected player on a formation slot.
type SlotAssignment struct {
	PlayerID  string
	SlotIndex int
	Slot      formation.Slot
}

func NewLineup(f formation.Formation, players ...player.Player) Lineup {
	return Lineup{
		Formation: f.Clone(),
		Players:   append([]player.Player(nil), players...),
	}
}

func (l Lineup) WithPlayerAdded(candidate player.Player) (Lineup, error) {
	if err := CheckAdd(l.Players, l.Formation, candidate); err != nil {
		return l, err
	}

	out := NewLineup(l.Formation, l.Players...)
	out.Players = append(out.Players, candidate)
	return out, nil
}

func (l Lineup) WithPlayerRemoved(playerID string) Lineup {
	kept := make([]player.Player, 0, len(l.Players))
	for _, p := range l.Players {
		if p.ID != playerID {
			kept = append(kept, p)
		}
	}
	return NewLineup(l.Formation, kept...)
}

// WithFormationChanged re-admits the selected players into f in their original
// selection order. Once a role's new quota is filled, later players of that role are
// dropped, so the earliest picks always survive. Players with unknown positions are
// dropped as well.
func (l Lineup) WithFormationChanged(f formation.Formation) (Lineup, []player.Player) {
	admitted := make(map[player.Role]int, 4)
	kept := make([]player.Player, 0, len(l.Players))
	var dropped []player.Player

	for _, p := range l.Players {
		role, err := player.Classify(p.Position)
		if err != nil || admitted[role] >= f.Quota(role) {
			dropped = append(dropped, p)
			continue
		}
		admitted[role]++
		kept = append(kept, p)
	}

	return NewLineup(f, kept...), dropped
}

func (l Lineup) IsValid() bool {
	return IsValid(l.Players, l.Formation)
}

func (l Lineup) TotalCost() int64 {
	return TotalCost(l.Players)
}

func (l Lineup) IsOverBudget(budgetCap int64) bool {
	return IsOverBudget(l.Players, budgetCap)
}

func (l Lineup) PlayerIDs() []string {
	out := make([]string, 0, len(l.Players))
	for _, p := range l.Players {
		out = append(out, p.ID)
	}
	return out
}

// Validate is the complete-and-valid check a lineup must pass before it is saved.
func (l Lineup) Validate(rules Rules) error {
	seen := make(map[string]struct{}, len(l.Players))
	for _, p := range l.Players {
		if _, err := player.Classify(p.Position); err != nil {
			return fmt.Errorf("%w: player=%s: %w", ErrUnknownPlayerPosition, p.ID, err)
		}
		if _, exists := seen[p.ID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayerInSquad, p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	if len(l.Players) != rules.SquadSize {
		return fmt.Errorf("%w: expected %d, got %d", ErrInvalidSquadSize, rules.SquadSize, len(l.Players))
	}

	counts, _ := RoleCounts(l.Players)
	for _, role := range player.AllRoles() {
		if counts[role] != l.Formation.Quota(role) {
			return fmt.Errorf("%w: formation=%s role=%s want=%d got=%d",
				ErrFormationMismatch, l.Formation.Name, role, l.Formation.Quota(role), counts[role])
		}
	}

	if used := l.TotalCost(); used > rules.BudgetCap {
		return fmt.Errorf("%w: cap=%d used=%d", ErrExceededBudget, rules.BudgetCap, used)
	}

	return nil
}

// AssignSlots maps every player to a formation slot. Exact label matches are placed
// first, then remaining players take the first free slot of their role. Both passes
// walk the players in selection order, so the result is deterministic.
func (l Lineup) AssignSlots() ([]SlotAssignment, error) {
	slots := l.Formation.Slots
	taken := make([]bool, len(slots))
	assigned := make([]int, len(l.Players))
	for i := range assigned {
		assigned[i] = -1
	}

	for i, p := range l.Players {
		for j, s := range slots {
			if !taken[j] && s.Label == p.Position {
				taken[j] = true
				assigned[i] = j
				break
			}
		}
	}

	for i, p := range l.Players {
		if assigned[i] >= 0 {
			continue
		}
		role, err := player.Classify(p.Position)
		if err != nil {
			return nil, fmt.Errorf("%w: player=%s: %w", ErrUnknownPlayerPosition, p.ID, err)
		}
		for j, s := range slots {
			if !taken[j] && s.Role == role {
				taken[j] = true
				assigned[i] = j
				break
			}
		}
		if assigned[i] < 0 {
			return nil, fmt.Errorf("%w: no free %s slot in %s for player %s", ErrFormationMismatch, role, l.Formation.Name, p.ID)
		}
	}

	out := make([]SlotAssignment, 0, len(l.Players))
	for i, p := range l.Players {
		out = append(out, SlotAssignment{
			PlayerID:  p.ID,
			SlotIndex: assigned[i],
			Slot:      slots[assigned[i]],
		})
	}
	return out, nil
}
