package formation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/player"
)

const (
	StartingSize = 11
	minCoord     = 0
	maxCoord     = 100
)

var (
	ErrNotFound           = errors.New("formation not found")
	ErrInvalidFormation   = errors.New("invalid formation")
	ErrDuplicateFormation = errors.New("formation already exists")
)

// Slot is one on-pitch place of a formation. X runs left to right,
// Y runs from the own goal line (0) to the opponent goal line (100).
type Slot struct {
	Label player.Position
	Role  player.Role
	X     float64
	Y     float64
}

// Formation is a named template of per-role quotas plus the slot layout.
type Formation struct {
	Name   string
	Quotas map[player.Role]int
	Slots  []Slot
	Custom bool
}

// New builds a formation whose quotas are derived from its slot labels.
// Slots with an unknown label keep an empty role and fail Validate.
func New(name string, slots ...Slot) Formation {
	quotas := make(map[player.Role]int, 4)
	out := make([]Slot, 0, len(slots))
	for _, s := range slots {
		role, err := player.Classify(s.Label)
		if err == nil {
			s.Role = role
			quotas[role]++
		}
		out = append(out, s)
	}

	return Formation{
		Name:   strings.TrimSpace(name),
		Quotas: quotas,
		Slots:  out,
	}
}

func (f Formation) Quota(role player.Role) int {
	return f.Quotas[role]
}

func (f Formation) Clone() Formation {
	out := f
	out.Quotas = make(map[player.Role]int, len(f.Quotas))
	for role, n := range f.Quotas {
		out.Quotas[role] = n
	}
	out.Slots = append([]Slot(nil), f.Slots...)
	return out
}

// Validate enforces the formation invariants at runtime. Built-in formations
// satisfy them by construction; custom ones must pass before being admitted.
func (f Formation) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidFormation)
	}
	if f.Name != strings.TrimSpace(f.Name) {
		return fmt.Errorf("%w: name %q has surrounding whitespace", ErrInvalidFormation, f.Name)
	}

	total := 0
	for role, n := range f.Quotas {
		if !knownRole(role) {
			return fmt.Errorf("%w: %s has unknown role %q", ErrInvalidFormation, f.Name, role)
		}
		if n < 0 {
			return fmt.Errorf("%w: %s has negative quota for %s", ErrInvalidFormation, f.Name, role)
		}
		total += n
	}
	if total != StartingSize {
		return fmt.Errorf("%w: %s quotas sum to %d, expected %d", ErrInvalidFormation, f.Name, total, StartingSize)
	}
	if gk := f.Quotas[player.RoleGoalkeeper]; gk != 1 {
		return fmt.Errorf("%w: %s must have exactly one goalkeeper, got %d", ErrInvalidFormation, f.Name, gk)
	}

	if len(f.Slots) != StartingSize {
		return fmt.Errorf("%w: %s has %d slots, expected %d", ErrInvalidFormation, f.Name, len(f.Slots), StartingSize)
	}
	slotRoles := make(map[player.Role]int, 4)
	for i, s := range f.Slots {
		role, err := player.Classify(s.Label)
		if err != nil {
			return fmt.Errorf("%w: %s slot %d: %v", ErrInvalidFormation, f.Name, i, err)
		}
		if s.Role != role {
			return fmt.Errorf("%w: %s slot %d label %s belongs to %s, not %s", ErrInvalidFormation, f.Name, i, s.Label, role, s.Role)
		}
		if s.X < minCoord || s.X > maxCoord || s.Y < minCoord || s.Y > maxCoord {
			return fmt.Errorf("%w: %s slot %d coordinates out of range (%.1f,%.1f)", ErrInvalidFormation, f.Name, i, s.X, s.Y)
		}
		slotRoles[role]++
	}
	for _, role := range player.AllRoles() {
		if slotRoles[role] != f.Quotas[role] {
			return fmt.Errorf("%w: %s has %d %s slots but quota %d", ErrInvalidFormation, f.Name, slotRoles[role], role, f.Quotas[role])
		}
	}

	return nil
}

func knownRole(role player.Role) bool {
	for _, r := range player.AllRoles() {
		if r == role {
			return true
		}
	}
	return false
}
