package fantasy

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/formation"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/player"
)

var (
	ErrInvalidSquadSize       = errors.New("invalid squad size")
	ErrExceededBudget         = errors.New("budget cap exceeded")
	ErrFormationMismatch      = errors.New("lineup does not match formation quotas")
	ErrRoleQuotaFull          = errors.New("role quota already filled")
	ErrUnknownPlayerPosition  = errors.New("unknown player position")
	ErrDuplicatePlayerInSquad = errors.New("duplicate player in squad")
)

// Rules stores fantasy roster validation parameters.
type Rules struct {
	SquadSize int
	// BudgetCap is expressed in tenths, like player prices.
	BudgetCap int64
}

func DefaultRules() Rules {
	return Rules{
		SquadSize: formation.StartingSize,
		BudgetCap: 1000,
	}
}

// CheckAdd reports why candidate may not join selected under f, or nil when it may.
func CheckAdd(selected []player.Player, f formation.Formation, candidate player.Player) error {
	role, err := player.Classify(candidate.Position)
	if err != nil {
		return fmt.Errorf("%w: player=%s: %w", ErrUnknownPlayerPosition, candidate.ID, err)
	}

	current := 0
	for _, p := range selected {
		if p.ID == candidate.ID {
			return fmt.Errorf("%w: %s", ErrDuplicatePlayerInSquad, candidate.ID)
		}
		if r, err := player.Classify(p.Position); err == nil && r == role {
			current++
		}
	}

	if current >= f.Quota(role) {
		return fmt.Errorf("%w: formation=%s role=%s quota=%d", ErrRoleQuotaFull, f.Name, role, f.Quota(role))
	}

	return nil
}

// CanAdd is true iff candidate is not selected yet and its role still has a free slot.
func CanAdd(selected []player.Player, f formation.Formation, candidate player.Player) bool {
	return CheckAdd(selected, f, candidate) == nil
}

// RoleCounts tallies selected players per role. Players with unknown positions are
// returned separately and do not count towards any role.
func RoleCounts(selected []player.Player) (map[player.Role]int, []player.Player) {
	counts := make(map[player.Role]int, 4)
	var unknown []player.Player
	for _, p := range selected {
		role, err := player.Classify(p.Position)
		if err != nil {
			unknown = append(unknown, p)
			continue
		}
		counts[role]++
	}
	return counts, unknown
}

// IsValid is true iff exactly 11 players are selected and every role count equals
// the formation quota exactly.
func IsValid(selected []player.Player, f formation.Formation) bool {
	if len(selected) != formation.StartingSize {
		return false
	}

	counts, unknown := RoleCounts(selected)
	if len(unknown) > 0 {
		return false
	}
	for _, role := range player.AllRoles() {
		if counts[role] != f.Quota(role) {
			return false
		}
	}
	return true
}

func TotalCost(selected []player.Player) int64 {
	var total int64
	for _, p := range selected {
		total += p.Price
	}
	return total
}

// IsOverBudget compares strictly; spending exactly the cap is allowed.
func IsOverBudget(selected []player.Player, budgetCap int64) bool {
	return TotalCost(selected) > budgetCap
}
