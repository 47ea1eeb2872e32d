package fantasy

import (
	"fmt"
	"time"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/player"
)

// SquadPick represents one selected player in a user's fantasy squad.
type SquadPick struct {
	PlayerID string
	TeamID   string
	Position player.Position
	Role     player.Role
	// Slot is the index into the formation's slot layout.
	Slot  int
	Price int64
}

// Squad is the persisted form of a validated lineup for one user and league.
type Squad struct {
	ID            string
	UserID        string
	LeagueID      string
	Name          string
	FormationName string
	Picks         []SquadPick
	BudgetCap     int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (s Squad) ValidateBasic() error {
	if s.ID == "" {
		return fmt.Errorf("squad id is required")
	}
	if s.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if s.LeagueID == "" {
		return fmt.Errorf("league id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("squad name is required")
	}
	if s.FormationName == "" {
		return fmt.Errorf("squad formation is required")
	}
	if s.BudgetCap <= 0 {
		return fmt.Errorf("budget cap must be greater than zero")
	}
	if len(s.Picks) == 0 {
		return fmt.Errorf("squad picks are required")
	}

	return nil
}

func (s Squad) PlayerIDs() []string {
	out := make([]string, 0, len(s.Picks))
	for _, pick := range s.Picks {
		out = append(out, pick.PlayerID)
	}
	return out
}

func (s Squad) TotalCost() int64 {
	var total int64
	for _, pick := range s.Picks {
		total += pick.Price
	}
	return total
}
