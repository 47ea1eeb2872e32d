package player

import "fmt"

// Player is a selectable athlete in a fantasy league pool.
type Player struct {
	ID       string
	LeagueID string
	TeamID   string
	Name     string
	Position Position
	// Price is expressed in tenths of a currency unit (95 = 9.5m).
	Price  int64
	Points int
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.LeagueID == "" {
		return fmt.Errorf("player league id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("player team id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, err := Classify(p.Position); err != nil {
		return err
	}
	if p.Price <= 0 {
		return fmt.Errorf("player price must be greater than zero")
	}

	return nil
}

// Role returns the fantasy role of the player's concrete position.
func (p Player) Role() (Role, error) {
	return Classify(p.Position)
}
