package league

import "fmt"

// League is a Pro Clubs competition with its own player pool.
type League struct {
	ID        string
	Name      string
	Platform  string
	Season    string
	IsDefault bool
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.Platform == "" {
		return fmt.Errorf("league platform is required")
	}
	if l.Season == "" {
		return fmt.Errorf("league season is required")
	}

	return nil
}
