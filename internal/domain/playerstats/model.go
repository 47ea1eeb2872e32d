package playerstats

import (
	"fmt"
	"time"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/player"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/scoring"
)

// MatchStat is one player's raw event counters for a single match.
type MatchStat struct {
	LeagueID string
	MatchID  string
	PlayerID string
	TeamID   string
	// Position is the label the player actually lined up in for this match.
	Position player.Position
	scoring.Counters
	PlayedAt time.Time
}

func (s MatchStat) Validate() error {
	if s.LeagueID == "" {
		return fmt.Errorf("league id is required")
	}
	if s.MatchID == "" {
		return fmt.Errorf("match id is required")
	}
	if s.PlayerID == "" {
		return fmt.Errorf("player id is required")
	}
	if _, err := player.Classify(s.Position); err != nil {
		return err
	}
	return s.Counters.Validate()
}

// SeasonStats is the aggregate of every match a player appeared in.
type SeasonStats struct {
	PlayerID    string
	Appearances int
	scoring.Counters
}

func Summarize(playerID string, rows []MatchStat) SeasonStats {
	counters := make([]scoring.Counters, 0, len(rows))
	for _, row := range rows {
		counters = append(counters, row.Counters)
	}
	return SeasonStats{
		PlayerID:    playerID,
		Appearances: len(rows),
		Counters:    scoring.Aggregate(counters...),
	}
}
