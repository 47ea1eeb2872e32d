package scoring

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/player"
)

// Scoring weights. Changing any of these rescores every player on the next recalculation.
const (
	GoalPoints                = 4
	AssistPoints              = 3
	DefensiveCleanSheetPoints = 4
	MidfieldCleanSheetPoints  = 1
	YellowCardPenalty         = 1
	RedCardPenalty            = 3
)

var ErrNegativeStat = errors.New("negative stat counter")

// Counters are raw match event counts, per match or aggregated over a season.
type Counters struct {
	Goals       int
	Assists     int
	CleanSheets int
	YellowCards int
	RedCards    int
}

// MatchStats pairs counters with the position they were earned in. Position may be a
// role name (GK, DEF, MID, FWD) or a concrete label such as CB or ST.
type MatchStats struct {
	Counters
	Position string
}

func (c Counters) Validate() error {
	fields := []struct {
		name  string
		value int
	}{
		{"goals", c.Goals},
		{"assists", c.Assists},
		{"clean_sheets", c.CleanSheets},
		{"yellow_cards", c.YellowCards},
		{"red_cards", c.RedCards},
	}
	for _, f := range fields {
		if f.value < 0 {
			return fmt.Errorf("%w: %s=%d", ErrNegativeStat, f.name, f.value)
		}
	}
	return nil
}

// Points applies the scoring table. Totals are not floored at zero.
func Points(role player.Role, c Counters) (int, error) {
	points := c.Goals*GoalPoints + c.Assists*AssistPoints

	switch role {
	case player.RoleGoalkeeper, player.RoleDefender:
		points += c.CleanSheets * DefensiveCleanSheetPoints
	case player.RoleMidfielder:
		points += c.CleanSheets * MidfieldCleanSheetPoints
	case player.RoleForward:
	default:
		return 0, fmt.Errorf("%w: role %q", player.ErrUnknownPosition, role)
	}

	points -= c.YellowCards * YellowCardPenalty
	points -= c.RedCards * RedCardPenalty
	return points, nil
}

// CalculatePoints validates the stats and scores them for the role of stats.Position.
func CalculatePoints(stats MatchStats) (int, error) {
	if err := stats.Validate(); err != nil {
		return 0, err
	}
	role, err := player.RoleOf(stats.Position)
	if err != nil {
		return 0, err
	}
	return Points(role, stats.Counters)
}

func Aggregate(rows ...Counters) Counters {
	var out Counters
	for _, row := range rows {
		out.Goals += row.Goals
		out.Assists += row.Assists
		out.CleanSheets += row.CleanSheets
		out.YellowCards += row.YellowCards
		out.RedCards += row.RedCards
	}
	return out
}
