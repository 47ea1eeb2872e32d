package scoring

import (
	"sort"
	"time"
)

// LeaderboardEntry is one squad's standing in a league.
type LeaderboardEntry struct {
	Rank      int
	SquadID   string
	UserID    string
	SquadName string
	Points    int
}

// Leaderboard is a ranked snapshot of every squad in a league.
type Leaderboard struct {
	LeagueID     string
	Entries      []LeaderboardEntry
	CalculatedAt time.Time
}

// Rank orders entries by points descending, then squad name and id, and assigns
// competition ranks (1, 2, 2, 4).
func Rank(entries []LeaderboardEntry) []LeaderboardEntry {
	out := append([]LeaderboardEntry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		if out[i].SquadName != out[j].SquadName {
			return out[i].SquadName < out[j].SquadName
		}
		return out[i].SquadID < out[j].SquadID
	})

	for i := range out {
		if i > 0 && out[i].Points == out[i-1].Points {
			out[i].Rank = out[i-1].Rank
			continue
		}
		out[i].Rank = i + 1
	}
	return out
}
