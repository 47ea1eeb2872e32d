package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/playerstats"
)

type PlayerStatsRepository struct {
	mu sync.RWMutex
	// league -> match -> rows
	matches map[string]map[string][]playerstats.MatchStat
}

func NewPlayerStatsRepository(rows []playerstats.MatchStat) *PlayerStatsRepository {
	r := &PlayerStatsRepository{matches: make(map[string]map[string][]playerstats.MatchStat)}
	for _, row := range rows {
		if _, ok := r.matches[row.LeagueID]; !ok {
			r.matches[row.LeagueID] = make(map[string][]playerstats.MatchStat)
		}
		r.matches[row.LeagueID][row.MatchID] = append(r.matches[row.LeagueID][row.MatchID], row)
	}
	return r
}

func (r *PlayerStatsRepository) ListByLeagueAndPlayer(_ context.Context, leagueID, playerID string) ([]playerstats.MatchStat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]playerstats.MatchStat, 0)
	for _, rows := range r.matches[leagueID] {
		for _, row := range rows {
			if row.PlayerID == playerID {
				out = append(out, row)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PlayedAt.Equal(out[j].PlayedAt) {
			return out[i].PlayedAt.Before(out[j].PlayedAt)
		}
		return out[i].MatchID < out[j].MatchID
	})

	return out, nil
}

func (r *PlayerStatsRepository) ListRecentByLeagueAndPlayer(ctx context.Context, leagueID, playerID string, limit int) ([]playerstats.MatchStat, error) {
	rows, err := r.ListByLeagueAndPlayer(ctx, leagueID, playerID)
	if err != nil {
		return nil, err
	}

	out := make([]playerstats.MatchStat, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, rows[i])
	}
	return out, nil
}

// UpsertMatchStats replaces every stored row of the match.
func (r *PlayerStatsRepository) UpsertMatchStats(_ context.Context, leagueID, matchID string, stats []playerstats.MatchStat) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.matches[leagueID]; !ok {
		r.matches[leagueID] = make(map[string][]playerstats.MatchStat)
	}

	previous := r.matches[leagueID][matchID]
	replaced := make([]string, 0, len(previous))
	for _, row := range previous {
		replaced = append(replaced, row.PlayerID)
	}

	r.matches[leagueID][matchID] = append([]playerstats.MatchStat(nil), stats...)
	return replaced, nil
}
