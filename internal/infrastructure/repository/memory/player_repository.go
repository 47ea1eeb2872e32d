package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/player"
)

type PlayerRepository struct {
	mu            sync.RWMutex
	orderByLeague map[string][]string
	indexByLeague map[string]map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	orderByLeague := make(map[string][]string)
	indexByLeague := make(map[string]map[string]player.Player)

	for _, p := range players {
		if _, ok := indexByLeague[p.LeagueID]; !ok {
			indexByLeague[p.LeagueID] = make(map[string]player.Player)
		}
		if _, exists := indexByLeague[p.LeagueID][p.ID]; !exists {
			orderByLeague[p.LeagueID] = append(orderByLeague[p.LeagueID], p.ID)
		}
		indexByLeague[p.LeagueID][p.ID] = p
	}

	return &PlayerRepository{
		orderByLeague: orderByLeague,
		indexByLeague: indexByLeague,
	}
}

func (r *PlayerRepository) ListByLeague(_ context.Context, leagueID string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.orderByLeague[leagueID]
	index := r.indexByLeague[leagueID]
	out := make([]player.Player, 0, len(ids))
	for _, id := range ids {
		out = append(out, index[id])
	}

	return out, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, leagueID string, playerIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index := r.indexByLeague[leagueID]
	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, ok := index[id]
		if !ok {
			continue
		}
		out = append(out, p)
	}

	return out, nil
}

// UpdatePoints overwrites cumulative points; unknown player ids are ignored.
func (r *PlayerRepository) UpdatePoints(_ context.Context, leagueID string, pointsByPlayerID map[string]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	index := r.indexByLeague[leagueID]
	for id, points := range pointsByPlayerID {
		p, ok := index[id]
		if !ok {
			continue
		}
		p.Points = points
		index[id] = p
	}

	return nil
}
