package leaderboard

import (
	"context"
	"time"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/proclubs-fantasy/internal/platform/cache"
)

const keyPrefix = "proclubs:leaderboard:"

// MemoryStore keeps leaderboard snapshots in process memory.
type MemoryStore struct {
	store *cache.Store
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{store: cache.NewStore(ttl)}
}

func (s *MemoryStore) Get(ctx context.Context, leagueID string) (scoring.Leaderboard, bool, error) {
	v, ok := s.store.Get(ctx, keyPrefix+leagueID)
	if !ok {
		return scoring.Leaderboard{}, false, nil
	}
	board, ok := v.(scoring.Leaderboard)
	if !ok {
		return scoring.Leaderboard{}, false, nil
	}
	return cloneBoard(board), true, nil
}

func (s *MemoryStore) Put(ctx context.Context, board scoring.Leaderboard) error {
	s.store.Set(ctx, keyPrefix+board.LeagueID, cloneBoard(board))
	return nil
}

func (s *MemoryStore) Invalidate(ctx context.Context, leagueID string) error {
	s.store.Delete(ctx, keyPrefix+leagueID)
	return nil
}

func cloneBoard(board scoring.Leaderboard) scoring.Leaderboard {
	out := board
	out.Entries = append([]scoring.LeaderboardEntry(nil), board.Entries...)
	return out
}
