package scoring

import "context"

// LeaderboardStore caches computed leaderboards per league.
type LeaderboardStore interface {
	Get(ctx context.Context, leagueID string) (Leaderboard, bool, error)
	Put(ctx context.Context, board Leaderboard) error
	Invalidate(ctx context.Context, leagueID string) error
}
