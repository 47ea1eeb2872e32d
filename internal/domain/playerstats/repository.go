package playerstats

import "context"

type Repository interface {
	// ListByLeagueAndPlayer returns the player's rows oldest first.
	ListByLeagueAndPlayer(ctx context.Context, leagueID, playerID string) ([]MatchStat, error)
	// ListRecentByLeagueAndPlayer returns at most limit rows, newest first.
	ListRecentByLeagueAndPlayer(ctx context.Context, leagueID, playerID string, limit int) ([]MatchStat, error)
	// UpsertMatchStats replaces every stored row of the match and returns the ids of the
	// players whose previous rows were removed.
	UpsertMatchStats(ctx context.Context, leagueID, matchID string, stats []MatchStat) ([]string, error)
}
