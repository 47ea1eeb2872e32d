package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/playerstats"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/scoring"
)

const defaultMatchHistoryLimit = 10

// MatchHistoryItem is one stored match line with the points it scored.
type MatchHistoryItem struct {
	playerstats.MatchStat
	Points int
}

type PlayerStatsService struct {
	statsRepo playerstats.Repository
}

func NewPlayerStatsService(statsRepo playerstats.Repository) *PlayerStatsService {
	return &PlayerStatsService{statsRepo: statsRepo}
}

func (s *PlayerStatsService) GetSeasonStats(ctx context.Context, leagueID, playerID string) (playerstats.SeasonStats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsService.GetSeasonStats")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	playerID = strings.TrimSpace(playerID)
	if leagueID == "" {
		return playerstats.SeasonStats{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if playerID == "" {
		return playerstats.SeasonStats{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	rows, err := s.statsRepo.ListByLeagueAndPlayer(ctx, leagueID, playerID)
	if err != nil {
		return playerstats.SeasonStats{}, fmt.Errorf("get season stats: %w", err)
	}

	return playerstats.Summarize(playerID, rows), nil
}

// ListMatchHistory returns the player's most recent matches first.
func (s *PlayerStatsService) ListMatchHistory(ctx context.Context, leagueID, playerID string, limit int) ([]MatchHistoryItem, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerStatsService.ListMatchHistory")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	playerID = strings.TrimSpace(playerID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if playerID == "" {
		return nil, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if limit <= 0 {
		limit = defaultMatchHistoryLimit
	}

	rows, err := s.statsRepo.ListRecentByLeagueAndPlayer(ctx, leagueID, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list match history: %w", err)
	}

	out := make([]MatchHistoryItem, 0, len(rows))
	for _, row := range rows {
		points, err := scoring.CalculatePoints(scoring.MatchStats{
			Counters: row.Counters,
			Position: string(row.Position),
		})
		if err != nil {
			return nil, fmt.Errorf("score match=%s: %w", row.MatchID, err)
		}
		out = append(out, MatchHistoryItem{MatchStat: row, Points: points})
	}

	return out, nil
}
