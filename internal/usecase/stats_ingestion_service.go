package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/league"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/player"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/playerstats"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/proclubs-fantasy/internal/platform/logging"
)

type IngestMatchInput struct {
	LeagueID string
	MatchID  string
	PlayedAt time.Time
	Rows     []MatchStatInput
}

// MatchStatInput is one player's line in a match report. An empty Position means the
// player lined up in their registered position.
type MatchStatInput struct {
	PlayerID    string
	Position    string
	Goals       int
	Assists     int
	CleanSheets int
	YellowCards int
	RedCards    int
}

type IngestMatchResult struct {
	LeagueID            string
	MatchID             string
	Rows                int
	PlayersRecalculated int
}

type playerPointsRecalculator interface {
	RecalculatePlayers(ctx context.Context, leagueID string, playerIDs []string) (RecalculationResult, error)
}

type StatsIngestionService struct {
	leagueRepo league.Repository
	playerRepo player.Repository
	statsRepo  playerstats.Repository
	recalc     playerPointsRecalculator
	logger     *logging.Logger
	now        func() time.Time
}

func NewStatsIngestionService(
	leagueRepo league.Repository,
	playerRepo player.Repository,
	statsRepo playerstats.Repository,
	recalc playerPointsRecalculator,
	logger *logging.Logger,
) *StatsIngestionService {
	if logger == nil {
		logger = logging.Default()
	}

	return &StatsIngestionService{
		leagueRepo: leagueRepo,
		playerRepo: playerRepo,
		statsRepo:  statsRepo,
		recalc:     recalc,
		logger:     logger,
		now:        time.Now,
	}
}

// IngestMatch stores one match report and rescores every player that appears in it.
// Re-ingesting the same match replaces its rows, so players left out of a corrected
// report are rescored too.
func (s *StatsIngestionService) IngestMatch(ctx context.Context, input IngestMatchInput) (IngestMatchResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsIngestionService.IngestMatch")
	defer span.End()

	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.MatchID = strings.TrimSpace(input.MatchID)
	if input.LeagueID == "" {
		return IngestMatchResult{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if input.MatchID == "" {
		return IngestMatchResult{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}
	if len(input.Rows) == 0 {
		return IngestMatchResult{}, fmt.Errorf("%w: match stats rows are required", ErrInvalidInput)
	}
	if err := ensureLeague(ctx, s.leagueRepo, input.LeagueID); err != nil {
		return IngestMatchResult{}, err
	}

	playerIDs := make([]string, 0, len(input.Rows))
	for _, row := range input.Rows {
		playerIDs = append(playerIDs, row.PlayerID)
	}
	players, err := resolvePlayers(ctx, s.playerRepo, input.LeagueID, playerIDs)
	if err != nil {
		return IngestMatchResult{}, err
	}

	playedAt := input.PlayedAt.UTC()
	if input.PlayedAt.IsZero() {
		playedAt = s.now().UTC()
	}

	reported := make([]string, 0, len(players))
	stats := make([]playerstats.MatchStat, 0, len(players))
	for i, p := range players {
		reported = append(reported, p.ID)
		row := input.Rows[i]
		position := p.Position
		if strings.TrimSpace(row.Position) != "" {
			position, err = player.ParsePosition(row.Position)
			if err != nil {
				s.logger.WarnContext(ctx, "match stat rejected: unknown position",
					"league_id", input.LeagueID,
					"match_id", input.MatchID,
					"player_id", p.ID,
					"position", row.Position,
				)
				return IngestMatchResult{}, fmt.Errorf("%w: player=%s: %v", ErrInvalidInput, p.ID, err)
			}
		}

		stat := playerstats.MatchStat{
			LeagueID: input.LeagueID,
			MatchID:  input.MatchID,
			PlayerID: p.ID,
			TeamID:   p.TeamID,
			Position: position,
			Counters: scoring.Counters{
				Goals:       row.Goals,
				Assists:     row.Assists,
				CleanSheets: row.CleanSheets,
				YellowCards: row.YellowCards,
				RedCards:    row.RedCards,
			},
			PlayedAt: playedAt,
		}
		if err := stat.Validate(); err != nil {
			return IngestMatchResult{}, fmt.Errorf("%w: player=%s: %v", ErrInvalidInput, p.ID, err)
		}
		stats = append(stats, stat)
	}

	replaced, err := s.statsRepo.UpsertMatchStats(ctx, input.LeagueID, input.MatchID, stats)
	if err != nil {
		return IngestMatchResult{}, fmt.Errorf("upsert match stats: %w", err)
	}
	rescore := mergePlayerIDs(reported, replaced)

	result := IngestMatchResult{
		LeagueID: input.LeagueID,
		MatchID:  input.MatchID,
		Rows:     len(stats),
	}
	if s.recalc != nil {
		recalculated, err := s.recalc.RecalculatePlayers(ctx, input.LeagueID, rescore)
		if err != nil {
			return IngestMatchResult{}, fmt.Errorf("recalculate player points: %w", err)
		}
		result.PlayersRecalculated = recalculated.Players
	}

	s.logger.InfoContext(ctx, "match stats ingested",
		"league_id", input.LeagueID,
		"match_id", input.MatchID,
		"rows", result.Rows,
		"players_dropped", len(rescore)-len(reported),
		"players_recalculated", result.PlayersRecalculated,
	)

	return result, nil
}

// mergePlayerIDs appends the ids of extra that are not already in base.
func mergePlayerIDs(base, extra []string) []string {
	seen := make(map[string]struct{}, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, ids := range [][]string{base, extra} {
		for _, id := range ids {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
