package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/league"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/player"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/playerstats"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/proclubs-fantasy/internal/platform/logging"
)

const (
	defaultRecalcWorkers   = 4
	squadPointsFanoutLimit = 8
)

type PlayerPoints struct {
	Player player.Player
	Season playerstats.SeasonStats
	Points int
}

type SquadPoints struct {
	Squad   fantasy.Squad
	Players []PlayerPoints
	Total   int
}

type RecalculationResult struct {
	LeagueID string
	Players  int
	Workers  int
}

type PointsService struct {
	leagueRepo  league.Repository
	playerRepo  player.Repository
	squadRepo   fantasy.Repository
	statsRepo   playerstats.Repository
	leaderboard scoring.LeaderboardStore
	workers     int
	logger      *logging.Logger
	now         func() time.Time
}

func NewPointsService(
	leagueRepo league.Repository,
	playerRepo player.Repository,
	squadRepo fantasy.Repository,
	statsRepo playerstats.Repository,
	leaderboard scoring.LeaderboardStore,
	workers int,
	logger *logging.Logger,
) *PointsService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = defaultRecalcWorkers
	}

	return &PointsService{
		leagueRepo:  leagueRepo,
		playerRepo:  playerRepo,
		squadRepo:   squadRepo,
		statsRepo:   statsRepo,
		leaderboard: leaderboard,
		workers:     workers,
		logger:      logger,
		now:         time.Now,
	}
}

// Calculate scores caller-supplied stats without touching storage.
func (s *PointsService) Calculate(ctx context.Context, stats scoring.MatchStats) (int, error) {
	_, span := startUsecaseSpan(ctx, "usecase.PointsService.Calculate")
	defer span.End()

	points, err := scoring.CalculatePoints(stats)
	if err != nil {
		if errors.Is(err, player.ErrUnknownPosition) {
			s.logger.WarnContext(ctx, "points calculation rejected: unknown position",
				"position", stats.Position,
			)
		}
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return points, nil
}

func (s *PointsService) PlayerPoints(ctx context.Context, leagueID, playerID string) (PlayerPoints, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointsService.PlayerPoints")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	playerID = strings.TrimSpace(playerID)
	if leagueID == "" || playerID == "" {
		return PlayerPoints{}, fmt.Errorf("%w: league id and player id are required", ErrInvalidInput)
	}
	if err := ensureLeague(ctx, s.leagueRepo, leagueID); err != nil {
		return PlayerPoints{}, err
	}

	items, err := s.playerRepo.GetByIDs(ctx, leagueID, []string{playerID})
	if err != nil {
		return PlayerPoints{}, fmt.Errorf("get player by id: %w", err)
	}
	if len(items) == 0 {
		return PlayerPoints{}, fmt.Errorf("%w: player=%s league=%s", ErrNotFound, playerID, leagueID)
	}

	return s.scorePlayer(ctx, items[0])
}

// SquadPoints scores every pick of the user's squad from its match stats.
func (s *PointsService) SquadPoints(ctx context.Context, userID, leagueID string) (SquadPoints, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointsService.SquadPoints")
	defer span.End()

	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	if userID == "" || leagueID == "" {
		return SquadPoints{}, fmt.Errorf("%w: user_id and league_id are required", ErrInvalidInput)
	}

	squad, exists, err := s.squadRepo.GetByUserAndLeague(ctx, userID, leagueID)
	if err != nil {
		return SquadPoints{}, fmt.Errorf("get squad: %w", err)
	}
	if !exists {
		return SquadPoints{}, fmt.Errorf("%w: squad not found", ErrNotFound)
	}

	players, err := resolvePlayers(ctx, s.playerRepo, leagueID, squad.PlayerIDs())
	if err != nil {
		return SquadPoints{}, err
	}

	rows := make([]PlayerPoints, len(players))
	p := pool.New().
		WithContext(ctx).
		WithMaxGoroutines(squadPointsFanoutLimit).
		WithCancelOnError()
	for i, item := range players {
		p.Go(func(ctx context.Context) error {
			row, err := s.scorePlayer(ctx, item)
			if err != nil {
				return err
			}
			rows[i] = row
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return SquadPoints{}, err
	}

	out := SquadPoints{Squad: squad, Players: rows}
	for _, row := range rows {
		out.Total += row.Points
	}

	return out, nil
}

// Leaderboard ranks every squad of the league by the cumulative points of its picks.
// Snapshots are served from the leaderboard store until invalidated.
func (s *PointsService) Leaderboard(ctx context.Context, leagueID string) (scoring.Leaderboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointsService.Leaderboard")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return scoring.Leaderboard{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if err := ensureLeague(ctx, s.leagueRepo, leagueID); err != nil {
		return scoring.Leaderboard{}, err
	}

	if s.leaderboard != nil {
		board, ok, err := s.leaderboard.Get(ctx, leagueID)
		if err != nil {
			s.logger.WarnContext(ctx, "read leaderboard snapshot failed, recomputing",
				"league_id", leagueID,
				"error", err,
			)
		} else if ok {
			return board, nil
		}
	}

	squads, err := s.squadRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return scoring.Leaderboard{}, fmt.Errorf("list squads by league: %w", err)
	}
	players, err := s.playerRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return scoring.Leaderboard{}, fmt.Errorf("list players by league: %w", err)
	}
	pointsByPlayerID := make(map[string]int, len(players))
	for _, p := range players {
		pointsByPlayerID[p.ID] = p.Points
	}

	entries := make([]scoring.LeaderboardEntry, 0, len(squads))
	for _, squad := range squads {
		total := 0
		for _, pick := range squad.Picks {
			total += pointsByPlayerID[pick.PlayerID]
		}
		entries = append(entries, scoring.LeaderboardEntry{
			SquadID:   squad.ID,
			UserID:    squad.UserID,
			SquadName: squad.Name,
			Points:    total,
		})
	}

	board := scoring.Leaderboard{
		LeagueID:     leagueID,
		Entries:      scoring.Rank(entries),
		CalculatedAt: s.now().UTC(),
	}

	if s.leaderboard != nil {
		if err := s.leaderboard.Put(ctx, board); err != nil {
			s.logger.WarnContext(ctx, "store leaderboard snapshot failed",
				"league_id", leagueID,
				"error", err,
			)
		}
	}

	return board, nil
}

// RecalculatePlayers rescores the given players from their stored match stats,
// writes the totals back and invalidates the league leaderboard.
func (s *PointsService) RecalculatePlayers(ctx context.Context, leagueID string, playerIDs []string) (RecalculationResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointsService.RecalculatePlayers")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return RecalculationResult{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	players, err := resolvePlayers(ctx, s.playerRepo, leagueID, playerIDs)
	if err != nil {
		return RecalculationResult{}, err
	}

	workerCount := s.workers
	if len(players) < workerCount {
		workerCount = len(players)
	}
	result := RecalculationResult{LeagueID: leagueID, Workers: workerCount}
	if len(players) == 0 {
		return result, nil
	}

	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return RecalculationResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var (
		mu       sync.Mutex
		totals   = make(map[string]int, len(players))
		firstErr error
		workers  sync.WaitGroup
	)
	for _, item := range players {
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			row, err := s.scorePlayer(ctx, item)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			totals[item.ID] = row.Points
		}); err != nil {
			workers.Done()
			workers.Wait()
			return RecalculationResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	if firstErr != nil {
		return RecalculationResult{}, firstErr
	}

	if err := s.playerRepo.UpdatePoints(ctx, leagueID, totals); err != nil {
		return RecalculationResult{}, fmt.Errorf("update player points: %w", err)
	}
	if s.leaderboard != nil {
		if err := s.leaderboard.Invalidate(ctx, leagueID); err != nil {
			s.logger.WarnContext(ctx, "invalidate leaderboard after recalculation failed",
				"league_id", leagueID,
				"error", err,
			)
		}
	}

	result.Players = len(totals)
	s.logger.InfoContext(ctx, "player points recalculated",
		"league_id", leagueID,
		"players", result.Players,
		"workers", result.Workers,
	)

	return result, nil
}

// scorePlayer sums per-match points so every match is weighted by the position
// actually played in it.
func (s *PointsService) scorePlayer(ctx context.Context, p player.Player) (PlayerPoints, error) {
	rows, err := s.statsRepo.ListByLeagueAndPlayer(ctx, p.LeagueID, p.ID)
	if err != nil {
		return PlayerPoints{}, fmt.Errorf("list match stats for player=%s: %w", p.ID, err)
	}

	total := 0
	for _, row := range rows {
		points, err := scoring.CalculatePoints(scoring.MatchStats{
			Counters: row.Counters,
			Position: string(row.Position),
		})
		if err != nil {
			s.logger.WarnContext(ctx, "skip unscorable match stat",
				"league_id", p.LeagueID,
				"player_id", p.ID,
				"match_id", row.MatchID,
				"error", err,
			)
			continue
		}
		total += points
	}

	return PlayerPoints{
		Player: p,
		Season: playerstats.Summarize(p.ID, rows),
		Points: total,
	}, nil
}
