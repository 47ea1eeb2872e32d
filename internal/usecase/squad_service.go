package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/league"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/player"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/scoring"
	idgen "github.com/riskibarqy/proclubs-fantasy/internal/platform/id"
	"github.com/riskibarqy/proclubs-fantasy/internal/platform/logging"
)

// SaveSquadInput is the incoming payload for create/update squad.
type SaveSquadInput struct {
	UserID        string
	LeagueID      string
	Name          string
	FormationName string
	PlayerIDs     []string
}

type SquadService struct {
	leagueRepo  league.Repository
	playerRepo  player.Repository
	squadRepo   fantasy.Repository
	formations  *FormationService
	leaderboard scoring.LeaderboardStore
	rules       fantasy.Rules
	idGen       idgen.Generator
	logger      *logging.Logger
	now         func() time.Time
}

func NewSquadService(
	leagueRepo league.Repository,
	playerRepo player.Repository,
	squadRepo fantasy.Repository,
	formations *FormationService,
	leaderboard scoring.LeaderboardStore,
	rules fantasy.Rules,
	idGen idgen.Generator,
	logger *logging.Logger,
) *SquadService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SquadService{
		leagueRepo:  leagueRepo,
		playerRepo:  playerRepo,
		squadRepo:   squadRepo,
		formations:  formations,
		leaderboard: leaderboard,
		rules:       rules,
		idGen:       idGen,
		logger:      logger,
		now:         time.Now,
	}
}

// Save persists a complete and valid lineup as the user's squad for the league.
func (s *SquadService) Save(ctx context.Context, input SaveSquadInput) (fantasy.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.Save")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.Name = strings.TrimSpace(input.Name)

	if input.UserID == "" {
		return fantasy.Squad{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.LeagueID == "" {
		return fantasy.Squad{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return fantasy.Squad{}, fmt.Errorf("%w: squad name is required", ErrInvalidInput)
	}
	if len(input.PlayerIDs) == 0 {
		return fantasy.Squad{}, fmt.Errorf("%w: player ids are required", ErrInvalidInput)
	}

	f, err := s.formations.Resolve(ctx, input.FormationName)
	if err != nil {
		return fantasy.Squad{}, err
	}
	if err := ensureLeague(ctx, s.leagueRepo, input.LeagueID); err != nil {
		return fantasy.Squad{}, err
	}

	players, err := resolvePlayers(ctx, s.playerRepo, input.LeagueID, input.PlayerIDs)
	if err != nil {
		return fantasy.Squad{}, err
	}

	lineup := fantasy.NewLineup(f, players...)
	if err := lineup.Validate(s.rules); err != nil {
		if errors.Is(err, fantasy.ErrUnknownPlayerPosition) {
			s.logger.WarnContext(ctx, "squad rejected: unknown player position",
				"user_id", input.UserID,
				"league_id", input.LeagueID,
				"error", err,
			)
		}
		return fantasy.Squad{}, fmt.Errorf("%w: validate lineup: %w", ErrInvalidInput, err)
	}

	slots, err := lineup.AssignSlots()
	if err != nil {
		return fantasy.Squad{}, fmt.Errorf("%w: assign slots: %v", ErrInvalidInput, err)
	}

	picks := make([]fantasy.SquadPick, 0, len(players))
	for i, p := range players {
		role, _ := p.Role()
		picks = append(picks, fantasy.SquadPick{
			PlayerID: p.ID,
			TeamID:   p.TeamID,
			Position: p.Position,
			Role:     role,
			Slot:     slots[i].SlotIndex,
			Price:    p.Price,
		})
	}

	now := s.now().UTC()
	existingSquad, exists, err := s.squadRepo.GetByUserAndLeague(ctx, input.UserID, input.LeagueID)
	if err != nil {
		return fantasy.Squad{}, fmt.Errorf("get existing squad: %w", err)
	}

	squadID := existingSquad.ID
	createdAt := existingSquad.CreatedAt
	if !exists {
		squadID, err = s.idGen.NewID()
		if err != nil {
			return fantasy.Squad{}, fmt.Errorf("generate squad id: %w", err)
		}
		createdAt = now
	}

	squad := fantasy.Squad{
		ID:            squadID,
		UserID:        input.UserID,
		LeagueID:      input.LeagueID,
		Name:          input.Name,
		FormationName: f.Name,
		Picks:         picks,
		BudgetCap:     s.rules.BudgetCap,
		CreatedAt:     createdAt,
		UpdatedAt:     now,
	}

	if err := squad.ValidateBasic(); err != nil {
		return fantasy.Squad{}, fmt.Errorf("validate squad: %w", err)
	}

	if err := s.squadRepo.Upsert(ctx, squad); err != nil {
		return fantasy.Squad{}, fmt.Errorf("upsert squad: %w", err)
	}

	if s.leaderboard != nil {
		if err := s.leaderboard.Invalidate(ctx, input.LeagueID); err != nil {
			s.logger.WarnContext(ctx, "invalidate leaderboard after squad save failed",
				"league_id", input.LeagueID,
				"error", err,
			)
		}
	}

	s.logger.InfoContext(ctx, "squad saved",
		"user_id", input.UserID,
		"league_id", input.LeagueID,
		"squad_id", squad.ID,
		"formation", squad.FormationName,
		"total_cost", squad.TotalCost(),
	)

	return squad, nil
}

func (s *SquadService) Get(ctx context.Context, userID, leagueID string) (fantasy.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.Get")
	defer span.End()

	userID = strings.TrimSpace(userID)
	leagueID = strings.TrimSpace(leagueID)
	if userID == "" || leagueID == "" {
		return fantasy.Squad{}, fmt.Errorf("%w: user_id and league_id are required", ErrInvalidInput)
	}

	squad, exists, err := s.squadRepo.GetByUserAndLeague(ctx, userID, leagueID)
	if err != nil {
		return fantasy.Squad{}, fmt.Errorf("get squad: %w", err)
	}
	if !exists {
		return fantasy.Squad{}, fmt.Errorf("%w: squad not found", ErrNotFound)
	}

	return squad, nil
}
