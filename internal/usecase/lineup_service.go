package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/formation"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/league"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/player"
	"github.com/riskibarqy/proclubs-fantasy/internal/platform/logging"
)

// Reasons reported when a player cannot join a lineup.
const (
	RejectReasonDuplicate       = "duplicate_player"
	RejectReasonRoleQuotaFull   = "role_quota_full"
	RejectReasonUnknownPosition = "unknown_position"
)

type LineupInput struct {
	LeagueID      string
	FormationName string
	PlayerIDs     []string
}

type CanAddInput struct {
	LineupInput
	CandidateID string
}

type RejectedPlayer struct {
	PlayerID string
	Reason   string
}

type LineupEvaluation struct {
	Formation    formation.Formation
	Players      []player.Player
	Rejected     []RejectedPlayer
	RoleCounts   map[player.Role]int
	TotalCost    int64
	BudgetCap    int64
	IsValid      bool
	IsOverBudget bool
	// Slots is only filled for valid lineups.
	Slots []fantasy.SlotAssignment
}

type CanAddResult struct {
	Allowed bool
	Reason  string
	Role    player.Role
}

type FormationChangeResult struct {
	Formation  formation.Formation
	KeptIDs    []string
	DroppedIDs []string
}

type LineupService struct {
	leagueRepo league.Repository
	playerRepo player.Repository
	formations *FormationService
	rules      fantasy.Rules
	logger     *logging.Logger
}

func NewLineupService(
	leagueRepo league.Repository,
	playerRepo player.Repository,
	formations *FormationService,
	rules fantasy.Rules,
	logger *logging.Logger,
) *LineupService {
	if logger == nil {
		logger = logging.Default()
	}

	return &LineupService{
		leagueRepo: leagueRepo,
		playerRepo: playerRepo,
		formations: formations,
		rules:      rules,
		logger:     logger,
	}
}

func (s *LineupService) Rules() fantasy.Rules {
	return s.rules
}

func (s *LineupService) Evaluate(ctx context.Context, input LineupInput) (LineupEvaluation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Evaluate")
	defer span.End()

	f, players, err := s.load(ctx, input)
	if err != nil {
		return LineupEvaluation{}, err
	}

	counts, unknown := fantasy.RoleCounts(players)
	out := LineupEvaluation{
		Formation:    f,
		Players:      players,
		RoleCounts:   counts,
		TotalCost:    fantasy.TotalCost(players),
		BudgetCap:    s.rules.BudgetCap,
		IsValid:      fantasy.IsValid(players, f),
		IsOverBudget: fantasy.IsOverBudget(players, s.rules.BudgetCap),
	}
	for _, p := range unknown {
		s.warnUnknownPosition(ctx, input.LeagueID, p)
		out.Rejected = append(out.Rejected, RejectedPlayer{PlayerID: p.ID, Reason: RejectReasonUnknownPosition})
	}

	if out.IsValid {
		slots, err := fantasy.NewLineup(f, players...).AssignSlots()
		if err != nil {
			return LineupEvaluation{}, fmt.Errorf("assign lineup slots: %w", err)
		}
		out.Slots = slots
	}

	return out, nil
}

func (s *LineupService) CanAdd(ctx context.Context, input CanAddInput) (CanAddResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.CanAdd")
	defer span.End()

	candidateID := strings.TrimSpace(input.CandidateID)
	if candidateID == "" {
		return CanAddResult{}, fmt.Errorf("%w: candidate player id is required", ErrInvalidInput)
	}

	f, selected, err := s.load(ctx, input.LineupInput)
	if err != nil {
		return CanAddResult{}, err
	}

	candidates, err := s.playerRepo.GetByIDs(ctx, input.LeagueID, []string{candidateID})
	if err != nil {
		return CanAddResult{}, fmt.Errorf("get candidate player: %w", err)
	}
	if len(candidates) == 0 {
		return CanAddResult{}, fmt.Errorf("%w: player=%s league=%s", ErrNotFound, candidateID, input.LeagueID)
	}
	candidate := candidates[0]

	role, _ := candidate.Role()
	err = fantasy.CheckAdd(selected, f, candidate)
	switch {
	case err == nil:
		return CanAddResult{Allowed: true, Role: role}, nil
	case errors.Is(err, fantasy.ErrDuplicatePlayerInSquad):
		return CanAddResult{Reason: RejectReasonDuplicate, Role: role}, nil
	case errors.Is(err, fantasy.ErrRoleQuotaFull):
		return CanAddResult{Reason: RejectReasonRoleQuotaFull, Role: role}, nil
	case errors.Is(err, fantasy.ErrUnknownPlayerPosition):
		s.warnUnknownPosition(ctx, input.LeagueID, candidate)
		return CanAddResult{Reason: RejectReasonUnknownPosition}, nil
	default:
		return CanAddResult{}, fmt.Errorf("check lineup add: %w", err)
	}
}

// ChangeFormation moves a selection to another formation, keeping the earliest picks
// of every role that still fit.
func (s *LineupService) ChangeFormation(ctx context.Context, input LineupInput) (FormationChangeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.ChangeFormation")
	defer span.End()

	f, players, err := s.load(ctx, input)
	if err != nil {
		return FormationChangeResult{}, err
	}

	next, dropped := fantasy.NewLineup(formation.Formation{}, players...).WithFormationChanged(f)
	droppedIDs := make([]string, 0, len(dropped))
	for _, p := range dropped {
		if _, err := p.Role(); err != nil {
			s.warnUnknownPosition(ctx, input.LeagueID, p)
		}
		droppedIDs = append(droppedIDs, p.ID)
	}

	return FormationChangeResult{
		Formation:  f,
		KeptIDs:    next.PlayerIDs(),
		DroppedIDs: droppedIDs,
	}, nil
}

func (s *LineupService) load(ctx context.Context, input LineupInput) (formation.Formation, []player.Player, error) {
	leagueID := strings.TrimSpace(input.LeagueID)
	if leagueID == "" {
		return formation.Formation{}, nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if len(input.PlayerIDs) > s.rules.SquadSize {
		return formation.Formation{}, nil, fmt.Errorf("%w: at most %d players can be selected", ErrInvalidInput, s.rules.SquadSize)
	}

	f, err := s.formations.Resolve(ctx, input.FormationName)
	if err != nil {
		return formation.Formation{}, nil, err
	}
	if err := ensureLeague(ctx, s.leagueRepo, leagueID); err != nil {
		return formation.Formation{}, nil, err
	}

	players, err := resolvePlayers(ctx, s.playerRepo, leagueID, input.PlayerIDs)
	if err != nil {
		return formation.Formation{}, nil, err
	}

	return f, players, nil
}

func (s *LineupService) warnUnknownPosition(ctx context.Context, leagueID string, p player.Player) {
	s.logger.WarnContext(ctx, "player rejected: unknown position",
		"league_id", leagueID,
		"player_id", p.ID,
		"position", string(p.Position),
	)
}

func ensureLeague(ctx context.Context, repo league.Repository, leagueID string) error {
	_, exists, err := repo.GetByID(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("get league by id: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	return nil
}

// resolvePlayers loads players in the order of playerIDs.
func resolvePlayers(ctx context.Context, repo player.Repository, leagueID string, playerIDs []string) ([]player.Player, error) {
	playerIDs, err := cleanPlayerIDs(playerIDs)
	if err != nil {
		return nil, err
	}
	if len(playerIDs) == 0 {
		return nil, nil
	}

	items, err := repo.GetByIDs(ctx, leagueID, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}

	byID := make(map[string]player.Player, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		item, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: player=%s not found in league=%s", ErrInvalidInput, id, leagueID)
		}
		out = append(out, item)
	}

	return out, nil
}

func cleanPlayerIDs(playerIDs []string) ([]string, error) {
	cleaned := make([]string, 0, len(playerIDs))
	seen := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, fmt.Errorf("%w: player id cannot be empty", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("%w: duplicate player id %s", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
		cleaned = append(cleaned, id)
	}

	return cleaned, nil
}
