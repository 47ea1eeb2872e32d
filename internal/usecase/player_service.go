package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/league"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/player"
)

type PlayerService struct {
	leagueRepo league.Repository
	playerRepo player.Repository
}

func NewPlayerService(leagueRepo league.Repository, playerRepo player.Repository) *PlayerService {
	return &PlayerService{
		leagueRepo: leagueRepo,
		playerRepo: playerRepo,
	}
}

// ListPlayersByLeague returns the league's player pool, most expensive first. A non-empty
// role (GK, DEF, MID, FWD) keeps only players whose position classifies into it.
func (s *PlayerService) ListPlayersByLeague(ctx context.Context, leagueID, role string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListPlayersByLeague")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	wantRole, err := parseRoleFilter(role)
	if err != nil {
		return nil, err
	}
	if err := ensureLeague(ctx, s.leagueRepo, leagueID); err != nil {
		return nil, err
	}

	items, err := s.playerRepo.ListByLeague(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list players by league: %w", err)
	}

	out := make([]player.Player, 0, len(items))
	for _, p := range items {
		if wantRole != "" {
			got, err := player.Classify(p.Position)
			if err != nil || got != wantRole {
				continue
			}
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Price != out[j].Price {
			return out[i].Price > out[j].Price
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (s *PlayerService) GetPlayerByLeagueAndID(ctx context.Context, leagueID, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayerByLeagueAndID")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	playerID = strings.TrimSpace(playerID)
	if leagueID == "" {
		return player.Player{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if err := ensureLeague(ctx, s.leagueRepo, leagueID); err != nil {
		return player.Player{}, err
	}

	items, err := s.playerRepo.GetByIDs(ctx, leagueID, []string{playerID})
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by id: %w", err)
	}
	if len(items) == 0 {
		return player.Player{}, fmt.Errorf("%w: player=%s league=%s", ErrNotFound, playerID, leagueID)
	}

	return items[0], nil
}

// parseRoleFilter accepts role names only; concrete positions such as ST are rejected.
func parseRoleFilter(raw string) (player.Role, error) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if raw == "" {
		return "", nil
	}
	for _, role := range player.AllRoles() {
		if player.Role(raw) == role {
			return role, nil
		}
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrInvalidInput, raw)
}
