package httpapi

import (
	"time"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/formation"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/league"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/player"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/playerstats"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/proclubs-fantasy/internal/usecase"
)

type lineupRequest struct {
	FormationName string   `json:"formation" validate:"omitempty,max=32"`
	PlayerIDs     []string `json:"player_ids" validate:"dive,required,max=64"`
}

type canAddRequest struct {
	FormationName string   `json:"formation" validate:"omitempty,max=32"`
	PlayerIDs     []string `json:"player_ids" validate:"dive,required,max=64"`
	CandidateID   string   `json:"candidate_id" validate:"required,max=64"`
}

type saveSquadRequest struct {
	Name          string   `json:"name" validate:"required,max=100"`
	FormationName string   `json:"formation" validate:"omitempty,max=32"`
	PlayerIDs     []string `json:"player_ids" validate:"required,min=1,dive,required,max=64"`
}

type createFormationRequest struct {
	Name  string                 `json:"name" validate:"required,max=32"`
	Slots []formationSlotRequest `json:"slots" validate:"required,min=1,dive"`
}

type formationSlotRequest struct {
	Label string  `json:"label" validate:"required,max=8"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

type calculatePointsRequest struct {
	Position    string `json:"position" validate:"required,max=8"`
	Goals       int    `json:"goals"`
	Assists     int    `json:"assists"`
	CleanSheets int    `json:"clean_sheets"`
	YellowCards int    `json:"yellow_cards"`
	RedCards    int    `json:"red_cards"`
}

type ingestMatchStatsRequest struct {
	LeagueID string                `json:"league_id" validate:"required,max=64"`
	MatchID  string                `json:"match_id" validate:"required,max=64"`
	PlayedAt *time.Time            `json:"played_at"`
	Rows     []matchStatRowRequest `json:"rows" validate:"required,min=1,max=64,dive"`
}

type matchStatRowRequest struct {
	PlayerID    string `json:"player_id" validate:"required,max=64"`
	Position    string `json:"position" validate:"omitempty,max=8"`
	Goals       int    `json:"goals"`
	Assists     int    `json:"assists"`
	CleanSheets int    `json:"clean_sheets"`
	YellowCards int    `json:"yellow_cards"`
	RedCards    int    `json:"red_cards"`
}

type leagueDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Platform  string `json:"platform"`
	Season    string `json:"season"`
	IsDefault bool   `json:"is_default"`
}

type playerDTO struct {
	ID       string  `json:"id"`
	LeagueID string  `json:"league_id"`
	TeamID   string  `json:"team_id"`
	Name     string  `json:"name"`
	Position string  `json:"position"`
	Role     string  `json:"role,omitempty"`
	Price    float64 `json:"price"`
	Points   int     `json:"points"`
}

type formationSlotDTO struct {
	Index int     `json:"index"`
	Label string  `json:"label"`
	Role  string  `json:"role"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

type formationDTO struct {
	Name   string             `json:"name"`
	Custom bool               `json:"custom"`
	Quotas map[string]int     `json:"quotas"`
	Slots  []formationSlotDTO `json:"slots"`
}

type rejectedPlayerDTO struct {
	PlayerID string `json:"player_id"`
	Reason   string `json:"reason"`
}

type slotAssignmentDTO struct {
	PlayerID  string `json:"player_id"`
	SlotIndex int    `json:"slot_index"`
	Label     string `json:"label"`
}

type lineupEvaluationDTO struct {
	Formation    string              `json:"formation"`
	PlayerIDs    []string            `json:"player_ids"`
	RoleCounts   map[string]int      `json:"role_counts"`
	Quotas       map[string]int      `json:"quotas"`
	TotalCost    float64             `json:"total_cost"`
	BudgetCap    float64             `json:"budget_cap"`
	IsValid      bool                `json:"is_valid"`
	IsOverBudget bool                `json:"is_over_budget"`
	Rejected     []rejectedPlayerDTO `json:"rejected"`
	Slots        []slotAssignmentDTO `json:"slots,omitempty"`
}

type canAddDTO struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
	Role    string `json:"role,omitempty"`
}

type formationChangeDTO struct {
	Formation  string   `json:"formation"`
	KeptIDs    []string `json:"kept_player_ids"`
	DroppedIDs []string `json:"dropped_player_ids"`
}

type squadPickDTO struct {
	PlayerID string  `json:"player_id"`
	TeamID   string  `json:"team_id"`
	Position string  `json:"position"`
	Role     string  `json:"role"`
	Slot     int     `json:"slot_index"`
	Price    float64 `json:"price"`
}

type squadDTO struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	LeagueID  string         `json:"league_id"`
	Name      string         `json:"name"`
	Formation string         `json:"formation"`
	Picks     []squadPickDTO `json:"picks"`
	TotalCost float64        `json:"total_cost"`
	BudgetCap float64        `json:"budget_cap"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type seasonStatsDTO struct {
	Appearances int `json:"appearances"`
	Goals       int `json:"goals"`
	Assists     int `json:"assists"`
	CleanSheets int `json:"clean_sheets"`
	YellowCards int `json:"yellow_cards"`
	RedCards    int `json:"red_cards"`
}

type playerPointsDTO struct {
	Player     playerDTO      `json:"player"`
	Statistics seasonStatsDTO `json:"statistics"`
	Points     int            `json:"points"`
}

type squadPointsDTO struct {
	SquadID   string            `json:"squad_id"`
	LeagueID  string            `json:"league_id"`
	Formation string            `json:"formation"`
	Total     int               `json:"total_points"`
	Players   []playerPointsDTO `json:"players"`
}

type matchHistoryDTO struct {
	MatchID     string    `json:"match_id"`
	TeamID      string    `json:"team_id"`
	Position    string    `json:"position"`
	PlayedAt    time.Time `json:"played_at"`
	Goals       int       `json:"goals"`
	Assists     int       `json:"assists"`
	CleanSheets int       `json:"clean_sheets"`
	YellowCards int       `json:"yellow_cards"`
	RedCards    int       `json:"red_cards"`
	Points      int       `json:"points"`
}

type playerDetailDTO struct {
	Player     playerDTO         `json:"player"`
	Statistics seasonStatsDTO    `json:"statistics"`
	History    []matchHistoryDTO `json:"history"`
}

type leaderboardEntryDTO struct {
	Rank      int    `json:"rank"`
	SquadID   string `json:"squad_id"`
	UserID    string `json:"user_id"`
	SquadName string `json:"squad_name"`
	Points    int    `json:"points"`
}

type leaderboardDTO struct {
	LeagueID     string                `json:"league_id"`
	CalculatedAt time.Time             `json:"calculated_at"`
	Entries      []leaderboardEntryDTO `json:"entries"`
}

type pointsDTO struct {
	Position string `json:"position"`
	Points   int    `json:"points"`
}

type ingestMatchStatsDTO struct {
	LeagueID            string `json:"league_id"`
	MatchID             string `json:"match_id"`
	Rows                int    `json:"rows"`
	PlayersRecalculated int    `json:"players_recalculated"`
}

// priceToDTO converts tenths to the decimal price shown to clients.
func priceToDTO(tenths int64) float64 {
	return float64(tenths) / 10
}

func roleCountsToDTO(counts map[player.Role]int) map[string]int {
	out := make(map[string]int, len(player.AllRoles()))
	for _, role := range player.AllRoles() {
		out[string(role)] = counts[role]
	}
	return out
}

func leagueToDTO(v league.League) leagueDTO {
	return leagueDTO{
		ID:        v.ID,
		Name:      v.Name,
		Platform:  v.Platform,
		Season:    v.Season,
		IsDefault: v.IsDefault,
	}
}

func playerToDTO(v player.Player) playerDTO {
	out := playerDTO{
		ID:       v.ID,
		LeagueID: v.LeagueID,
		TeamID:   v.TeamID,
		Name:     v.Name,
		Position: string(v.Position),
		Price:    priceToDTO(v.Price),
		Points:   v.Points,
	}
	if role, err := v.Role(); err == nil {
		out.Role = string(role)
	}
	return out
}

func formationToDTO(v formation.Formation) formationDTO {
	slots := make([]formationSlotDTO, 0, len(v.Slots))
	for i, s := range v.Slots {
		slots = append(slots, formationSlotDTO{
			Index: i,
			Label: string(s.Label),
			Role:  string(s.Role),
			X:     s.X,
			Y:     s.Y,
		})
	}

	return formationDTO{
		Name:   v.Name,
		Custom: v.Custom,
		Quotas: roleCountsToDTO(v.Quotas),
		Slots:  slots,
	}
}

func lineupEvaluationToDTO(v usecase.LineupEvaluation) lineupEvaluationDTO {
	playerIDs := make([]string, 0, len(v.Players))
	for _, p := range v.Players {
		playerIDs = append(playerIDs, p.ID)
	}
	rejected := make([]rejectedPlayerDTO, 0, len(v.Rejected))
	for _, item := range v.Rejected {
		rejected = append(rejected, rejectedPlayerDTO{PlayerID: item.PlayerID, Reason: item.Reason})
	}
	var slots []slotAssignmentDTO
	for _, s := range v.Slots {
		slots = append(slots, slotAssignmentDTO{
			PlayerID:  s.PlayerID,
			SlotIndex: s.SlotIndex,
			Label:     string(s.Slot.Label),
		})
	}

	return lineupEvaluationDTO{
		Formation:    v.Formation.Name,
		PlayerIDs:    playerIDs,
		RoleCounts:   roleCountsToDTO(v.RoleCounts),
		Quotas:       roleCountsToDTO(v.Formation.Quotas),
		TotalCost:    priceToDTO(v.TotalCost),
		BudgetCap:    priceToDTO(v.BudgetCap),
		IsValid:      v.IsValid,
		IsOverBudget: v.IsOverBudget,
		Rejected:     rejected,
		Slots:        slots,
	}
}

func squadToDTO(v fantasy.Squad) squadDTO {
	picks := make([]squadPickDTO, 0, len(v.Picks))
	for _, p := range v.Picks {
		picks = append(picks, squadPickDTO{
			PlayerID: p.PlayerID,
			TeamID:   p.TeamID,
			Position: string(p.Position),
			Role:     string(p.Role),
			Slot:     p.Slot,
			Price:    priceToDTO(p.Price),
		})
	}

	return squadDTO{
		ID:        v.ID,
		UserID:    v.UserID,
		LeagueID:  v.LeagueID,
		Name:      v.Name,
		Formation: v.FormationName,
		Picks:     picks,
		TotalCost: priceToDTO(v.TotalCost()),
		BudgetCap: priceToDTO(v.BudgetCap),
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func seasonStatsToDTO(v playerstats.SeasonStats) seasonStatsDTO {
	return seasonStatsDTO{
		Appearances: v.Appearances,
		Goals:       v.Goals,
		Assists:     v.Assists,
		CleanSheets: v.CleanSheets,
		YellowCards: v.YellowCards,
		RedCards:    v.RedCards,
	}
}

func playerPointsToDTO(v usecase.PlayerPoints) playerPointsDTO {
	return playerPointsDTO{
		Player:     playerToDTO(v.Player),
		Statistics: seasonStatsToDTO(v.Season),
		Points:     v.Points,
	}
}

func squadPointsToDTO(v usecase.SquadPoints) squadPointsDTO {
	players := make([]playerPointsDTO, 0, len(v.Players))
	for _, item := range v.Players {
		players = append(players, playerPointsToDTO(item))
	}

	return squadPointsDTO{
		SquadID:   v.Squad.ID,
		LeagueID:  v.Squad.LeagueID,
		Formation: v.Squad.FormationName,
		Total:     v.Total,
		Players:   players,
	}
}

func matchHistoryToDTO(items []usecase.MatchHistoryItem) []matchHistoryDTO {
	out := make([]matchHistoryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, matchHistoryDTO{
			MatchID:     item.MatchID,
			TeamID:      item.TeamID,
			Position:    string(item.Position),
			PlayedAt:    item.PlayedAt,
			Goals:       item.Goals,
			Assists:     item.Assists,
			CleanSheets: item.CleanSheets,
			YellowCards: item.YellowCards,
			RedCards:    item.RedCards,
			Points:      item.Points,
		})
	}
	return out
}

func leaderboardToDTO(v scoring.Leaderboard) leaderboardDTO {
	entries := make([]leaderboardEntryDTO, 0, len(v.Entries))
	for _, e := range v.Entries {
		entries = append(entries, leaderboardEntryDTO{
			Rank:      e.Rank,
			SquadID:   e.SquadID,
			UserID:    e.UserID,
			SquadName: e.SquadName,
			Points:    e.Points,
		})
	}

	return leaderboardDTO{
		LeagueID:     v.LeagueID,
		CalculatedAt: v.CalculatedAt,
		Entries:      entries,
	}
}
