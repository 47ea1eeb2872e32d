package postgres

import (
	"time"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/player"
)

type squadTableModel struct {
	PublicID       string    `db:"public_id"`
	UserID         string    `db:"user_id"`
	LeaguePublicID string    `db:"league_public_id"`
	Name           string    `db:"name"`
	FormationName  string    `db:"formation_name"`
	BudgetCap      int64     `db:"budget_cap"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type squadPickTableModel struct {
	SquadPublicID  string `db:"squad_public_id"`
	PlayerPublicID string `db:"player_public_id"`
	TeamPublicID   string `db:"team_public_id"`
	Position       string `db:"position"`
	Role           string `db:"role"`
	SlotIndex      int    `db:"slot_index"`
	Price          int64  `db:"price"`
}

var squadSelectColumns = []string{
	"public_id",
	"user_id",
	"league_public_id",
	"name",
	"formation_name",
	"budget_cap",
	"created_at",
	"updated_at",
}

var squadPickSelectColumns = []string{
	"squad_public_id",
	"player_public_id",
	"team_public_id",
	"position",
	"role",
	"slot_index",
	"price",
}

func (m squadPickTableModel) toDomain() fantasy.SquadPick {
	return fantasy.SquadPick{
		PlayerID: m.PlayerPublicID,
		TeamID:   m.TeamPublicID,
		Position: player.Position(m.Position),
		Role:     player.Role(m.Role),
		Slot:     m.SlotIndex,
		Price:    m.Price,
	}
}

func (m squadTableModel) toDomain(picks []fantasy.SquadPick) fantasy.Squad {
	return fantasy.Squad{
		ID:            m.PublicID,
		UserID:        m.UserID,
		LeagueID:      m.LeaguePublicID,
		Name:          m.Name,
		FormationName: m.FormationName,
		Picks:         picks,
		BudgetCap:     m.BudgetCap,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
