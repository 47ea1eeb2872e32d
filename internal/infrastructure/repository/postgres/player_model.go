package postgres

import (
	"time"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/player"
)

type playerTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	LeagueID  string     `db:"league_public_id"`
	TeamID    string     `db:"team_public_id"`
	Name      string     `db:"name"`
	Position  string     `db:"position"`
	Price     int64      `db:"price"`
	Points    int        `db:"points"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:       m.PublicID,
		LeagueID: m.LeagueID,
		TeamID:   m.TeamID,
		Name:     m.Name,
		Position: player.Position(m.Position),
		Price:    m.Price,
		Points:   m.Points,
	}
}
