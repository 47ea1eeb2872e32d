package postgres

import (
	"time"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/league"
)

type leagueTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	Name      string     `db:"name"`
	Platform  string     `db:"platform"`
	Season    string     `db:"season"`
	IsDefault bool       `db:"is_default"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

func (m leagueTableModel) toDomain() league.League {
	return league.League{
		ID:        m.PublicID,
		Name:      m.Name,
		Platform:  m.Platform,
		Season:    m.Season,
		IsDefault: m.IsDefault,
	}
}
