package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/proclubs-fantasy/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/proclubs-fantasy/internal/platform/querybuilder"
)

type leagueSeedRow struct {
	PublicID  string `db:"public_id"`
	Name      string `db:"name"`
	Platform  string `db:"platform"`
	Season    string `db:"season"`
	IsDefault bool   `db:"is_default"`
}

type playerSeedRow struct {
	PublicID string `db:"public_id"`
	LeagueID string `db:"league_public_id"`
	TeamID   string `db:"team_public_id"`
	Name     string `db:"name"`
	Position string `db:"position"`
	Price    int64  `db:"price"`
}

// BootstrapSeed loads the demo leagues and player pools into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM leagues WHERE deleted_at IS NULL`); err != nil {
		return crerr.Wrap(err, "count leagues for bootstrap seed")
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return crerr.Wrap(err, "begin seed tx")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, l := range memory.SeedLeagues() {
		query, args, err := qb.InsertModel("leagues", leagueSeedRow{
			PublicID:  l.ID,
			Name:      l.Name,
			Platform:  l.Platform,
			Season:    l.Season,
			IsDefault: l.IsDefault,
		}, "ON CONFLICT (public_id) DO NOTHING")
		if err != nil {
			return crerr.Wrapf(err, "build seed league %s query", l.ID)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return crerr.Wrapf(err, "seed league %s", l.ID)
		}
	}

	for _, p := range memory.SeedPlayers() {
		query, args, err := qb.InsertModel("players", playerSeedRow{
			PublicID: p.ID,
			LeagueID: p.LeagueID,
			TeamID:   p.TeamID,
			Name:     p.Name,
			Position: string(p.Position),
			Price:    p.Price,
		}, "ON CONFLICT (league_public_id, public_id) DO NOTHING")
		if err != nil {
			return crerr.Wrapf(err, "build seed player %s query", p.ID)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return crerr.Wrapf(err, "seed player %s", p.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return crerr.Wrap(err, "commit seed tx")
	}

	return nil
}
