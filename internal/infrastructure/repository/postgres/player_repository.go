package postgres

import (
	"context"
	"sort"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/player"
	qb "github.com/riskibarqy/proclubs-fantasy/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListByLeague(ctx context.Context, leagueID string) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select players by league query")
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrapf(err, "select players by league=%s", leagueID)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, leagueID string, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select("*").From("players").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.In("public_id", stringSliceToAny(playerIDs)),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select players by ids query")
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select players by ids")
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

// UpdatePoints writes every total in one transaction, in id order so concurrent
// recalculations lock rows consistently.
func (r *PlayerRepository) UpdatePoints(ctx context.Context, leagueID string, pointsByPlayerID map[string]int) error {
	if len(pointsByPlayerID) == 0 {
		return nil
	}

	ids := make([]string, 0, len(pointsByPlayerID))
	for id := range pointsByPlayerID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return crerr.Wrap(err, "begin tx for player points update")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, id := range ids {
		query, args, err := qb.Update("players").
			Set("points", pointsByPlayerID[id]).
			SetExpr("updated_at", "NOW()").
			Where(
				qb.Eq("league_public_id", leagueID),
				qb.Eq("public_id", id),
				qb.IsNull("deleted_at"),
			).
			ToSQL()
		if err != nil {
			return crerr.Wrapf(err, "build update points query player=%s", id)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return crerr.Wrapf(err, "update points player=%s", id)
		}
	}

	if err := tx.Commit(); err != nil {
		return crerr.Wrap(err, "commit player points update tx")
	}
	return nil
}
