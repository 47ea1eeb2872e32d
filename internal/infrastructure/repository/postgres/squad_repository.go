package postgres

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/fantasy"
	qb "github.com/riskibarqy/proclubs-fantasy/internal/platform/querybuilder"
)

type SquadRepository struct {
	db *sqlx.DB
}

func NewSquadRepository(db *sqlx.DB) *SquadRepository {
	return &SquadRepository{db: db}
}

func (r *SquadRepository) GetByUserAndLeague(ctx context.Context, userID, leagueID string) (fantasy.Squad, bool, error) {
	query, args, err := qb.Select(squadSelectColumns...).From("fantasy_squads").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("league_public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fantasy.Squad{}, false, crerr.Wrap(err, "build get squad query")
	}

	var row squadTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fantasy.Squad{}, false, nil
		}
		return fantasy.Squad{}, false, crerr.Wrapf(err, "get squad user=%s league=%s", userID, leagueID)
	}

	picks, err := r.listPicks(ctx, []string{row.PublicID})
	if err != nil {
		return fantasy.Squad{}, false, err
	}

	return row.toDomain(picks[row.PublicID]), true, nil
}

func (r *SquadRepository) ListByLeague(ctx context.Context, leagueID string) ([]fantasy.Squad, error) {
	query, args, err := qb.Select(squadSelectColumns...).From("fantasy_squads").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("created_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build list squads by league query")
	}

	var rows []squadTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrapf(err, "list squads by league=%s", leagueID)
	}
	if len(rows) == 0 {
		return []fantasy.Squad{}, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.PublicID)
	}
	picks, err := r.listPicks(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]fantasy.Squad, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain(picks[row.PublicID]))
	}
	return out, nil
}

// listPicks returns the live picks of each squad in selection order.
func (r *SquadRepository) listPicks(ctx context.Context, squadIDs []string) (map[string][]fantasy.SquadPick, error) {
	query, args, err := qb.Select(squadPickSelectColumns...).From("fantasy_squad_picks").
		Where(
			qb.In("squad_public_id", stringSliceToAny(squadIDs)),
			qb.IsNull("deleted_at"),
		).
		OrderBy("squad_public_id", "pick_order").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build list squad picks query")
	}

	var rows []squadPickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "list squad picks")
	}

	out := make(map[string][]fantasy.SquadPick, len(squadIDs))
	for _, row := range rows {
		out[row.SquadPublicID] = append(out[row.SquadPublicID], row.toDomain())
	}
	return out, nil
}

func (r *SquadRepository) Upsert(ctx context.Context, squad fantasy.Squad) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return crerr.Wrap(err, "begin tx for squad upsert")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const upsertSquadQuery = `
INSERT INTO fantasy_squads (public_id, user_id, league_public_id, name, formation_name, budget_cap, total_cost, created_at, updated_at)
VALUES (:public_id, :user_id, :league_public_id, :name, :formation_name, :budget_cap, :total_cost, :created_at, :updated_at)
ON CONFLICT (user_id, league_public_id) WHERE deleted_at IS NULL
DO UPDATE SET
    name = EXCLUDED.name,
    formation_name = EXCLUDED.formation_name,
    budget_cap = EXCLUDED.budget_cap,
    total_cost = EXCLUDED.total_cost,
    updated_at = EXCLUDED.updated_at,
    deleted_at = NULL
RETURNING public_id`

	upsertSQL, upsertArgs, err := sqlx.Named(upsertSquadQuery, map[string]any{
		"public_id":        squad.ID,
		"user_id":          squad.UserID,
		"league_public_id": squad.LeagueID,
		"name":             squad.Name,
		"formation_name":   squad.FormationName,
		"budget_cap":       squad.BudgetCap,
		"total_cost":       squad.TotalCost(),
		"created_at":       timeOrNow(squad.CreatedAt),
		"updated_at":       timeOrNow(squad.UpdatedAt),
	})
	if err != nil {
		return crerr.Wrap(err, "bind upsert fantasy squad query")
	}

	var publicID string
	if err := tx.GetContext(ctx, &publicID, tx.Rebind(upsertSQL), upsertArgs...); err != nil {
		return crerr.Wrapf(err, "upsert fantasy squad user=%s league=%s", squad.UserID, squad.LeagueID)
	}

	clearSQL, clearArgs, err := qb.Update("fantasy_squad_picks").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("squad_public_id", publicID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build clear squad picks query")
	}
	if _, err := tx.ExecContext(ctx, clearSQL, clearArgs...); err != nil {
		return crerr.Wrap(err, "soft delete existing squad picks")
	}

	if len(squad.Picks) > 0 {
		insert := qb.InsertInto("fantasy_squad_picks").Columns(
			"squad_public_id",
			"player_public_id",
			"team_public_id",
			"position",
			"role",
			"slot_index",
			"pick_order",
			"price",
		)
		for i, pick := range squad.Picks {
			insert.Values(publicID, pick.PlayerID, pick.TeamID, string(pick.Position), string(pick.Role), pick.Slot, i, pick.Price)
		}
		insertSQL, insertArgs, err := insert.ToSQL()
		if err != nil {
			return crerr.Wrap(err, "build insert squad picks query")
		}
		if _, err := tx.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
			return crerr.Wrapf(err, "insert squad picks squad=%s", publicID)
		}
	}

	if err := tx.Commit(); err != nil {
		return crerr.Wrap(err, "commit squad upsert tx")
	}

	return nil
}

func timeOrNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t
}
