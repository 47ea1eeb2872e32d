package postgres

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/player"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/playerstats"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/scoring"
	qb "github.com/riskibarqy/proclubs-fantasy/internal/platform/querybuilder"
)

type matchStatTableModel struct {
	LeaguePublicID string    `db:"league_public_id"`
	MatchID        string    `db:"match_id"`
	PlayerPublicID string    `db:"player_public_id"`
	TeamPublicID   string    `db:"team_public_id"`
	Position       string    `db:"position"`
	Goals          int       `db:"goals"`
	Assists        int       `db:"assists"`
	CleanSheets    int       `db:"clean_sheets"`
	YellowCards    int       `db:"yellow_cards"`
	RedCards       int       `db:"red_cards"`
	PlayedAt       time.Time `db:"played_at"`
}

var matchStatColumns = []string{
	"league_public_id",
	"match_id",
	"player_public_id",
	"team_public_id",
	"position",
	"goals",
	"assists",
	"clean_sheets",
	"yellow_cards",
	"red_cards",
	"played_at",
}

func (m matchStatTableModel) toDomain() playerstats.MatchStat {
	return playerstats.MatchStat{
		LeagueID: m.LeaguePublicID,
		MatchID:  m.MatchID,
		PlayerID: m.PlayerPublicID,
		TeamID:   m.TeamPublicID,
		Position: player.Position(m.Position),
		Counters: scoring.Counters{
			Goals:       m.Goals,
			Assists:     m.Assists,
			CleanSheets: m.CleanSheets,
			YellowCards: m.YellowCards,
			RedCards:    m.RedCards,
		},
		PlayedAt: m.PlayedAt,
	}
}

type PlayerStatsRepository struct {
	db *sqlx.DB
}

func NewPlayerStatsRepository(db *sqlx.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

func (r *PlayerStatsRepository) ListByLeagueAndPlayer(ctx context.Context, leagueID, playerID string) ([]playerstats.MatchStat, error) {
	query, args, err := qb.Select(matchStatColumns...).From("player_match_stats").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("player_public_id", playerID),
		).
		OrderBy("played_at", "match_id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build list player match stats query")
	}

	var rows []matchStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrapf(err, "list match stats league=%s player=%s", leagueID, playerID)
	}

	out := make([]playerstats.MatchStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *PlayerStatsRepository) ListRecentByLeagueAndPlayer(ctx context.Context, leagueID, playerID string, limit int) ([]playerstats.MatchStat, error) {
	query, args, err := qb.Select(matchStatColumns...).From("player_match_stats").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("player_public_id", playerID),
		).
		OrderBy("played_at DESC", "match_id DESC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build list recent match stats query")
	}

	var rows []matchStatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrapf(err, "list recent match stats league=%s player=%s", leagueID, playerID)
	}

	out := make([]playerstats.MatchStat, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// UpsertMatchStats replaces every stored row of the match in one transaction.
func (r *PlayerStatsRepository) UpsertMatchStats(ctx context.Context, leagueID, matchID string, stats []playerstats.MatchStat) ([]string, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "begin tx for match stats upsert")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearSQL, clearArgs, err := qb.DeleteFrom("player_match_stats").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("match_id", matchID),
		).
		Suffix("RETURNING player_public_id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build clear match stats query")
	}
	var replaced []string
	if err := tx.SelectContext(ctx, &replaced, clearSQL, clearArgs...); err != nil {
		return nil, crerr.Wrapf(err, "clear match stats league=%s match=%s", leagueID, matchID)
	}

	if len(stats) > 0 {
		insert := qb.InsertInto("player_match_stats").Columns(matchStatColumns...)
		for _, s := range stats {
			insert.Values(
				leagueID,
				matchID,
				s.PlayerID,
				s.TeamID,
				string(s.Position),
				s.Goals,
				s.Assists,
				s.CleanSheets,
				s.YellowCards,
				s.RedCards,
				s.PlayedAt.UTC(),
			)
		}
		query, args, err := insert.ToSQL()
		if err != nil {
			return nil, crerr.Wrap(err, "build insert match stats query")
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return nil, crerr.Wrapf(err, "insert match stats league=%s match=%s", leagueID, matchID)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, crerr.Wrap(err, "commit match stats upsert tx")
	}
	return replaced, nil
}
