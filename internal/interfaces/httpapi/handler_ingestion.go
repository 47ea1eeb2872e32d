package httpapi

import (
	"net/http"
	"time"

	"github.com/riskibarqy/proclubs-fantasy/internal/usecase"
)

func (h *Handler) IngestMatchStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestMatchStats")
	defer span.End()

	var req ingestMatchStatsRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	rows := make([]usecase.MatchStatInput, 0, len(req.Rows))
	for _, row := range req.Rows {
		rows = append(rows, usecase.MatchStatInput{
			PlayerID:    row.PlayerID,
			Position:    row.Position,
			Goals:       row.Goals,
			Assists:     row.Assists,
			CleanSheets: row.CleanSheets,
			YellowCards: row.YellowCards,
			RedCards:    row.RedCards,
		})
	}

	var playedAt time.Time
	if req.PlayedAt != nil {
		playedAt = req.PlayedAt.UTC()
	}

	result, err := h.ingestionService.IngestMatch(ctx, usecase.IngestMatchInput{
		LeagueID: req.LeagueID,
		MatchID:  req.MatchID,
		PlayedAt: playedAt,
		Rows:     rows,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "ingest match stats failed", "league_id", req.LeagueID, "match_id", req.MatchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ingestMatchStatsDTO{
		LeagueID:            result.LeagueID,
		MatchID:             result.MatchID,
		Rows:                result.Rows,
		PlayersRecalculated: result.PlayersRecalculated,
	})
}
