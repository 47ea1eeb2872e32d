package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/scoring"
)

func (h *Handler) GetMySquadPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMySquadPoints")
	defer span.End()

	userID, err := h.requireUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	result, err := h.pointsService.SquadPoints(ctx, userID, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get squad points failed", "league_id", leagueID, "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadPointsToDTO(result))
}

func (h *Handler) GetPlayerPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerPoints")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))
	result, err := h.pointsService.PlayerPoints(ctx, leagueID, playerID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerPointsToDTO(result))
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	board, err := h.pointsService.Leaderboard(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardToDTO(board))
}

func (h *Handler) CalculatePoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CalculatePoints")
	defer span.End()

	var req calculatePointsRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	points, err := h.pointsService.Calculate(ctx, scoring.MatchStats{
		Position: req.Position,
		Counters: scoring.Counters{
			Goals:       req.Goals,
			Assists:     req.Assists,
			CleanSheets: req.CleanSheets,
			YellowCards: req.YellowCards,
			RedCards:    req.RedCards,
		},
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, pointsDTO{
		Position: strings.ToUpper(strings.TrimSpace(req.Position)),
		Points:   points,
	})
}
