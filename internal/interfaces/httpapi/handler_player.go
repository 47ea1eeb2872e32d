package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/proclubs-fantasy/internal/usecase"
)

const maxHistoryLimit = 50

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	leagues, err := h.leagueService.ListLeagues(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueDTO, 0, len(leagues))
	for _, item := range leagues {
		items = append(items, leagueToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListPlayersByLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayersByLeague")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	players, err := h.playerService.ListPlayersByLeague(ctx, leagueID, r.URL.Query().Get("role"))
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayerDetailsByLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerDetailsByLeague")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))

	item, err := h.playerService.GetPlayerByLeagueAndID(ctx, leagueID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player details failed", "league_id", leagueID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	season, err := h.playerStatsService.GetSeasonStats(ctx, leagueID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player season stats failed", "league_id", leagueID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	history, err := h.playerStatsService.ListMatchHistory(ctx, leagueID, playerID, 5)
	if err != nil {
		h.logger.WarnContext(ctx, "get player history failed", "league_id", leagueID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerDetailDTO{
		Player:     playerToDTO(item),
		Statistics: seasonStatsToDTO(season),
		History:    matchHistoryToDTO(history),
	})
}

func (h *Handler) GetPlayerHistoryByLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerHistoryByLeague")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	playerID := strings.TrimSpace(r.PathValue("playerID"))

	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if _, err := h.playerService.GetPlayerByLeagueAndID(ctx, leagueID, playerID); err != nil {
		writeError(ctx, w, err)
		return
	}

	history, err := h.playerStatsService.ListMatchHistory(ctx, leagueID, playerID, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "get player history failed", "league_id", leagueID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchHistoryToDTO(history))
}

// parseLimit returns 0 (service default) for an empty value.
func parseLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 || limit > maxHistoryLimit {
		return 0, fmt.Errorf("%w: limit must be between 1 and %d", usecase.ErrInvalidInput, maxHistoryLimit)
	}
	return limit, nil
}
