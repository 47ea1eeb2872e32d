package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/proclubs-fantasy/internal/usecase"
)

func (h *Handler) GetMySquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMySquad")
	defer span.End()

	userID, err := h.requireUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	squad, err := h.squadService.Get(ctx, userID, leagueID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(squad))
}

func (h *Handler) SaveMySquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveMySquad")
	defer span.End()

	userID, err := h.requireUserID(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	var req saveSquadRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	squad, err := h.squadService.Save(ctx, usecase.SaveSquadInput{
		UserID:        userID,
		LeagueID:      leagueID,
		Name:          req.Name,
		FormationName: req.FormationName,
		PlayerIDs:     req.PlayerIDs,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save squad failed", "league_id", leagueID, "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(squad))
}
