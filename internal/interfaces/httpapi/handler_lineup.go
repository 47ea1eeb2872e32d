package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/proclubs-fantasy/internal/observability"
	"github.com/riskibarqy/proclubs-fantasy/internal/usecase"
)

func (h *Handler) EvaluateLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EvaluateLineup")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	var req lineupRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.lineupService.Evaluate(ctx, usecase.LineupInput{
		LeagueID:      leagueID,
		FormationName: req.FormationName,
		PlayerIDs:     req.PlayerIDs,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "evaluate lineup failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.metrics.ObserveLineupEvaluation(lineupOutcome(result))
	writeSuccess(ctx, w, http.StatusOK, lineupEvaluationToDTO(result))
}

func (h *Handler) CanAddToLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CanAddToLineup")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	var req canAddRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.lineupService.CanAdd(ctx, usecase.CanAddInput{
		LineupInput: usecase.LineupInput{
			LeagueID:      leagueID,
			FormationName: req.FormationName,
			PlayerIDs:     req.PlayerIDs,
		},
		CandidateID: req.CandidateID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "can add check failed", "league_id", leagueID, "candidate_id", req.CandidateID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, canAddDTO{
		Allowed: result.Allowed,
		Reason:  result.Reason,
		Role:    string(result.Role),
	})
}

func (h *Handler) ChangeLineupFormation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ChangeLineupFormation")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	var req lineupRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.lineupService.ChangeFormation(ctx, usecase.LineupInput{
		LeagueID:      leagueID,
		FormationName: req.FormationName,
		PlayerIDs:     req.PlayerIDs,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "change lineup formation failed", "league_id", leagueID, "formation", req.FormationName, "error", err)
		writeError(ctx, w, err)
		return
	}

	kept := result.KeptIDs
	if kept == nil {
		kept = []string{}
	}
	writeSuccess(ctx, w, http.StatusOK, formationChangeDTO{
		Formation:  result.Formation.Name,
		KeptIDs:    kept,
		DroppedIDs: result.DroppedIDs,
	})
}

func lineupOutcome(v usecase.LineupEvaluation) string {
	switch {
	case v.IsOverBudget:
		return observability.LineupOutcomeOverBudget
	case v.IsValid:
		return observability.LineupOutcomeValid
	default:
		return observability.LineupOutcomeIncomplete
	}
}
