package httpapi

import (
	"net/http"

	"github.com/riskibarqy/proclubs-fantasy/internal/usecase"
)

func (h *Handler) ListFormations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFormations")
	defer span.End()

	items := h.formationService.List(ctx)
	out := make([]formationDTO, 0, len(items))
	for _, item := range items {
		out = append(out, formationToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetFormation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFormation")
	defer span.End()

	item, err := h.formationService.Get(ctx, r.PathValue("name"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, formationToDTO(item))
}

func (h *Handler) CreateFormation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateFormation")
	defer span.End()

	var req createFormationRequest
	if err := h.decodeJSON(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	slots := make([]usecase.FormationSlotInput, 0, len(req.Slots))
	for _, s := range req.Slots {
		slots = append(slots, usecase.FormationSlotInput{Label: s.Label, X: s.X, Y: s.Y})
	}

	item, err := h.formationService.CreateCustom(ctx, usecase.CreateFormationInput{
		Name:  req.Name,
		Slots: slots,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create formation failed", "formation", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, formationToDTO(item))
}
