package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/riskibarqy/proclubs-fantasy/internal/observability"
	"github.com/riskibarqy/proclubs-fantasy/internal/platform/logging"
	"github.com/riskibarqy/proclubs-fantasy/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

// Services groups the use cases exposed over HTTP.
type Services struct {
	Leagues     *usecase.LeagueService
	Players     *usecase.PlayerService
	PlayerStats *usecase.PlayerStatsService
	Formations  *usecase.FormationService
	Lineups     *usecase.LineupService
	Squads      *usecase.SquadService
	Points      *usecase.PointsService
	Ingestion   *usecase.StatsIngestionService
}

type Handler struct {
	leagueService      *usecase.LeagueService
	playerService      *usecase.PlayerService
	playerStatsService *usecase.PlayerStatsService
	formationService   *usecase.FormationService
	lineupService      *usecase.LineupService
	squadService       *usecase.SquadService
	pointsService      *usecase.PointsService
	ingestionService   *usecase.StatsIngestionService
	metrics            *observability.Metrics
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(services Services, metrics *observability.Metrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		leagueService:      services.Leagues,
		playerService:      services.Players,
		playerStatsService: services.PlayerStats,
		formationService:   services.Formations,
		lineupService:      services.Lineups,
		squadService:       services.Squads,
		pointsService:      services.Points,
		ingestionService:   services.Ingestion,
		metrics:            metrics,
		logger:             logger,
		validator:          validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeJSON reads a single JSON document, rejecting unknown fields, and validates it.
func (h *Handler) decodeJSON(ctx context.Context, r *http.Request, dst any) error {
	decoder := jsoniter.NewDecoder(io.LimitReader(r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, dst)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) requireUserID(ctx context.Context) (string, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return "", fmt.Errorf("%w: user id is missing from request context", usecase.ErrUnauthorized)
	}
	return userID, nil
}
