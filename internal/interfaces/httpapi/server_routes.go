package httpapi

import (
	"net/http"

	"github.com/riskibarqy/proclubs-fantasy/internal/observability"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metrics *observability.Metrics, cfg RouterConfig) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if cfg.MetricsEnabled && metrics != nil {
		mux.Handle("GET /metrics", metrics.Handler())
	}
	if !cfg.SwaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/formations", handler.ListFormations)
	mux.HandleFunc("GET /v1/formations/{name}", handler.GetFormation)
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/players", handler.ListPlayersByLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/players/{playerID}", handler.GetPlayerDetailsByLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/players/{playerID}/history", handler.GetPlayerHistoryByLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/players/{playerID}/points", handler.GetPlayerPoints)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/points/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("POST /v1/leagues/{leagueID}/lineups/evaluate", handler.EvaluateLineup)
	mux.HandleFunc("POST /v1/leagues/{leagueID}/lineups/can-add", handler.CanAddToLineup)
	mux.HandleFunc("POST /v1/leagues/{leagueID}/lineups/change-formation", handler.ChangeLineupFormation)
	mux.HandleFunc("POST /v1/points/calculate", handler.CalculatePoints)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminAPIKey string) {
	mux.Handle("POST /v1/formations", RequireAdminKey(adminAPIKey, http.HandlerFunc(handler.CreateFormation)))
}

func registerUserRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("GET /v1/leagues/{leagueID}/squad", RequireUser(http.HandlerFunc(handler.GetMySquad)))
	mux.Handle("PUT /v1/leagues/{leagueID}/squad", RequireUser(http.HandlerFunc(handler.SaveMySquad)))
	mux.Handle("GET /v1/leagues/{leagueID}/squad/points", RequireUser(http.HandlerFunc(handler.GetMySquadPoints)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/ingestion/match-stats", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.IngestMatchStats)))
}
