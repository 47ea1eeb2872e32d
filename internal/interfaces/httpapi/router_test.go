package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/formation"
	"github.com/riskibarqy/proclubs-fantasy/internal/infrastructure/leaderboard"
	"github.com/riskibarqy/proclubs-fantasy/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/proclubs-fantasy/internal/observability"
	idgen "github.com/riskibarqy/proclubs-fantasy/internal/platform/id"
	"github.com/riskibarqy/proclubs-fantasy/internal/platform/logging"
	"github.com/riskibarqy/proclubs-fantasy/internal/usecase"
)

const (
	testAdminKey  = "admin-secret"
	testJobToken  = "job-secret"
	testLeagueID  = memory.LeagueIDVPGEurope
	testUserID    = "user-7"
	evaluatePath  = "/v1/leagues/" + testLeagueID + "/lineups/evaluate"
	squadPath     = "/v1/leagues/" + testLeagueID + "/squad"
	ingestionPath = "/v1/internal/ingestion/match-stats"
)

// valid442 is a seeded selection matching 4-4-2 exactly, costing 97.5.
var valid442 = []string{
	"vpg-gk-01",
	"vpg-def-03",
	"vpg-def-01",
	"vpg-def-02",
	"vpg-def-04",
	"vpg-mid-04",
	"vpg-mid-02",
	"vpg-mid-06",
	"vpg-mid-05",
	"vpg-fwd-01",
	"vpg-fwd-02",
}

// expensive343 fills 3-4-3 exactly but costs 100.6.
var expensive343 = []string{
	"vpg-gk-01",
	"vpg-def-01",
	"vpg-def-02",
	"vpg-def-03",
	"vpg-mid-03",
	"vpg-mid-02",
	"vpg-mid-01",
	"vpg-mid-06",
	"vpg-fwd-01",
	"vpg-fwd-02",
	"vpg-fwd-03",
}

type testEnvelope[T any] struct {
	APIVersion string           `json:"apiVersion"`
	Data       T                `json:"data"`
	Error      *googleErrorBody `json:"error"`
}

type testServer struct {
	router  http.Handler
	metrics *observability.Metrics
}

func newTestServer(t *testing.T) testServer {
	t.Helper()

	logger := logging.NewNop()
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues())
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	squadRepo := memory.NewSquadRepository()
	statsRepo := memory.NewPlayerStatsRepository(nil)
	board := leaderboard.NewMemoryStore(time.Minute)
	rules := fantasy.DefaultRules()

	formations := usecase.NewFormationService(formation.NewRegistry(), memory.NewFormationRepository(), formation.DefaultName, logger)
	points := usecase.NewPointsService(leagueRepo, playerRepo, squadRepo, statsRepo, board, 2, logger)
	metrics := observability.NewMetrics()

	handler := NewHandler(Services{
		Leagues:     usecase.NewLeagueService(leagueRepo),
		Players:     usecase.NewPlayerService(leagueRepo, playerRepo),
		PlayerStats: usecase.NewPlayerStatsService(statsRepo),
		Formations:  formations,
		Lineups:     usecase.NewLineupService(leagueRepo, playerRepo, formations, rules, logger),
		Squads:      usecase.NewSquadService(leagueRepo, playerRepo, squadRepo, formations, board, rules, idgen.NewUUIDGenerator(), logger),
		Points:      points,
		Ingestion:   usecase.NewStatsIngestionService(leagueRepo, playerRepo, statsRepo, points, logger),
	}, metrics, logger)

	return testServer{
		router: NewRouter(handler, metrics, logger, RouterConfig{
			SwaggerEnabled:   true,
			MetricsEnabled:   true,
			InternalJobToken: testJobToken,
			AdminAPIKey:      testAdminKey,
		}),
		metrics: metrics,
	}
}

func (s testServer) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope[T any](t *testing.T, rec *httptest.ResponseRecorder) testEnvelope[T] {
	t.Helper()

	var out testEnvelope[T]
	require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	require.Equal(t, googleAPIVersion, out.APIVersion)
	return out
}

func errorReason(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	env := decodeEnvelope[any](t, rec)
	require.NotNil(t, env.Error, rec.Body.String())
	require.NotEmpty(t, env.Error.Errors)
	return env.Error.Errors[0].Reason
}

func userHeaders() map[string]string {
	return map[string]string{headerUserID: testUserID}
}

func TestRouter_SystemRoutes(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/healthz", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, http.MethodGet, "/openapi.yaml", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "openapi:"))

	rec = srv.do(t, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "proclubs_fantasy_http_requests_total")
}

func TestRouter_MetricsDisabled(t *testing.T) {
	t.Parallel()

	handler := NewHandler(Services{}, nil, logging.NewNop())
	router := NewRouter(handler, observability.NewMetrics(), logging.NewNop(), RouterConfig{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusNotFound)
	}
}

func TestRouter_Formations(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/v1/formations", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeEnvelope[[]formationDTO](t, rec)
	require.Len(t, list.Data, len(formation.List()))
	assert.Equal(t, formation.Name442, list.Data[0].Name)
	assert.Equal(t, map[string]int{"GK": 1, "DEF": 4, "MID": 4, "FWD": 2}, list.Data[0].Quotas)
	assert.Len(t, list.Data[0].Slots, formation.StartingSize)

	rec = srv.do(t, http.MethodGet, "/v1/formations/9-9-9", nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "notFound", errorReason(t, rec))
}

func TestRouter_CreateFormation(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	payload := createFormationRequest{
		Name: "4-3-2-1",
		Slots: []formationSlotRequest{
			{Label: "GK", X: 50, Y: 5},
			{Label: "LB", X: 15, Y: 25}, {Label: "CB", X: 38, Y: 22}, {Label: "CB", X: 62, Y: 22}, {Label: "RB", X: 85, Y: 25},
			{Label: "CM", X: 30, Y: 45}, {Label: "CDM", X: 50, Y: 40}, {Label: "CM", X: 70, Y: 45},
			{Label: "CAM", X: 35, Y: 65}, {Label: "CAM", X: 65, Y: 65},
			{Label: "ST", X: 50, Y: 85},
		},
	}

	rec := srv.do(t, http.MethodPost, "/v1/formations", payload, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	headers := map[string]string{headerAdminKey: testAdminKey}
	rec = srv.do(t, http.MethodPost, "/v1/formations", payload, headers)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeEnvelope[formationDTO](t, rec)
	assert.True(t, created.Data.Custom)
	assert.Equal(t, map[string]int{"GK": 1, "DEF": 4, "MID": 5, "FWD": 1}, created.Data.Quotas)

	rec = srv.do(t, http.MethodPost, "/v1/formations", payload, headers)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = srv.do(t, http.MethodGet, "/v1/formations/4-3-2-1", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	twoKeepers := payload
	twoKeepers.Name = "broken"
	twoKeepers.Slots = append([]formationSlotRequest(nil), payload.Slots...)
	twoKeepers.Slots[10] = formationSlotRequest{Label: "GK", X: 50, Y: 85}
	rec = srv.do(t, http.MethodPost, "/v1/formations", twoKeepers, headers)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_EvaluateLineup(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, evaluatePath, lineupRequest{FormationName: formation.Name442, PlayerIDs: valid442}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	result := decodeEnvelope[lineupEvaluationDTO](t, rec)
	assert.True(t, result.Data.IsValid)
	assert.False(t, result.Data.IsOverBudget)
	assert.Equal(t, 97.5, result.Data.TotalCost)
	assert.Equal(t, 100.0, result.Data.BudgetCap)
	assert.Len(t, result.Data.Slots, formation.StartingSize)
	assert.Equal(t, valid442, result.Data.PlayerIDs)

	rec = srv.do(t, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `proclubs_fantasy_lineup_evaluations_total{outcome="valid"} 1`)
}

func TestRouter_EvaluateOverBudgetLineup(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, evaluatePath, lineupRequest{FormationName: formation.Name343, PlayerIDs: expensive343}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	result := decodeEnvelope[lineupEvaluationDTO](t, rec)
	assert.True(t, result.Data.IsValid)
	assert.True(t, result.Data.IsOverBudget)
	assert.Equal(t, 100.6, result.Data.TotalCost)
}

func TestRouter_EvaluatePartialLineup(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, evaluatePath, lineupRequest{PlayerIDs: valid442[:5]}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	result := decodeEnvelope[lineupEvaluationDTO](t, rec)
	assert.False(t, result.Data.IsValid)
	assert.False(t, result.Data.IsOverBudget)
	assert.Equal(t, formation.DefaultName, result.Data.Formation)
	assert.Equal(t, map[string]int{"GK": 1, "DEF": 4, "MID": 0, "FWD": 0}, result.Data.RoleCounts)
	assert.Empty(t, result.Data.Slots)
}

func TestRouter_EvaluateRejectsUnknownFields(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, evaluatePath, strings.NewReader(`{"player_ids":[],"captain":"x"}`))
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalidInput", errorReason(t, rec))
}

func TestRouter_CanAdd(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	path := "/v1/leagues/" + testLeagueID + "/lineups/can-add"

	tests := []struct {
		name        string
		candidateID string
		wantAllowed bool
		wantReason  string
	}{
		{name: "fifth defender", candidateID: "vpg-def-05", wantReason: usecase.RejectReasonRoleQuotaFull},
		{name: "already selected", candidateID: "vpg-def-01", wantReason: usecase.RejectReasonDuplicate},
		{name: "forward fits", candidateID: "vpg-fwd-03", wantAllowed: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := srv.do(t, http.MethodPost, path, canAddRequest{
				PlayerIDs:   valid442[:5],
				CandidateID: tc.candidateID,
			}, nil)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			result := decodeEnvelope[canAddDTO](t, rec)
			assert.Equal(t, tc.wantAllowed, result.Data.Allowed)
			assert.Equal(t, tc.wantReason, result.Data.Reason)
		})
	}
}

func TestRouter_ChangeFormationKeepsEarliestPicks(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/v1/leagues/"+testLeagueID+"/lineups/change-formation",
		lineupRequest{FormationName: formation.Name352, PlayerIDs: valid442}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	result := decodeEnvelope[formationChangeDTO](t, rec)
	assert.Equal(t, formation.Name352, result.Data.Formation)
	assert.Equal(t, []string{"vpg-def-04"}, result.Data.DroppedIDs)
	assert.Len(t, result.Data.KeptIDs, 10)
	assert.Equal(t, "vpg-def-02", result.Data.KeptIDs[3])
}

func TestRouter_SquadLifecycle(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, squadPath, nil, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodGet, squadPath, nil, userHeaders())
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodPut, squadPath, saveSquadRequest{Name: "Harbour XI", PlayerIDs: valid442[:10]}, userHeaders())
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalidSquadSize", errorReason(t, rec))

	rec = srv.do(t, http.MethodPut, squadPath, saveSquadRequest{Name: "Harbour XI", PlayerIDs: valid442}, userHeaders())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	saved := decodeEnvelope[squadDTO](t, rec)
	assert.Equal(t, testUserID, saved.Data.UserID)
	assert.Equal(t, formation.DefaultName, saved.Data.Formation)
	assert.Equal(t, 97.5, saved.Data.TotalCost)
	assert.Len(t, saved.Data.Picks, formation.StartingSize)

	rec = srv.do(t, http.MethodGet, squadPath, nil, userHeaders())
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decodeEnvelope[squadDTO](t, rec)
	assert.Equal(t, saved.Data.ID, fetched.Data.ID)
}

func TestRouter_SquadOverBudget(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPut, squadPath, saveSquadRequest{
		Name:          "Galacticos",
		FormationName: formation.Name343,
		PlayerIDs:     expensive343,
	}, userHeaders())
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Equal(t, "budgetExceeded", errorReason(t, rec))
}

func TestRouter_CalculatePoints(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	tests := []struct {
		name       string
		req        calculatePointsRequest
		wantStatus int
		wantPoints int
	}{
		{name: "forward brace and a booking", req: calculatePointsRequest{Position: "ST", Goals: 2, YellowCards: 1}, wantStatus: http.StatusOK, wantPoints: 7},
		{name: "defender clean sheet", req: calculatePointsRequest{Position: "DEF", CleanSheets: 1}, wantStatus: http.StatusOK, wantPoints: 4},
		{name: "negative total is kept", req: calculatePointsRequest{Position: "MID", RedCards: 1}, wantStatus: http.StatusOK, wantPoints: -3},
		{name: "unknown position", req: calculatePointsRequest{Position: "SW"}, wantStatus: http.StatusBadRequest},
		{name: "negative counter", req: calculatePointsRequest{Position: "GK", Goals: -1}, wantStatus: http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := srv.do(t, http.MethodPost, "/v1/points/calculate", tc.req, nil)
			require.Equal(t, tc.wantStatus, rec.Code, rec.Body.String())
			if tc.wantStatus != http.StatusOK {
				return
			}
			result := decodeEnvelope[pointsDTO](t, rec)
			assert.Equal(t, tc.wantPoints, result.Data.Points)
		})
	}
}

func TestRouter_IngestionFeedsPointsAndLeaderboard(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPut, squadPath, saveSquadRequest{Name: "Harbour XI", PlayerIDs: valid442}, userHeaders())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	payload := ingestMatchStatsRequest{
		LeagueID: testLeagueID,
		MatchID:  "md-01",
		Rows: []matchStatRowRequest{
			{PlayerID: "vpg-fwd-01", Goals: 2, Assists: 1},
			{PlayerID: "vpg-def-01", CleanSheets: 1, YellowCards: 1},
		},
	}

	rec = srv.do(t, http.MethodPost, ingestionPath, payload, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = srv.do(t, http.MethodPost, ingestionPath, payload, map[string]string{headerInternalJobToken: testJobToken})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	ingested := decodeEnvelope[ingestMatchStatsDTO](t, rec)
	assert.Equal(t, 2, ingested.Data.Rows)
	assert.Equal(t, 2, ingested.Data.PlayersRecalculated)

	rec = srv.do(t, http.MethodGet, "/v1/leagues/"+testLeagueID+"/players/vpg-fwd-01/points", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	playerPoints := decodeEnvelope[playerPointsDTO](t, rec)
	assert.Equal(t, 11, playerPoints.Data.Points)
	assert.Equal(t, 1, playerPoints.Data.Statistics.Appearances)

	rec = srv.do(t, http.MethodGet, squadPath+"/points", nil, userHeaders())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	squadPoints := decodeEnvelope[squadPointsDTO](t, rec)
	assert.Equal(t, 14, squadPoints.Data.Total)

	rec = srv.do(t, http.MethodGet, "/v1/leagues/"+testLeagueID+"/points/leaderboard", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	board := decodeEnvelope[leaderboardDTO](t, rec)
	require.Len(t, board.Data.Entries, 1)
	assert.Equal(t, 1, board.Data.Entries[0].Rank)
	assert.Equal(t, 14, board.Data.Entries[0].Points)

	rec = srv.do(t, http.MethodGet, "/v1/leagues/"+testLeagueID+"/players/vpg-fwd-01", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	detail := decodeEnvelope[playerDetailDTO](t, rec)
	require.Len(t, detail.Data.History, 1)
	assert.Equal(t, "md-01", detail.Data.History[0].MatchID)
	assert.Equal(t, 10.5, detail.Data.Player.Price)
}

func TestRouter_PlayersAndLeagues(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/v1/leagues", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	leagues := decodeEnvelope[[]leagueDTO](t, rec)
	require.Len(t, leagues.Data, len(memory.SeedLeagues()))

	rec = srv.do(t, http.MethodGet, "/v1/leagues/"+memory.LeagueIDPCLNorth+"/players", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	players := decodeEnvelope[[]playerDTO](t, rec)
	require.NotEmpty(t, players.Data)
	for _, p := range players.Data {
		assert.Equal(t, memory.LeagueIDPCLNorth, p.LeagueID)
		assert.NotEmpty(t, p.Role)
	}

	rec = srv.do(t, http.MethodGet, "/v1/leagues/"+testLeagueID+"/players?role=fwd", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	forwards := decodeEnvelope[[]playerDTO](t, rec)
	require.NotEmpty(t, forwards.Data)
	for i, p := range forwards.Data {
		assert.Equal(t, "FWD", p.Role)
		if i > 0 {
			assert.GreaterOrEqual(t, forwards.Data[i-1].Price, p.Price)
		}
	}

	rec = srv.do(t, http.MethodGet, "/v1/leagues/"+testLeagueID+"/players?role=ST", nil, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodGet, "/v1/leagues/unknown/players", nil, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, http.MethodGet, "/v1/leagues/"+testLeagueID+"/players/vpg-gk-01/history?limit=0", nil, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
