package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/proclubs-fantasy/internal/config"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/fantasy"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/formation"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/league"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/player"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/playerstats"
	"github.com/riskibarqy/proclubs-fantasy/internal/infrastructure/formationfile"
	cacherepo "github.com/riskibarqy/proclubs-fantasy/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/proclubs-fantasy/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/proclubs-fantasy/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/proclubs-fantasy/internal/interfaces/httpapi"
	"github.com/riskibarqy/proclubs-fantasy/internal/observability"
	basecache "github.com/riskibarqy/proclubs-fantasy/internal/platform/cache"
	idgen "github.com/riskibarqy/proclubs-fantasy/internal/platform/id"
	"github.com/riskibarqy/proclubs-fantasy/internal/platform/logging"
	"github.com/riskibarqy/proclubs-fantasy/internal/usecase"
)

type repositories struct {
	leagues    league.Repository
	players    player.Repository
	squads     fantasy.Repository
	stats      playerstats.Repository
	formations formation.Repository
}

// NewHTTPServer wires storage, use cases and the router. The returned cleanup releases
// the database pool and the Redis client.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Warn("cleanup failed", "error", err)
			}
		}
	}

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}

	repos, closeRepos, err := newRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, closeRepos)

	board, closeBoard, err := newLeaderboardStore(ctx, cfg, metrics, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	closers = append(closers, closeBoard)

	formationSvc, err := newFormationService(ctx, cfg, repos.formations, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	rules := fantasy.DefaultRules()
	rules.BudgetCap = cfg.FantasyBudgetCap

	pointsSvc := usecase.NewPointsService(repos.leagues, repos.players, repos.squads, repos.stats, board, cfg.PointsRecalcWorkers, logger)
	handler := httpapi.NewHandler(httpapi.Services{
		Leagues:     usecase.NewLeagueService(repos.leagues),
		Players:     usecase.NewPlayerService(repos.leagues, repos.players),
		PlayerStats: usecase.NewPlayerStatsService(repos.stats),
		Formations:  formationSvc,
		Lineups:     usecase.NewLineupService(repos.leagues, repos.players, formationSvc, rules, logger),
		Squads:      usecase.NewSquadService(repos.leagues, repos.players, repos.squads, formationSvc, board, rules, idgen.NewUUIDGenerator(), logger),
		Points:      pointsSvc,
		Ingestion:   usecase.NewStatsIngestionService(repos.leagues, repos.players, repos.stats, pointsSvc, logger),
	}, metrics, logger)

	router := httpapi.NewRouter(handler, metrics, logger, httpapi.RouterConfig{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		MetricsEnabled:     cfg.MetricsEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
		AdminAPIKey:        cfg.AdminAPIKey,
	})

	logger.InfoContext(ctx, "fantasy rules configured",
		"squad_size", rules.SquadSize,
		"budget_cap", rules.BudgetCap,
		"default_formation", formationSvc.Default(ctx).Name,
	)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, cleanup, nil
}

func newRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	var (
		repos   repositories
		closeFn = func() error { return nil }
	)

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, closeFn, err
		}
		closeFn = db.Close
		repos = repositories{
			leagues:    postgres.NewLeagueRepository(db),
			players:    postgres.NewPlayerRepository(db),
			squads:     postgres.NewSquadRepository(db),
			stats:      postgres.NewPlayerStatsRepository(db),
			formations: postgres.NewFormationRepository(db),
		}
	case config.StorageMemory:
		repos = repositories{
			leagues:    memory.NewLeagueRepository(memory.SeedLeagues()),
			players:    memory.NewPlayerRepository(memory.SeedPlayers()),
			squads:     memory.NewSquadRepository(),
			stats:      memory.NewPlayerStatsRepository(nil),
			formations: memory.NewFormationRepository(),
		}
	default:
		return repositories{}, closeFn, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.leagues = cacherepo.NewLeagueRepository(repos.leagues, store)
		repos.players = cacherepo.NewPlayerRepository(repos.players, store)
		repos.formations = cacherepo.NewFormationRepository(repos.formations, store)
	}

	logger.InfoContext(ctx, "repositories initialized",
		"driver", cfg.StorageDriver,
		"cache_enabled", cfg.CacheEnabled,
	)
	return repos, closeFn, nil
}

// newFormationService builds the registry from the built-in catalog, the optional
// formations file and the persisted custom formations, in that order.
func newFormationService(ctx context.Context, cfg config.Config, repo formation.Repository, logger *logging.Logger) (*usecase.FormationService, error) {
	registry := formation.NewRegistry()

	fromFile, err := formationfile.Load(cfg.FormationsFile)
	if err != nil {
		return nil, fmt.Errorf("load formations file: %w", err)
	}
	for _, f := range fromFile {
		if err := registry.Add(f); err != nil {
			if errors.Is(err, formation.ErrDuplicateFormation) {
				logger.WarnContext(ctx, "formation from file skipped", "formation", f.Name, "error", err)
				continue
			}
			return nil, fmt.Errorf("register formation %s: %w", f.Name, err)
		}
	}

	svc := usecase.NewFormationService(registry, repo, cfg.FantasyDefaultFormation, logger)
	loaded, err := svc.LoadCustom(ctx)
	if err != nil {
		return nil, fmt.Errorf("load custom formations: %w", err)
	}

	logger.InfoContext(ctx, "formation registry initialized",
		"from_file", len(fromFile),
		"from_storage", loaded,
		"total", len(registry.List()),
	)
	return svc, nil
}
