package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/riskibarqy/proclubs-fantasy/internal/config"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/proclubs-fantasy/internal/infrastructure/leaderboard"
	"github.com/riskibarqy/proclubs-fantasy/internal/observability"
	"github.com/riskibarqy/proclubs-fantasy/internal/platform/logging"
	"github.com/riskibarqy/proclubs-fantasy/internal/platform/resilience"
)

const (
	leaderboardBreakerName = "leaderboard-redis"
	redisPingTimeout       = 2 * time.Second
)

// newLeaderboardStore prefers Redis and falls back to process memory when REDIS_URL is
// unset or the server cannot be reached at startup.
func newLeaderboardStore(
	ctx context.Context,
	cfg config.Config,
	metrics *observability.Metrics,
	logger *logging.Logger,
) (scoring.LeaderboardStore, func() error, error) {
	noop := func() error { return nil }
	if cfg.RedisURL == "" {
		logger.InfoContext(ctx, "leaderboard store initialized", "driver", "memory", "ttl", cfg.RedisLeaderboardTTL.String())
		return leaderboard.NewMemoryStore(cfg.RedisLeaderboardTTL), noop, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, noop, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		logger.WarnContext(ctx, "redis unreachable, leaderboard falls back to memory", "addr", opts.Addr, "error", err)
		return leaderboard.NewMemoryStore(cfg.RedisLeaderboardTTL), noop, nil
	}

	var breaker *resilience.CircuitBreaker
	if cfg.RedisCircuitEnabled {
		breaker = resilience.NewCircuitBreakerFromConfig(leaderboardBreakerName, resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: cfg.RedisCircuitFailureCount,
			OpenTimeout:      cfg.RedisCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.RedisCircuitHalfOpenMaxReq,
		})
		metrics.TrackCircuitBreaker(breaker)
	}

	logger.InfoContext(ctx, "leaderboard store initialized",
		"driver", "redis",
		"addr", opts.Addr,
		"ttl", cfg.RedisLeaderboardTTL.String(),
		"circuit_enabled", cfg.RedisCircuitEnabled,
	)
	return leaderboard.NewRedisStore(client, cfg.RedisLeaderboardTTL, breaker, logger), client.Close, nil
}
