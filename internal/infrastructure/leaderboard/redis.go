package leaderboard

import (
	"context"
	"errors"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/scoring"
	"github.com/riskibarqy/proclubs-fantasy/internal/platform/logging"
	"github.com/riskibarqy/proclubs-fantasy/internal/platform/resilience"
	"github.com/riskibarqy/proclubs-fantasy/internal/usecase"
)

type snapshot struct {
	LeagueID     string          `json:"league_id"`
	CalculatedAt time.Time       `json:"calculated_at"`
	Entries      []snapshotEntry `json:"entries"`
}

type snapshotEntry struct {
	Rank      int    `json:"rank"`
	SquadID   string `json:"squad_id"`
	UserID    string `json:"user_id"`
	SquadName string `json:"squad_name"`
	Points    int    `json:"points"`
}

// RedisStore shares leaderboard snapshots between API replicas. Calls go through a
// circuit breaker so an unavailable Redis degrades to recomputation.
type RedisStore struct {
	client  *redis.Client
	ttl     time.Duration
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

func NewRedisStore(client *redis.Client, ttl time.Duration, breaker *resilience.CircuitBreaker, logger *logging.Logger) *RedisStore {
	if logger == nil {
		logger = logging.Default()
	}
	return &RedisStore{
		client:  client,
		ttl:     ttl,
		breaker: breaker,
		logger:  logger,
	}
}

func (s *RedisStore) Get(ctx context.Context, leagueID string) (scoring.Leaderboard, bool, error) {
	var raw []byte
	err := s.call(ctx, "get", func() error {
		var getErr error
		raw, getErr = s.client.Get(ctx, keyPrefix+leagueID).Bytes()
		return getErr
	})
	if errors.Is(err, redis.Nil) {
		return scoring.Leaderboard{}, false, nil
	}
	if err != nil {
		return scoring.Leaderboard{}, false, crerr.Wrapf(err, "redis get leaderboard league=%s", leagueID)
	}

	var snap snapshot
	if err := sonic.Unmarshal(raw, &snap); err != nil {
		s.logger.WarnContext(ctx, "drop undecodable leaderboard snapshot",
			"league_id", leagueID,
			"error", err,
		)
		return scoring.Leaderboard{}, false, nil
	}

	return fromSnapshot(snap), true, nil
}

func (s *RedisStore) Put(ctx context.Context, board scoring.Leaderboard) error {
	raw, err := sonic.Marshal(toSnapshot(board))
	if err != nil {
		return crerr.Wrap(err, "encode leaderboard snapshot")
	}

	err = s.call(ctx, "set", func() error {
		return s.client.Set(ctx, keyPrefix+board.LeagueID, raw, s.ttl).Err()
	})
	if err != nil {
		return crerr.Wrapf(err, "redis set leaderboard league=%s", board.LeagueID)
	}
	return nil
}

func (s *RedisStore) Invalidate(ctx context.Context, leagueID string) error {
	err := s.call(ctx, "del", func() error {
		return s.client.Del(ctx, keyPrefix+leagueID).Err()
	})
	if err != nil {
		return crerr.Wrapf(err, "redis delete leaderboard league=%s", leagueID)
	}
	return nil
}

func (s *RedisStore) call(ctx context.Context, op string, fn func() error) error {
	if s.breaker == nil {
		return fn()
	}

	err := s.breaker.Execute(fn, isRedisFailure)
	if errors.Is(err, resilience.ErrCircuitOpen) {
		s.logger.WarnContext(ctx, "leaderboard store circuit breaker rejected request",
			"op", op,
			"state", s.breaker.State(),
		)
		return crerr.Wrap(usecase.ErrDependencyUnavailable, "leaderboard store circuit open")
	}
	return err
}

func isRedisFailure(err error) bool {
	return err != nil && !errors.Is(err, redis.Nil)
}

func toSnapshot(board scoring.Leaderboard) snapshot {
	out := snapshot{
		LeagueID:     board.LeagueID,
		CalculatedAt: board.CalculatedAt,
		Entries:      make([]snapshotEntry, 0, len(board.Entries)),
	}
	for _, e := range board.Entries {
		out.Entries = append(out.Entries, snapshotEntry(e))
	}
	return out
}

func fromSnapshot(snap snapshot) scoring.Leaderboard {
	out := scoring.Leaderboard{
		LeagueID:     snap.LeagueID,
		CalculatedAt: snap.CalculatedAt,
		Entries:      make([]scoring.LeaderboardEntry, 0, len(snap.Entries)),
	}
	for _, e := range snap.Entries {
		out.Entries = append(out.Entries, scoring.LeaderboardEntry(e))
	}
	return out
}
