package cache

import (
	"context"
	"sort"
	"strings"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/formation"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/league"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/player"
	basecache "github.com/riskibarqy/proclubs-fantasy/internal/platform/cache"
)

type LeagueRepository struct {
	next  league.Repository
	cache *basecache.Store
}

func NewLeagueRepository(next league.Repository, cache *basecache.Store) *LeagueRepository {
	return &LeagueRepository{next: next, cache: cache}
}

func (r *LeagueRepository) List(ctx context.Context) ([]league.League, error) {
	items, err := basecache.Load(ctx, r.cache, "league:list", func(ctx context.Context) ([]league.League, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]league.League(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]league.League(nil), items...), nil
}

type cachedLeagueByID struct {
	value  league.League
	exists bool
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	cached, err := basecache.Load(ctx, r.cache, "league:id:"+leagueID, func(ctx context.Context) (cachedLeagueByID, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		if err != nil {
			return cachedLeagueByID{}, err
		}
		return cachedLeagueByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return league.League{}, false, err
	}
	return cached.value, cached.exists, nil
}

// PlayerRepository caches player reads per league. Writing points drops every
// cached read of that league.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func playerKeyPrefix(leagueID string) string {
	return "player:" + leagueID + ":"
}

func (r *PlayerRepository) ListByLeague(ctx context.Context, leagueID string) ([]player.Player, error) {
	items, err := basecache.Load(ctx, r.cache, playerKeyPrefix(leagueID)+"list", func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.ListByLeague(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, leagueID string, playerIDs []string) ([]player.Player, error) {
	ids := append([]string(nil), playerIDs...)
	sort.Strings(ids)
	key := playerKeyPrefix(leagueID) + "ids:" + strings.Join(ids, ",")

	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]player.Player, error) {
		items, err := r.next.GetByIDs(ctx, leagueID, playerIDs)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]player.Player(nil), items...), nil
}

func (r *PlayerRepository) UpdatePoints(ctx context.Context, leagueID string, pointsByPlayerID map[string]int) error {
	if err := r.next.UpdatePoints(ctx, leagueID, pointsByPlayerID); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, playerKeyPrefix(leagueID))
	return nil
}

type FormationRepository struct {
	next  formation.Repository
	cache *basecache.Store
}

func NewFormationRepository(next formation.Repository, cache *basecache.Store) *FormationRepository {
	return &FormationRepository{next: next, cache: cache}
}

const formationListKey = "formation:list"

func (r *FormationRepository) List(ctx context.Context) ([]formation.Formation, error) {
	items, err := basecache.Load(ctx, r.cache, formationListKey, func(ctx context.Context) ([]formation.Formation, error) {
		return r.next.List(ctx)
	})
	if err != nil {
		return nil, err
	}

	out := make([]formation.Formation, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return out, nil
}

func (r *FormationRepository) Create(ctx context.Context, f formation.Formation) error {
	if err := r.next.Create(ctx, f); err != nil {
		return err
	}
	r.cache.Delete(ctx, formationListKey)
	return nil
}
