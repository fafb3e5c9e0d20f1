package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/kickside/newsdesk/internal/core/listing"
	"github.com/kickside/newsdesk/internal/core/ports"
	"github.com/kickside/newsdesk/internal/pkg/metrics"
)

const defaultListTTL = 30 * time.Second

// ScopePublic is the cache scope of collections that do not depend on who
// is looking.
const ScopePublic = "public"

// CollectionLoader fetches whole collections for list screens and keeps them
// in a shared cache. Every refresh takes a new generation before it fetches;
// a result whose generation was overtaken is never committed.
type CollectionLoader struct {
	cache ports.ListCache
	ttl   time.Duration
	log   zerolog.Logger
}

func NewCollectionLoader(cache ports.ListCache, ttl time.Duration, log zerolog.Logger) *CollectionLoader {
	if ttl <= 0 {
		ttl = defaultListTTL
	}
	return &CollectionLoader{cache: cache, ttl: ttl, log: log}
}

func listKey(scope string, screen listing.Screen) string {
	return "list:" + scope + ":" + string(screen)
}

// Invalidate drops the cached collections of screens for scope.
func (l *CollectionLoader) Invalidate(ctx context.Context, scope string, screens ...listing.Screen) {
	if l == nil || len(screens) == 0 {
		return
	}
	keys := make([]string, len(screens))
	for i, s := range screens {
		keys[i] = listKey(scope, s)
	}
	if err := l.cache.Invalidate(ctx, keys...); err != nil {
		l.log.Warn().Err(err).Strs("keys", keys).Msg("list cache invalidation failed")
	}
}

// LoadCollection returns the collection of screen for scope. With refresh
// unset a committed cache entry is served as is. Cache failures degrade to a
// direct fetch.
func LoadCollection[T any](
	ctx context.Context,
	l *CollectionLoader,
	scope string,
	screen listing.Screen,
	refresh bool,
	fetch func(context.Context) ([]T, error),
) ([]T, error) {
	if l == nil {
		return fetch(ctx)
	}
	key := listKey(scope, screen)

	if !refresh {
		if raw, ok := l.cached(ctx, key); ok {
			if items, err := decodeItems[T](l, key, raw); err == nil {
				return items, nil
			}
		}
	}

	gen, err := l.cache.Begin(ctx, key)
	if err != nil {
		l.log.Warn().Err(err).Str("key", key).Msg("list generation unavailable, fetching uncached")
		return fetch(ctx)
	}

	items, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}

	payload, err := json.Marshal(items)
	if err != nil {
		l.log.Warn().Err(err).Str("key", key).Msg("list encode failed")
		return items, nil
	}
	committed, err := l.cache.Commit(ctx, key, gen, payload, l.ttl)
	if err != nil {
		l.log.Warn().Err(err).Str("key", key).Msg("list commit failed")
		return items, nil
	}
	if !committed {
		metrics.ListStaleResponsesTotal.WithLabelValues(string(screen)).Inc()
		l.log.Debug().Str("key", key).Int64("generation", gen).Msg("stale list response discarded")
		if fresher, ok := l.cached(ctx, key); ok {
			if out, err := decodeItems[T](l, key, fresher); err == nil {
				return out, nil
			}
		}
	}
	return items, nil
}

func (l *CollectionLoader) cached(ctx context.Context, key string) ([]byte, bool) {
	raw, ok, err := l.cache.Load(ctx, key)
	if err != nil {
		l.log.Warn().Err(err).Str("key", key).Msg("list cache read failed")
		return nil, false
	}
	result := "miss"
	if ok {
		result = "hit"
	}
	metrics.ListCacheTotal.WithLabelValues(result).Inc()
	return raw, ok
}

func decodeItems[T any](l *CollectionLoader, key string, raw []byte) ([]T, error) {
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		l.log.Warn().Err(err).Str("key", key).Msg("list cache entry unreadable")
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
