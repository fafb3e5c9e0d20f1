package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/kickside/newsdesk/internal/core/domain"
	"github.com/kickside/newsdesk/internal/core/listing"
)

func TestLoadCollection_ServesCacheUntilRefresh(t *testing.T) {
	cache := newMemListCache()
	loader := NewCollectionLoader(cache, 0, discardLogger)
	fetches := 0
	fetch := func(context.Context) ([]domain.Inquiry, error) {
		fetches++
		return []domain.Inquiry{{ID: "i1"}}, nil
	}

	for i := 0; i < 3; i++ {
		items, err := LoadCollection(context.Background(), loader, ScopeAdmin, listing.ScreenInquiries, false, fetch)
		if err != nil || len(items) != 1 {
			t.Fatalf("unexpected result %v %v", items, err)
		}
	}
	if fetches != 1 {
		t.Fatalf("expected a single fetch, got %d", fetches)
	}

	if _, err := LoadCollection(context.Background(), loader, ScopeAdmin, listing.ScreenInquiries, true, fetch); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if fetches != 2 {
		t.Fatalf("refresh must refetch, got %d fetches", fetches)
	}
}

func TestLoadCollection_StaleResponseNotCommitted(t *testing.T) {
	cache := newMemListCache()
	loader := NewCollectionLoader(cache, 0, discardLogger)
	ctx := context.Background()

	// A newer refresh starts and commits while the first one is in flight.
	cache.beforeCommit = func(key string) {
		newer, err := LoadCollection(ctx, loader, ScopeAdmin, listing.ScreenUsers, true, func(context.Context) ([]domain.UserProfile, error) {
			return []domain.UserProfile{{ID: "fresh"}}, nil
		})
		if err != nil || newer[0].ID != "fresh" {
			t.Errorf("newer refresh failed: %v %v", newer, err)
		}
	}

	got, err := LoadCollection(ctx, loader, ScopeAdmin, listing.ScreenUsers, true, func(context.Context) ([]domain.UserProfile, error) {
		return []domain.UserProfile{{ID: "stale"}}, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].ID != "fresh" {
		t.Fatalf("stale response leaked: %+v", got)
	}

	raw, _, _ := cache.Load(ctx, listKey(ScopeAdmin, listing.ScreenUsers))
	var cached []domain.UserProfile
	if err := json.Unmarshal(raw, &cached); err != nil {
		t.Fatalf("decode cache: %v", err)
	}
	if len(cached) != 1 || cached[0].ID != "fresh" {
		t.Fatalf("cache holds %+v", cached)
	}
}

func TestLoadCollection_FetchErrorPropagates(t *testing.T) {
	loader := NewCollectionLoader(newMemListCache(), 0, discardLogger)
	_, err := LoadCollection(context.Background(), loader, ScopeAdmin, listing.ScreenUsers, false, func(context.Context) ([]domain.UserProfile, error) {
		return nil, domain.ErrNetwork
	})
	if !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestLoadCollection_NilItemsBecomeEmpty(t *testing.T) {
	loader := NewCollectionLoader(newMemListCache(), 0, discardLogger)
	items, err := LoadCollection(context.Background(), loader, ScopeAdmin, listing.ScreenSubscribers, false, func(context.Context) ([]domain.Subscriber, error) {
		return nil, nil
	})
	if err != nil || items == nil {
		t.Fatalf("expected empty slice, got %#v %v", items, err)
	}
}
