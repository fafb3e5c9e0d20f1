package ports

import (
	"context"
	"time"

	"github.com/kickside/newsdesk/internal/core/domain"
)

// SessionStore keeps the per-browser-session state. Get returns
// domain.ErrSessionNotFound for unknown or expired ids.
type SessionStore interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, id string, s *domain.Session) error
	Delete(ctx context.Context, id string) error
}

// ListCache holds fetched collections per screen, guarded by a generation
// counter so that only the most recent fetch is ever committed.
type ListCache interface {
	// Begin records a new refresh intent for key and returns its generation.
	Begin(ctx context.Context, key string) (int64, error)
	// Commit stores payload only if gen is still the latest generation of key.
	Commit(ctx context.Context, key string, gen int64, payload []byte, ttl time.Duration) (bool, error)
	// Load returns the committed payload for key, if any.
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Invalidate(ctx context.Context, keys ...string) error
}

// DraftStore keeps unsubmitted article forms. Load returns nil without error
// when there is no draft.
type DraftStore interface {
	Load(ctx context.Context, owner, form string) (*domain.ArticleInput, error)
	Save(ctx context.Context, owner, form string, in domain.ArticleInput) error
	Discard(ctx context.Context, owner, form string) error
}

// ConfirmationStore issues single-use tokens for destructive actions.
type ConfirmationStore interface {
	Issue(ctx context.Context, scope string) (string, error)
	// Consume reports whether token was issued for scope and burns it.
	Consume(ctx context.Context, scope, token string) (bool, error)
}

// RateLimiter counts hits per bucket and key in fixed windows.
type RateLimiter interface {
	Allow(ctx context.Context, bucket, key string) (bool, error)
}
