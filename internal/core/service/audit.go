package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/kickside/newsdesk/internal/core/domain"
	"github.com/kickside/newsdesk/internal/core/ports"
	"github.com/kickside/newsdesk/internal/pkg/metrics"
)

// Rate limit buckets.
const (
	BucketLogin      = "login"
	BucketNewsletter = "newsletter"
	BucketContact    = "contact"
)

// record hands an audit entry to sink. A nil sink disables auditing.
func record(sink ports.AuditSink, sess *domain.Session, action domain.AuditAction, target, detail string) {
	if sink == nil {
		return
	}
	sink.Record(domain.AuditEntry{
		ActorID: sess.UserID(),
		Role:    sess.Role(),
		Action:  action,
		Target:  target,
		Detail:  detail,
		At:      time.Now().UTC(),
	})
}

// allow returns domain.ErrRateLimited once key exhausted bucket. Limiter
// failures let the request through.
func allow(ctx context.Context, limiter ports.RateLimiter, log zerolog.Logger, bucket, key string) error {
	if limiter == nil {
		return nil
	}
	ok, err := limiter.Allow(ctx, bucket, key)
	if err != nil {
		log.Warn().Err(err).Str("bucket", bucket).Msg("rate limiter unavailable, allowing request")
		return nil
	}
	if !ok {
		metrics.RateLimitedTotal.WithLabelValues(bucket).Inc()
		return domain.ErrRateLimited
	}
	return nil
}
