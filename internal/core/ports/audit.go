package ports

import (
	"context"

	"github.com/kickside/newsdesk/internal/core/domain"
)

// AuditRepository persists console audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry domain.AuditEntry) error
	// Recent lists the latest entries, newest first. An empty actorID
	// matches every actor.
	Recent(ctx context.Context, actorID string, limit int64) ([]domain.AuditEntry, error)
}

// AuditSink accepts audit entries without blocking the caller's request.
type AuditSink interface {
	Record(entry domain.AuditEntry)
}
