package service

import (
	"context"
	"fmt"

	"github.com/kickside/newsdesk/internal/core/domain"
	"github.com/kickside/newsdesk/internal/core/ports"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

// AuditLog is the Admin's read view of the console audit trail.
type AuditLog struct {
	repo ports.AuditRepository
}

func NewAuditLog(repo ports.AuditRepository) *AuditLog {
	return &AuditLog{repo: repo}
}

func (a *AuditLog) Recent(ctx context.Context, actorID string, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	limit = min(limit, maxAuditLimit)
	entries, err := a.repo.Recent(ctx, actorID, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("audit log: %w", err)
	}
	if entries == nil {
		entries = []domain.AuditEntry{}
	}
	return entries, nil
}
