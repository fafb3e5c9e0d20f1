package service

import (
	"context"
	"testing"

	"github.com/kickside/newsdesk/internal/core/domain"
)

type stubAuditRepo struct {
	recentFn func(ctx context.Context, actorID string, limit int64) ([]domain.AuditEntry, error)
}

func (s *stubAuditRepo) Insert(context.Context, domain.AuditEntry) error { return nil }
func (s *stubAuditRepo) Recent(ctx context.Context, actorID string, limit int64) ([]domain.AuditEntry, error) {
	return s.recentFn(ctx, actorID, limit)
}

func TestAuditLog_ClampsLimit(t *testing.T) {
	var got []int64
	repo := &stubAuditRepo{recentFn: func(_ context.Context, _ string, limit int64) ([]domain.AuditEntry, error) {
		got = append(got, limit)
		return nil, nil
	}}
	log := NewAuditLog(repo)

	for _, limit := range []int{0, 20, 10_000} {
		entries, err := log.Recent(context.Background(), "", limit)
		if err != nil || entries == nil {
			t.Fatalf("unexpected result %v %v", entries, err)
		}
	}
	if got[0] != 50 || got[1] != 20 || got[2] != 500 {
		t.Fatalf("unexpected limits %v", got)
	}
}
