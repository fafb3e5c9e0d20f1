package queue

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kickside/newsdesk/internal/core/domain"
)

type stubAuditRepo struct {
	mu       sync.Mutex
	entries  []domain.AuditEntry
	insertFn func(entry domain.AuditEntry) error
}

func (s *stubAuditRepo) Insert(_ context.Context, entry domain.AuditEntry) error {
	if s.insertFn != nil {
		if err := s.insertFn(entry); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *stubAuditRepo) Recent(context.Context, string, int64) ([]domain.AuditEntry, error) {
	return nil, nil
}

func TestAuditDispatcher_PreservesPerActorOrder(t *testing.T) {
	repo := &stubAuditRepo{}
	d := NewAuditDispatcher(3, repo, zerolog.Nop())
	d.Start(context.Background())

	actions := []domain.AuditAction{domain.AuditLogin, domain.AuditArticleCreate, domain.AuditArticleDelete, domain.AuditLogout}
	for _, a := range actions {
		d.Record(domain.AuditEntry{ActorID: "u1", Action: a})
		d.Record(domain.AuditEntry{ActorID: "u2", Action: a})
	}
	d.Close()

	var u1 []domain.AuditAction
	for _, e := range repo.entries {
		if e.ActorID == "u1" {
			u1 = append(u1, e.Action)
		}
	}
	if len(repo.entries) != 8 || len(u1) != 4 {
		t.Fatalf("expected 8 entries, got %d", len(repo.entries))
	}
	for i := range actions {
		if u1[i] != actions[i] {
			t.Fatalf("order broken: %v", u1)
		}
	}
}

func TestAuditDispatcher_DropsWhenFull(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	repo := &stubAuditRepo{insertFn: func(domain.AuditEntry) error {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
		return nil
	}}
	d := newAuditDispatcher(1, 1, repo, zerolog.Nop())
	d.Start(context.Background())

	d.Record(domain.AuditEntry{ActorID: "u1", Action: domain.AuditLogin})
	<-started
	d.Record(domain.AuditEntry{ActorID: "u1", Action: domain.AuditLogout})
	d.Record(domain.AuditEntry{ActorID: "u1", Action: domain.AuditLogout}) // dropped

	close(release)
	d.Close()
	if len(repo.entries) != 2 {
		t.Fatalf("expected 2 stored entries, got %d", len(repo.entries))
	}
}

func TestAuditDispatcher_InsertFailureDoesNotStopWorker(t *testing.T) {
	fail := true
	repo := &stubAuditRepo{insertFn: func(domain.AuditEntry) error {
		if fail {
			fail = false
			return errors.New("mongo down")
		}
		return nil
	}}
	d := NewAuditDispatcher(1, repo, zerolog.Nop())
	d.Start(context.Background())

	d.Record(domain.AuditEntry{ActorID: "u1", Action: domain.AuditLogin})
	d.Record(domain.AuditEntry{ActorID: "u1", Action: domain.AuditLogout})
	d.Close()
	d.Record(domain.AuditEntry{ActorID: "u1", Action: domain.AuditLogin})

	if len(repo.entries) != 1 || repo.entries[0].Action != domain.AuditLogout {
		t.Fatalf("unexpected entries %+v", repo.entries)
	}
}
