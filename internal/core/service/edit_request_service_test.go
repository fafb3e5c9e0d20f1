package service

import (
	"context"
	"errors"
	"testing"

	"github.com/kickside/newsdesk/internal/core/domain"
	"github.com/kickside/newsdesk/internal/core/listing"
)

func TestEditRequestService_ListOnlyPending(t *testing.T) {
	gw := &stubEdits{listFn: func(context.Context) ([]domain.EditRequest, error) {
		return []domain.EditRequest{
			{ID: "r1", Article: domain.ArticleRef{Title: "Cup final"}},
			{ID: "r2", Article: domain.ArticleRef{Title: "Markets"}, IsAccepted: true},
			{ID: "r3", Article: domain.ArticleRef{Title: "Cup draw"}},
		}, nil
	}}
	svc := NewEditRequestService(gw, nil, nil, discardLogger)

	page, err := svc.List(context.Background(), listing.Query{Search: "cup"}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 2 || page.PageSize != 10 {
		t.Fatalf("unexpected page %+v", page)
	}
}

func TestEditRequestService_ApproveRequiresReviewer(t *testing.T) {
	approved := 0
	gw := &stubEdits{approveFn: func(context.Context, string) error { approved++; return nil }}
	svc := NewEditRequestService(gw, nil, nil, discardLogger)

	if err := svc.Approve(context.Background(), sessionFor("j1", domain.RoleJournalist), "r1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Approve(context.Background(), sessionFor("e1", domain.RoleEditor), "r1"); err != nil {
		t.Fatalf("editor approval failed: %v", err)
	}
	if approved != 1 {
		t.Fatalf("expected one approval, got %d", approved)
	}
}
