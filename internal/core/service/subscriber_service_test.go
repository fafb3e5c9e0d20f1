package service

import (
	"context"
	"errors"
	"testing"

	"github.com/kickside/newsdesk/internal/core/domain"
	"github.com/kickside/newsdesk/internal/core/listing"
)

type stubSubscribers struct {
	subscribeFn   func(ctx context.Context, email string) error
	unsubscribeFn func(ctx context.Context, email, token string) error
	listFn        func(ctx context.Context) ([]domain.Subscriber, error)
	calls         int
}

func (s *stubSubscribers) Subscribe(ctx context.Context, email string) error {
	s.calls++
	return s.subscribeFn(ctx, email)
}

func (s *stubSubscribers) Unsubscribe(ctx context.Context, email, token string) error {
	s.calls++
	return s.unsubscribeFn(ctx, email, token)
}

func (s *stubSubscribers) List(ctx context.Context) ([]domain.Subscriber, error) {
	s.calls++
	return s.listFn(ctx)
}

func TestSubscriberService_InvalidEmailNoNetwork(t *testing.T) {
	gw := &stubSubscribers{}
	svc := NewSubscriberService(gw, nil, nil, discardLogger)

	err := svc.Subscribe(context.Background(), "10.0.0.1", "not-an-email")
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Fields["email"] == "" {
		t.Fatalf("expected email error, got %v", err)
	}
	if gw.calls != 0 {
		t.Fatalf("expected no backend call, got %d", gw.calls)
	}
}

func TestSubscriberService_Subscribe(t *testing.T) {
	var got string
	gw := &stubSubscribers{subscribeFn: func(_ context.Context, email string) error {
		got = email
		return nil
	}}
	svc := NewSubscriberService(gw, NewCollectionLoader(newMemListCache(), 0, discardLogger), nil, discardLogger)

	if err := svc.Subscribe(context.Background(), "10.0.0.1", "  reader@example.com "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "reader@example.com" {
		t.Fatalf("email not trimmed: %q", got)
	}
}

func TestSubscriberService_RateLimited(t *testing.T) {
	gw := &stubSubscribers{}
	limiter := &stubLimiter{allowFn: func(string, string) (bool, error) { return false, nil }}
	svc := NewSubscriberService(gw, nil, limiter, discardLogger)

	if err := svc.Subscribe(context.Background(), "10.0.0.1", "reader@example.com"); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if gw.calls != 0 {
		t.Fatal("backend called while rate limited")
	}
}

func TestSubscriberService_ListSearchByEmail(t *testing.T) {
	gw := &stubSubscribers{listFn: func(context.Context) ([]domain.Subscriber, error) {
		return []domain.Subscriber{{Email: "a@news.rw"}, {Email: "b@mail.com"}, {Email: "c@news.rw"}}, nil
	}}
	svc := NewSubscriberService(gw, NewCollectionLoader(newMemListCache(), 0, discardLogger), nil, discardLogger)

	page, err := svc.List(context.Background(), listing.Query{Search: "NEWS.RW", Sort: listing.SortEmail}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Total != 2 || page.Items[0].Email != "a@news.rw" {
		t.Fatalf("unexpected page %+v", page)
	}
}
