package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kickside/newsdesk/internal/core/domain"
	"github.com/kickside/newsdesk/internal/core/listing"
	"github.com/kickside/newsdesk/internal/core/ports"
)

// SubscriberService is the newsletter signup and the Admin mailing list.
type SubscriberService struct {
	gateway ports.SubscriberGateway
	loader  *CollectionLoader
	limiter ports.RateLimiter
	log     zerolog.Logger
}

func NewSubscriberService(gateway ports.SubscriberGateway, loader *CollectionLoader, limiter ports.RateLimiter, log zerolog.Logger) *SubscriberService {
	return &SubscriberService{gateway: gateway, loader: loader, limiter: limiter, log: log}
}

func invalidEmail() error {
	ve := domain.NewValidationError()
	ve.Add("email", "Please enter a valid email address")
	return ve
}

// Subscribe signs email up for the newsletter. Malformed addresses never
// reach the backend.
func (s *SubscriberService) Subscribe(ctx context.Context, clientIP, email string) error {
	email = strings.TrimSpace(email)
	if !validEmail(email) {
		return invalidEmail()
	}
	if err := allow(ctx, s.limiter, s.log, BucketNewsletter, clientIP); err != nil {
		return err
	}
	if err := s.gateway.Subscribe(ctx, email); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	s.loader.Invalidate(ctx, ScopeAdmin, listing.ScreenSubscribers)
	return nil
}

// Unsubscribe follows the link of a newsletter email.
func (s *SubscriberService) Unsubscribe(ctx context.Context, email, token string) error {
	email = strings.TrimSpace(email)
	if !validEmail(email) {
		return invalidEmail()
	}
	if blank(token) {
		ve := domain.NewValidationError()
		ve.Add("token", "Unsubscribe link is invalid or incomplete")
		return ve
	}
	if err := s.gateway.Unsubscribe(ctx, email, token); err != nil {
		return fmt.Errorf("unsubscribe: %w", err)
	}
	s.loader.Invalidate(ctx, ScopeAdmin, listing.ScreenSubscribers)
	return nil
}

func (s *SubscriberService) List(ctx context.Context, q listing.Query, refresh bool) (listing.Page[domain.Subscriber], error) {
	items, err := LoadCollection(ctx, s.loader, ScopeAdmin, listing.ScreenSubscribers, refresh, s.gateway.List)
	if err != nil {
		return listing.Page[domain.Subscriber]{}, fmt.Errorf("list subscribers: %w", err)
	}
	return listing.Subscribers.Apply(items, q), nil
}
