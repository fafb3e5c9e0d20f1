package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kickside/newsdesk/internal/core/domain"
	"github.com/kickside/newsdesk/internal/core/listing"
	"github.com/kickside/newsdesk/internal/core/ports"
)

// InquiryService covers the public contact form and the Admin inbox.
type InquiryService struct {
	gateway ports.InquiryGateway
	loader  *CollectionLoader
	limiter ports.RateLimiter
	audit   ports.AuditSink
	log     zerolog.Logger
}

func NewInquiryService(gateway ports.InquiryGateway, loader *CollectionLoader, limiter ports.RateLimiter, audit ports.AuditSink, log zerolog.Logger) *InquiryService {
	return &InquiryService{gateway: gateway, loader: loader, limiter: limiter, audit: audit, log: log}
}

// Submit sends a contact-form inquiry. Every field is required.
func (s *InquiryService) Submit(ctx context.Context, clientIP string, in domain.InquiryInput) error {
	ve := domain.NewValidationError()
	if blank(in.FirstName) {
		ve.Add("firstName", "First name is required")
	}
	if blank(in.LastName) {
		ve.Add("lastName", "Last name is required")
	}
	if !validEmail(in.Email) {
		ve.Add("email", "A valid email is required")
	}
	if blank(in.Topic) {
		ve.Add("topic", "Topic is required")
	}
	if blank(in.Message) {
		ve.Add("message", "Message is required")
	}
	if err := ve.OrNil(); err != nil {
		return err
	}
	if err := allow(ctx, s.limiter, s.log, BucketContact, clientIP); err != nil {
		return err
	}
	if err := s.gateway.Create(ctx, in); err != nil {
		return fmt.Errorf("submit inquiry: %w", err)
	}
	s.loader.Invalidate(ctx, ScopeAdmin, listing.ScreenInquiries)
	return nil
}

func (s *InquiryService) List(ctx context.Context, q listing.Query, refresh bool) (listing.Page[domain.Inquiry], error) {
	items, err := LoadCollection(ctx, s.loader, ScopeAdmin, listing.ScreenInquiries, refresh, s.gateway.List)
	if err != nil {
		return listing.Page[domain.Inquiry]{}, fmt.Errorf("list inquiries: %w", err)
	}
	return listing.Inquiries.Apply(items, q), nil
}

func (s *InquiryService) Get(ctx context.Context, id string) (*domain.Inquiry, error) {
	in, err := s.gateway.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("inquiry %s: %w", id, err)
	}
	return in, nil
}

func (s *InquiryService) MarkSolved(ctx context.Context, sess *domain.Session, id string) error {
	if err := s.gateway.MarkSolved(ctx, id); err != nil {
		return fmt.Errorf("mark inquiry %s solved: %w", id, err)
	}
	s.loader.Invalidate(ctx, ScopeAdmin, listing.ScreenInquiries)
	record(s.audit, sess, domain.AuditInquirySolved, id, "")
	return nil
}
