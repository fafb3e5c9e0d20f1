package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kickside/newsdesk/internal/core/domain"
	"github.com/kickside/newsdesk/internal/core/listing"
	"github.com/kickside/newsdesk/internal/core/ports"
)

// ScopeReviewers is the cache scope shared by Editors and Admins.
const ScopeReviewers = "reviewers"

// EditRequestService lists pending edit requests and approves them.
type EditRequestService struct {
	gateway ports.EditRequestGateway
	loader  *CollectionLoader
	audit   ports.AuditSink
	log     zerolog.Logger
}

func NewEditRequestService(gateway ports.EditRequestGateway, loader *CollectionLoader, audit ports.AuditSink, log zerolog.Logger) *EditRequestService {
	return &EditRequestService{gateway: gateway, loader: loader, audit: audit, log: log}
}

func (s *EditRequestService) List(ctx context.Context, q listing.Query, refresh bool) (listing.Page[domain.EditRequest], error) {
	items, err := LoadCollection(ctx, s.loader, ScopeReviewers, listing.ScreenEditRequests, refresh, s.gateway.List)
	if err != nil {
		return listing.Page[domain.EditRequest]{}, fmt.Errorf("list edit requests: %w", err)
	}
	pending := make([]domain.EditRequest, 0, len(items))
	for _, r := range items {
		if !r.IsAccepted {
			pending = append(pending, r)
		}
	}
	return listing.EditRequests.Apply(pending, q), nil
}

// Approve unlocks the article of an edit request for its Journalist.
// Reserved to Editors and Admins.
func (s *EditRequestService) Approve(ctx context.Context, sess *domain.Session, id string) error {
	if !sess.Role().CanReviewEdits() {
		return fmt.Errorf("approve edit request: %w", domain.ErrForbidden)
	}
	if err := s.gateway.Approve(ctx, id); err != nil {
		return fmt.Errorf("approve edit request %s: %w", id, err)
	}
	s.loader.Invalidate(ctx, ScopeReviewers, listing.ScreenEditRequests)
	s.loader.Invalidate(ctx, sess.UserID(), listing.ScreenArticles)
	record(s.audit, sess, domain.AuditEditApprove, id, "")
	s.log.Info().Str("edit_request_id", id).Str("user_id", sess.UserID()).Msg("edit request approved")
	return nil
}
