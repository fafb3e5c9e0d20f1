package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kickside/newsdesk/internal/core/domain"
	"github.com/kickside/newsdesk/internal/core/listing"
	"github.com/kickside/newsdesk/internal/core/ports"
)

// ScopeAdmin is the cache scope of Admin-only collections.
const ScopeAdmin = "admin"

// UserService is the Admin's staff account management.
type UserService struct {
	gateway ports.UserGateway
	loader  *CollectionLoader
	confirm ports.ConfirmationStore
	audit   ports.AuditSink
	log     zerolog.Logger
}

func NewUserService(gateway ports.UserGateway, loader *CollectionLoader, confirm ports.ConfirmationStore, audit ports.AuditSink, log zerolog.Logger) *UserService {
	return &UserService{gateway: gateway, loader: loader, confirm: confirm, audit: audit, log: log}
}

func (s *UserService) List(ctx context.Context, q listing.Query, refresh bool) (listing.Page[domain.UserProfile], error) {
	items, err := LoadCollection(ctx, s.loader, ScopeAdmin, listing.ScreenUsers, refresh, s.gateway.List)
	if err != nil {
		return listing.Page[domain.UserProfile]{}, fmt.Errorf("list users: %w", err)
	}
	return listing.Users.Apply(items, q), nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.UserProfile, error) {
	u, err := s.gateway.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", id, err)
	}
	return u, nil
}

func (s *UserService) Create(ctx context.Context, sess *domain.Session, in domain.NewUserInput) (*domain.UserProfile, error) {
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
	if !in.Role.Valid() {
		ve.Add("role", "Role must be Journalist, Editor or Admin")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	u, err := s.gateway.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.invalidate(ctx)
	record(s.audit, sess, domain.AuditUserCreate, u.ID, string(u.Role))
	return u, nil
}

func (s *UserService) Update(ctx context.Context, sess *domain.Session, id string, in domain.UpdateUserInput) (*domain.UserProfile, error) {
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
	if in.Role != "" && !in.Role.Valid() {
		ve.Add("role", "Role must be Journalist, Editor or Admin")
	}
	if in.Password != "" && len(in.Password) < minPasswordLength {
		ve.Add("password", fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	u, err := s.gateway.Update(ctx, id, in)
	if err != nil {
		return nil, fmt.Errorf("update user %s: %w", id, err)
	}
	s.invalidate(ctx)
	record(s.audit, sess, domain.AuditUserUpdate, id, "")
	return u, nil
}

// Disable suspends a staff account. It needs a reason and a confirmation
// token, issued by a first call without one.
func (s *UserService) Disable(ctx context.Context, sess *domain.Session, id, reason, confirmToken string) error {
	if blank(reason) {
		ve := domain.NewValidationError()
		ve.Add("disableReason", "A reason is required")
		return ve
	}
	if id == sess.UserID() {
		return fmt.Errorf("disable user: cannot disable yourself: %w", domain.ErrForbidden)
	}
	if err := confirmed(ctx, s.confirm, sess, "user.disable", id, confirmToken); err != nil {
		return err
	}
	if err := s.gateway.Disable(ctx, id, reason); err != nil {
		return fmt.Errorf("disable user %s: %w", id, err)
	}
	s.invalidate(ctx)
	record(s.audit, sess, domain.AuditUserDisable, id, reason)
	s.log.Info().Str("target_user", id).Str("user_id", sess.UserID()).Msg("user disabled")
	return nil
}

func (s *UserService) Enable(ctx context.Context, sess *domain.Session, id string) error {
	if err := s.gateway.Enable(ctx, id); err != nil {
		return fmt.Errorf("enable user %s: %w", id, err)
	}
	s.invalidate(ctx)
	record(s.audit, sess, domain.AuditUserEnable, id, "")
	return nil
}

func (s *UserService) invalidate(ctx context.Context) {
	s.loader.Invalidate(ctx, ScopeAdmin, listing.ScreenUsers)
}
