package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/kickside/newsdesk/internal/core/domain"
	"github.com/kickside/newsdesk/internal/core/ports"
	"github.com/kickside/newsdesk/internal/pkg/metrics"
)

// LoginResult is what a successful login puts in the session.
type LoginResult struct {
	Token   string
	Profile domain.UserProfile
	Route   string
}

// AuthService implements login, logout, profile refresh and the account
// settings of the signed-in staff member.
type AuthService struct {
	gateway ports.AuthGateway
	limiter ports.RateLimiter
	audit   ports.AuditSink
	now     func() time.Time
	log     zerolog.Logger
}

func NewAuthService(gateway ports.AuthGateway, limiter ports.RateLimiter, audit ports.AuditSink, log zerolog.Logger) *AuthService {
	return &AuthService{gateway: gateway, limiter: limiter, audit: audit, now: time.Now, log: log}
}

// Login exchanges credentials for a token and picks the landing route for
// the user's role. A role without a dashboard is an error and nothing is
// returned for the session.
func (s *AuthService) Login(ctx context.Context, clientIP, email, password string) (*LoginResult, error) {
	ve := domain.NewValidationError()
	if !validEmail(email) {
		ve.Add("email", "A valid email is required")
	}
	if blank(password) {
		ve.Add("password", "Password is required")
	}
	if err := ve.OrNil(); err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	if err := allow(ctx, s.limiter, s.log, BucketLogin, clientIP); err != nil {
		metrics.LoginsTotal.WithLabelValues("rate_limited").Inc()
		return nil, err
	}

	token, profile, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}
	if token == "" || profile == nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: %w", domain.ErrUnauthorized)
	}

	route, err := domain.DashboardRoute(profile.Role)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("unknown_role").Inc()
		s.log.Warn().Str("user_id", profile.ID).Str("role", string(profile.Role)).Msg("login with unrecognised role")
		return nil, fmt.Errorf("login: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	sess := &domain.Session{Token: token, Profile: profile}
	record(s.audit, sess, domain.AuditLogin, profile.ID, "")
	s.log.Info().Str("user_id", profile.ID).Str("role", string(profile.Role)).Msg("staff login")

	return &LoginResult{Token: token, Profile: *profile, Route: route}, nil
}

// Logout tells the backend to drop the token. The caller clears the session
// whatever the outcome.
func (s *AuthService) Logout(ctx context.Context, sess *domain.Session) error {
	if !sess.Authenticated() {
		return nil
	}
	record(s.audit, sess, domain.AuditLogout, sess.UserID(), "")
	if err := s.gateway.Logout(ctx, sess.Token); err != nil && !errors.Is(err, domain.ErrUnauthorized) {
		s.log.Warn().Err(err).Str("user_id", sess.UserID()).Msg("backend logout failed")
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// RefreshProfile re-reads the signed-in user's profile.
func (s *AuthService) RefreshProfile(ctx context.Context) (*domain.UserProfile, error) {
	p, err := s.gateway.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh profile: %w", err)
	}
	return p, nil
}

func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if !validEmail(email) {
		ve := domain.NewValidationError()
		ve.Add("email", "A valid email is required")
		return ve
	}
	if err := s.gateway.ForgotPassword(ctx, email); err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, token, password, confirm string) error {
	ve := domain.NewValidationError()
	if blank(token) {
		ve.Add("token", "Reset link is invalid or incomplete")
	}
	checkNewPassword(ve, "password", password, confirm)
	if err := ve.OrNil(); err != nil {
		return err
	}
	if err := s.gateway.ResetPassword(ctx, token, password); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}

// UpdateProfile saves the staff member's own profile and refreshes the
// cached copy in sess.
func (s *AuthService) UpdateProfile(ctx context.Context, sess *domain.Session, in domain.ProfileUpdate) (*domain.UserProfile, error) {
	ve := domain.NewValidationError()
	if blank(in.FirstName) {
		ve.Add("firstName", "First name is required")
	}
	if blank(in.LastName) {
		ve.Add("lastName", "Last name is required")
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	p, err := s.gateway.UpdateProfile(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if p != nil {
		sess.SetProfile(*p, s.now())
	}
	record(s.audit, sess, domain.AuditProfileUpdate, sess.UserID(), "")
	return p, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, sess *domain.Session, current, next, confirm string) error {
	ve := domain.NewValidationError()
	if blank(current) {
		ve.Add("currentPassword", "Current password is required")
	}
	checkNewPassword(ve, "newPassword", next, confirm)
	if err := ve.OrNil(); err != nil {
		return err
	}
	if err := s.gateway.ChangePassword(ctx, domain.PasswordChange{CurrentPassword: current, NewPassword: next}); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	record(s.audit, sess, domain.AuditPasswordChanged, sess.UserID(), "")
	return nil
}

func checkNewPassword(ve *domain.ValidationError, field, password, confirm string) {
	switch {
	case blank(password):
		ve.Add(field, "New password is required")
	case len(password) < minPasswordLength:
		ve.Add(field, fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	case password != confirm:
		ve.Add("confirmPassword", "Passwords do not match")
	}
}
