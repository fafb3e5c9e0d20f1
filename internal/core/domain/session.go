package domain

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Notice levels, rendered as dismissible toasts.
const (
	NoticeSuccess = "success"
	NoticeInfo    = "info"
	NoticeError   = "error"
)

// Notice is a one-shot message queued for the visitor.
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Session is the per-browser-session state: the backend bearer token and the
// cached profile. The cached role drives routing only; the backend re-derives
// authority from the token on every privileged call.
type Session struct {
	Token        string       `json:"token"`
	Profile      *UserProfile `json:"profile,omitempty"`
	RefreshedAt  time.Time    `json:"refreshed_at,omitempty"`
	PendingEdits []string     `json:"pending_edit_requests,omitempty"`
	Notices      []Notice     `json:"notices,omitempty"`
}

// Authenticated reports whether a bearer token is present.
func (s *Session) Authenticated() bool { return s != nil && s.Token != "" }

// Role returns the cached role, or "" when there is no profile.
func (s *Session) Role() Role {
	if s == nil || s.Profile == nil {
		return ""
	}
	return s.Profile.Role
}

// UserID returns the cached profile id, or "".
func (s *Session) UserID() string {
	if s == nil || s.Profile == nil {
		return ""
	}
	return s.Profile.ID
}

// TokenExpired reports whether the bearer token carries an exp claim in the
// past. The signature is not checked; the backend does that. Tokens that are
// not JWTs, or carry no exp, are left for the backend to judge.
func (s *Session) TokenExpired(now time.Time) bool {
	if !s.Authenticated() {
		return true
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}

// NeedsRefresh reports whether the cached profile is missing or older than
// interval.
func (s *Session) NeedsRefresh(now time.Time, interval time.Duration) bool {
	if s.Profile == nil || s.RefreshedAt.IsZero() {
		return true
	}
	return now.Sub(s.RefreshedAt) >= interval
}

// SetProfile replaces the cached profile and stamps the refresh time.
func (s *Session) SetProfile(p UserProfile, now time.Time) {
	s.Profile = &p
	s.RefreshedAt = now
}

// Notify queues a notice for the next notices drain.
func (s *Session) Notify(level, msg string) {
	s.Notices = append(s.Notices, Notice{Level: level, Message: msg})
}

// DrainNotices returns the queued notices and empties the queue.
func (s *Session) DrainNotices() []Notice {
	out := s.Notices
	s.Notices = nil
	if out == nil {
		out = []Notice{}
	}
	return out
}

// MarkEditRequested remembers that the viewer asked to edit articleID.
func (s *Session) MarkEditRequested(articleID string) {
	if !s.EditRequested(articleID) {
		s.PendingEdits = append(s.PendingEdits, articleID)
	}
}

// EditRequested reports whether an edit request for articleID is pending.
func (s *Session) EditRequested(articleID string) bool {
	return slices.Contains(s.PendingEdits, articleID)
}
