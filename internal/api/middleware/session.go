package middleware

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kickside/newsdesk/internal/core/domain"
	"github.com/kickside/newsdesk/internal/core/ports"
	"github.com/kickside/newsdesk/internal/infrastructure/backend"
)

// SessionKey is the echo context key of the *SessionState.
const SessionKey = "session"

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

// SessionState is the visitor's session for the current request.
type SessionState struct {
	ID      string
	Session *domain.Session
	// New is set when the visitor arrived without a valid session cookie.
	New bool

	previousID string
	destroyed  bool
}

// Rotate moves the session to a fresh id. Called on login.
func (s *SessionState) Rotate() {
	if s.previousID == "" && !s.New {
		s.previousID = s.ID
	}
	s.ID = uuid.NewString()
	s.destroyed = false
}

// Destroy drops the session and expires the cookie when the response is
// written.
func (s *SessionState) Destroy() {
	s.destroyed = true
	s.Session = &domain.Session{}
}

// Destroyed reports whether Destroy was called during this request.
func (s *SessionState) Destroyed() bool { return s.destroyed }

// SessionFrom returns the state installed by Session, or nil.
func SessionFrom(c echo.Context) *SessionState {
	st, _ := c.Get(SessionKey).(*SessionState)
	return st
}

// Session loads the visitor's session from the cookie, exposes it on the
// echo context and puts its bearer token on the request context. Changes are
// written back just before the response header goes out. A request failing
// with domain.ErrUnauthorized destroys the session.
func Session(store ports.SessionStore, cookie CookieConfig, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			st := &SessionState{}

			if ck, err := req.Cookie(cookie.Name); err == nil && ck.Value != "" {
				sess, err := store.Get(req.Context(), ck.Value)
				switch {
				case err == nil:
					st.ID, st.Session = ck.Value, sess
				case errors.Is(err, domain.ErrSessionNotFound):
				default:
					log.Warn().Err(err).Msg("session load failed")
				}
			}
			if st.Session == nil {
				st.ID, st.Session, st.New = uuid.NewString(), &domain.Session{}, true
			}

			c.Set(SessionKey, st)
			c.SetRequest(req.WithContext(backend.WithToken(req.Context(), st.Session.Token)))
			c.Response().Before(func() { persist(c, store, cookie, st, log) })

			err := next(c)
			if err != nil && errors.Is(err, domain.ErrUnauthorized) && st.Session.Authenticated() {
				st.Destroy()
			}
			return err
		}
	}
}

func keep(s *domain.Session) bool {
	return s.Authenticated() || len(s.Notices) > 0 || len(s.PendingEdits) > 0
}

func persist(c echo.Context, store ports.SessionStore, cookie CookieConfig, st *SessionState, log zerolog.Logger) {
	ctx := c.Request().Context()

	if st.previousID != "" {
		if err := store.Delete(ctx, st.previousID); err != nil {
			log.Warn().Err(err).Msg("session rotate cleanup failed")
		}
	}

	if st.destroyed || !keep(st.Session) {
		if !st.New {
			if err := store.Delete(ctx, st.ID); err != nil {
				log.Warn().Err(err).Msg("session delete failed")
			}
			c.SetCookie(expiredCookie(cookie))
		}
		return
	}

	if err := store.Save(ctx, st.ID, st.Session); err != nil {
		log.Error().Err(err).Msg("session save failed")
		return
	}
	if st.New || st.previousID != "" {
		c.SetCookie(sessionCookie(cookie, st.ID))
	}
}

func sessionCookie(cfg CookieConfig, id string) *http.Cookie {
	return &http.Cookie{
		Name:     cfg.Name,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func expiredCookie(cfg CookieConfig) *http.Cookie {
	ck := sessionCookie(cfg, "")
	ck.MaxAge = -1
	return ck
}
