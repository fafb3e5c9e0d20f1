package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kickside/newsdesk/internal/core/domain"
	"github.com/kickside/newsdesk/internal/infrastructure/backend"
)

type memSessions struct {
	data    map[string]*domain.Session
	deleted []string
}

func newMemSessions() *memSessions { return &memSessions{data: make(map[string]*domain.Session)} }

func (m *memSessions) Get(_ context.Context, id string) (*domain.Session, error) {
	s, ok := m.data[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSessions) Save(_ context.Context, id string, s *domain.Session) error {
	cp := *s
	m.data[id] = &cp
	return nil
}

func (m *memSessions) Delete(_ context.Context, id string) error {
	delete(m.data, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type stubRefresher struct {
	refreshFn func(ctx context.Context) (*domain.UserProfile, error)
	calls     int
}

func (s *stubRefresher) RefreshProfile(ctx context.Context) (*domain.UserProfile, error) {
	s.calls++
	return s.refreshFn(ctx)
}

var cookieCfg = CookieConfig{Name: "newsdesk_sid"}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

// serve runs h behind the Session middleware through a full echo instance,
// so that response hooks and the error handler behave as in production.
func serve(store *memSessions, cookie string, register func(e *echo.Echo, mw echo.MiddlewareFunc)) *httptest.ResponseRecorder {
	e := echo.New()
	register(e, Session(store, cookieCfg, zerolog.Nop()))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: cookieCfg.Name, Value: cookie})
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func setCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == cookieCfg.Name {
			return ck
		}
	}
	return nil
}

func TestSession_AnonymousVisitorGetsNoCookie(t *testing.T) {
	store := newMemSessions()
	rec := serve(store, "", func(e *echo.Echo, mw echo.MiddlewareFunc) {
		e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, mw)
	})
	if setCookie(rec) != nil || len(store.data) != 0 {
		t.Fatal("anonymous visitor must not get a session")
	}
}

func TestSession_LoadsTokenIntoRequestContext(t *testing.T) {
	store := newMemSessions()
	store.data["sid-1"] = &domain.Session{Token: "tok-1"}

	var got string
	serve(store, "sid-1", func(e *echo.Echo, mw echo.MiddlewareFunc) {
		e.GET("/", func(c echo.Context) error {
			got = backend.TokenFrom(c.Request().Context())
			return c.NoContent(http.StatusOK)
		}, mw)
	})
	if got != "tok-1" {
		t.Fatalf("expected token on context, got %q", got)
	}
}

func TestSession_RotateOnLogin(t *testing.T) {
	store := newMemSessions()
	store.data["old"] = &domain.Session{Notices: []domain.Notice{{Level: "info", Message: "hi"}}}

	rec := serve(store, "old", func(e *echo.Echo, mw echo.MiddlewareFunc) {
		e.GET("/", func(c echo.Context) error {
			st := SessionFrom(c)
			st.Session.Token = "tok"
			st.Rotate()
			return c.NoContent(http.StatusOK)
		}, mw)
	})

	ck := setCookie(rec)
	if ck == nil || ck.Value == "old" || !ck.HttpOnly || ck.SameSite != http.SameSiteLaxMode {
		t.Fatalf("unexpected cookie %+v", ck)
	}
	if _, ok := store.data["old"]; ok {
		t.Fatal("old session id still valid")
	}
	if s, ok := store.data[ck.Value]; !ok || s.Token != "tok" {
		t.Fatal("rotated session not saved")
	}
}

func TestSession_UnauthorizedErrorDestroysSession(t *testing.T) {
	store := newMemSessions()
	store.data["sid"] = &domain.Session{Token: "tok"}

	rec := serve(store, "sid", func(e *echo.Echo, mw echo.MiddlewareFunc) {
		e.GET("/", func(c echo.Context) error {
			return errors.Join(errors.New("list articles"), domain.ErrUnauthorized)
		}, mw)
	})
	if _, ok := store.data["sid"]; ok {
		t.Fatal("session survived a 401")
	}
	if ck := setCookie(rec); ck == nil || ck.MaxAge >= 0 {
		t.Fatalf("expected expired cookie, got %+v", ck)
	}
}

func TestAuthGuard_NoToken(t *testing.T) {
	store := newMemSessions()
	rec := serve(store, "", func(e *echo.Echo, mw echo.MiddlewareFunc) {
		e.GET("/", func(c echo.Context) error {
			t.Fatal("should not reach next handler")
			return nil
		}, mw, AuthGuard(&stubRefresher{}, time.Minute, zerolog.Nop()))
	})
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != domain.LoginRoute {
		t.Fatalf("expected redirect to login, got %d %s", rec.Code, rec.Header().Get("Location"))
	}
}

func TestAuthGuard_ExpiredToken(t *testing.T) {
	store := newMemSessions()
	store.data["sid"] = &domain.Session{Token: signedToken(t, time.Now().Add(-time.Minute))}
	rec := serve(store, "sid", func(e *echo.Echo, mw echo.MiddlewareFunc) {
		e.GET("/", func(c echo.Context) error {
			t.Fatal("should not reach next handler")
			return nil
		}, mw, AuthGuard(&stubRefresher{}, time.Minute, zerolog.Nop()))
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if _, ok := store.data["sid"]; ok {
		t.Fatal("expired session kept")
	}
}

func TestAuthGuard_RefreshesStaleProfile(t *testing.T) {
	store := newMemSessions()
	store.data["sid"] = &domain.Session{
		Token:       signedToken(t, time.Now().Add(time.Hour)),
		Profile:     &domain.UserProfile{ID: "u1", FirstName: "Old", Role: domain.RoleEditor},
		RefreshedAt: time.Now().Add(-time.Hour),
	}
	ref := &stubRefresher{refreshFn: func(context.Context) (*domain.UserProfile, error) {
		return &domain.UserProfile{ID: "u1", FirstName: "New", Role: domain.RoleEditor}, nil
	}}
	rec := serve(store, "sid", func(e *echo.Echo, mw echo.MiddlewareFunc) {
		e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, mw, AuthGuard(ref, time.Minute, zerolog.Nop()))
	})
	if rec.Code != http.StatusOK || ref.calls != 1 {
		t.Fatalf("expected refresh and 200, got %d calls=%d", rec.Code, ref.calls)
	}
	if store.data["sid"].Profile.FirstName != "New" {
		t.Fatal("refreshed profile not saved")
	}
}

func TestAuthGuard_RefreshFailureKeepsCachedProfile(t *testing.T) {
	store := newMemSessions()
	store.data["sid"] = &domain.Session{
		Token:   "opaque-token",
		Profile: &domain.UserProfile{ID: "u1", Role: domain.RoleAdmin},
	}
	ref := &stubRefresher{refreshFn: func(context.Context) (*domain.UserProfile, error) {
		return nil, domain.ErrNetwork
	}}
	rec := serve(store, "sid", func(e *echo.Echo, mw echo.MiddlewareFunc) {
		e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, mw, AuthGuard(ref, time.Minute, zerolog.Nop()))
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if n := store.data["sid"].Notices; len(n) != 1 || n[0].Level != domain.NoticeError {
		t.Fatalf("expected an error notice, got %+v", n)
	}
}

func TestAuthGuard_RefreshUnauthorizedLogsOut(t *testing.T) {
	store := newMemSessions()
	store.data["sid"] = &domain.Session{Token: "opaque-token"}
	ref := &stubRefresher{refreshFn: func(context.Context) (*domain.UserProfile, error) {
		return nil, domain.ErrUnauthorized
	}}
	rec := serve(store, "sid", func(e *echo.Echo, mw echo.MiddlewareFunc) {
		e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, mw, AuthGuard(ref, time.Minute, zerolog.Nop()))
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if _, ok := store.data["sid"]; ok {
		t.Fatal("session kept after 401")
	}
}

func TestRoleGuard(t *testing.T) {
	cases := []struct {
		name     string
		profile  *domain.UserProfile
		wantCode int
		wantLoc  string
	}{
		{"allowed", &domain.UserProfile{Role: domain.RoleAdmin}, http.StatusOK, ""},
		{"no profile", nil, http.StatusSeeOther, domain.LoginRoute},
		{"other role", &domain.UserProfile{Role: domain.RoleJournalist}, http.StatusSeeOther, "/journalist/dashboard"},
		{"unknown role", &domain.UserProfile{Role: "Intern"}, http.StatusSeeOther, domain.StaffDashboardRoute},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/admin/users/view", nil), rec)
			c.Set(SessionKey, &SessionState{Session: &domain.Session{Token: "t", Profile: tc.profile}})

			h := RoleGuard(domain.RoleAdmin)(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
			if err := h(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.wantCode || rec.Header().Get("Location") != tc.wantLoc {
				t.Fatalf("got %d %q", rec.Code, rec.Header().Get("Location"))
			}
		})
	}
}
