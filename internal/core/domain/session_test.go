package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)})
	s, err := tok.SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestSession_TokenExpired(t *testing.T) {
	now := time.Now()

	if !(&Session{}).TokenExpired(now) {
		t.Fatal("no token must read as expired")
	}
	if (&Session{Token: signed(t, now.Add(time.Hour))}).TokenExpired(now) {
		t.Fatal("future exp must not be expired")
	}
	if !(&Session{Token: signed(t, now.Add(-time.Minute))}).TokenExpired(now) {
		t.Fatal("past exp must be expired")
	}
	if (&Session{Token: "opaque-token"}).TokenExpired(now) {
		t.Fatal("opaque tokens are judged by the backend")
	}
}

func TestSession_NeedsRefresh(t *testing.T) {
	now := time.Now()
	s := &Session{Token: "t"}
	if !s.NeedsRefresh(now, time.Minute) {
		t.Fatal("missing profile needs refresh")
	}
	s.SetProfile(UserProfile{ID: "u1", Role: RoleEditor}, now)
	if s.NeedsRefresh(now.Add(30*time.Second), time.Minute) {
		t.Fatal("fresh profile must not refresh")
	}
	if !s.NeedsRefresh(now.Add(2*time.Minute), time.Minute) {
		t.Fatal("stale profile must refresh")
	}
	if s.Role() != RoleEditor || s.UserID() != "u1" {
		t.Fatalf("unexpected cached identity %s/%s", s.Role(), s.UserID())
	}
}

func TestSession_Notices(t *testing.T) {
	s := &Session{}
	s.Notify(NoticeError, "boom")
	got := s.DrainNotices()
	if len(got) != 1 || got[0].Message != "boom" {
		t.Fatalf("unexpected notices %+v", got)
	}
	if again := s.DrainNotices(); again == nil || len(again) != 0 {
		t.Fatalf("expected empty drain, got %#v", again)
	}
}

func TestSession_PendingEdits(t *testing.T) {
	s := &Session{}
	s.MarkEditRequested("a1")
	s.MarkEditRequested("a1")
	if len(s.PendingEdits) != 1 || !s.EditRequested("a1") || s.EditRequested("a2") {
		t.Fatalf("unexpected pending set %v", s.PendingEdits)
	}
}

func TestDashboardRoute(t *testing.T) {
	route, err := DashboardRoute(RoleEditor)
	if err != nil || route != "/editor/dashboard" {
		t.Fatalf("unexpected %q %v", route, err)
	}
	if _, err := DashboardRoute("Intern"); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
	if DefaultRoute("Intern") != StaffDashboardRoute {
		t.Fatal("unknown roles fall back to the staff dashboard")
	}
}

func TestValidationError(t *testing.T) {
	ve := NewValidationError()
	if ve.OrNil() != nil {
		t.Fatal("empty validation error must be nil")
	}
	ve.Add("title", "Title is required")
	ve.Add("title", "second message ignored")
	ve.Add("content", "Content is required")

	err := ve.OrNil()
	if !errors.Is(err, ErrValidation) {
		t.Fatal("must match ErrValidation")
	}
	if ve.Fields["title"] != "Title is required" {
		t.Fatalf("first message must win, got %q", ve.Fields["title"])
	}
	if err.Error() != "Content is required; Title is required" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestImageUpload_Check(t *testing.T) {
	ok := ImageUpload{ContentType: "image/png", Size: 1024}
	if err := ok.Check(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, bad := range []ImageUpload{
		{ContentType: "application/pdf", Size: 10},
		{ContentType: "image/jpeg", Size: 0},
		{ContentType: "image/jpeg", Size: DefaultMaxImageBytes + 1},
	} {
		if err := bad.Check(0); !errors.Is(err, ErrInvalidImage) {
			t.Errorf("expected ErrInvalidImage for %+v, got %v", bad, err)
		}
	}
}

func TestRelated(t *testing.T) {
	a := Article{ID: "a", Category: "Sports", Status: ArticlePublished}
	pool := []Article{
		a,
		{ID: "b", Category: "Sports", Status: ArticlePublished},
		{ID: "c", Category: "Business", Status: ArticlePublished},
		{ID: "d", Category: "Sports", Status: ArticleDraft},
		{ID: "e", Category: "Sports", Status: ArticlePublished},
	}
	got := Related(a, pool, 1)
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("unexpected related %+v", got)
	}
}
