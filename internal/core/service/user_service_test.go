package service

import (
	"context"
	"errors"
	"testing"

	"github.com/kickside/newsdesk/internal/core/domain"
	"github.com/kickside/newsdesk/internal/core/listing"
)

type stubUsers struct {
	listFn    func(ctx context.Context) ([]domain.UserProfile, error)
	getFn     func(ctx context.Context, id string) (*domain.UserProfile, error)
	createFn  func(ctx context.Context, in domain.NewUserInput) (*domain.UserProfile, error)
	updateFn  func(ctx context.Context, id string, in domain.UpdateUserInput) (*domain.UserProfile, error)
	disableFn func(ctx context.Context, id, reason string) error
	enableFn  func(ctx context.Context, id string) error
}

func (s *stubUsers) List(ctx context.Context) ([]domain.UserProfile, error) { return s.listFn(ctx) }
func (s *stubUsers) Get(ctx context.Context, id string) (*domain.UserProfile, error) {
	return s.getFn(ctx, id)
}
func (s *stubUsers) Create(ctx context.Context, in domain.NewUserInput) (*domain.UserProfile, error) {
	return s.createFn(ctx, in)
}
func (s *stubUsers) Update(ctx context.Context, id string, in domain.UpdateUserInput) (*domain.UserProfile, error) {
	return s.updateFn(ctx, id, in)
}
func (s *stubUsers) Disable(ctx context.Context, id, reason string) error {
	return s.disableFn(ctx, id, reason)
}
func (s *stubUsers) Enable(ctx context.Context, id string) error { return s.enableFn(ctx, id) }

func TestUserService_CreateValidation(t *testing.T) {
	svc := NewUserService(&stubUsers{}, nil, nil, nil, discardLogger)

	_, err := svc.Create(context.Background(), sessionFor("ad1", domain.RoleAdmin), domain.NewUserInput{Email: "x", Role: "Intern"})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, f := range []string{"firstName", "lastName", "email", "role"} {
		if ve.Fields[f] == "" {
			t.Errorf("missing error for %s", f)
		}
	}
}

func TestUserService_DisableFlow(t *testing.T) {
	disabled := map[string]string{}
	users := []domain.UserProfile{{ID: "u1"}, {ID: "u2"}}
	gw := &stubUsers{
		listFn: func(context.Context) ([]domain.UserProfile, error) {
			out := make([]domain.UserProfile, len(users))
			for i, u := range users {
				_, u.IsDisabled = disabled[u.ID]
				out[i] = u
			}
			return out, nil
		},
		disableFn: func(_ context.Context, id, reason string) error {
			disabled[id] = reason
			return nil
		},
	}
	audit := &recordingSink{}
	svc := NewUserService(gw, NewCollectionLoader(newMemListCache(), 0, discardLogger), newMemConfirmations(), audit, discardLogger)
	admin := sessionFor("ad1", domain.RoleAdmin)
	ctx := context.Background()

	if _, err := svc.List(ctx, listing.Query{}, false); err != nil {
		t.Fatalf("list: %v", err)
	}

	var confirm *domain.ConfirmationRequiredError
	if err := svc.Disable(ctx, admin, "u2", "left the company", ""); !errors.As(err, &confirm) {
		t.Fatalf("expected confirmation request, got %v", err)
	}
	if len(disabled) != 0 {
		t.Fatal("disabled before confirmation")
	}
	if err := svc.Disable(ctx, admin, "u1", "left the company", confirm.Token); !errors.Is(err, domain.ErrInvalidConfirmation) {
		t.Fatalf("token bound to another user must fail, got %v", err)
	}

	if err := svc.Disable(ctx, admin, "u2", "left the company", ""); !errors.As(err, &confirm) {
		t.Fatalf("expected confirmation request, got %v", err)
	}
	if err := svc.Disable(ctx, admin, "u2", "left the company", confirm.Token); err != nil {
		t.Fatalf("confirmed disable failed: %v", err)
	}
	if disabled["u2"] != "left the company" {
		t.Fatalf("reason not forwarded: %v", disabled)
	}

	page, _ := svc.List(ctx, listing.Query{}, false)
	for _, u := range page.Items {
		if u.ID == "u2" && !u.IsDisabled {
			t.Fatal("list still shows u2 enabled")
		}
	}
	if len(audit.entries) != 1 || audit.entries[0].Action != domain.AuditUserDisable {
		t.Fatalf("unexpected audit %+v", audit.entries)
	}
}

func TestUserService_DisableNeedsReason(t *testing.T) {
	svc := NewUserService(&stubUsers{}, nil, newMemConfirmations(), nil, discardLogger)
	err := svc.Disable(context.Background(), sessionFor("ad1", domain.RoleAdmin), "u2", " ", "")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUserService_CannotDisableSelf(t *testing.T) {
	svc := NewUserService(&stubUsers{}, nil, newMemConfirmations(), nil, discardLogger)
	err := svc.Disable(context.Background(), sessionFor("ad1", domain.RoleAdmin), "ad1", "test", "")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
