package backend

import (
	"context"
	"net/http"

	"github.com/kickside/newsdesk/internal/core/domain"
)

// Auth is the /api/auth resource.
type Auth struct {
	c *Client
}

func NewAuth(c *Client) *Auth { return &Auth{c: c} }

type loginResponse struct {
	Session struct {
		Content string `json:"content"`
	} `json:"session"`
	User *domain.UserProfile `json:"user"`
}

// Login answers with the token and profile outside of the data member.
func (a *Auth) Login(ctx context.Context, email, password string) (string, *domain.UserProfile, error) {
	var out loginResponse
	err := a.c.Do(ctx, Request{
		Method: http.MethodPost,
		Route:  "/api/auth/login",
		Body:   map[string]string{"email": email, "password": password},
		Root:   true,
	}, &out)
	if err != nil {
		return "", nil, err
	}
	if out.Session.Content == "" || out.User == nil {
		return "", nil, &Error{Status: http.StatusUnauthorized, Message: "Invalid credentials"}
	}
	return out.Session.Content, out.User, nil
}

func (a *Auth) Logout(ctx context.Context, token string) error {
	return a.c.Do(WithToken(ctx, token), Request{
		Method: http.MethodPost,
		Route:  "/api/auth/logout",
		Body:   map[string]string{"token": token},
	}, nil)
}

func (a *Auth) ForgotPassword(ctx context.Context, email string) error {
	return a.c.Do(ctx, Request{
		Method: http.MethodPost,
		Route:  "/api/auth/forgot-password",
		Body:   map[string]string{"email": email},
	}, nil)
}

func (a *Auth) ResetPassword(ctx context.Context, token, password string) error {
	return a.c.Do(ctx, Request{
		Method: http.MethodPost,
		Route:  "/api/auth/reset-password",
		Body:   map[string]string{"token": token, "password": password},
	}, nil)
}

type userEnvelope struct {
	User *domain.UserProfile `json:"user"`
}

func (a *Auth) Profile(ctx context.Context) (*domain.UserProfile, error) {
	var out userEnvelope
	if err := a.c.Do(ctx, Request{Method: http.MethodGet, Route: "/api/auth/get-profile"}, &out); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, &Error{Status: http.StatusNotFound, Message: "profile not found"}
	}
	return out.User, nil
}

func (a *Auth) UpdateProfile(ctx context.Context, in domain.ProfileUpdate) (*domain.UserProfile, error) {
	var out userEnvelope
	if err := a.c.Do(ctx, Request{Method: http.MethodPut, Route: "/api/auth/update-profile", Body: in}, &out); err != nil {
		return nil, err
	}
	if out.User == nil {
		return a.Profile(ctx)
	}
	return out.User, nil
}

func (a *Auth) ChangePassword(ctx context.Context, in domain.PasswordChange) error {
	return a.c.Do(ctx, Request{Method: http.MethodPut, Route: "/api/auth/change-password", Body: in}, nil)
}
