package backend

import (
	"context"
	"net/http"

	"github.com/kickside/newsdesk/internal/core/domain"
)

// Users is the /api/workers resource, managed by Admins.
type Users struct {
	c *Client
}

func NewUsers(c *Client) *Users { return &Users{c: c} }

type workerEnvelope struct {
	Worker *domain.UserProfile `json:"worker"`
}

func (u *Users) List(ctx context.Context) ([]domain.UserProfile, error) {
	var out struct {
		Workers []domain.UserProfile `json:"workers"`
	}
	if err := u.c.Do(ctx, Request{Method: http.MethodGet, Route: "/api/workers/get-all-users"}, &out); err != nil {
		return nil, err
	}
	if out.Workers == nil {
		out.Workers = []domain.UserProfile{}
	}
	return out.Workers, nil
}

func (u *Users) Get(ctx context.Context, id string) (*domain.UserProfile, error) {
	var out workerEnvelope
	err := u.c.Do(ctx, Request{
		Method: http.MethodGet,
		Route:  "/api/workers/get-single-user/:id",
		Params: map[string]string{"id": id},
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.Worker == nil {
		return nil, &Error{Status: http.StatusNotFound, Message: "user not found"}
	}
	return out.Worker, nil
}

func (u *Users) Create(ctx context.Context, in domain.NewUserInput) (*domain.UserProfile, error) {
	var out workerEnvelope
	if err := u.c.Do(ctx, Request{Method: http.MethodPost, Route: "/api/workers/create-user", Body: in}, &out); err != nil {
		return nil, err
	}
	if out.Worker == nil {
		return &domain.UserProfile{FirstName: in.FirstName, LastName: in.LastName, Email: in.Email, Role: in.Role}, nil
	}
	return out.Worker, nil
}

type updateUserBody struct {
	ID string `json:"_id"`
	domain.UpdateUserInput
}

func (u *Users) Update(ctx context.Context, id string, in domain.UpdateUserInput) (*domain.UserProfile, error) {
	var out workerEnvelope
	err := u.c.Do(ctx, Request{
		Method: http.MethodPut,
		Route:  "/api/workers/update-user",
		Body:   updateUserBody{ID: id, UpdateUserInput: in},
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.Worker == nil {
		return u.Get(ctx, id)
	}
	return out.Worker, nil
}

func (u *Users) Disable(ctx context.Context, id, reason string) error {
	return u.c.Do(ctx, Request{
		Method: http.MethodPut,
		Route:  "/api/workers/disable-user",
		Body:   map[string]string{"_id": id, "disableReason": reason},
	}, nil)
}

func (u *Users) Enable(ctx context.Context, id string) error {
	return u.c.Do(ctx, Request{
		Method: http.MethodPut,
		Route:  "/api/workers/enable-user/:id",
		Params: map[string]string{"id": id},
	}, nil)
}
