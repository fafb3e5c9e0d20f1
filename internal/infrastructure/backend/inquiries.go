package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/kickside/newsdesk/internal/core/domain"
)

// Inquiries is the /api/inquiry resource.
type Inquiries struct {
	c *Client
}

func NewInquiries(c *Client) *Inquiries { return &Inquiries{c: c} }

func (i *Inquiries) Create(ctx context.Context, in domain.InquiryInput) error {
	return i.c.Do(ctx, Request{Method: http.MethodPost, Route: "/api/inquiry/create-inquiry", Body: in}, nil)
}

func (i *Inquiries) List(ctx context.Context) ([]domain.Inquiry, error) {
	var out struct {
		Inquiries []domain.Inquiry `json:"inquiries"`
	}
	if err := i.c.Do(ctx, Request{Method: http.MethodGet, Route: "/api/inquiry/get-all-inquiries"}, &out); err != nil {
		return nil, err
	}
	if out.Inquiries == nil {
		out.Inquiries = []domain.Inquiry{}
	}
	return out.Inquiries, nil
}

func (i *Inquiries) Get(ctx context.Context, id string) (*domain.Inquiry, error) {
	var out struct {
		Inquiry *domain.Inquiry `json:"inquiry"`
	}
	err := i.c.Do(ctx, Request{
		Method: http.MethodGet,
		Route:  "/api/inquiry/get-single-inquiry/:id",
		Params: map[string]string{"id": id},
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.Inquiry == nil {
		return nil, &Error{Status: http.StatusNotFound, Message: "inquiry not found"}
	}
	return out.Inquiry, nil
}

func (i *Inquiries) MarkSolved(ctx context.Context, id string) error {
	return i.c.Do(ctx, Request{
		Method: http.MethodPatch,
		Route:  "/api/inquiry/update-status/:id",
		Params: map[string]string{"id": id},
		Body:   map[string]string{"status": string(domain.InquirySolved)},
	}, nil)
}

// Subscribers is the /api/subscribers resource.
type Subscribers struct {
	c *Client
}

func NewSubscribers(c *Client) *Subscribers { return &Subscribers{c: c} }

func (s *Subscribers) Subscribe(ctx context.Context, email string) error {
	return s.c.Do(ctx, Request{
		Method: http.MethodPost,
		Route:  "/api/subscribers/user-subcription",
		Body:   map[string]string{"email": email},
	}, nil)
}

func (s *Subscribers) Unsubscribe(ctx context.Context, email, token string) error {
	return s.c.Do(ctx, Request{
		Method: http.MethodDelete,
		Route:  "/api/subscribers/user-unsubcription",
		Query:  url.Values{"token": {token}, "email": {email}},
	}, nil)
}

func (s *Subscribers) List(ctx context.Context) ([]domain.Subscriber, error) {
	var out struct {
		Subscribers []domain.Subscriber `json:"subscribers"`
	}
	if err := s.c.Do(ctx, Request{Method: http.MethodGet, Route: "/api/subscribers/get-subscription-list"}, &out); err != nil {
		return nil, err
	}
	if out.Subscribers == nil {
		out.Subscribers = []domain.Subscriber{}
	}
	return out.Subscribers, nil
}
