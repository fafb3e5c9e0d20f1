// Package backend is the HTTP client of the news backend REST API and its
// per-resource adapters.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kickside/newsdesk/internal/core/domain"
	"github.com/kickside/newsdesk/internal/pkg/metrics"
)

const (
	defaultTimeout = 15 * time.Second

	// NetworkMessage is shown when the backend cannot be reached.
	NetworkMessage = "Unable to reach the server. Please try again."
	genericMessage = "Something went wrong. Please try again."
)

// Config captures the settings of the backend client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client sends requests to the news backend. The bearer token of the
// current visitor is read from the request context.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient builds a Client. A default timeout is applied when none is provided.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type tokenKey struct{}

// WithToken returns a context carrying the bearer token sent by Do.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom returns the bearer token carried by ctx, or "".
func TokenFrom(ctx context.Context) string {
	tok, _ := ctx.Value(tokenKey{}).(string)
	return tok
}

// Error is a failed backend call, normalised to a status and a message fit
// for display. It matches domain.ErrUnauthorized, domain.ErrForbidden and
// domain.ErrNotFound through errors.Is; transport failures unwrap to
// domain.ErrNetwork.
type Error struct {
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("backend %d: %s: %v", e.Status, e.Message, e.cause)
	}
	return fmt.Sprintf("backend %d: %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Is(target error) bool {
	switch target {
	case domain.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case domain.ErrForbidden:
		return e.Status == http.StatusForbidden
	case domain.ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

func networkError(err error) *Error {
	return &Error{
		Status:  http.StatusServiceUnavailable,
		Message: NetworkMessage,
		cause:   fmt.Errorf("%w: %v", domain.ErrNetwork, err),
	}
}

// Request describes one backend call. Route is the path template, with
// :name placeholders filled from Params; it doubles as the metrics label.
type Request struct {
	Method string
	Route  string
	Params map[string]string
	Query  url.Values
	Body   any
	// Root decodes the whole response body into out instead of its data
	// member.
	Root bool
}

func (r Request) path() string {
	p := r.Route
	for k, v := range r.Params {
		p = strings.ReplaceAll(p, ":"+k, url.PathEscape(v))
	}
	if len(r.Query) > 0 {
		p += "?" + r.Query.Encode()
	}
	return p
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Do performs req and decodes the data member of the response envelope into
// out, when out is not nil. The envelope status, when present, wins over the
// HTTP status.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	start := time.Now()
	status, err := c.do(ctx, req, out)
	metrics.BackendRequestsTotal.WithLabelValues(req.Route, strconv.Itoa(status)).Inc()
	metrics.BackendRequestDuration.WithLabelValues(req.Route).Observe(time.Since(start).Seconds())
	return err
}

func (c *Client) do(ctx context.Context, req Request, out any) (int, error) {
	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return 0, fmt.Errorf("%s %s: encode body: %w", req.Method, req.Route, err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+req.path(), body)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", req.Method, req.Route, err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if tok := TokenFrom(ctx); tok != "" {
		httpReq.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Warn().Err(err).Str("route", req.Route).Msg("backend unreachable")
		return http.StatusServiceUnavailable, networkError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return http.StatusServiceUnavailable, networkError(err)
	}

	status := resp.StatusCode
	var env envelope
	decodeErr := json.Unmarshal(raw, &env)
	if decodeErr == nil && env.Status != 0 {
		status = env.Status
	}

	if status >= http.StatusBadRequest {
		msg := env.Message
		if msg == "" {
			msg = genericMessage
		}
		c.log.Debug().Int("status", status).Str("route", req.Route).Str("message", msg).Msg("backend error")
		return status, &Error{Status: status, Message: msg}
	}
	if decodeErr != nil {
		return status, fmt.Errorf("%s %s: decode response: %w", req.Method, req.Route, decodeErr)
	}
	if out == nil {
		return status, nil
	}
	if req.Root {
		if err := json.Unmarshal(raw, out); err != nil {
			return status, fmt.Errorf("%s %s: decode response: %w", req.Method, req.Route, err)
		}
		return status, nil
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return status, nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return status, fmt.Errorf("%s %s: decode data: %w", req.Method, req.Route, err)
	}
	return status, nil
}

// Ping reports whether the backend answers HTTP at all.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend ping: %w", err)
	}
	_ = resp.Body.Close()
	return nil
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var be *Error
	if errors.As(err, &be) {
		return be.Status
	}
	return 0
}
