package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/kickside/newsdesk/internal/core/domain"
)

// Analytics reads the precomputed aggregates of /api/articles.
type Analytics struct {
	c *Client
}

func NewAnalytics(c *Client) *Analytics { return &Analytics{c: c} }

func (a *Analytics) JournalistYear(ctx context.Context, year int) (*domain.JournalistAnalytics, error) {
	var out domain.JournalistAnalytics
	err := a.c.Do(ctx, Request{
		Method: http.MethodGet,
		Route:  "/api/articles/get-journalists-analytics/:year",
		Params: map[string]string{"year": strconv.Itoa(year)},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *Analytics) MonthlyTop(ctx context.Context, month, year int) ([]domain.TopArticle, error) {
	var out struct {
		MonthsTopRead []domain.TopArticle `json:"monthsTopRead"`
	}
	err := a.c.Do(ctx, Request{
		Method: http.MethodGet,
		Route:  "/api/articles/journalist-get-monthly-top",
		Query:  url.Values{"month": {strconv.Itoa(month)}, "year": {strconv.Itoa(year)}},
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.MonthsTopRead, nil
}

func (a *Analytics) JournalistMetrics(ctx context.Context, userID string) (*domain.PerformanceMetrics, error) {
	var out domain.PerformanceMetrics
	err := a.c.Do(ctx, Request{
		Method: http.MethodGet,
		Route:  "/api/articles/journalist/:userId/analytics",
		Params: map[string]string{"userId": userID},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
