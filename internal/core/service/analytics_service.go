package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/kickside/newsdesk/internal/core/domain"
	"github.com/kickside/newsdesk/internal/core/ports"
)

// Dashboard is the analytics view of one year.
type Dashboard struct {
	Year int `json:"year"`
	domain.JournalistAnalytics
	EngagementRate int          `json:"engagementRate"`
	Trend          domain.Trend `json:"trend"`
}

// AnalyticsService presents the backend's precomputed aggregates. The only
// arithmetic done here is engagement and month-over-month change.
type AnalyticsService struct {
	gateway ports.AnalyticsGateway
	now     func() time.Time
	log     zerolog.Logger
}

func NewAnalyticsService(gateway ports.AnalyticsGateway, log zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{gateway: gateway, now: time.Now, log: log}
}

func (s *AnalyticsService) resolveYear(year int) int {
	if year <= 0 {
		return s.now().Year()
	}
	return year
}

func (s *AnalyticsService) Dashboard(ctx context.Context, year int) (*Dashboard, error) {
	year = s.resolveYear(year)
	a, err := s.gateway.JournalistYear(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("analytics %d: %w", year, err)
	}
	if a.MonthlyAnalytics == nil {
		a.MonthlyAnalytics = []domain.MonthlyAnalytics{}
	}
	return &Dashboard{
		Year:                year,
		JournalistAnalytics: *a,
		EngagementRate:      domain.EngagementRate(a.TotalComments, a.TotalViews),
		Trend:               domain.MonthOverMonth(a.MonthlyAnalytics),
	}, nil
}

// MonthlyTop lists the most read articles of a month; zero month or year
// means the current one.
func (s *AnalyticsService) MonthlyTop(ctx context.Context, month, year int) ([]domain.TopArticle, error) {
	now := s.now()
	if month < 1 || month > 12 {
		month = int(now.Month())
	}
	year = s.resolveYear(year)
	top, err := s.gateway.MonthlyTop(ctx, month, year)
	if err != nil {
		return nil, fmt.Errorf("monthly top %d/%d: %w", month, year, err)
	}
	if top == nil {
		top = []domain.TopArticle{}
	}
	return top, nil
}

func (s *AnalyticsService) Journalist(ctx context.Context, userID string) (*domain.PerformanceMetrics, error) {
	m, err := s.gateway.JournalistMetrics(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("journalist %s analytics: %w", userID, err)
	}
	return m, nil
}

// ExportCSV writes the monthly series of year followed by a totals row.
func (s *AnalyticsService) ExportCSV(ctx context.Context, year int, w io.Writer) error {
	d, err := s.Dashboard(ctx, year)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	rows := [][]string{{"month", "articles", "views", "comments", "engagement_rate"}}
	for _, m := range d.MonthlyAnalytics {
		rows = append(rows, []string{
			m.Month,
			strconv.Itoa(m.Articles),
			strconv.Itoa(m.Views),
			strconv.Itoa(m.Comments),
			strconv.Itoa(domain.EngagementRate(m.Comments, m.Views)),
		})
	}
	rows = append(rows, []string{
		"total",
		strconv.Itoa(d.TotalArticles),
		strconv.Itoa(d.TotalViews),
		strconv.Itoa(d.TotalComments),
		strconv.Itoa(d.EngagementRate),
	})
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("export analytics: %w", err)
	}
	return nil
}
