package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kickside/newsdesk/internal/core/domain"
)

// AnalyticsHandler serves the role dashboards and the analytics views.
type AnalyticsHandler struct {
	analytics Analytics
	log       zerolog.Logger
}

func NewAnalyticsHandler(analytics Analytics, log zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics, log: log}
}

func analyticsParams(c echo.Context) (analyticsQuery, error) {
	var q analyticsQuery
	if err := echo.QueryParamsBinder(c).Int("year", &q.Year).Int("month", &q.Month).BindError(); err != nil {
		return q, echo.NewHTTPError(http.StatusBadRequest, "invalid year or month")
	}
	return q, c.Validate(&q)
}

// StaffDashboard handles GET /staff/dashboard, the landing page of a
// session whose role has no dashboard of its own.
//
// @Summary      Staff landing page
// @Tags         dashboards
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Router       /staff/dashboard [get]
func (h *AnalyticsHandler) StaffDashboard(c echo.Context) error {
	sess := session(c)
	if sess.Profile == nil {
		return domain.ErrUnauthorized
	}
	return c.JSON(http.StatusOK, dashboardResponse{User: *sess.Profile})
}

// Dashboard handles the role dashboards. A failing panel is reported as a
// warning and leaves the rest of the page usable.
//
// @Summary      Role dashboard
// @Tags         dashboards
// @Produce      json
// @Param        year   query  int  false  "Year, defaults to the current one"
// @Param        month  query  int  false  "Month of the top articles panel"
// @Success      200  {object}  dashboardResponse
// @Router       /admin/dashboard [get]
// @Router       /editor/dashboard [get]
// @Router       /journalist/dashboard [get]
func (h *AnalyticsHandler) Dashboard(c echo.Context) error {
	q, err := analyticsParams(c)
	if err != nil {
		return err
	}
	sess := session(c)
	if sess.Profile == nil {
		return domain.ErrUnauthorized
	}
	ctx := c.Request().Context()
	res := dashboardResponse{User: *sess.Profile}

	d, err := h.analytics.Dashboard(ctx, q.Year)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return err
		}
		h.log.Warn().Err(err).Str("user_id", sess.UserID()).Msg("dashboard analytics unavailable")
		res.Warnings = append(res.Warnings, "Analytics are unavailable right now.")
	}
	res.Analytics = d

	top, err := h.analytics.MonthlyTop(ctx, q.Month, q.Year)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return err
		}
		h.log.Warn().Err(err).Str("user_id", sess.UserID()).Msg("monthly top unavailable")
		res.Warnings = append(res.Warnings, "Top articles are unavailable right now.")
	}
	res.MonthlyTop = top

	return c.JSON(http.StatusOK, res)
}

// MonthlyTop handles GET /staff/analytics/top.
//
// @Summary      Most read articles of a month
// @Tags         analytics
// @Produce      json
// @Param        year   query  int  false  "Year"
// @Param        month  query  int  false  "Month (1-12)"
// @Success      200  {array}  domain.TopArticle
// @Router       /staff/analytics/top [get]
func (h *AnalyticsHandler) MonthlyTop(c echo.Context) error {
	q, err := analyticsParams(c)
	if err != nil {
		return err
	}
	top, err := h.analytics.MonthlyTop(c.Request().Context(), q.Month, q.Year)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, top)
}

// Export handles GET /staff/analytics/export as a CSV download.
//
// @Summary      Export yearly analytics
// @Tags         analytics
// @Produce      text/csv
// @Param        year  query  int  false  "Year"
// @Success      200  {string}  string  "CSV"
// @Router       /staff/analytics/export [get]
func (h *AnalyticsHandler) Export(c echo.Context) error {
	q, err := analyticsParams(c)
	if err != nil {
		return err
	}
	year := q.Year
	if year == 0 {
		year = time.Now().Year()
	}

	// Rendered fully before anything is written, so a failure still gets
	// a proper error response.
	var buf bytes.Buffer
	if err := h.analytics.ExportCSV(c.Request().Context(), year, &buf); err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="analytics-%d.csv"`, year))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// Journalist handles GET /admin/journalist/:id/analytics.
//
// @Summary      A journalist's performance
// @Tags         analytics
// @Produce      json
// @Param        id  path  string  true  "User id"
// @Success      200  {object}  domain.PerformanceMetrics
// @Failure      404  {object}  errorResponse
// @Router       /admin/journalist/{id}/analytics [get]
func (h *AnalyticsHandler) Journalist(c echo.Context) error {
	m, err := h.analytics.Journalist(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}
