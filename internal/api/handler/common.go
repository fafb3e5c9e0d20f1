package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kickside/newsdesk/internal/api/middleware"
	"github.com/kickside/newsdesk/internal/core/domain"
	"github.com/kickside/newsdesk/internal/core/listing"
)

// ConfirmHeader carries the token of a destructive action's second call.
const ConfirmHeader = "X-Confirm-Token"

// state returns the request's session state. Outside the Session middleware
// it is a detached empty session that is never persisted.
func state(c echo.Context) *middleware.SessionState {
	if st := middleware.SessionFrom(c); st != nil {
		return st
	}
	st := &middleware.SessionState{Session: &domain.Session{}, New: true}
	c.Set(middleware.SessionKey, st)
	return st
}

func session(c echo.Context) *domain.Session { return state(c).Session }

func notify(c echo.Context, msg string) {
	session(c).Notify(domain.NoticeSuccess, msg)
}

// listParams reads ?q=&sort=&page=&page_size=&refresh= into a list query.
// page is 0-based; refresh forces a new fetch from the backend.
func listParams(c echo.Context) (listing.Query, bool, error) {
	var p listQuery
	err := echo.QueryParamsBinder(c).
		String("q", &p.Search).
		String("sort", &p.Sort).
		Int("page", &p.Page).
		Int("page_size", &p.PageSize).
		Bool("refresh", &p.Refresh).
		BindError()
	if err != nil {
		return listing.Query{}, false, echo.NewHTTPError(http.StatusBadRequest, "invalid list parameters")
	}
	if err := c.Validate(&p); err != nil {
		return listing.Query{}, false, err
	}
	return listing.Query{Search: p.Search, Sort: p.Sort, Page: p.Page, PageSize: p.PageSize}, p.Refresh, nil
}

// imageUpload opens the multipart file field and describes it for the
// upload services. The caller closes the returned file.
func imageUpload(c echo.Context, field string) (domain.ImageUpload, multipart.File, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return domain.ImageUpload{}, nil, echo.NewHTTPError(http.StatusBadRequest, "missing file field "+field)
	}
	f, err := fh.Open()
	if err != nil {
		return domain.ImageUpload{}, nil, echo.NewHTTPError(http.StatusBadRequest, "unreadable upload")
	}
	return domain.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Size:        fh.Size,
		Body:        f,
	}, f, nil
}

func bindBody(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return nil
}
