package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type EditRequestHandler struct {
	requests EditRequests
}

func NewEditRequestHandler(requests EditRequests) *EditRequestHandler {
	return &EditRequestHandler{requests: requests}
}

// List handles GET /staff/articles/edit-requests. Only pending requests are
// listed.
//
// @Summary      List pending edit requests
// @Tags         edit-requests
// @Produce      json
// @Param        q     query  string  false  "Article title search"
// @Param        page  query  int     false  "0-based page"
// @Success      200  {object}  listing.Page[domain.EditRequest]
// @Router       /staff/articles/edit-requests [get]
func (h *EditRequestHandler) List(c echo.Context) error {
	q, refresh, err := listParams(c)
	if err != nil {
		return err
	}
	page, err := h.requests.List(c.Request().Context(), q, refresh)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Approve handles POST /staff/articles/edit-requests/:id/approve.
//
// @Summary      Approve an edit request
// @Tags         edit-requests
// @Produce      json
// @Param        id  path  string  true  "Edit request id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Router       /staff/articles/edit-requests/{id}/approve [post]
func (h *EditRequestHandler) Approve(c echo.Context) error {
	if err := h.requests.Approve(c.Request().Context(), session(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Edit access granted"})
}
