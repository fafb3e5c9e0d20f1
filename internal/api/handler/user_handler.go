package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kickside/newsdesk/internal/core/domain"
)

// UserHandler serves the Admin's staff account screens.
type UserHandler struct {
	users Users
}

func NewUserHandler(users Users) *UserHandler {
	return &UserHandler{users: users}
}

// List handles GET /admin/users.
//
// @Summary      List staff accounts
// @Tags         users
// @Produce      json
// @Param        q     query  string  false  "First name search"
// @Param        sort  query  string  false  "date, firstName, lastName or role"
// @Param        page  query  int     false  "0-based page"
// @Success      200  {object}  listing.Page[domain.UserProfile]
// @Router       /admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
	q, refresh, err := listParams(c)
	if err != nil {
		return err
	}
	page, err := h.users.List(c.Request().Context(), q, refresh)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Get handles GET /admin/user/:id.
//
// @Summary      Get a staff account
// @Tags         users
// @Produce      json
// @Param        id  path  string  true  "User id"
// @Success      200  {object}  domain.UserProfile
// @Failure      404  {object}  errorResponse
// @Router       /admin/user/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	u, err := h.users.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// Create handles POST /admin/users.
//
// @Summary      Create a staff account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  domain.NewUserInput  true  "Account"
// @Success      201  {object}  domain.UserProfile
// @Failure      422  {object}  errorResponse
// @Router       /admin/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var in domain.NewUserInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	u, err := h.users.Create(c.Request().Context(), session(c), in)
	if err != nil {
		return err
	}
	notify(c, "User created")
	return c.JSON(http.StatusCreated, u)
}

// Update handles PUT /admin/user/:id.
//
// @Summary      Update a staff account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "User id"
// @Param        body  body  domain.UpdateUserInput  true  "Changes"
// @Success      200  {object}  domain.UserProfile
// @Failure      422  {object}  errorResponse
// @Router       /admin/user/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	var in domain.UpdateUserInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	u, err := h.users.Update(c.Request().Context(), session(c), c.Param("id"), in)
	if err != nil {
		return err
	}
	notify(c, "User updated")
	return c.JSON(http.StatusOK, u)
}

// Disable handles POST /admin/user/:id/disable. Like article deletion it
// takes two calls, the second one carrying X-Confirm-Token.
//
// @Summary      Disable a staff account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id               path    string              true   "User id"
// @Param        X-Confirm-Token  header  string              false  "Token from the 409 answer"
// @Param        body             body    disableUserRequest  true   "Reason"
// @Success      200  {object}  messageResponse
// @Failure      409  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /admin/user/{id}/disable [post]
func (h *UserHandler) Disable(c echo.Context) error {
	var req disableUserRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := h.users.Disable(c.Request().Context(), session(c), c.Param("id"), req.Reason, c.Request().Header.Get(ConfirmHeader)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User disabled"})
}

// Enable handles POST /admin/user/:id/enable.
//
// @Summary      Re-enable a staff account
// @Tags         users
// @Produce      json
// @Param        id  path  string  true  "User id"
// @Success      200  {object}  messageResponse
// @Router       /admin/user/{id}/enable [post]
func (h *UserHandler) Enable(c echo.Context) error {
	if err := h.users.Enable(c.Request().Context(), session(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User enabled"})
}
