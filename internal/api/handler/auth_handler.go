package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/kickside/newsdesk/internal/core/domain"
)

type AuthHandler struct {
	authService AuthService
	log         zerolog.Logger
}

func NewAuthHandler(authService AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// Login authenticates a staff member and starts a fresh session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), c.RealIP(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
		}
		return err
	}

	st := state(c)
	st.Rotate()
	st.Session.Token = res.Token
	st.Session.PendingEdits = nil
	st.Session.SetProfile(res.Profile, time.Now())

	return c.JSON(http.StatusOK, loginResponse{Redirect: res.Route, User: res.Profile})
}

// Logout ends the session. The local session is dropped even when the
// backend cannot be told.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  redirectResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	st := state(c)
	if err := h.authService.Logout(c.Request().Context(), st.Session); err != nil {
		h.log.Warn().Err(err).Msg("logout continued without backend")
	}
	st.Destroy()
	return c.JSON(http.StatusOK, redirectResponse{Redirect: domain.LoginRoute})
}

// ForgotPassword asks the backend to mail a reset link.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  messageResponse
// @Failure      422   {object}  errorResponse
// @Router       /staff/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := h.authService.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "If the address is registered, a reset link is on its way."})
}

// ResetPassword sets a new password from a mailed reset token.
//
// @Summary      Reset a password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Reset token and new password"
// @Success      200   {object}  redirectResponse
// @Failure      422   {object}  errorResponse
// @Router       /staff/reset-password [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := h.authService.ResetPassword(c.Request().Context(), req.Token, req.Password, req.ConfirmPassword); err != nil {
		return err
	}
	session(c).Notify(domain.NoticeSuccess, "Password reset. You can now log in.")
	return c.JSON(http.StatusOK, redirectResponse{Redirect: domain.LoginRoute})
}

// Notices drains the toasts queued for the visitor.
//
// @Summary      Drain pending notices
// @Tags         session
// @Produce      json
// @Success      200  {object}  noticesResponse
// @Router       /session/notices [get]
func (h *AuthHandler) Notices(c echo.Context) error {
	return c.JSON(http.StatusOK, noticesResponse{Notices: session(c).DrainNotices()})
}
