package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kickside/newsdesk/internal/core/domain"
)

// SettingsHandler serves the signed-in staff member's own account and the
// shared image upload.
type SettingsHandler struct {
	authService AuthService
	media       Media
}

func NewSettingsHandler(authService AuthService, media Media) *SettingsHandler {
	return &SettingsHandler{authService: authService, media: media}
}

// Profile handles GET /staff/settings and the role profile pages.
//
// @Summary      My profile
// @Tags         settings
// @Produce      json
// @Success      200  {object}  domain.UserProfile
// @Router       /staff/settings [get]
func (h *SettingsHandler) Profile(c echo.Context) error {
	sess := session(c)
	if sess.Profile == nil {
		return domain.ErrUnauthorized
	}
	return c.JSON(http.StatusOK, sess.Profile)
}

// UpdateProfile handles PUT /staff/settings.
//
// @Summary      Update my profile
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body  domain.ProfileUpdate  true  "Profile"
// @Success      200  {object}  domain.UserProfile
// @Failure      422  {object}  errorResponse
// @Router       /staff/settings [put]
func (h *SettingsHandler) UpdateProfile(c echo.Context) error {
	var in domain.ProfileUpdate
	if err := bindBody(c, &in); err != nil {
		return err
	}
	p, err := h.authService.UpdateProfile(c.Request().Context(), session(c), in)
	if err != nil {
		return err
	}
	notify(c, "Profile updated")
	return c.JSON(http.StatusOK, p)
}

// ChangePassword handles PUT /staff/settings/password.
//
// @Summary      Change my password
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body  changePasswordRequest  true  "Current and new password"
// @Success      200  {object}  messageResponse
// @Failure      422  {object}  errorResponse
// @Router       /staff/settings/password [put]
func (h *SettingsHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.authService.ChangePassword(c.Request().Context(), session(c), req.CurrentPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Password changed"})
}

// Photo handles POST /staff/settings/photo: the picture is uploaded and
// becomes the profile photo, the other profile fields are kept.
//
// @Summary      Change my profile photo
// @Tags         settings
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file  true  "Picture"
// @Success      200  {object}  domain.UserProfile
// @Failure      422  {object}  errorResponse
// @Router       /staff/settings/photo [post]
func (h *SettingsHandler) Photo(c echo.Context) error {
	img, f, err := imageUpload(c, "image")
	if err != nil {
		return err
	}
	defer f.Close()

	hosted, err := h.media.Upload(c.Request().Context(), img)
	if err != nil {
		return err
	}

	sess := session(c)
	current := domain.UserProfile{}
	if sess.Profile != nil {
		current = *sess.Profile
	}
	p, err := h.authService.UpdateProfile(c.Request().Context(), sess, domain.ProfileUpdate{
		FirstName: current.FirstName,
		LastName:  current.LastName,
		Bio:       current.Bio,
		Phone:     current.Phone,
		Photo:     hosted.SecureURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Upload handles POST /staff/uploads, used by the editor for inline images.
//
// @Summary      Upload an image
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file  true  "Picture"
// @Success      201  {object}  domain.HostedImage
// @Failure      422  {object}  errorResponse
// @Failure      503  {object}  errorResponse
// @Router       /staff/uploads [post]
func (h *SettingsHandler) Upload(c echo.Context) error {
	img, f, err := imageUpload(c, "image")
	if err != nil {
		return err
	}
	defer f.Close()

	hosted, err := h.media.Upload(c.Request().Context(), img)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, hosted)
}
