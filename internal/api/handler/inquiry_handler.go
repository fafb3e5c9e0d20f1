package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// InquiryHandler serves the Admin's contact inbox and mailing list.
type InquiryHandler struct {
	inquiries   Inquiries
	subscribers Subscribers
}

func NewInquiryHandler(inquiries Inquiries, subscribers Subscribers) *InquiryHandler {
	return &InquiryHandler{inquiries: inquiries, subscribers: subscribers}
}

// List handles GET /admin/inquiries.
//
// @Summary      List inquiries
// @Tags         inquiries
// @Produce      json
// @Param        q     query  string  false  "First name search"
// @Param        sort  query  string  false  "date, firstName, lastName or email"
// @Success      200  {object}  listing.Page[domain.Inquiry]
// @Router       /admin/inquiries [get]
func (h *InquiryHandler) List(c echo.Context) error {
	q, refresh, err := listParams(c)
	if err != nil {
		return err
	}
	page, err := h.inquiries.List(c.Request().Context(), q, refresh)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Get handles GET /admin/inquiry/:id.
//
// @Summary      Get an inquiry
// @Tags         inquiries
// @Produce      json
// @Param        id  path  string  true  "Inquiry id"
// @Success      200  {object}  domain.Inquiry
// @Failure      404  {object}  errorResponse
// @Router       /admin/inquiry/{id} [get]
func (h *InquiryHandler) Get(c echo.Context) error {
	in, err := h.inquiries.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, in)
}

// MarkSolved handles PATCH /admin/inquiry/:id/solved.
//
// @Summary      Mark an inquiry solved
// @Tags         inquiries
// @Produce      json
// @Param        id  path  string  true  "Inquiry id"
// @Success      200  {object}  messageResponse
// @Router       /admin/inquiry/{id}/solved [patch]
func (h *InquiryHandler) MarkSolved(c echo.Context) error {
	if err := h.inquiries.MarkSolved(c.Request().Context(), session(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Inquiry marked as solved"})
}

// MailingList handles GET /admin/mailing-list.
//
// @Summary      List newsletter subscribers
// @Tags         inquiries
// @Produce      json
// @Param        q     query  string  false  "Email search"
// @Param        sort  query  string  false  "date or email"
// @Success      200  {object}  listing.Page[domain.Subscriber]
// @Router       /admin/mailing-list [get]
func (h *InquiryHandler) MailingList(c echo.Context) error {
	q, refresh, err := listParams(c)
	if err != nil {
		return err
	}
	page, err := h.subscribers.List(c.Request().Context(), q, refresh)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}
