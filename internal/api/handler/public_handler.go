package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kickside/newsdesk/internal/core/domain"
)

// PublicHandler serves the reader-facing news site.
type PublicHandler struct {
	articles    PublicArticles
	subscribers Subscribers
	inquiries   Inquiries
}

func NewPublicHandler(articles PublicArticles, subscribers Subscribers, inquiries Inquiries) *PublicHandler {
	return &PublicHandler{articles: articles, subscribers: subscribers, inquiries: inquiries}
}

// Home handles GET /.
//
// @Summary      Homepage
// @Tags         public
// @Produce      json
// @Success      200  {object}  service.Homepage
// @Failure      503  {object}  errorResponse
// @Router       / [get]
func (h *PublicHandler) Home(c echo.Context) error {
	page, err := h.articles.Homepage(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Category handles GET /category/:category.
//
// @Summary      Articles of a category
// @Tags         public
// @Produce      json
// @Param        category   path   string  true   "Category name"
// @Param        sort       query  string  false  "date or views"
// @Param        page       query  int     false  "0-based page"
// @Success      200  {object}  listing.Page[domain.Article]
// @Failure      404  {object}  errorResponse
// @Router       /category/{category} [get]
func (h *PublicHandler) Category(c echo.Context) error {
	q, _, err := listParams(c)
	if err != nil {
		return err
	}
	page, err := h.articles.CategoryPage(c.Request().Context(), c.Param("category"), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Search handles GET /search?q=.
//
// @Summary      Search published articles by title
// @Tags         public
// @Produce      json
// @Param        q     query  string  false  "Title search"
// @Param        sort  query  string  false  "date or views"
// @Param        page  query  int     false  "0-based page"
// @Success      200  {object}  listing.Page[domain.Article]
// @Router       /search [get]
func (h *PublicHandler) Search(c echo.Context) error {
	q, _, err := listParams(c)
	if err != nil {
		return err
	}
	page, err := h.articles.Search(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Article handles GET /article/:slug.
//
// @Summary      Article page
// @Tags         public
// @Produce      json
// @Param        slug  path  string  true  "Article slug"
// @Success      200  {object}  service.ArticlePage
// @Failure      404  {object}  errorResponse
// @Router       /article/{slug} [get]
func (h *PublicHandler) Article(c echo.Context) error {
	page, err := h.articles.ArticlePage(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Author handles GET /author/:username.
//
// @Summary      Author profile
// @Tags         public
// @Produce      json
// @Param        username  path  string  true  "Author username"
// @Success      200  {object}  domain.AuthorProfile
// @Failure      404  {object}  errorResponse
// @Router       /author/{username} [get]
func (h *PublicHandler) Author(c echo.Context) error {
	p, err := h.articles.Author(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Comment handles POST /article/:slug/comments.
//
// @Summary      Post a comment
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        slug  path  string               true  "Article slug"
// @Param        body  body  domain.CommentInput  true  "Comment"
// @Success      201  {object}  messageResponse
// @Failure      422  {object}  errorResponse
// @Router       /article/{slug}/comments [post]
func (h *PublicHandler) Comment(c echo.Context) error {
	var in domain.CommentInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	if err := h.articles.Comment(c.Request().Context(), c.Param("slug"), in); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: "Comment posted"})
}

// Subscribe handles POST /newsletter.
//
// @Summary      Subscribe to the newsletter
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        body  body  subscribeRequest  true  "Email"
// @Success      201  {object}  messageResponse
// @Failure      422  {object}  errorResponse
// @Failure      429  {object}  errorResponse
// @Router       /newsletter [post]
func (h *PublicHandler) Subscribe(c echo.Context) error {
	var req subscribeRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	if err := h.subscribers.Subscribe(c.Request().Context(), c.RealIP(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: "Subscribed"})
}

// Unsubscribe handles DELETE /newsletter?email=&token=.
//
// @Summary      Unsubscribe from the newsletter
// @Tags         public
// @Produce      json
// @Param        email  query  string  true  "Subscribed email"
// @Param        token  query  string  true  "Unsubscribe token from the mail"
// @Success      200  {object}  messageResponse
// @Failure      422  {object}  errorResponse
// @Router       /newsletter [delete]
func (h *PublicHandler) Unsubscribe(c echo.Context) error {
	if err := h.subscribers.Unsubscribe(c.Request().Context(), c.QueryParam("email"), c.QueryParam("token")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Unsubscribed"})
}

// Contact handles POST /contact.
//
// @Summary      Send an inquiry
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        body  body  domain.InquiryInput  true  "Inquiry"
// @Success      201  {object}  messageResponse
// @Failure      422  {object}  errorResponse
// @Failure      429  {object}  errorResponse
// @Router       /contact [post]
func (h *PublicHandler) Contact(c echo.Context) error {
	var in domain.InquiryInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	if err := h.inquiries.Submit(c.Request().Context(), c.RealIP(), in); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: "Thanks, we will get back to you."})
}
