package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kickside/newsdesk/internal/core/domain"
	"github.com/kickside/newsdesk/internal/core/service"
)

// ArticleHandler serves the staff article console.
type ArticleHandler struct {
	articles StaffArticles
}

func NewArticleHandler(articles StaffArticles) *ArticleHandler {
	return &ArticleHandler{articles: articles}
}

// draftSlot names the draft of the form addressed by the route: the edit
// form when a slug is present, the create form otherwise.
func draftSlot(c echo.Context) string {
	if slug := c.Param("slug"); slug != "" {
		return service.EditDraft(slug)
	}
	return service.DraftNew
}

func (h *ArticleHandler) list(c echo.Context, own bool) error {
	q, refresh, err := listParams(c)
	if err != nil {
		return err
	}
	page, err := h.articles.List(c.Request().Context(), session(c), own, q, refresh)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// List handles GET /staff/articles. Journalists only ever see their own.
//
// @Summary      List articles
// @Tags         articles
// @Produce      json
// @Param        q          query  string  false  "Title search"
// @Param        sort       query  string  false  "date, status or category"
// @Param        page       query  int     false  "0-based page"
// @Param        refresh    query  bool    false  "Bypass the list cache"
// @Success      200  {object}  listing.Page[domain.Article]
// @Router       /staff/articles [get]
func (h *ArticleHandler) List(c echo.Context) error { return h.list(c, false) }

// Own handles GET /staff/articles/own.
//
// @Summary      List my articles
// @Tags         articles
// @Produce      json
// @Success      200  {object}  listing.Page[domain.Article]
// @Router       /staff/articles/own [get]
func (h *ArticleHandler) Own(c echo.Context) error { return h.list(c, true) }

// Get handles GET /staff/article/:id.
//
// @Summary      Get an article with the viewer's edit access
// @Tags         articles
// @Produce      json
// @Param        id  path  string  true  "Article id"
// @Success      200  {object}  service.StaffArticle
// @Failure      404  {object}  errorResponse
// @Router       /staff/article/{id} [get]
func (h *ArticleHandler) Get(c echo.Context) error {
	a, err := h.articles.Article(c.Request().Context(), session(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

// NewForm handles GET /staff/article/new: the create form, prefilled from
// the saved draft.
//
// @Summary      New article form
// @Tags         articles
// @Produce      json
// @Success      200  {object}  articleFormResponse
// @Router       /staff/article/new [get]
func (h *ArticleHandler) NewForm(c echo.Context) error {
	return c.JSON(http.StatusOK, articleFormResponse{
		Form:       h.articles.Draft(c.Request().Context(), session(c), service.DraftNew),
		Categories: domain.Categories,
	})
}

// Create handles POST /staff/article/new.
//
// @Summary      Create an article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        body  body  domain.ArticleInput  true  "Article"
// @Success      201  {object}  domain.Article
// @Failure      422  {object}  errorResponse
// @Router       /staff/article/new [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	var in domain.ArticleInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	a, err := h.articles.Create(c.Request().Context(), session(c), in)
	if err != nil {
		return err
	}
	notify(c, "Article created")
	return c.JSON(http.StatusCreated, a)
}

// EditForm handles GET /staff/article/edit/:slug.
//
// @Summary      Edit article form
// @Tags         articles
// @Produce      json
// @Param        slug  path  string  true  "Article slug"
// @Success      200  {object}  service.EditForm
// @Failure      404  {object}  errorResponse
// @Router       /staff/article/edit/{slug} [get]
func (h *ArticleHandler) EditForm(c echo.Context) error {
	form, err := h.articles.EditForm(c.Request().Context(), session(c), c.Param("slug"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, form)
}

// SaveEdit handles PUT /staff/article/edit/:slug.
//
// @Summary      Save an edited article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Param        slug  path  string               true  "Article slug"
// @Param        body  body  domain.ArticleInput  true  "Article"
// @Success      200  {object}  domain.Article
// @Failure      422  {object}  errorResponse
// @Failure      423  {object}  errorResponse
// @Router       /staff/article/edit/{slug} [put]
func (h *ArticleHandler) SaveEdit(c echo.Context) error {
	var in domain.ArticleInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	a, err := h.articles.SaveEdit(c.Request().Context(), session(c), c.Param("slug"), in)
	if err != nil {
		return err
	}
	notify(c, "Article updated")
	return c.JSON(http.StatusOK, a)
}

// TogglePublish handles PATCH /staff/article/:id/publish.
//
// @Summary      Publish or unpublish an article
// @Tags         articles
// @Produce      json
// @Param        id  path  string  true  "Article id"
// @Success      200  {object}  publishResponse
// @Failure      403  {object}  errorResponse
// @Router       /staff/article/{id}/publish [patch]
func (h *ArticleHandler) TogglePublish(c echo.Context) error {
	a, err := h.articles.TogglePublish(c.Request().Context(), session(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, publishResponse{ID: a.ID, Status: a.Status})
}

// Delete handles DELETE /staff/article/:id. The first call answers 409 with
// a confirm_token; repeat it with the token in the X-Confirm-Token header.
//
// @Summary      Delete an article
// @Tags         articles
// @Produce      json
// @Param        id               path    string  true   "Article id"
// @Param        X-Confirm-Token  header  string  false  "Token from the 409 answer"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /staff/article/{id} [delete]
func (h *ArticleHandler) Delete(c echo.Context) error {
	if err := h.articles.Delete(c.Request().Context(), session(c), c.Param("id"), c.Request().Header.Get(ConfirmHeader)); err != nil {
		return err
	}
	notify(c, "Article deleted")
	return c.NoContent(http.StatusNoContent)
}

// RequestEdit handles POST /staff/article/:id/request-edit.
//
// @Summary      Ask for edit access to an article
// @Tags         edit-requests
// @Produce      json
// @Param        id  path  string  true  "Article id"
// @Success      202  {object}  messageResponse
// @Router       /staff/article/{id}/request-edit [post]
func (h *ArticleHandler) RequestEdit(c echo.Context) error {
	if err := h.articles.RequestEdit(c.Request().Context(), session(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, messageResponse{Message: "Edit request sent"})
}

// Draft handles GET /staff/drafts/new and /staff/drafts/edit/:slug.
//
// @Summary      Load a saved form draft
// @Tags         drafts
// @Produce      json
// @Success      200  {object}  domain.ArticleInput
// @Router       /staff/drafts/new [get]
func (h *ArticleHandler) Draft(c echo.Context) error {
	return c.JSON(http.StatusOK, h.articles.Draft(c.Request().Context(), session(c), draftSlot(c)))
}

// SaveDraft handles PUT /staff/drafts/new and /staff/drafts/edit/:slug.
//
// @Summary      Save a form draft
// @Tags         drafts
// @Accept       json
// @Param        body  body  domain.ArticleInput  true  "Form values"
// @Success      204
// @Router       /staff/drafts/new [put]
func (h *ArticleHandler) SaveDraft(c echo.Context) error {
	var in domain.ArticleInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	h.articles.SaveDraft(c.Request().Context(), session(c), draftSlot(c), in)
	return c.NoContent(http.StatusNoContent)
}

// AttachCover handles POST /staff/article/new/cover and
// /staff/article/edit/:slug/cover. The draft keeps every other field.
//
// @Summary      Upload a cover picture into the form draft
// @Tags         drafts
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file  true  "Cover picture"
// @Success      200  {object}  coverResponse
// @Failure      422  {object}  coverResponse
// @Router       /staff/article/new/cover [post]
func (h *ArticleHandler) AttachCover(c echo.Context) error {
	img, f, err := imageUpload(c, "image")
	if err != nil {
		return err
	}
	defer f.Close()

	flow, err := h.articles.AttachCover(c.Request().Context(), session(c), draftSlot(c), img)
	if flow == nil || (err != nil && !errors.Is(err, domain.ErrInvalidImage)) {
		return err
	}
	res := coverResponse{Form: flow.Form, State: string(flow.State)}
	if flow.Errors != nil && !flow.Errors.Empty() {
		res.Errors = flow.Errors.Fields
	}
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, res)
	}
	return c.JSON(http.StatusOK, res)
}
