package backend

import (
	"context"
	"net/http"

	"github.com/kickside/newsdesk/internal/core/domain"
)

// Articles is the /api/articles resource.
type Articles struct {
	c *Client
}

func NewArticles(c *Client) *Articles { return &Articles{c: c} }

type articleList struct {
	Articles []domain.Article `json:"articles"`
}

type articleOne struct {
	Article *domain.Article `json:"article"`
}

func (a *Articles) list(ctx context.Context, req Request) ([]domain.Article, error) {
	var out articleList
	if err := a.c.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	if out.Articles == nil {
		out.Articles = []domain.Article{}
	}
	return out.Articles, nil
}

func (a *Articles) one(ctx context.Context, req Request) (*domain.Article, error) {
	var out articleOne
	if err := a.c.Do(ctx, req, &out); err != nil {
		return nil, err
	}
	if out.Article == nil {
		return nil, &Error{Status: http.StatusNotFound, Message: "article not found"}
	}
	return out.Article, nil
}

func (a *Articles) Published(ctx context.Context) ([]domain.Article, error) {
	return a.list(ctx, Request{Method: http.MethodGet, Route: "/api/articles/get-published-articles"})
}

func (a *Articles) ByCategory(ctx context.Context, category string) ([]domain.Article, error) {
	return a.list(ctx, Request{
		Method: http.MethodGet,
		Route:  "/api/articles/get-articles-by-category/:category",
		Params: map[string]string{"category": category},
	})
}

func (a *Articles) Popular(ctx context.Context) ([]domain.Article, error) {
	return a.list(ctx, Request{Method: http.MethodGet, Route: "/api/articles/get-popular-articles"})
}

func (a *Articles) BySlug(ctx context.Context, slug string) (*domain.ArticleDetail, error) {
	var out struct {
		Article  *domain.Article  `json:"article"`
		Comments []domain.Comment `json:"comments"`
	}
	err := a.c.Do(ctx, Request{
		Method: http.MethodGet,
		Route:  "/api/articles/get-single-article/:slug",
		Params: map[string]string{"slug": slug},
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.Article == nil {
		return nil, &Error{Status: http.StatusNotFound, Message: "article not found"}
	}
	if out.Comments == nil {
		out.Comments = []domain.Comment{}
	}
	return &domain.ArticleDetail{Article: *out.Article, Comments: out.Comments}, nil
}

func (a *Articles) AuthorProfile(ctx context.Context, username string) (*domain.AuthorProfile, error) {
	var out domain.AuthorProfile
	err := a.c.Do(ctx, Request{
		Method: http.MethodGet,
		Route:  "/api/articles/get-author-profile/:username",
		Params: map[string]string{"username": username},
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.Author.ID == "" && out.Author.Username == "" {
		return nil, &Error{Status: http.StatusNotFound, Message: "author not found"}
	}
	if out.Articles == nil {
		out.Articles = []domain.Article{}
	}
	return &out, nil
}

func (a *Articles) PostComment(ctx context.Context, in domain.CommentInput) error {
	return a.c.Do(ctx, Request{Method: http.MethodPost, Route: "/api/articles/post-comments", Body: in}, nil)
}

func (a *Articles) All(ctx context.Context) ([]domain.Article, error) {
	return a.list(ctx, Request{Method: http.MethodGet, Route: "/api/articles/get-all-articles"})
}

func (a *Articles) Own(ctx context.Context) ([]domain.Article, error) {
	return a.list(ctx, Request{Method: http.MethodGet, Route: "/api/articles/get-own-articles"})
}

func (a *Articles) StaffArticle(ctx context.Context, id string) (*domain.Article, error) {
	return a.one(ctx, Request{
		Method: http.MethodGet,
		Route:  "/api/articles/get-own-single-article/:id",
		Params: map[string]string{"id": id},
	})
}

func (a *Articles) Create(ctx context.Context, in domain.ArticleInput) (*domain.Article, error) {
	var out articleOne
	if err := a.c.Do(ctx, Request{Method: http.MethodPost, Route: "/api/articles/create-article", Body: in}, &out); err != nil {
		return nil, err
	}
	if out.Article == nil {
		// 201 may come back without the article.
		return &domain.Article{Title: in.Title, Category: in.Category, CoverImage: in.CoverImage, Content: in.Content}, nil
	}
	return out.Article, nil
}

func (a *Articles) Update(ctx context.Context, id string, in domain.ArticleInput) (*domain.Article, error) {
	var out articleOne
	err := a.c.Do(ctx, Request{
		Method: http.MethodPut,
		Route:  "/api/articles/journalist-edit-article/:id",
		Params: map[string]string{"id": id},
		Body:   in,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Article, nil
}

func (a *Articles) TogglePublish(ctx context.Context, id string) (*domain.Article, error) {
	var out articleOne
	err := a.c.Do(ctx, Request{
		Method: http.MethodPut,
		Route:  "/api/articles/toggle-article-publish/:id",
		Params: map[string]string{"id": id},
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.Article == nil {
		return &domain.Article{ID: id}, nil
	}
	return out.Article, nil
}

func (a *Articles) Delete(ctx context.Context, id string) error {
	return a.c.Do(ctx, Request{
		Method: http.MethodDelete,
		Route:  "/api/articles/delete-article/:id",
		Params: map[string]string{"id": id},
	}, nil)
}

// EditRequests is the edit-access part of /api/articles.
type EditRequests struct {
	c *Client
}

func NewEditRequests(c *Client) *EditRequests { return &EditRequests{c: c} }

func (e *EditRequests) List(ctx context.Context) ([]domain.EditRequest, error) {
	var out struct {
		EditRequests []domain.EditRequest `json:"editRequests"`
	}
	if err := e.c.Do(ctx, Request{Method: http.MethodGet, Route: "/api/articles/get-all-articles-edit-requests"}, &out); err != nil {
		return nil, err
	}
	if out.EditRequests == nil {
		out.EditRequests = []domain.EditRequest{}
	}
	return out.EditRequests, nil
}

func (e *EditRequests) Request(ctx context.Context, articleID string) error {
	return e.c.Do(ctx, Request{
		Method: http.MethodPost,
		Route:  "/api/articles/request-edit-access/:id",
		Params: map[string]string{"id": articleID},
	}, nil)
}

func (e *EditRequests) Approve(ctx context.Context, requestID string) error {
	return e.c.Do(ctx, Request{
		Method: http.MethodPut,
		Route:  "/api/articles/confirm-edit-request/:id",
		Params: map[string]string{"id": requestID},
	}, nil)
}
