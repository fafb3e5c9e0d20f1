package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kickside/newsdesk/internal/core/domain"
	"github.com/kickside/newsdesk/internal/core/listing"
	"github.com/kickside/newsdesk/internal/core/ports"
)

const (
	headlineCount   = 5
	perCategory     = 4
	relatedArticles = 4
)

// Homepage is the public landing page.
type Homepage struct {
	Headlines  []domain.Article            `json:"headlines"`
	Latest     []domain.Article            `json:"latest"`
	Popular    []domain.Article            `json:"popular"`
	ByCategory map[string][]domain.Article `json:"by_category"`
}

// ArticlePage is a public article with its comments and related reads.
type ArticlePage struct {
	domain.ArticleDetail
	Related []domain.Article `json:"related"`
}

// ArticleServiceConfig groups the collaborators of ArticleService.
type ArticleServiceConfig struct {
	Articles      ports.ArticleGateway
	EditRequests  ports.EditRequestGateway
	Loader        *CollectionLoader
	Drafts        ports.DraftStore
	Confirmations ports.ConfirmationStore
	Images        ports.ImageHost
	Audit         ports.AuditSink
	MaxImageBytes int64
}

// ArticleService implements the public site reads and the staff article
// console: listing, authoring, publishing, deletion and edit access.
type ArticleService struct {
	articles ports.ArticleGateway
	edits    ports.EditRequestGateway
	loader   *CollectionLoader
	drafts   ports.DraftStore
	confirm  ports.ConfirmationStore
	images   ports.ImageHost
	audit    ports.AuditSink
	maxImage int64
	now      func() time.Time
	log      zerolog.Logger
}

func NewArticleService(cfg ArticleServiceConfig, log zerolog.Logger) *ArticleService {
	return &ArticleService{
		articles: cfg.Articles,
		edits:    cfg.EditRequests,
		loader:   cfg.Loader,
		drafts:   cfg.Drafts,
		confirm:  cfg.Confirmations,
		images:   cfg.Images,
		audit:    cfg.Audit,
		maxImage: cfg.MaxImageBytes,
		now:      time.Now,
		log:      log,
	}
}

func (s *ArticleService) published(ctx context.Context) ([]domain.Article, error) {
	items, err := LoadCollection(ctx, s.loader, ScopePublic, listing.ScreenPublished, false, s.articles.Published)
	if err != nil {
		return nil, fmt.Errorf("published articles: %w", err)
	}
	return onlyPublished(items), nil
}

func onlyPublished(items []domain.Article) []domain.Article {
	out := make([]domain.Article, 0, len(items))
	for _, a := range items {
		if a.Published() {
			out = append(out, a)
		}
	}
	return out
}

func head(items []domain.Article, n int) []domain.Article {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// Homepage assembles the landing page. A failing popular feed only leaves
// its section empty.
func (s *ArticleService) Homepage(ctx context.Context) (*Homepage, error) {
	pub, err := s.published(ctx)
	if err != nil {
		return nil, err
	}
	latest := listing.Sort(pub, listing.Published.Sorts[listing.SortDate])

	popular, err := s.articles.Popular(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("popular articles unavailable")
		popular = []domain.Article{}
	}

	byCategory := make(map[string][]domain.Article, len(domain.Categories))
	for _, cat := range domain.Categories {
		var inCat []domain.Article
		for _, a := range latest {
			if strings.EqualFold(a.Category, cat) {
				inCat = append(inCat, a)
				if len(inCat) == perCategory {
					break
				}
			}
		}
		if len(inCat) > 0 {
			byCategory[cat] = inCat
		}
	}

	return &Homepage{
		Headlines:  head(latest, headlineCount),
		Latest:     latest,
		Popular:    popular,
		ByCategory: byCategory,
	}, nil
}

// CategoryPage lists the published articles of one category.
func (s *ArticleService) CategoryPage(ctx context.Context, category string, q listing.Query) (listing.Page[domain.Article], error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return listing.Page[domain.Article]{}, fmt.Errorf("category: %w", domain.ErrNotFound)
	}
	screen := listing.Screen("category:" + strings.ToLower(category))
	items, err := LoadCollection(ctx, s.loader, ScopePublic, screen, false, func(ctx context.Context) ([]domain.Article, error) {
		return s.articles.ByCategory(ctx, category)
	})
	if err != nil {
		return listing.Page[domain.Article]{}, fmt.Errorf("category %q: %w", category, err)
	}
	return listing.Published.Apply(onlyPublished(items), q), nil
}

// Search filters the published articles by title.
func (s *ArticleService) Search(ctx context.Context, q listing.Query) (listing.Page[domain.Article], error) {
	pub, err := s.published(ctx)
	if err != nil {
		return listing.Page[domain.Article]{}, err
	}
	return listing.Published.Apply(pub, q), nil
}

// ArticlePage loads an article by slug with up to four related articles.
func (s *ArticleService) ArticlePage(ctx context.Context, slug string) (*ArticlePage, error) {
	detail, err := s.articles.BySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("article %q: %w", slug, err)
	}
	if detail.Comments == nil {
		detail.Comments = []domain.Comment{}
	}

	related := []domain.Article{}
	if pub, err := s.published(ctx); err != nil {
		s.log.Warn().Err(err).Str("slug", slug).Msg("related articles unavailable")
	} else {
		related = domain.Related(detail.Article, listing.Sort(pub, listing.Published.Sorts[listing.SortDate]), relatedArticles)
	}
	return &ArticlePage{ArticleDetail: *detail, Related: related}, nil
}

func (s *ArticleService) Author(ctx context.Context, username string) (*domain.AuthorProfile, error) {
	p, err := s.articles.AuthorProfile(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("author %q: %w", username, err)
	}
	p.Articles = onlyPublished(p.Articles)
	return p, nil
}

// Comment posts a reader comment under the article with slug.
func (s *ArticleService) Comment(ctx context.Context, slug string, in domain.CommentInput) error {
	ve := domain.NewValidationError()
	if blank(in.Names) {
		ve.Add("names", "Name is required")
	}
	if !validEmail(in.Email) {
		ve.Add("email", "A valid email is required")
	}
	if blank(in.Comment) {
		ve.Add("comment", "Comment is required")
	}
	if err := ve.OrNil(); err != nil {
		return err
	}

	if in.ArticleID == "" {
		detail, err := s.articles.BySlug(ctx, slug)
		if err != nil {
			return fmt.Errorf("comment on %q: %w", slug, err)
		}
		in.ArticleID = detail.Article.ID
	}
	if err := s.articles.PostComment(ctx, in); err != nil {
		return fmt.Errorf("comment on %q: %w", slug, err)
	}
	return nil
}
