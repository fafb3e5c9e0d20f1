package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/kickside/newsdesk/internal/core/authoring"
	"github.com/kickside/newsdesk/internal/core/domain"
	"github.com/kickside/newsdesk/internal/core/listing"
	"github.com/kickside/newsdesk/internal/pkg/metrics"
)

// DraftNew is the draft slot of the create form.
const DraftNew = "new"

// EditDraft is the draft slot of the edit form of slug.
func EditDraft(slug string) string { return "edit:" + slug }

// StaffArticle is an article as seen from the console, with the viewer's
// edit access.
type StaffArticle struct {
	Article domain.Article    `json:"article"`
	Access  domain.EditAccess `json:"edit_access"`
}

// EditForm is the edit screen: the stored article, the viewer's access and
// the form values, taken from a saved draft when there is one.
type EditForm struct {
	StaffArticle
	Form     domain.ArticleInput `json:"form"`
	HasDraft bool                `json:"has_draft"`
}

func viewer(sess *domain.Session) domain.UserProfile {
	if sess == nil || sess.Profile == nil {
		return domain.UserProfile{}
	}
	return *sess.Profile
}

func (s *ArticleService) access(sess *domain.Session, a domain.Article) domain.EditAccess {
	return domain.ResolveEditAccess(a, viewer(sess), sess.EditRequested(a.ID))
}

// staffCollection is every article for Editors and Admins and the viewer's
// own articles for Journalists.
func (s *ArticleService) staffCollection(ctx context.Context, sess *domain.Session, own, refresh bool) ([]domain.Article, error) {
	if own || sess.Role() == domain.RoleJournalist {
		return LoadCollection(ctx, s.loader, sess.UserID(), listing.ScreenOwnArticles, refresh, s.articles.Own)
	}
	return LoadCollection(ctx, s.loader, sess.UserID(), listing.ScreenArticles, refresh, s.articles.All)
}

// List pages through the console's article table.
func (s *ArticleService) List(ctx context.Context, sess *domain.Session, own bool, q listing.Query, refresh bool) (listing.Page[domain.Article], error) {
	items, err := s.staffCollection(ctx, sess, own, refresh)
	if err != nil {
		return listing.Page[domain.Article]{}, fmt.Errorf("list articles: %w", err)
	}
	return listing.Articles.Apply(items, q), nil
}

func (s *ArticleService) Article(ctx context.Context, sess *domain.Session, id string) (*StaffArticle, error) {
	a, err := s.articles.StaffArticle(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("article %s: %w", id, err)
	}
	return &StaffArticle{Article: *a, Access: s.access(sess, *a)}, nil
}

// findBySlug looks the article up in the viewer's cached collection before
// asking the backend.
func (s *ArticleService) findBySlug(ctx context.Context, sess *domain.Session, slug string) (*domain.Article, error) {
	items, err := s.staffCollection(ctx, sess, false, false)
	if err == nil {
		for _, a := range items {
			if a.Slug == slug {
				return &a, nil
			}
		}
	} else if errors.Is(err, domain.ErrUnauthorized) {
		return nil, err
	}
	detail, err := s.articles.BySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return &detail.Article, nil
}

func (s *ArticleService) EditForm(ctx context.Context, sess *domain.Session, slug string) (*EditForm, error) {
	a, err := s.findBySlug(ctx, sess, slug)
	if err != nil {
		return nil, fmt.Errorf("edit %q: %w", slug, err)
	}
	form := &EditForm{
		StaffArticle: StaffArticle{Article: *a, Access: s.access(sess, *a)},
		Form: domain.ArticleInput{
			Title:      a.Title,
			Category:   a.Category,
			CoverImage: a.CoverImage,
			Content:    a.Content,
		},
	}
	if draft := s.loadDraft(ctx, sess, EditDraft(slug)); draft != nil {
		form.Form = *draft
		form.HasDraft = true
	}
	return form, nil
}

// Create submits the new-article form. Input survives a failed submission
// as the viewer's draft.
func (s *ArticleService) Create(ctx context.Context, sess *domain.Session, in domain.ArticleInput) (*domain.Article, error) {
	flow := authoring.New(authoring.ModeCreate, in)
	saved, err := flow.Submit(ctx, s.articles.Create)
	if err != nil {
		s.submitFailed(ctx, sess, authoring.ModeCreate, DraftNew, in, err)
		return nil, fmt.Errorf("create article: %w", err)
	}
	metrics.ArticlesSubmittedTotal.WithLabelValues(string(authoring.ModeCreate), "ok").Inc()

	s.discardDraft(ctx, sess, DraftNew)
	s.invalidate(ctx, sess)
	record(s.audit, sess, domain.AuditArticleCreate, saved.ID, saved.Title)
	return saved, nil
}

// SaveEdit submits the edit form of slug. A Journalist without edit access
// is turned away before anything is sent to the backend.
func (s *ArticleService) SaveEdit(ctx context.Context, sess *domain.Session, slug string, in domain.ArticleInput) (*domain.Article, error) {
	if ve := authoring.Validate(in); !ve.Empty() {
		metrics.ArticlesSubmittedTotal.WithLabelValues(string(authoring.ModeEdit), "invalid").Inc()
		return nil, ve
	}

	a, err := s.findBySlug(ctx, sess, slug)
	if err != nil {
		return nil, fmt.Errorf("edit %q: %w", slug, err)
	}
	if access := s.access(sess, *a); !access.CanSave() {
		metrics.ArticlesSubmittedTotal.WithLabelValues(string(authoring.ModeEdit), "locked").Inc()
		return nil, fmt.Errorf("edit %q (%s): %w", slug, access, domain.ErrEditLocked)
	}

	flow := authoring.New(authoring.ModeEdit, in)
	saved, err := flow.Submit(ctx, func(ctx context.Context, in domain.ArticleInput) (*domain.Article, error) {
		return s.articles.Update(ctx, a.ID, in)
	})
	if err != nil {
		s.submitFailed(ctx, sess, authoring.ModeEdit, EditDraft(slug), in, err)
		return nil, fmt.Errorf("edit %q: %w", slug, err)
	}
	metrics.ArticlesSubmittedTotal.WithLabelValues(string(authoring.ModeEdit), "ok").Inc()

	s.discardDraft(ctx, sess, EditDraft(slug))
	s.invalidate(ctx, sess)
	record(s.audit, sess, domain.AuditArticleUpdate, a.ID, a.Title)
	if saved == nil {
		saved = a
	}
	return saved, nil
}

func (s *ArticleService) submitFailed(ctx context.Context, sess *domain.Session, mode authoring.Mode, slot string, in domain.ArticleInput, err error) {
	if errors.Is(err, domain.ErrValidation) {
		metrics.ArticlesSubmittedTotal.WithLabelValues(string(mode), "invalid").Inc()
		return
	}
	metrics.ArticlesSubmittedTotal.WithLabelValues(string(mode), "error").Inc()
	s.SaveDraft(ctx, sess, slot, in)
}

// TogglePublish flips a published article to unpublished and back.
// Reserved to Editors and Admins.
func (s *ArticleService) TogglePublish(ctx context.Context, sess *domain.Session, id string) (*domain.Article, error) {
	if !sess.Role().CanReviewEdits() {
		return nil, fmt.Errorf("toggle publish: %w", domain.ErrForbidden)
	}
	a, err := s.articles.TogglePublish(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("toggle publish %s: %w", id, err)
	}
	s.invalidate(ctx, sess)
	record(s.audit, sess, domain.AuditArticlePublish, id, string(a.Status))
	return a, nil
}

// Delete removes an article. Without a token it only issues one and fails
// with *domain.ConfirmationRequiredError; the token must come back with the
// second call. Reserved to Admins.
func (s *ArticleService) Delete(ctx context.Context, sess *domain.Session, id, confirmToken string) error {
	if sess.Role() != domain.RoleAdmin {
		return fmt.Errorf("delete article: %w", domain.ErrForbidden)
	}
	if err := confirmed(ctx, s.confirm, sess, "article.delete", id, confirmToken); err != nil {
		return err
	}
	if err := s.articles.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete article %s: %w", id, err)
	}
	s.invalidate(ctx, sess)
	record(s.audit, sess, domain.AuditArticleDelete, id, "")
	s.log.Info().Str("article_id", id).Str("user_id", sess.UserID()).Msg("article deleted")
	return nil
}

// RequestEdit files an edit-access request for an article the Journalist
// cannot edit yet.
func (s *ArticleService) RequestEdit(ctx context.Context, sess *domain.Session, id string) error {
	a, err := s.articles.StaffArticle(ctx, id)
	if err != nil {
		return fmt.Errorf("request edit %s: %w", id, err)
	}
	if !s.access(sess, *a).CanRequest() {
		return nil
	}
	if err := s.edits.Request(ctx, id); err != nil {
		return fmt.Errorf("request edit %s: %w", id, err)
	}
	sess.MarkEditRequested(id)
	s.loader.Invalidate(ctx, ScopeReviewers, listing.ScreenEditRequests)
	record(s.audit, sess, domain.AuditEditRequest, id, a.Title)
	return nil
}

// AttachCover uploads a cover picture into the draft of slot.
func (s *ArticleService) AttachCover(ctx context.Context, sess *domain.Session, slot string, img domain.ImageUpload) (*authoring.Flow, error) {
	form := domain.ArticleInput{}
	if draft := s.loadDraft(ctx, sess, slot); draft != nil {
		form = *draft
	}
	flow := authoring.New(authoring.ModeCreate, form)
	flow.MaxImageBytes = s.maxImage
	if err := flow.AttachCover(ctx, s.images, img); err != nil {
		return flow, err
	}
	s.SaveDraft(ctx, sess, slot, flow.Form)
	return flow, nil
}

// Draft returns the saved form of slot, or an empty form.
func (s *ArticleService) Draft(ctx context.Context, sess *domain.Session, slot string) domain.ArticleInput {
	if d := s.loadDraft(ctx, sess, slot); d != nil {
		return *d
	}
	return domain.ArticleInput{}
}

func (s *ArticleService) SaveDraft(ctx context.Context, sess *domain.Session, slot string, in domain.ArticleInput) {
	if s.drafts == nil {
		return
	}
	if err := s.drafts.Save(ctx, sess.UserID(), slot, in); err != nil {
		s.log.Warn().Err(err).Str("slot", slot).Msg("draft save failed")
	}
}

func (s *ArticleService) loadDraft(ctx context.Context, sess *domain.Session, slot string) *domain.ArticleInput {
	if s.drafts == nil {
		return nil
	}
	d, err := s.drafts.Load(ctx, sess.UserID(), slot)
	if err != nil {
		s.log.Warn().Err(err).Str("slot", slot).Msg("draft load failed")
		return nil
	}
	return d
}

func (s *ArticleService) discardDraft(ctx context.Context, sess *domain.Session, slot string) {
	if s.drafts == nil {
		return
	}
	if err := s.drafts.Discard(ctx, sess.UserID(), slot); err != nil {
		s.log.Warn().Err(err).Str("slot", slot).Msg("draft discard failed")
	}
}

func (s *ArticleService) invalidate(ctx context.Context, sess *domain.Session) {
	s.loader.Invalidate(ctx, sess.UserID(), listing.ScreenArticles, listing.ScreenOwnArticles)
	s.loader.Invalidate(ctx, ScopePublic, listing.ScreenPublished)
}
