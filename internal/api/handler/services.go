package handler

import (
	"context"
	"io"

	"github.com/kickside/newsdesk/internal/core/authoring"
	"github.com/kickside/newsdesk/internal/core/domain"
	"github.com/kickside/newsdesk/internal/core/listing"
	"github.com/kickside/newsdesk/internal/core/service"
)

// The interfaces below are the slices of the core services each handler
// needs. The concrete services in internal/core/service satisfy them.

type AuthService interface {
	Login(ctx context.Context, clientIP, email, password string) (*service.LoginResult, error)
	Logout(ctx context.Context, sess *domain.Session) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password, confirm string) error
	UpdateProfile(ctx context.Context, sess *domain.Session, in domain.ProfileUpdate) (*domain.UserProfile, error)
	ChangePassword(ctx context.Context, sess *domain.Session, current, next, confirm string) error
}

type PublicArticles interface {
	Homepage(ctx context.Context) (*service.Homepage, error)
	CategoryPage(ctx context.Context, category string, q listing.Query) (listing.Page[domain.Article], error)
	Search(ctx context.Context, q listing.Query) (listing.Page[domain.Article], error)
	ArticlePage(ctx context.Context, slug string) (*service.ArticlePage, error)
	Author(ctx context.Context, username string) (*domain.AuthorProfile, error)
	Comment(ctx context.Context, slug string, in domain.CommentInput) error
}

type StaffArticles interface {
	List(ctx context.Context, sess *domain.Session, own bool, q listing.Query, refresh bool) (listing.Page[domain.Article], error)
	Article(ctx context.Context, sess *domain.Session, id string) (*service.StaffArticle, error)
	EditForm(ctx context.Context, sess *domain.Session, slug string) (*service.EditForm, error)
	Create(ctx context.Context, sess *domain.Session, in domain.ArticleInput) (*domain.Article, error)
	SaveEdit(ctx context.Context, sess *domain.Session, slug string, in domain.ArticleInput) (*domain.Article, error)
	TogglePublish(ctx context.Context, sess *domain.Session, id string) (*domain.Article, error)
	Delete(ctx context.Context, sess *domain.Session, id, confirmToken string) error
	RequestEdit(ctx context.Context, sess *domain.Session, id string) error
	AttachCover(ctx context.Context, sess *domain.Session, slot string, img domain.ImageUpload) (*authoring.Flow, error)
	Draft(ctx context.Context, sess *domain.Session, slot string) domain.ArticleInput
	SaveDraft(ctx context.Context, sess *domain.Session, slot string, in domain.ArticleInput)
}

type EditRequests interface {
	List(ctx context.Context, q listing.Query, refresh bool) (listing.Page[domain.EditRequest], error)
	Approve(ctx context.Context, sess *domain.Session, id string) error
}

type Users interface {
	List(ctx context.Context, q listing.Query, refresh bool) (listing.Page[domain.UserProfile], error)
	Get(ctx context.Context, id string) (*domain.UserProfile, error)
	Create(ctx context.Context, sess *domain.Session, in domain.NewUserInput) (*domain.UserProfile, error)
	Update(ctx context.Context, sess *domain.Session, id string, in domain.UpdateUserInput) (*domain.UserProfile, error)
	Disable(ctx context.Context, sess *domain.Session, id, reason, confirmToken string) error
	Enable(ctx context.Context, sess *domain.Session, id string) error
}

type Inquiries interface {
	Submit(ctx context.Context, clientIP string, in domain.InquiryInput) error
	List(ctx context.Context, q listing.Query, refresh bool) (listing.Page[domain.Inquiry], error)
	Get(ctx context.Context, id string) (*domain.Inquiry, error)
	MarkSolved(ctx context.Context, sess *domain.Session, id string) error
}

type Subscribers interface {
	Subscribe(ctx context.Context, clientIP, email string) error
	Unsubscribe(ctx context.Context, email, token string) error
	List(ctx context.Context, q listing.Query, refresh bool) (listing.Page[domain.Subscriber], error)
}

type Analytics interface {
	Dashboard(ctx context.Context, year int) (*service.Dashboard, error)
	MonthlyTop(ctx context.Context, month, year int) ([]domain.TopArticle, error)
	Journalist(ctx context.Context, userID string) (*domain.PerformanceMetrics, error)
	ExportCSV(ctx context.Context, year int, w io.Writer) error
}

type Media interface {
	Upload(ctx context.Context, img domain.ImageUpload) (*domain.HostedImage, error)
}

type AuditLog interface {
	Recent(ctx context.Context, actorID string, limit int) ([]domain.AuditEntry, error)
}
