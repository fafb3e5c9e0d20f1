package ports

import (
	"context"

	"github.com/kickside/newsdesk/internal/core/domain"
)

// The gateways below are the news backend's REST resources. Every call runs
// with the bearer token carried by ctx, if any, and fails with an error that
// matches the domain sentinels (ErrUnauthorized, ErrForbidden, ErrNotFound,
// ErrNetwork) when the backend answers that way.

type ArticleGateway interface {
	Published(ctx context.Context) ([]domain.Article, error)
	ByCategory(ctx context.Context, category string) ([]domain.Article, error)
	Popular(ctx context.Context) ([]domain.Article, error)
	BySlug(ctx context.Context, slug string) (*domain.ArticleDetail, error)
	AuthorProfile(ctx context.Context, username string) (*domain.AuthorProfile, error)
	PostComment(ctx context.Context, in domain.CommentInput) error

	// Staff side.
	All(ctx context.Context) ([]domain.Article, error)
	Own(ctx context.Context) ([]domain.Article, error)
	StaffArticle(ctx context.Context, id string) (*domain.Article, error)
	Create(ctx context.Context, in domain.ArticleInput) (*domain.Article, error)
	Update(ctx context.Context, id string, in domain.ArticleInput) (*domain.Article, error)
	TogglePublish(ctx context.Context, id string) (*domain.Article, error)
	Delete(ctx context.Context, id string) error
}

type EditRequestGateway interface {
	List(ctx context.Context) ([]domain.EditRequest, error)
	Request(ctx context.Context, articleID string) error
	Approve(ctx context.Context, requestID string) error
}

type AuthGateway interface {
	// Login exchanges credentials for a bearer token and the staff profile.
	Login(ctx context.Context, email, password string) (string, *domain.UserProfile, error)
	Logout(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	Profile(ctx context.Context) (*domain.UserProfile, error)
	UpdateProfile(ctx context.Context, in domain.ProfileUpdate) (*domain.UserProfile, error)
	ChangePassword(ctx context.Context, in domain.PasswordChange) error
}

type UserGateway interface {
	List(ctx context.Context) ([]domain.UserProfile, error)
	Get(ctx context.Context, id string) (*domain.UserProfile, error)
	Create(ctx context.Context, in domain.NewUserInput) (*domain.UserProfile, error)
	Update(ctx context.Context, id string, in domain.UpdateUserInput) (*domain.UserProfile, error)
	Disable(ctx context.Context, id, reason string) error
	Enable(ctx context.Context, id string) error
}

type InquiryGateway interface {
	Create(ctx context.Context, in domain.InquiryInput) error
	List(ctx context.Context) ([]domain.Inquiry, error)
	Get(ctx context.Context, id string) (*domain.Inquiry, error)
	MarkSolved(ctx context.Context, id string) error
}

type SubscriberGateway interface {
	Subscribe(ctx context.Context, email string) error
	Unsubscribe(ctx context.Context, email, token string) error
	List(ctx context.Context) ([]domain.Subscriber, error)
}

type AnalyticsGateway interface {
	JournalistYear(ctx context.Context, year int) (*domain.JournalistAnalytics, error)
	MonthlyTop(ctx context.Context, month, year int) ([]domain.TopArticle, error)
	JournalistMetrics(ctx context.Context, userID string) (*domain.PerformanceMetrics, error)
}

// ImageHost uploads a picture and returns its hosted URL.
type ImageHost interface {
	Upload(ctx context.Context, img domain.ImageUpload) (*domain.HostedImage, error)
}
