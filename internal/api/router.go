package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/kickside/newsdesk/docs"
	"github.com/kickside/newsdesk/internal/api/handler"
	"github.com/kickside/newsdesk/internal/api/middleware"
	"github.com/kickside/newsdesk/internal/core/domain"
	"github.com/kickside/newsdesk/internal/core/ports"
	"github.com/kickside/newsdesk/internal/core/service"
	"github.com/kickside/newsdesk/internal/infrastructure/backend"
	redisstore "github.com/kickside/newsdesk/internal/infrastructure/db/redis"
	"github.com/kickside/newsdesk/internal/infrastructure/http/handlers"
	"github.com/kickside/newsdesk/internal/pkg/config"
)

// Dependencies are the connections and adapters the router wires services
// from. Mongo, AuditLog and Audit may be nil: auditing is then disabled.
type Dependencies struct {
	Config   *config.Config
	Log      zerolog.Logger
	Redis    *redis.Client
	Mongo    *mongo.Database
	Backend  *backend.Client
	Images   ports.ImageHost
	Audit    ports.AuditSink
	AuditLog ports.AuditRepository
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	cfg, log := d.Config, d.Log

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem: "newsdesk",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health" || c.Path() == "/health/ready"
		},
	}))

	// --- Stores ---
	sessions := redisstore.NewSessionStore(d.Redis, cfg.Session.IdleTTL)
	loader := service.NewCollectionLoader(redisstore.NewListCache(d.Redis), cfg.Lists.CacheTTL, log)
	drafts := redisstore.NewDraftStore(d.Redis)
	confirmations := redisstore.NewConfirmationStore(d.Redis, cfg.Session.ConfirmTTL)
	limiter := redisstore.NewRateLimiter(d.Redis, map[string]redisstore.Limit{
		service.BucketLogin:      {Max: cfg.RateLimit.LoginMax, Window: cfg.RateLimit.LoginWindow},
		service.BucketNewsletter: {Max: cfg.RateLimit.NewsletterMax, Window: cfg.RateLimit.NewsletterWindow},
		service.BucketContact:    {Max: cfg.RateLimit.ContactMax, Window: cfg.RateLimit.ContactWindow},
	})

	// --- Services ---
	authService := service.NewAuthService(backend.NewAuth(d.Backend), limiter, d.Audit, log)
	articleService := service.NewArticleService(service.ArticleServiceConfig{
		Articles:      backend.NewArticles(d.Backend),
		EditRequests:  backend.NewEditRequests(d.Backend),
		Loader:        loader,
		Drafts:        drafts,
		Confirmations: confirmations,
		Images:        d.Images,
		Audit:         d.Audit,
		MaxImageBytes: cfg.Uploads.MaxBytes,
	}, log)
	editRequestService := service.NewEditRequestService(backend.NewEditRequests(d.Backend), loader, d.Audit, log)
	userService := service.NewUserService(backend.NewUsers(d.Backend), loader, confirmations, d.Audit, log)
	inquiryService := service.NewInquiryService(backend.NewInquiries(d.Backend), loader, limiter, d.Audit, log)
	subscriberService := service.NewSubscriberService(backend.NewSubscribers(d.Backend), loader, limiter, log)
	analyticsService := service.NewAnalyticsService(backend.NewAnalytics(d.Backend), log)
	mediaService := service.NewMediaService(d.Images, cfg.Uploads.MaxBytes)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, log)
	publicHandler := handler.NewPublicHandler(articleService, subscriberService, inquiryService)
	articleHandler := handler.NewArticleHandler(articleService)
	editRequestHandler := handler.NewEditRequestHandler(editRequestService)
	userHandler := handler.NewUserHandler(userService)
	inquiryHandler := handler.NewInquiryHandler(inquiryService, subscriberService)
	settingsHandler := handler.NewSettingsHandler(authService, mediaService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService, log)

	// --- Guards ---
	sessionMW := middleware.Session(sessions, middleware.CookieConfig{
		Name:   cfg.Session.Cookie,
		Secure: cfg.Production(),
	}, log)
	authGuard := middleware.AuthGuard(authService, cfg.Session.RefreshInterval, log)
	reviewers := middleware.RoleGuard(domain.RoleEditor, domain.RoleAdmin)

	site := e.Group("", sessionMW)

	// --- Public site ---
	site.GET("/", publicHandler.Home)
	site.GET("/category/:category", publicHandler.Category)
	site.GET("/search", publicHandler.Search)
	site.GET("/article/:slug", publicHandler.Article)
	site.POST("/article/:slug/comments", publicHandler.Comment)
	site.GET("/author/:username", publicHandler.Author)
	site.POST("/newsletter", publicHandler.Subscribe)
	site.DELETE("/newsletter", publicHandler.Unsubscribe)
	site.POST("/contact", publicHandler.Contact)

	// --- Auth ---
	site.POST("/login", authHandler.Login)
	site.POST("/logout", authHandler.Logout)
	site.POST("/staff/forgot-password", authHandler.ForgotPassword)
	site.POST("/staff/reset-password", authHandler.ResetPassword)
	site.GET("/session/notices", authHandler.Notices)

	// --- Staff console (any staff role) ---
	staff := site.Group("/staff", authGuard)
	staff.GET("/dashboard", analyticsHandler.StaffDashboard)
	staff.GET("/articles", articleHandler.List)
	staff.GET("/articles/own", articleHandler.Own)
	staff.GET("/article/new", articleHandler.NewForm)
	staff.POST("/article/new", articleHandler.Create)
	staff.POST("/article/new/cover", articleHandler.AttachCover)
	staff.GET("/article/edit/:slug", articleHandler.EditForm)
	staff.PUT("/article/edit/:slug", articleHandler.SaveEdit)
	staff.POST("/article/edit/:slug/cover", articleHandler.AttachCover)
	staff.GET("/article/:id", articleHandler.Get)
	staff.PATCH("/article/:id/publish", articleHandler.TogglePublish, reviewers)
	staff.DELETE("/article/:id", articleHandler.Delete, middleware.RoleGuard(domain.RoleAdmin))
	staff.POST("/article/:id/request-edit", articleHandler.RequestEdit)
	staff.GET("/articles/edit-requests", editRequestHandler.List)
	staff.POST("/articles/edit-requests/:id/approve", editRequestHandler.Approve, reviewers)
	staff.GET("/drafts/new", articleHandler.Draft)
	staff.PUT("/drafts/new", articleHandler.SaveDraft)
	staff.GET("/drafts/edit/:slug", articleHandler.Draft)
	staff.PUT("/drafts/edit/:slug", articleHandler.SaveDraft)
	staff.GET("/settings", settingsHandler.Profile)
	staff.PUT("/settings", settingsHandler.UpdateProfile)
	staff.PUT("/settings/password", settingsHandler.ChangePassword)
	staff.POST("/settings/photo", settingsHandler.Photo)
	staff.POST("/uploads", settingsHandler.Upload)
	staff.GET("/analytics/top", analyticsHandler.MonthlyTop)
	staff.GET("/analytics/export", analyticsHandler.Export)

	// --- Admin ---
	admin := site.Group("/admin", authGuard, middleware.RoleGuard(domain.RoleAdmin))
	admin.GET("/dashboard", analyticsHandler.Dashboard)
	admin.GET("/articles/view", articleHandler.List)
	admin.GET("/articles/add", articleHandler.NewForm)
	admin.GET("/users/view", userHandler.List)
	admin.GET("/users", userHandler.List)
	admin.POST("/users", userHandler.Create)
	admin.POST("/users/add", userHandler.Create)
	admin.GET("/user/:id", userHandler.Get)
	admin.PUT("/user/:id", userHandler.Update)
	admin.POST("/user/:id/disable", userHandler.Disable)
	admin.POST("/user/:id/enable", userHandler.Enable)
	admin.GET("/inquiries", inquiryHandler.List)
	admin.GET("/inquiry/:id", inquiryHandler.Get)
	admin.PATCH("/inquiry/:id/solved", inquiryHandler.MarkSolved)
	admin.GET("/mailing-list", inquiryHandler.MailingList)
	admin.GET("/profile", settingsHandler.Profile)
	admin.GET("/journalist/:id/analytics", analyticsHandler.Journalist)
	if d.AuditLog != nil {
		admin.GET("/audit", handler.NewAuditHandler(service.NewAuditLog(d.AuditLog)).Recent)
	}

	// --- Editor ---
	editor := site.Group("/editor", authGuard, middleware.RoleGuard(domain.RoleEditor))
	editor.GET("/dashboard", analyticsHandler.Dashboard)
	editor.GET("/articles/view", articleHandler.List)
	editor.GET("/articles/add", articleHandler.NewForm)
	editor.GET("/profile", settingsHandler.Profile)

	// --- Journalist ---
	journalist := site.Group("/journalist", authGuard, middleware.RoleGuard(domain.RoleJournalist))
	journalist.GET("/dashboard", analyticsHandler.Dashboard)
	journalist.GET("/my-articles/view", articleHandler.Own)
	journalist.GET("/my-articles/add", articleHandler.NewForm)
	journalist.GET("/profile", settingsHandler.Profile)

	// --- Operational ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Mongo, d.Redis, d.Backend)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
