package handler

import (
	"time"

	"github.com/kickside/newsdesk/internal/core/domain"
	"github.com/kickside/newsdesk/internal/core/service"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error        string            `json:"error"`
	Fields       map[string]string `json:"fields,omitempty"`
	ConfirmToken string            `json:"confirm_token,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

type listQuery struct {
	Search   string `query:"q"`
	Sort     string `query:"sort"`
	Page     int    `query:"page"      validate:"gte=0"`
	PageSize int    `query:"page_size" validate:"gte=0,lte=100"`
	Refresh  bool   `query:"refresh"`
}

type loginRequest struct {
	Email    string `json:"email"    form:"email"`
	Password string `json:"password" form:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" form:"email"`
}

type resetPasswordRequest struct {
	Token           string `json:"token"           form:"token"`
	Password        string `json:"password"        form:"password"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"password"        validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type subscribeRequest struct {
	Email string `json:"email" form:"email"`
}

type disableUserRequest struct {
	Reason string `json:"disableReason"`
}

type analyticsQuery struct {
	Year  int `query:"year"  validate:"omitempty,gte=2000,lte=2100"`
	Month int `query:"month" validate:"omitempty,gte=1,lte=12"`
}

type auditQuery struct {
	Actor string `query:"actor"`
	Limit int    `query:"limit" validate:"gte=0,lte=500"`
}

// --- Response types ---

type loginResponse struct {
	Redirect string             `json:"redirect"`
	User     domain.UserProfile `json:"user"`
}

type redirectResponse struct {
	Redirect string `json:"redirect"`
}

type articleFormResponse struct {
	Form       domain.ArticleInput `json:"form"`
	Categories []string            `json:"categories"`
}

type coverResponse struct {
	Form   domain.ArticleInput `json:"form"`
	State  string              `json:"state"`
	Errors map[string]string   `json:"errors,omitempty"`
}

type publishResponse struct {
	ID     string               `json:"id"`
	Status domain.ArticleStatus `json:"status"`
}

type dashboardResponse struct {
	User       domain.UserProfile  `json:"user"`
	Analytics  *service.Dashboard  `json:"analytics,omitempty"`
	MonthlyTop []domain.TopArticle `json:"monthly_top,omitempty"`
	Warnings   []string            `json:"warnings,omitempty"`
}

type noticesResponse struct {
	Notices []domain.Notice `json:"notices"`
}

type auditResponse struct {
	Entries []domain.AuditEntry `json:"entries"`
	At      time.Time           `json:"at"`
}
