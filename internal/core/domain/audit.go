package domain

import "time"

// AuditAction names a staff mutation recorded in the console audit trail.
type AuditAction string

const (
	AuditLogin           AuditAction = "login"
	AuditLogout          AuditAction = "logout"
	AuditArticleCreate   AuditAction = "article.create"
	AuditArticleUpdate   AuditAction = "article.update"
	AuditArticleDelete   AuditAction = "article.delete"
	AuditArticlePublish  AuditAction = "article.toggle_publish"
	AuditEditRequest     AuditAction = "edit.request"
	AuditEditApprove     AuditAction = "edit.approve"
	AuditUserCreate      AuditAction = "user.create"
	AuditUserUpdate      AuditAction = "user.update"
	AuditUserDisable     AuditAction = "user.disable"
	AuditUserEnable      AuditAction = "user.enable"
	AuditInquirySolved   AuditAction = "inquiry.solved"
	AuditProfileUpdate   AuditAction = "profile.update"
	AuditPasswordChanged AuditAction = "profile.password"
)

// AuditEntry is one recorded staff action.
type AuditEntry struct {
	ActorID string      `json:"actorId"`
	Role    Role        `json:"role"`
	Action  AuditAction `json:"action"`
	Target  string      `json:"target,omitempty"`
	Detail  string      `json:"detail,omitempty"`
	At      time.Time   `json:"at"`
}
