package domain

import (
	"strings"
	"time"
)

// Role is the staff role carried by a user profile.
type Role string

const (
	RoleJournalist Role = "Journalist"
	RoleEditor     Role = "Editor"
	RoleAdmin      Role = "Admin"
)

// Roles lists every staff role in display order.
var Roles = []Role{RoleJournalist, RoleEditor, RoleAdmin}

// Valid reports whether r is one of the known staff roles.
func (r Role) Valid() bool {
	switch r {
	case RoleJournalist, RoleEditor, RoleAdmin:
		return true
	}
	return false
}

// CanReviewEdits reports whether r may approve edit requests.
func (r Role) CanReviewEdits() bool {
	return r == RoleEditor || r == RoleAdmin
}

// UserProfile is the cached copy of a staff member. The backend owns the
// record; the client only reads it and refreshes it.
type UserProfile struct {
	ID            string    `json:"_id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	Username      string    `json:"username,omitempty"`
	Role          Role      `json:"role"`
	Bio           string    `json:"bio,omitempty"`
	Rank          string    `json:"rank,omitempty"`
	Photo         string    `json:"profile,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	IsDisabled    bool      `json:"isDisabled"`
	DisableReason string    `json:"disableReason,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty"`
}

// FullName joins first and last name, skipping empty parts.
func (u UserProfile) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// NewUserInput is what an Admin submits to create a staff account.
type NewUserInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
}

// UpdateUserInput is the editable part of a staff account.
type UpdateUserInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	Bio       string `json:"bio,omitempty"`
	Photo     string `json:"profile,omitempty"`
	Rank      string `json:"rank,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Role      Role   `json:"role,omitempty"`
}

// ProfileUpdate is what a staff member may change about themselves.
type ProfileUpdate struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Bio       string `json:"bio,omitempty"`
	Photo     string `json:"profile,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// PasswordChange carries a staff member's password rotation.
type PasswordChange struct {
	CurrentPassword string `json:"password"`
	NewPassword     string `json:"newPassword"`
}
