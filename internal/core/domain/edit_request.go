package domain

import "time"

// ArticleRef is the article summary embedded in an edit request.
type ArticleRef struct {
	ID    string `json:"_id"`
	Title string `json:"title"`
	Slug  string `json:"slug,omitempty"`
}

// EditRequest is a journalist's request to unlock an article they do not own.
type EditRequest struct {
	ID         string     `json:"_id"`
	Article    ArticleRef `json:"article"`
	Journalist AuthorRef  `json:"journalist"`
	IsAccepted bool       `json:"isAccepted"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// EditAccess is an article's edit-lock state as seen by one viewer.
//
//	locked --request--> request_pending --approve--> unlocked
//
// Approval is reserved to Editors and Admins. Nothing expires a pending
// request and nothing re-locks an unlocked article.
type EditAccess string

const (
	EditLocked         EditAccess = "locked"
	EditRequestPending EditAccess = "request_pending"
	EditUnlocked       EditAccess = "unlocked"
)

// ResolveEditAccess computes viewer's access to a. pending reports whether
// the viewer already asked for access to this article.
func ResolveEditAccess(a Article, viewer UserProfile, pending bool) EditAccess {
	if viewer.Role != RoleJournalist {
		return EditUnlocked
	}
	if a.AuthoredBy(viewer.ID) || a.IsEditable {
		return EditUnlocked
	}
	if pending {
		return EditRequestPending
	}
	return EditLocked
}

// CanSave reports whether changes may be submitted under this access.
func (e EditAccess) CanSave() bool { return e == EditUnlocked }

// CanRequest reports whether an edit request may be filed from this state.
func (e EditAccess) CanRequest() bool { return e == EditLocked }
