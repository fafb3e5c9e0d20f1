package listing

import (
	"cmp"
	"strings"

	"github.com/kickside/newsdesk/internal/core/domain"
)

// Screen identifies a list screen for caching and invalidation.
type Screen string

const (
	ScreenUsers        Screen = "users"
	ScreenArticles     Screen = "articles"
	ScreenOwnArticles  Screen = "own-articles"
	ScreenInquiries    Screen = "inquiries"
	ScreenSubscribers  Screen = "subscribers"
	ScreenEditRequests Screen = "edit-requests"
	ScreenPublished    Screen = "published"
)

const (
	SortDate      = "date"
	SortFirstName = "firstName"
	SortLastName  = "lastName"
	SortRole      = "role"
	SortStatus    = "status"
	SortCategory  = "category"
	SortEmail     = "email"
	SortViews     = "views"
)

const (
	staffPageSize  = 15
	editsPageSize  = 10
	publicPageSize = 12
)

func fold(a, b string) int { return cmp.Compare(strings.ToLower(a), strings.ToLower(b)) }

var Users = Spec[domain.UserProfile]{
	Search: func(u domain.UserProfile) string { return u.FirstName },
	Sorts: map[string]Comparator[domain.UserProfile]{
		SortDate:      func(a, b domain.UserProfile) int { return b.CreatedAt.Compare(a.CreatedAt) },
		SortFirstName: func(a, b domain.UserProfile) int { return fold(a.FirstName, b.FirstName) },
		SortLastName:  func(a, b domain.UserProfile) int { return fold(a.LastName, b.LastName) },
		SortRole:      func(a, b domain.UserProfile) int { return cmp.Compare(a.Role, b.Role) },
	},
	DefaultSort: SortDate,
	PageSize:    staffPageSize,
	Empty:       "No users found",
}

var Articles = Spec[domain.Article]{
	Search: func(a domain.Article) string { return a.Title },
	Sorts: map[string]Comparator[domain.Article]{
		SortDate:     func(a, b domain.Article) int { return b.CreatedAt.Compare(a.CreatedAt) },
		SortStatus:   func(a, b domain.Article) int { return cmp.Compare(a.Status, b.Status) },
		SortCategory: func(a, b domain.Article) int { return fold(a.Category, b.Category) },
	},
	DefaultSort: SortDate,
	PageSize:    staffPageSize,
	Empty:       "No articles found",
}

var Inquiries = Spec[domain.Inquiry]{
	Search: func(i domain.Inquiry) string { return i.FirstName },
	Sorts: map[string]Comparator[domain.Inquiry]{
		SortDate:      func(a, b domain.Inquiry) int { return b.CreatedAt.Compare(a.CreatedAt) },
		SortFirstName: func(a, b domain.Inquiry) int { return fold(a.FirstName, b.FirstName) },
		SortLastName:  func(a, b domain.Inquiry) int { return fold(a.LastName, b.LastName) },
		SortEmail:     func(a, b domain.Inquiry) int { return fold(a.Email, b.Email) },
	},
	DefaultSort: SortDate,
	PageSize:    staffPageSize,
	Empty:       "No inquiries found",
}

var Subscribers = Spec[domain.Subscriber]{
	Search: func(s domain.Subscriber) string { return s.Email },
	Sorts: map[string]Comparator[domain.Subscriber]{
		SortDate:  func(a, b domain.Subscriber) int { return b.CreatedAt.Compare(a.CreatedAt) },
		SortEmail: func(a, b domain.Subscriber) int { return fold(a.Email, b.Email) },
	},
	DefaultSort: SortDate,
	PageSize:    staffPageSize,
	Empty:       "No subscribers found",
}

var EditRequests = Spec[domain.EditRequest]{
	Search: func(r domain.EditRequest) string { return r.Article.Title },
	Sorts: map[string]Comparator[domain.EditRequest]{
		SortDate: func(a, b domain.EditRequest) int { return b.UpdatedAt.Compare(a.UpdatedAt) },
	},
	DefaultSort: SortDate,
	PageSize:    editsPageSize,
	Empty:       "No edit requests found",
}

// Published drives the public search and category pages.
var Published = Spec[domain.Article]{
	Search: func(a domain.Article) string { return a.Title },
	Sorts: map[string]Comparator[domain.Article]{
		SortDate:  func(a, b domain.Article) int { return b.CreatedAt.Compare(a.CreatedAt) },
		SortViews: func(a, b domain.Article) int { return cmp.Compare(b.Views, a.Views) },
	},
	DefaultSort: SortDate,
	PageSize:    publicPageSize,
	Empty:       "No articles found",
}
