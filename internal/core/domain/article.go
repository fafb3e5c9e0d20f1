package domain

import "time"

// ArticleStatus is the publication state of an article.
type ArticleStatus string

const (
	ArticleDraft       ArticleStatus = "draft"
	ArticlePending     ArticleStatus = "pending"
	ArticlePublished   ArticleStatus = "published"
	ArticleUnpublished ArticleStatus = "unpublished"
)

// Categories offered by the authoring form. Free text is accepted as long as
// it is not blank.
var Categories = []string{"Technology", "Business", "Sports", "Entertainment", "Scholarship"}

// AuthorRef is the author summary embedded in articles and edit requests.
type AuthorRef struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Username  string `json:"username,omitempty"`
	Role      Role   `json:"role,omitempty"`
	Photo     string `json:"profile,omitempty"`
	Bio       string `json:"bio,omitempty"`
	Rank      string `json:"rank,omitempty"`
}

type Article struct {
	ID         string        `json:"_id"`
	Title      string        `json:"title"`
	Slug       string        `json:"slug"`
	Category   string        `json:"category"`
	CoverImage string        `json:"coverImage"`
	Content    string        `json:"content"`
	Author     AuthorRef     `json:"author"`
	Status     ArticleStatus `json:"status"`
	IsEditable bool          `json:"isEditable"`
	Views      int           `json:"views"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// AuthoredBy reports whether the user with id wrote the article.
func (a Article) AuthoredBy(userID string) bool {
	return userID != "" && a.Author.ID == userID
}

// Published reports whether the article is visible on the public site.
func (a Article) Published() bool { return a.Status == ArticlePublished }

// ArticleInput is the payload of the create and edit forms.
type ArticleInput struct {
	Title      string `json:"title"`
	Category   string `json:"category"`
	CoverImage string `json:"coverImage"`
	Content    string `json:"content"`
}

// Comment is a reader comment attached to an article.
type Comment struct {
	ID        string    `json:"_id,omitempty"`
	Names     string    `json:"names"`
	Email     string    `json:"email,omitempty"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentInput is what a reader submits under an article.
type CommentInput struct {
	ArticleID string `json:"articleId"`
	Names     string `json:"names"`
	Email     string `json:"email"`
	Comment   string `json:"comment"`
}

// ArticleDetail is an article together with its comments.
type ArticleDetail struct {
	Article  Article   `json:"article"`
	Comments []Comment `json:"comments"`
}

// AuthorProfile is the public page of a journalist.
type AuthorProfile struct {
	Author   AuthorRef `json:"author"`
	Articles []Article `json:"articles"`
}

// Related picks up to limit published articles sharing a's category,
// excluding a itself, in the order given.
func Related(a Article, pool []Article, limit int) []Article {
	out := make([]Article, 0, limit)
	for _, candidate := range pool {
		if len(out) == limit {
			break
		}
		if candidate.ID == a.ID || candidate.Category != a.Category || !candidate.Published() {
			continue
		}
		out = append(out, candidate)
	}
	return out
}
