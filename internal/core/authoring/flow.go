// Package authoring drives the article create and edit forms:
//
//	Editing -> Validating -> Submitting -> Succeeded | Failed
//
// Validation failures go back to Editing without any network call. A failed
// cover upload or a failed submit leaves the form exactly as it was.
package authoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/kickside/newsdesk/internal/core/domain"
	"github.com/kickside/newsdesk/internal/core/ports"
)

type State string

const (
	StateEditing    State = "editing"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// SubmitFunc sends a validated form to the backend.
type SubmitFunc func(ctx context.Context, in domain.ArticleInput) (*domain.Article, error)

// Flow is one article form being filled in.
type Flow struct {
	Mode   Mode
	Form   domain.ArticleInput
	State  State
	Errors *domain.ValidationError
	Saved  *domain.Article
	// MaxImageBytes caps cover uploads; zero means domain.DefaultMaxImageBytes.
	MaxImageBytes int64
}

func New(mode Mode, form domain.ArticleInput) *Flow {
	return &Flow{Mode: mode, Form: form, State: StateEditing}
}

// Validate checks that every required field is filled in.
func Validate(in domain.ArticleInput) *domain.ValidationError {
	ve := domain.NewValidationError()
	if strings.TrimSpace(in.Title) == "" {
		ve.Add("title", "Title is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		ve.Add("category", "Category is required")
	}
	if strings.TrimSpace(in.CoverImage) == "" {
		ve.Add("coverImage", "Cover image is required")
	}
	if blankHTML(in.Content) {
		ve.Add("content", "Content is required")
	}
	return ve
}

// blankHTML reports whether s has no text once tags and entities for
// whitespace are stripped. Editors emit "<p><br></p>" for an empty document.
func blankHTML(s string) bool {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	text := strings.ReplaceAll(b.String(), "&nbsp;", " ")
	return strings.TrimSpace(text) == ""
}

// AttachCover uploads img and sets the cover to its hosted URL. On failure
// the form is untouched and the cover field carries the error.
func (f *Flow) AttachCover(ctx context.Context, host ports.ImageHost, img domain.ImageUpload) error {
	if err := img.Check(f.MaxImageBytes); err != nil {
		f.fieldError("coverImage", err)
		return err
	}
	hosted, err := host.Upload(ctx, img)
	if err != nil {
		f.fieldError("coverImage", err)
		return fmt.Errorf("upload cover: %w", err)
	}
	if hosted == nil || hosted.SecureURL == "" {
		err := fmt.Errorf("%w: image host returned no url", domain.ErrInvalidImage)
		f.fieldError("coverImage", err)
		return err
	}
	f.Form.CoverImage = hosted.SecureURL
	if f.Errors != nil {
		delete(f.Errors.Fields, "coverImage")
	}
	return nil
}

func (f *Flow) fieldError(field string, err error) {
	if f.Errors == nil {
		f.Errors = domain.NewValidationError()
	}
	delete(f.Errors.Fields, field)
	f.Errors.Add(field, err.Error())
}

// Submit validates the form and hands it to submit. Create forms are cleared
// after success; edit forms keep the saved values.
func (f *Flow) Submit(ctx context.Context, submit SubmitFunc) (*domain.Article, error) {
	f.State = StateValidating
	if ve := Validate(f.Form); !ve.Empty() {
		f.Errors = ve
		f.State = StateEditing
		return nil, ve
	}
	f.Errors = nil

	f.State = StateSubmitting
	saved, err := submit(ctx, f.Form)
	if err != nil {
		f.State = StateFailed
		return nil, err
	}

	f.State = StateSucceeded
	f.Saved = saved
	switch f.Mode {
	case ModeCreate:
		f.Form = domain.ArticleInput{}
	case ModeEdit:
		if saved != nil {
			f.Form = domain.ArticleInput{
				Title:      saved.Title,
				Category:   saved.Category,
				CoverImage: saved.CoverImage,
				Content:    saved.Content,
			}
		}
	}
	return saved, nil
}
