package service

import (
	"context"
	"fmt"

	"github.com/kickside/newsdesk/internal/core/domain"
	"github.com/kickside/newsdesk/internal/core/ports"
)

// confirmed gates a destructive action behind a single-use token bound to
// the actor, the action and its target. An empty token issues one.
func confirmed(ctx context.Context, store ports.ConfirmationStore, sess *domain.Session, action, target, token string) error {
	scope := sess.UserID() + ":" + action + ":" + target
	if token == "" {
		issued, err := store.Issue(ctx, scope)
		if err != nil {
			return fmt.Errorf("%s: issue confirmation: %w", action, err)
		}
		return &domain.ConfirmationRequiredError{Action: action, Token: issued}
	}
	ok, err := store.Consume(ctx, scope, token)
	if err != nil {
		return fmt.Errorf("%s: consume confirmation: %w", action, err)
	}
	if !ok {
		return fmt.Errorf("%s: %w", action, domain.ErrInvalidConfirmation)
	}
	return nil
}
