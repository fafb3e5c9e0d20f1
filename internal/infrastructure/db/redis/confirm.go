package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultConfirmTTL = 2 * time.Minute

// ConfirmationStore issues single-use tokens for destructive actions.
// Key format: confirm:<token>, value: the scope it was issued for.
type ConfirmationStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewConfirmationStore(client *redis.Client, ttl time.Duration) *ConfirmationStore {
	if ttl <= 0 {
		ttl = defaultConfirmTTL
	}
	return &ConfirmationStore{client: client, ttl: ttl}
}

func (s *ConfirmationStore) Issue(ctx context.Context, scope string) (string, error) {
	token := uuid.NewString()
	if err := s.client.Set(ctx, s.key(token), scope, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("confirmation issue: %w", err)
	}
	return token, nil
}

// Consume burns token whatever its scope, so a token cannot be replayed
// against another target.
func (s *ConfirmationStore) Consume(ctx context.Context, scope, token string) (bool, error) {
	got, err := s.client.GetDel(ctx, s.key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("confirmation consume: %w", err)
	}
	return got == scope, nil
}

func (s *ConfirmationStore) key(token string) string {
	return "confirm:" + token
}
