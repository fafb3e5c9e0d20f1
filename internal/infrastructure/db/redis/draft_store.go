package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kickside/newsdesk/internal/core/domain"
)

const draftTTL = 7 * 24 * time.Hour

// DraftStore keeps unsubmitted article forms under draft:<owner>:<form>.
type DraftStore struct {
	client *redis.Client
}

func NewDraftStore(client *redis.Client) *DraftStore {
	return &DraftStore{client: client}
}

func draftKey(owner, form string) string {
	return fmt.Sprintf("draft:%s:%s", owner, form)
}

func (d *DraftStore) Load(ctx context.Context, owner, form string) (*domain.ArticleInput, error) {
	raw, err := d.client.Get(ctx, draftKey(owner, form)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("draft load: %w", err)
	}
	var in domain.ArticleInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, fmt.Errorf("draft decode: %w", err)
	}
	return &in, nil
}

func (d *DraftStore) Save(ctx context.Context, owner, form string, in domain.ArticleInput) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("draft encode: %w", err)
	}
	return d.client.Set(ctx, draftKey(owner, form), raw, draftTTL).Err()
}

func (d *DraftStore) Discard(ctx context.Context, owner, form string) error {
	return d.client.Del(ctx, draftKey(owner, form)).Err()
}
