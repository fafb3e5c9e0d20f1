package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kickside/newsdesk/internal/core/domain"
	"github.com/kickside/newsdesk/internal/core/ports"
)

const auditCollection = "console_audit"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	db *mongo.Database
}

var _ ports.AuditRepository = (*AuditRepository)(nil)

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{db: db}
}

type auditDoc struct {
	ActorID    string    `bson:"actor_id"`
	Role       string    `bson:"role"`
	Action     string    `bson:"action"`
	Target     string    `bson:"target,omitempty"`
	Detail     string    `bson:"detail,omitempty"`
	At         time.Time `bson:"at"`
	RecordedAt time.Time `bson:"recorded_at"`
}

// Insert persists one console action to the console_audit collection.
func (r *AuditRepository) Insert(ctx context.Context, entry domain.AuditEntry) error {
	doc := auditDoc{
		ActorID:    entry.ActorID,
		Role:       string(entry.Role),
		Action:     string(entry.Action),
		Target:     entry.Target,
		Detail:     entry.Detail,
		At:         entry.At.UTC(),
		RecordedAt: time.Now().UTC(),
	}
	if _, err := r.db.Collection(auditCollection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// Recent returns the latest entries, newest first, optionally restricted to
// one actor.
func (r *AuditRepository) Recent(ctx context.Context, actorID string, limit int64) ([]domain.AuditEntry, error) {
	filter := bson.M{}
	if actorID != "" {
		filter["actor_id"] = actorID
	}
	opts := options.Find().SetSort(bson.D{{Key: "at", Value: -1}}).SetLimit(limit)

	cur, err := r.db.Collection(auditCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find audit entries: %w", err)
	}
	defer cur.Close(ctx)

	var docs []auditDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode audit entries: %w", err)
	}
	out := make([]domain.AuditEntry, len(docs))
	for i, d := range docs {
		out[i] = domain.AuditEntry{
			ActorID: d.ActorID,
			Role:    domain.Role(d.Role),
			Action:  domain.AuditAction(d.Action),
			Target:  d.Target,
			Detail:  d.Detail,
			At:      d.At,
		}
	}
	return out, nil
}

// EnsureIndexes creates the indexes Recent relies on.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.db.Collection(auditCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "at", Value: -1}}},
		{Keys: bson.D{{Key: "actor_id", Value: 1}, {Key: "at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("audit indexes: %w", err)
	}
	return nil
}
