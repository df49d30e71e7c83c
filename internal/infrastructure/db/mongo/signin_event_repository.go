package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rzdmap/rzdmap-api/internal/core/domain"
	"github.com/rzdmap/rzdmap-api/internal/core/ports"
)

const collectionSignInEvents = "signin_events"

// signInEventRetention bounds how long audit documents are kept.
const signInEventRetention = 90 * 24 * time.Hour

var _ ports.SignInEventRepository = (*SignInEventRepository)(nil)

// SignInEventRepository implements ports.SignInEventRepository using MongoDB.
type SignInEventRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewSignInEventRepository(db *mongo.Database) *SignInEventRepository {
	return &SignInEventRepository{col: db.Collection(collectionSignInEvents), now: time.Now}
}

// InsertSignInEvent persists a sign-in attempt to the audit collection.
func (r *SignInEventRepository) InsertSignInEvent(ctx context.Context, event domain.SignInEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"username":            event.Username,
		"normalized_username": domain.NormalizeName(event.Username),
		"outcome":             string(event.Outcome),
		"occurred_at":         event.OccurredAt.UTC(),
		"recorded_at":         r.now().UTC(),
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}

// EnsureIndexes adds a per-user lookup index and a TTL index on occurred_at.
func (r *SignInEventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "normalized_username", Value: 1}, {Key: "occurred_at", Value: -1}}},
		{
			Keys:    bson.D{{Key: "occurred_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(signInEventRetention.Seconds())),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
