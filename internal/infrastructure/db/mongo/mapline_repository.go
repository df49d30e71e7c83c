package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rzdmap/rzdmap-api/internal/core/domain"
)

const collectionMapLines = "map_lines"

type MapLineRepository struct {
	col *mongo.Collection
}

func NewMapLineRepository(db *mongo.Database) *MapLineRepository {
	return &MapLineRepository{col: db.Collection(collectionMapLines)}
}

// Create inserts a new map line document.
func (r *MapLineRepository) Create(ctx context.Context, l *domain.MapLine) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, l)
	return err
}

func (r *MapLineRepository) FindByID(ctx context.Context, id string) (*domain.MapLine, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var l domain.MapLine
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&l); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMapLineNotFound
		}
		return nil, err
	}
	return &l, nil
}

// List returns lines oldest first together with the collection size.
func (r *MapLineRepository) List(ctx context.Context, skip, limit int) ([]*domain.MapLine, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count map lines: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find map lines: %w", err)
	}
	defer cur.Close(ctx)

	lines := make([]*domain.MapLine, 0, limit)
	if err := cur.All(ctx, &lines); err != nil {
		return nil, 0, fmt.Errorf("decode map lines: %w", err)
	}
	return lines, total, nil
}

func (r *MapLineRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete map line: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrMapLineNotFound
	}
	return nil
}

func (r *MapLineRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "created_by", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
