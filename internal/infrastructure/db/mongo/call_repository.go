package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/visitlink/visitation-api/internal/core/domain"
)

const collectionCalls = "video_calls"

type CallRepository struct {
	col *mongo.Collection
}

func NewCallRepository(db *mongo.Database) *CallRepository {
	return &CallRepository{col: db.Collection(collectionCalls)}
}

// Create inserts a new call document.
func (r *CallRepository) Create(ctx context.Context, c *domain.VideoCall) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("insert call: %w", err)
	}
	return nil
}

func (r *CallRepository) FindByID(ctx context.Context, id string) (*domain.VideoCall, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *CallRepository) FindByRoomName(ctx context.Context, room string) (*domain.VideoCall, error) {
	return r.findOne(ctx, bson.M{"room_name": room})
}

func (r *CallRepository) findOne(ctx context.Context, filter bson.M) (*domain.VideoCall, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.VideoCall
	if err := r.col.FindOne(ctx, filter).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCallNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Activate flips a scheduled call to active. The status filter makes
// concurrent joins race-free: only one update matches, the rest are no-ops.
func (r *CallRepository) Activate(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "status": string(domain.CallScheduled)}
	update := bson.M{"$set": bson.M{
		"status":     string(domain.CallActive),
		"updated_at": time.Now().UTC(),
	}}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("activate call: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("activate call: %w", err)
	}
	if n == 0 {
		return domain.ErrCallNotFound
	}
	return nil
}

// ListByStatus returns calls in status ordered by scheduled start. A
// non-empty participantID matches against the participant_ids array.
func (r *CallRepository) ListByStatus(ctx context.Context, status domain.CallStatus, participantID string) ([]*domain.VideoCall, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, listFilter(status, participantID),
		options.Find().SetSort(bson.D{{Key: "scheduled_start", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list calls: %w", err)
	}
	defer cur.Close(ctx)

	calls := []*domain.VideoCall{}
	if err := cur.All(ctx, &calls); err != nil {
		return nil, fmt.Errorf("decode calls: %w", err)
	}
	return calls, nil
}

func listFilter(status domain.CallStatus, participantID string) bson.M {
	filter := bson.M{"status": string(status)}
	if participantID != "" {
		filter["participant_ids"] = participantID
	}
	return filter
}

// EnsureIndexes creates necessary indexes on the video_calls collection.
func (r *CallRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "room_name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "scheduled_start", Value: 1}}},
		{Keys: bson.D{{Key: "participant_ids", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
