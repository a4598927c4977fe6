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

const collectionFacilities = "facilities"

type FacilityRepository struct {
	col *mongo.Collection
}

func NewFacilityRepository(db *mongo.Database) *FacilityRepository {
	return &FacilityRepository{col: db.Collection(collectionFacilities)}
}

func (r *FacilityRepository) Create(ctx context.Context, f *domain.Facility) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, f); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrFacilityExists
		}
		return fmt.Errorf("insert facility: %w", err)
	}
	return nil
}

func (r *FacilityRepository) FindByID(ctx context.Context, id string) (*domain.Facility, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *FacilityRepository) FindByName(ctx context.Context, name string) (*domain.Facility, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *FacilityRepository) findOne(ctx context.Context, filter bson.M) (*domain.Facility, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var f domain.Facility
	if err := r.col.FindOne(ctx, filter).Decode(&f); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFacilityNotFound
		}
		return nil, fmt.Errorf("find facility: %w", err)
	}
	return &f, nil
}

// Update replaces the name and settings of an existing facility.
func (r *FacilityRepository) Update(ctx context.Context, f *domain.Facility) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":       f.Name,
		"settings":   f.Settings,
		"updated_at": f.UpdatedAt,
	}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": f.ID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrFacilityExists
		}
		return fmt.Errorf("update facility: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrFacilityNotFound
	}
	return nil
}

func (r *FacilityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
