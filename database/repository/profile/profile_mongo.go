package profileRepo

import (
	"context"
	"fmt"
	"time"

	"streamafrica/database"
	"streamafrica/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// The slot is a single document with a fixed _id: creating a new account
// replaces whatever was there before.
const slotID = "profile"

// MongoProfileRepo implements ProfileRepository using MongoDB.
type MongoProfileRepo struct {
	coll *mongo.Collection
}

// NewMongoProfileRepo creates a new instance of ProfileRepository using MongoDB.
func NewMongoProfileRepo() ProfileRepository {
	coll := database.MongoClient.Database("streamafrica").Collection("profile")
	return &MongoProfileRepo{coll: coll}
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

type profileDoc struct {
	ID      string             `bson:"_id"`
	Profile models.UserProfile `bson:"profile"`
}

// Get retrieves the stored profile, or (nil, nil) when the slot is empty.
func (r *MongoProfileRepo) Get() (*models.UserProfile, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var doc profileDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": slotID}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &doc.Profile, nil
}

// Save writes the whole record into the slot, overwriting any prior one.
func (r *MongoProfileRepo) Save(profile *models.UserProfile) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	profile.UpdatedAt = time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = profile.UpdatedAt
	}

	doc := profileDoc{ID: slotID, Profile: *profile}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": slotID}, doc, opts); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// Delete clears the slot. The funnel never calls this; it exists for
// operational cleanup.
func (r *MongoProfileRepo) Delete() error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": slotID}); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}
