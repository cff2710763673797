package proofRepo

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

// MongoFingerprintRepo implements FingerprintRepository using MongoDB.
type MongoFingerprintRepo struct {
	coll *mongo.Collection
}

// NewMongoFingerprintRepo creates a new instance of FingerprintRepository using MongoDB.
func NewMongoFingerprintRepo() FingerprintRepository {
	coll := database.MongoClient.Database("streamafrica").Collection("usedFingerprints")
	repo := &MongoFingerprintRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoFingerprintRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "fingerprint", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// IsUsed reports whether the fingerprint was already consumed by a prior
// successful verification.
func (r *MongoFingerprintRepo) IsUsed(fingerprint string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	err := r.coll.FindOne(ctx, bson.M{"fingerprint": fingerprint}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check fingerprint: %w", err)
	}
	return true, nil
}

// Mark persists the fingerprint so the same receipt is rejected across
// sessions.
func (r *MongoFingerprintRepo) Mark(fp models.UsedFingerprint) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if fp.UsedAt.IsZero() {
		fp.UsedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, fp); err != nil {
		return fmt.Errorf("failed to mark fingerprint: %w", err)
	}
	return nil
}
