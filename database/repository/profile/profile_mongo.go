package profileRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"scrapiz/database"
	"scrapiz/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProfileRepo implements ProfileRepository using MongoDB.
type MongoProfileRepo struct {
	coll *mongo.Collection
}

func NewMongoProfileRepo() ProfileRepository {
	repo := &MongoProfileRepo{coll: database.Collection("profiles")}

	ctx, cancel := database.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := repo.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		fmt.Printf("failed to create profile indexes: %v\n", err)
	}
	return repo
}

func (r *MongoProfileRepo) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var profile models.Profile
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile %s: %w", id, err)
	}
	return &profile, nil
}

func (r *MongoProfileRepo) Upsert(ctx context.Context, profile *models.Profile) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"id": profile.ID}, profile, opts); err != nil {
		return fmt.Errorf("failed to save profile %s: %w", profile.ID, err)
	}
	return nil
}

func (r *MongoProfileRepo) UpdateFCMToken(ctx context.Context, id, token string) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{"fcm_token": token, "updated_at": now},
		"$setOnInsert": bson.M{
			"preferred_language":         models.LanguageEnglish,
			"push_notifications_enabled": true,
			"created_at":                 now,
		},
	}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to update device token for %s: %w", id, err)
	}
	return nil
}

func (r *MongoProfileRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}
	return n, nil
}
