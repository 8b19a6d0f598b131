// File: database/repository/address/address_mongo.go
package addressRepo

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

// MongoAddressRepo implements AddressRepository using MongoDB.
type MongoAddressRepo struct {
	coll *mongo.Collection
}

// NewMongoAddressRepo creates a new instance of AddressRepository using MongoDB.
func NewMongoAddressRepo() AddressRepository {
	repo := &MongoAddressRepo{coll: database.Collection("addresses")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create address indexes: %v\n", err)
	}
	return repo
}

func (r *MongoAddressRepo) ensureIndexes() error {
	ctx, cancel := database.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoAddressRepo) ListByUser(ctx context.Context, userID string) ([]models.Address, error) {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	addresses := []models.Address{}
	if err := cursor.All(ctx, &addresses); err != nil {
		return nil, fmt.Errorf("failed to decode addresses: %w", err)
	}
	return addresses, nil
}

func (r *MongoAddressRepo) GetByID(ctx context.Context, userID, id string) (*models.Address, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var address models.Address
	err := r.coll.FindOne(ctx, bson.M{"id": id, "user_id": userID}).Decode(&address)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch address %s: %w", id, err)
	}
	return &address, nil
}

func (r *MongoAddressRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, fmt.Errorf("failed to count addresses: %w", err)
	}
	return n, nil
}

func (r *MongoAddressRepo) Create(ctx context.Context, address *models.Address) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	address.CreatedAt = now
	address.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, address); err != nil {
		return fmt.Errorf("failed to create address: %w", err)
	}
	return nil
}

func (r *MongoAddressRepo) Update(ctx context.Context, address *models.Address) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	address.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"title":        address.Title,
		"address_line": address.AddressLine,
		"area":         address.Area,
		"city":         address.City,
		"pin_code":     address.PinCode,
		"updated_at":   address.UpdatedAt,
	}}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": address.ID, "user_id": address.UserID}, update)
	if err != nil {
		return fmt.Errorf("failed to update address %s: %w", address.ID, err)
	}
	if result.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *MongoAddressRepo) Delete(ctx context.Context, userID, id string) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete address %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *MongoAddressRepo) UnsetDefaults(ctx context.Context, userID string) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.UpdateMany(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"is_default": false}})
	if err != nil {
		return fmt.Errorf("failed to clear default address: %w", err)
	}
	return nil
}

func (r *MongoAddressRepo) MarkDefault(ctx context.Context, userID, id string) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "user_id": userID},
		bson.M{"$set": bson.M{"is_default": true, "updated_at": time.Now().UTC()}})
	if err != nil {
		return fmt.Errorf("failed to set default address %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}
