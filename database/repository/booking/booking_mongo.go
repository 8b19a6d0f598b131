// File: database/repository/booking/booking_mongo.go
package bookingRepo

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

// MongoBookingRepo implements BookingRepository and SubmissionRepository using MongoDB.
type MongoBookingRepo struct {
	bookings    *mongo.Collection
	photos      *mongo.Collection
	submissions *mongo.Collection
}

// NewMongoBookingRepo creates a new booking repository over the bookings, booking_photos
// and booking_submissions collections.
func NewMongoBookingRepo() *MongoBookingRepo {
	repo := &MongoBookingRepo{
		bookings:    database.Collection("bookings"),
		photos:      database.Collection("booking_photos"),
		submissions: database.Collection("booking_submissions"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := database.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)
	if _, err := r.bookings.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "pickup_date", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	if _, err := r.photos.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "booking_id", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create photo indexes: %w", err)
	}
	if _, err := r.submissions.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "state", Value: 1}, {Key: "updated_at", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create submission indexes: %w", err)
	}
	return nil
}

func filterDoc(f BookingFilter) bson.M {
	doc := bson.M{}
	if f.UserID != "" {
		doc["user_id"] = f.UserID
	}
	if f.Status != "" {
		doc["status"] = f.Status
	}
	if f.PickupDate != "" {
		doc["pickup_date"] = f.PickupDate
	}
	return doc
}

func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.bookings.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := r.bookings.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) Update(ctx context.Context, id string, update models.BookingUpdate) (*models.Booking, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Status != nil {
		set["status"] = *update.Status
	}
	if update.EstimatedPrice != nil {
		set["estimated_price"] = *update.EstimatedPrice
	}
	if update.FinalPrice != nil {
		set["final_price"] = *update.FinalPrice
	}
	if update.AgentNotes != nil {
		set["agent_notes"] = *update.AgentNotes
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var booking models.Booking
	err := r.bookings.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update booking %s: %w", id, err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) Count(ctx context.Context, filter BookingFilter) (int64, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.bookings.CountDocuments(ctx, filterDoc(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return n, nil
}

func (r *MongoBookingRepo) AddPhoto(ctx context.Context, photo *models.BookingPhoto) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if photo.CreatedAt.IsZero() {
		photo.CreatedAt = time.Now().UTC()
	}
	if _, err := r.photos.InsertOne(ctx, photo); err != nil {
		return fmt.Errorf("failed to save booking photo: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) CountPhotos(ctx context.Context, bookingID string) (int64, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.photos.CountDocuments(ctx, bson.M{"booking_id": bookingID})
	if err != nil {
		return 0, fmt.Errorf("failed to count photos for booking %s: %w", bookingID, err)
	}
	return n, nil
}
