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

func (r *MongoBookingRepo) CreateSubmission(ctx context.Context, sub *models.BookingSubmission) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	sub.CreatedAt = now
	sub.UpdatedAt = now
	if _, err := r.submissions.InsertOne(ctx, sub); err != nil {
		return fmt.Errorf("failed to record submission: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) GetSubmission(ctx context.Context, id string) (*models.BookingSubmission, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var sub models.BookingSubmission
	err := r.submissions.FindOne(ctx, bson.M{"id": id}).Decode(&sub)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch submission %s: %w", id, err)
	}
	return &sub, nil
}

func (r *MongoBookingRepo) UpdateSubmission(ctx context.Context, sub *models.BookingSubmission) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	sub.UpdatedAt = time.Now().UTC()
	result, err := r.submissions.ReplaceOne(ctx, bson.M{"id": sub.ID}, sub)
	if err != nil {
		return fmt.Errorf("failed to update submission %s: %w", sub.ID, err)
	}
	if result.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *MongoBookingRepo) ListPending(ctx context.Context, updatedBefore time.Time) ([]models.BookingSubmission, error) {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"state":      models.SubmissionPending,
		"updated_at": bson.M{"$lt": updatedBefore},
	}
	cursor, err := r.submissions.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "updated_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list pending submissions: %w", err)
	}
	defer cursor.Close(ctx)

	out := []models.BookingSubmission{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode submissions: %w", err)
	}
	return out, nil
}
