// File: database/repository/booking/bookingMongoQueries.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"scrapiz/database"
	"scrapiz/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// detailsPipeline joins each matched booking with its address, owner profile and photos.
func detailsPipeline(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "addresses",
			"localField":   "pickup_address_id",
			"foreignField": "id",
			"as":           "address",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "profiles",
			"localField":   "user_id",
			"foreignField": "id",
			"as":           "customer",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "booking_photos",
			"localField":   "id",
			"foreignField": "booking_id",
			"as":           "photos",
		}}},
		{{Key: "$set", Value: bson.M{
			"address":  bson.M{"$arrayElemAt": bson.A{"$address", 0}},
			"customer": bson.M{"$arrayElemAt": bson.A{"$customer", 0}},
		}}},
		{{Key: "$project", Value: bson.M{
			"customer.fcm_token": 0,
			"customer.role":      0,
		}}},
	}
}

func (r *MongoBookingRepo) ListDetailed(ctx context.Context, filter BookingFilter) ([]models.BookingWithDetails, error) {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.bookings.Aggregate(ctx, detailsPipeline(filterDoc(filter)))
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	out := []models.BookingWithDetails{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return out, nil
}

func (r *MongoBookingRepo) GetDetails(ctx context.Context, id string) (*models.BookingWithDetails, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.bookings.Aggregate(ctx, detailsPipeline(bson.M{"id": id}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
		}
		return nil, database.ErrNotFound
	}
	var details models.BookingWithDetails
	if err := cursor.Decode(&details); err != nil {
		return nil, fmt.Errorf("failed to decode booking %s: %w", id, err)
	}
	return &details, nil
}

func (r *MongoBookingRepo) SumFinalPrice(ctx context.Context, status models.BookingStatus, since time.Time) (float64, error) {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"status":     status,
			"created_at": bson.M{"$gte": since},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": bson.M{"$ifNull": bson.A{"$final_price", 0}}},
		}}},
	}

	cursor, err := r.bookings.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("failed to decode revenue: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Total, nil
}
