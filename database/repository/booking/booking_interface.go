package bookingRepo

import (
	"context"
	"time"

	"scrapiz/models"
)

// BookingFilter narrows counts and listings. Zero values match everything.
type BookingFilter struct {
	UserID     string
	Status     models.BookingStatus
	PickupDate string
}

// BookingRepository defines methods for booking and booking photo data access.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// GetDetails joins address, owner profile and photos.
	GetDetails(ctx context.Context, id string) (*models.BookingWithDetails, error)
	// ListDetailed returns joined bookings newest first.
	ListDetailed(ctx context.Context, filter BookingFilter) ([]models.BookingWithDetails, error)
	// Update applies the non-nil fields and returns the stored booking.
	Update(ctx context.Context, id string, update models.BookingUpdate) (*models.Booking, error)
	Count(ctx context.Context, filter BookingFilter) (int64, error)
	// SumFinalPrice adds final_price (missing counted as 0) over bookings with the status created at or after since.
	SumFinalPrice(ctx context.Context, status models.BookingStatus, since time.Time) (float64, error)

	AddPhoto(ctx context.Context, photo *models.BookingPhoto) error
	CountPhotos(ctx context.Context, bookingID string) (int64, error)
}

// SubmissionRepository persists wizard submission progress.
type SubmissionRepository interface {
	CreateSubmission(ctx context.Context, sub *models.BookingSubmission) error
	GetSubmission(ctx context.Context, id string) (*models.BookingSubmission, error)
	UpdateSubmission(ctx context.Context, sub *models.BookingSubmission) error
	// ListPending returns pending submissions last touched before the cutoff.
	ListPending(ctx context.Context, updatedBefore time.Time) ([]models.BookingSubmission, error)
}
