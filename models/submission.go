package models

import "time"

type SubmissionState string

const (
	SubmissionPending   SubmissionState = "pending"
	SubmissionCompleted SubmissionState = "completed"
	SubmissionPartial   SubmissionState = "partial"
	SubmissionAbandoned SubmissionState = "abandoned"
)

// BookingSubmission tracks how far a wizard submission got so it can be resumed or reconciled.
type BookingSubmission struct {
	ID             string          `bson:"id" json:"id"`
	UserID         string          `bson:"user_id" json:"user_id"`
	DraftID        string          `bson:"draft_id" json:"draft_id"`
	AddressID      string          `bson:"address_id,omitempty" json:"address_id,omitempty"`
	BookingID      string          `bson:"booking_id,omitempty" json:"booking_id,omitempty"`
	PhotosExpected int             `bson:"photos_expected" json:"photos_expected"`
	PhotosSaved    int             `bson:"photos_saved" json:"photos_saved"`
	State          SubmissionState `bson:"state" json:"state"`
	LastError      string          `bson:"last_error,omitempty" json:"last_error,omitempty"`
	CreatedAt      time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `bson:"updated_at" json:"updated_at"`
}
