package booking

import (
	"errors"
	"fmt"
)

var (
	ErrDraftNotFound        = errors.New("draft not found")
	ErrDraftLocked          = errors.New("draft is being submitted and can no longer be edited")
	ErrSubmissionInProgress = errors.New("draft is already being submitted")
	ErrInvalidDraft         = errors.New("invalid draft value")
	ErrStepIncomplete       = errors.New("current step is incomplete")
	ErrTooManyPhotos        = errors.New("a booking can carry at most 5 photos")
	ErrInvalidPhoto         = errors.New("invalid photo")
	ErrPhotoNotFound        = errors.New("photo not found")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrInvalidStatus        = errors.New("unknown booking status")
	ErrInvalidTransition    = errors.New("status transition not allowed")
)

// Submission stages, in execution order.
const (
	StageRecord  = "record"
	StageAddress = "address"
	StageBooking = "booking"
	StagePhotos  = "photos"
)

// SubmissionError reports which write of a submission failed. Earlier writes are kept.
type SubmissionError struct {
	Stage        string
	SubmissionID string
	BookingID    string
	Err          error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submission failed at %s: %v", e.Stage, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
