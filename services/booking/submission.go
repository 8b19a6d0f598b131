package booking

import (
	"bytes"
	"context"
	"errors"
	"time"

	bookingRepo "scrapiz/database/repository/booking"
	"scrapiz/models"
	"scrapiz/services/address"
	"scrapiz/services/notification"
	"scrapiz/services/storage"
	"scrapiz/services/tasks"
	"scrapiz/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Submitter turns a complete draft into a booking. Writes run in order: address, booking,
// then one upload per photo. Progress is recorded in a BookingSubmission so a failed
// submission resumes where it stopped. Concurrent submits of one draft are serialized
// by a claim on the draft.
type Submitter struct {
	Wizard      Wizard
	Drafts      DraftStore
	Addresses   address.AddressService
	Bookings    bookingRepo.BookingRepository
	Submissions bookingRepo.SubmissionRepository
	Photos      storage.PhotoStore
	Reminders   tasks.ReminderScheduler
	Ops         notification.OpsNotifier
	Metrics     *utils.Metrics
	Logger      *zap.Logger
	Now         func() time.Time
}

func (s *Submitter) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Submitter) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *Submitter) fail(ctx context.Context, sub *models.BookingSubmission, stage string, err error) error {
	if sub != nil {
		sub.LastError = err.Error()
		if uerr := s.Submissions.UpdateSubmission(ctx, sub); uerr != nil {
			s.logger().Error("Failed to record submission error", zap.String("submissionID", sub.ID), zap.Error(uerr))
		}
	}
	if s.Metrics != nil {
		s.Metrics.SubmissionFailures.WithLabelValues(stage).Inc()
	}
	s.logger().Error("Booking submission failed", zap.String("stage", stage), zap.Error(err))

	se := &SubmissionError{Stage: stage, Err: err}
	if sub != nil {
		se.SubmissionID = sub.ID
		se.BookingID = sub.BookingID
	}
	return se
}

// Submit validates the draft and performs the remaining writes. On success the draft is removed.
// On failure the draft is kept so the same call can be retried. A retry resumes the recorded
// submission without validating the draft again.
func (s *Submitter) Submit(ctx context.Context, userID, draftID string) (*models.BookingWithDetails, error) {
	if _, err := s.Drafts.Get(ctx, userID, draftID); err != nil {
		return nil, err
	}
	release, err := s.Drafts.Claim(ctx, draftID)
	if err != nil {
		return nil, err
	}
	defer release()

	// reload under the claim; a submit that held it before may have changed or removed the draft
	draft, err := s.Drafts.Get(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}

	sub, err := s.resume(ctx, draft)
	if err != nil {
		return nil, s.fail(ctx, nil, StageRecord, err)
	}
	if sub == nil {
		if err := s.Wizard.ValidateForSubmit(draft); err != nil {
			return nil, err
		}
		sub, err = s.start(ctx, &draft)
		if err != nil {
			return nil, s.fail(ctx, nil, StageRecord, err)
		}
	}
	if sub.State == models.SubmissionCompleted {
		return s.finish(ctx, draft, sub)
	}

	var addr *models.Address
	if sub.AddressID == "" {
		addr, err = s.resolveAddress(ctx, draft)
		if err != nil {
			s.unlock(ctx, &draft, sub)
			return nil, s.fail(ctx, sub, StageAddress, err)
		}
		sub.AddressID = addr.ID
		if err := s.Submissions.UpdateSubmission(ctx, sub); err != nil {
			return nil, s.fail(ctx, sub, StageAddress, err)
		}
	}

	if sub.BookingID == "" {
		b := ToBooking(uuid.New().String(), draft, sub.AddressID)
		if err := s.Bookings.Create(ctx, &b); err != nil {
			return nil, s.fail(ctx, sub, StageBooking, err)
		}
		sub.BookingID = b.ID
		if err := s.Submissions.UpdateSubmission(ctx, sub); err != nil {
			return nil, s.fail(ctx, sub, StageBooking, err)
		}
	}

	for i := sub.PhotosSaved; i < len(draft.Photos); i++ {
		if err := s.savePhoto(ctx, draft, sub.BookingID, draft.Photos[i]); err != nil {
			return nil, s.fail(ctx, sub, StagePhotos, err)
		}
		sub.PhotosSaved = i + 1
		if err := s.Submissions.UpdateSubmission(ctx, sub); err != nil {
			return nil, s.fail(ctx, sub, StagePhotos, err)
		}
	}

	sub.State = models.SubmissionCompleted
	sub.LastError = ""
	if err := s.Submissions.UpdateSubmission(ctx, sub); err != nil {
		// the booking is complete; the reconciler will settle the record
		s.logger().Warn("Submission completed but record not updated", zap.String("submissionID", sub.ID), zap.Error(err))
	}
	if s.Metrics != nil {
		s.Metrics.BookingsSubmitted.Inc()
	}
	return s.finish(ctx, draft, sub)
}

// resume returns the submission recorded on the draft, or nil when a new one must be started.
func (s *Submitter) resume(ctx context.Context, draft models.BookingDraft) (*models.BookingSubmission, error) {
	if draft.SubmissionID == "" {
		return nil, nil
	}
	sub, err := s.Submissions.GetSubmission(ctx, draft.SubmissionID)
	if err != nil {
		return nil, err
	}
	if sub.State == models.SubmissionAbandoned && sub.BookingID == "" {
		if sub.AddressID == "" {
			return nil, nil
		}
		// swept while still locked; its address is reused
		sub.State = models.SubmissionPending
	}
	return sub, nil
}

func (s *Submitter) start(ctx context.Context, draft *models.BookingDraft) (*models.BookingSubmission, error) {
	sub := &models.BookingSubmission{
		ID:             uuid.New().String(),
		UserID:         draft.UserID,
		DraftID:        draft.ID,
		PhotosExpected: len(draft.Photos),
		State:          models.SubmissionPending,
	}
	if err := s.Submissions.CreateSubmission(ctx, sub); err != nil {
		return nil, err
	}
	// Locks the draft against edits so photo indexes stay stable across retries.
	draft.SubmissionID = sub.ID
	if err := s.Drafts.Save(ctx, *draft); err != nil {
		return nil, err
	}
	return sub, nil
}

// unlock gives the draft back to the user when nothing has been booked yet, so a bad
// address can be corrected. The submission record is abandoned and the next submit starts over.
func (s *Submitter) unlock(ctx context.Context, draft *models.BookingDraft, sub *models.BookingSubmission) {
	sub.State = models.SubmissionAbandoned
	draft.SubmissionID = ""
	if err := s.Drafts.Save(ctx, *draft); err != nil {
		s.logger().Warn("Draft not unlocked after failed submission", zap.String("draftID", draft.ID), zap.Error(err))
	}
}

func (s *Submitter) resolveAddress(ctx context.Context, draft models.BookingDraft) (*models.Address, error) {
	if draft.Address.ID != "" {
		return s.Addresses.Get(ctx, draft.UserID, draft.Address.ID)
	}
	return s.Addresses.Create(ctx, draft.UserID, models.AddressInput{
		Title:       draft.Address.Title,
		AddressLine: draft.Address.AddressLine,
		Area:        draft.Address.Area,
		City:        draft.Address.City,
		PinCode:     draft.Address.PinCode,
	})
}

func (s *Submitter) savePhoto(ctx context.Context, draft models.BookingDraft, bookingID string, p models.DraftPhoto) error {
	data, err := s.Drafts.GetPhoto(ctx, draft.ID, p.Key)
	if err != nil {
		return err
	}
	objectPath := storage.PhotoObjectPath(draft.UserID, bookingID, s.now(), p.FileName)
	url, err := s.Photos.Upload(ctx, objectPath, p.ContentType, bytes.NewReader(data))
	if err != nil {
		return err
	}
	photo := &models.BookingPhoto{
		ID:        uuid.New().String(),
		BookingID: bookingID,
		PhotoURL:  url,
	}
	if err := s.Bookings.AddPhoto(ctx, photo); err != nil {
		return err
	}
	if s.Metrics != nil {
		s.Metrics.PhotosUploaded.Inc()
	}
	return nil
}

// finish drops the draft and runs the follow-ups that must not fail the submission.
func (s *Submitter) finish(ctx context.Context, draft models.BookingDraft, sub *models.BookingSubmission) (*models.BookingWithDetails, error) {
	details, err := s.Bookings.GetDetails(ctx, sub.BookingID)
	if err != nil {
		return nil, err
	}

	if err := s.Drafts.Delete(ctx, draft.UserID, draft.ID); err != nil && !errors.Is(err, ErrDraftNotFound) {
		s.logger().Warn("Draft not removed after submission", zap.String("draftID", draft.ID), zap.Error(err))
	}

	if s.Reminders != nil {
		if err := s.Reminders.ScheduleReminder(ctx, details.Booking); err != nil {
			s.logger().Warn("Pickup reminder not scheduled", zap.String("bookingID", details.ID), zap.Error(err))
		}
	}

	if s.Ops != nil {
		booking := details.Booking
		addr := details.Address
		photos := len(details.Photos)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.Ops.NewBooking(ctx, booking, addr, photos); err != nil {
				if s.Metrics != nil {
					s.Metrics.NotificationsFailed.WithLabelValues("telegram").Inc()
				}
				s.logger().Warn("Ops notification failed", zap.String("bookingID", booking.ID), zap.Error(err))
			}
		}()
	}

	s.logger().Info("Booking submitted",
		zap.String("bookingID", details.ID),
		zap.String("userID", details.UserID),
		zap.Int("photos", len(details.Photos)))
	return details, nil
}
