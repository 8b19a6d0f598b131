package booking

import (
	"context"
	"time"

	bookingRepo "scrapiz/database/repository/booking"
	"scrapiz/models"
	"scrapiz/utils"

	"go.uber.org/zap"
)

// Reconciler settles submissions that stopped half way and were never retried.
type Reconciler struct {
	Submissions bookingRepo.SubmissionRepository
	Bookings    bookingRepo.BookingRepository
	After       time.Duration
	Metrics     *utils.Metrics
	Logger      *zap.Logger
	Now         func() time.Time
}

// Sweep marks stale pending submissions completed, partial or abandoned and returns counts per outcome.
func (r *Reconciler) Sweep(ctx context.Context) (map[models.SubmissionState]int, error) {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	stale, err := r.Submissions.ListPending(ctx, now().Add(-r.After))
	if err != nil {
		return nil, err
	}

	counts := map[models.SubmissionState]int{}
	for i := range stale {
		sub := stale[i]
		state, err := r.resolve(ctx, sub)
		if err != nil {
			logger.Warn("Submission not reconciled", zap.String("submissionID", sub.ID), zap.Error(err))
			continue
		}
		sub.State = state
		if err := r.Submissions.UpdateSubmission(ctx, &sub); err != nil {
			logger.Warn("Submission not reconciled", zap.String("submissionID", sub.ID), zap.Error(err))
			continue
		}
		counts[state]++
		if r.Metrics != nil {
			r.Metrics.SubmissionsSwept.WithLabelValues(string(state)).Inc()
		}
		logger.Info("Submission reconciled",
			zap.String("submissionID", sub.ID),
			zap.String("bookingID", sub.BookingID),
			zap.String("state", string(state)))
	}
	return counts, nil
}

func (r *Reconciler) resolve(ctx context.Context, sub models.BookingSubmission) (models.SubmissionState, error) {
	if sub.BookingID == "" {
		return models.SubmissionAbandoned, nil
	}
	n, err := r.Bookings.CountPhotos(ctx, sub.BookingID)
	if err != nil {
		return "", err
	}
	if int(n) >= sub.PhotosExpected {
		return models.SubmissionCompleted, nil
	}
	return models.SubmissionPartial, nil
}
