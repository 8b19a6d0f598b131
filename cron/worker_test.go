package cron

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	memoryRepo "scrapiz/database/repository/memory"
	"scrapiz/models"
	"scrapiz/services/booking"
	"scrapiz/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type countingNotifier struct {
	reminders []string
}

func (n *countingNotifier) NotifyStatusChange(context.Context, models.Booking) error { return nil }

func (n *countingNotifier) SendPickupReminder(_ context.Context, b models.Booking) error {
	n.reminders = append(n.reminders, b.ID)
	return nil
}

func reminderTask(t *testing.T, bookingID string) *asynq.Task {
	t.Helper()
	b, err := json.Marshal(models.ReminderPayload{BookingID: bookingID, UserID: "u1"})
	if err != nil {
		t.Fatal(err)
	}
	return asynq.NewTask(tasks.TypePickupReminder, b)
}

func TestHandleReminderTask(t *testing.T) {
	ctx := context.Background()
	store := memoryRepo.NewStore()
	store.Bookings().Put(models.Booking{ID: "due", UserID: "u1", Status: models.StatusScheduled})
	store.Bookings().Put(models.Booking{ID: "gone", UserID: "u1", Status: models.StatusCancelled})

	n := &countingNotifier{}
	h := handleReminderTask(store.Bookings(), n, zap.NewNop())

	for _, id := range []string{"due", "gone", "missing"} {
		if err := h(ctx, reminderTask(t, id)); err != nil {
			t.Errorf("%s: %v", id, err)
		}
	}
	if len(n.reminders) != 1 || n.reminders[0] != "due" {
		t.Errorf("reminders = %v, want [due]", n.reminders)
	}

	err := h(ctx, asynq.NewTask(tasks.TypePickupReminder, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Errorf("bad payload err = %v, want SkipRetry", err)
	}
}

func TestHandleReconcileTask(t *testing.T) {
	ctx := context.Background()
	store := memoryRepo.NewStore()
	base := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	store.Now = func() time.Time { return base }

	sub := models.BookingSubmission{ID: "s1", State: models.SubmissionPending}
	if err := store.Bookings().CreateSubmission(ctx, &sub); err != nil {
		t.Fatal(err)
	}

	r := &booking.Reconciler{
		Submissions: store.Bookings(),
		Bookings:    store.Bookings(),
		After:       30 * time.Minute,
		Now:         func() time.Time { return base.Add(time.Hour) },
	}
	if err := handleReconcileTask(r, zap.NewNop())(ctx, tasks.NewReconcileTask()); err != nil {
		t.Fatal(err)
	}
	got, _ := store.Bookings().GetSubmission(ctx, "s1")
	if got.State != models.SubmissionAbandoned {
		t.Errorf("state = %q, want abandoned", got.State)
	}
}
