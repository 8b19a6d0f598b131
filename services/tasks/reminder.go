package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"scrapiz/models"

	"github.com/hibiken/asynq"
)

const (
	TypePickupReminder      = "pickup:reminder"
	TypeReconcileSubmission = "submission:reconcile"
)

// ReminderHour is the local hour on the pickup date at which the owner is reminded.
const ReminderHour = 7

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypePickupReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("reminder:" + payload.BookingID),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

func NewReconcileTask() *asynq.Task {
	return asynq.NewTask(TypeReconcileSubmission, nil)
}

// ReminderTime is 07:00 on the pickup date in loc.
func ReminderTime(pickupDate string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(models.DateLayout, pickupDate, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid pickup date %q: %w", pickupDate, err)
	}
	return d.Add(ReminderHour * time.Hour), nil
}

// ReminderScheduler queues pickup reminders.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, booking models.Booking) error
}

// Enqueuer is the part of asynq.Client we use.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type AsynqReminderScheduler struct {
	client Enqueuer
	loc    *time.Location
	now    func() time.Time
}

func NewAsynqReminderScheduler(client Enqueuer, loc *time.Location) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{client: client, loc: loc, now: time.Now}
}

// ScheduleReminder does nothing when the reminder time has already passed.
func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, booking models.Booking) error {
	fireAt, err := ReminderTime(booking.PickupDate, s.loc)
	if err != nil {
		return err
	}
	if !fireAt.After(s.now()) {
		return nil
	}
	task, opts, err := NewReminderTask(models.ReminderPayload{BookingID: booking.ID, UserID: booking.UserID}, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue reminder for booking %s: %w", booking.ID, err)
	}
	return nil
}

type NopReminderScheduler struct{}

func (NopReminderScheduler) ScheduleReminder(context.Context, models.Booking) error { return nil }
