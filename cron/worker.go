package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"scrapiz/config"
	"scrapiz/database"
	bookingRepo "scrapiz/database/repository/booking"
	"scrapiz/models"
	"scrapiz/services/booking"
	"scrapiz/services/notification"
	"scrapiz/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Worker runs the background queue: pickup reminders and periodic submission reconciliation.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	logger    *zap.Logger
}

// RedisOpt is the queue connection on its own Redis DB.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewWorker builds the queue server and the periodic scheduler. Nothing runs until Start.
func NewWorker(
	bookings bookingRepo.BookingRepository,
	notifications notification.NotificationService,
	reconciler *booking.Reconciler,
	logger *zap.Logger,
) (*Worker, error) {
	redisOpts := RedisOpt()

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypePickupReminder, handleReminderTask(bookings, notifications, logger))
	mux.HandleFunc(tasks.TypeReconcileSubmission, handleReconcileTask(reconciler, logger))

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{Location: config.Location()})
	if _, err := scheduler.Register(config.AppConfig.ReconcileSchedule, tasks.NewReconcileTask(), asynq.Unique(time.Minute)); err != nil {
		return nil, fmt.Errorf("failed to register reconcile schedule %q: %w", config.AppConfig.ReconcileSchedule, err)
	}

	return &Worker{server: srv, scheduler: scheduler, mux: mux, logger: logger}, nil
}

// Start runs the server and the scheduler in the background, retrying startup with backoff.
func (w *Worker) Start() {
	go func() {
		w.logger.Info("Starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := w.server.Start(w.mux); err != nil {
				w.logger.Warn("Worker failed to start",
					zap.Int("attempt", attempts),
					zap.Int("maxAttempts", maxAttempts),
					zap.Error(err))
				if attempts == maxAttempts {
					w.logger.Error("Max retry attempts reached; background tasks disabled")
					return
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
				continue
			}
			break
		}
	}()

	if err := w.scheduler.Start(); err != nil {
		w.logger.Error("Scheduler failed to start", zap.Error(err))
	}
}

// Shutdown stops the scheduler and drains the server.
func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
}

func handleReminderTask(
	bookings bookingRepo.BookingRepository,
	notifications notification.NotificationService,
	logger *zap.Logger,
) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid reminder payload", zap.Error(err))
			return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
		}

		b, err := bookings.GetByID(ctx, p.BookingID)
		if errors.Is(err, database.ErrNotFound) {
			logger.Info("Reminder for missing booking dropped", zap.String("bookingID", p.BookingID))
			return nil
		}
		if err != nil {
			return err
		}
		if b.Status != models.StatusScheduled {
			logger.Info("Reminder skipped", zap.String("bookingID", b.ID), zap.String("status", string(b.Status)))
			return nil
		}

		if err := notifications.SendPickupReminder(ctx, *b); err != nil {
			logger.Warn("Pickup reminder failed", zap.String("bookingID", b.ID), zap.Error(err))
			return err
		}
		logger.Info("Pickup reminder sent", zap.String("bookingID", b.ID))
		return nil
	}
}

func handleReconcileTask(reconciler *booking.Reconciler, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		counts, err := reconciler.Sweep(ctx)
		if err != nil {
			logger.Error("Submission sweep failed", zap.Error(err))
			return err
		}
		if len(counts) > 0 {
			logger.Info("Submission sweep finished",
				zap.Int("completed", counts[models.SubmissionCompleted]),
				zap.Int("partial", counts[models.SubmissionPartial]),
				zap.Int("abandoned", counts[models.SubmissionAbandoned]))
		}
		return nil
	}
}
