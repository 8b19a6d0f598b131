package notification

import (
	"context"
	"errors"
	"fmt"

	"scrapiz/database"
	profileRepo "scrapiz/database/repository/profile"
	"scrapiz/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService sends pushes to booking owners.
type NotificationService interface {
	NotifyStatusChange(ctx context.Context, booking models.Booking) error
	SendPickupReminder(ctx context.Context, booking models.Booking) error
}

// Pusher is the part of the FCM client we use.
type Pusher interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	profiles profileRepo.ProfileRepository
	pusher   Pusher
	logger   *zap.Logger
}

// NewDefaultNotificationService returns a service that silently skips pushes when pusher is nil.
func NewDefaultNotificationService(profiles profileRepo.ProfileRepository, pusher Pusher, logger *zap.Logger) *DefaultNotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultNotificationService{profiles: profiles, pusher: pusher, logger: logger}
}

func (s *DefaultNotificationService) NotifyStatusChange(ctx context.Context, booking models.Booking) error {
	return s.sendToOwner(ctx, booking, "status_update", statusMessage)
}

func (s *DefaultNotificationService) SendPickupReminder(ctx context.Context, booking models.Booking) error {
	return s.sendToOwner(ctx, booking, "pickup_reminder", reminderMessage)
}

func (s *DefaultNotificationService) sendToOwner(
	ctx context.Context,
	booking models.Booking,
	kind string,
	compose func(models.Language, models.Booking) (string, string),
) error {
	if s.pusher == nil {
		return nil
	}

	p, err := s.profiles.GetByID(ctx, booking.UserID)
	if errors.Is(err, database.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("notification: could not load profile %s: %w", booking.UserID, err)
	}
	if !p.PushNotificationsEnabled || p.FCMToken == "" {
		s.logger.Debug("Push skipped", zap.String("userID", p.ID), zap.String("type", kind))
		return nil
	}

	title, body := compose(p.PreferredLanguage, booking)
	msg := &messaging.Message{
		Token: p.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: map[string]string{
			"type":      kind,
			"bookingId": booking.ID,
			"status":    string(booking.Status),
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "bookings",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}

	id, err := s.pusher.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("notification: failed to send FCM message: %w", err)
	}
	s.logger.Debug("Push sent", zap.String("userID", p.ID), zap.String("type", kind), zap.String("messageID", id))
	return nil
}
