package admin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"scrapiz/database"
	bookingRepo "scrapiz/database/repository/booking"
	"scrapiz/models"
	"scrapiz/services/booking"

	"go.uber.org/zap"
)

// ErrEmptyUpdate is returned when a patch carries no field.
var ErrEmptyUpdate = errors.New("no fields to update")

// ParseStatusFilter maps the table filter to a status; "" and "all" mean no filter.
func ParseStatusFilter(status string) (models.BookingStatus, error) {
	if status == "" || status == "all" {
		return "", nil
	}
	s := models.BookingStatus(status)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", booking.ErrInvalidStatus, status)
	}
	return s, nil
}

func (s *DefaultAdminService) ListBookings(ctx context.Context, status string) ([]models.BookingWithDetails, error) {
	filter, err := ParseStatusFilter(status)
	if err != nil {
		return nil, err
	}
	list, err := s.Bookings.ListDetailed(ctx, bookingRepo.BookingFilter{Status: filter})
	if err != nil {
		s.Logger.Error("Failed to list bookings", zap.String("status", status), zap.Error(err))
		return []models.BookingWithDetails{}, nil
	}
	return list, nil
}

func (s *DefaultAdminService) GetBooking(ctx context.Context, id string) (*models.BookingWithDetails, error) {
	b, err := s.Bookings.GetDetails(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, booking.ErrBookingNotFound
	}
	return b, err
}

// UpdateBooking writes the admin fields directly and returns the stored booking together with
// the table re-read under listStatus. Concurrent updates are last-write-wins.
func (s *DefaultAdminService) UpdateBooking(ctx context.Context, id string, update models.BookingUpdate, listStatus string) (*models.Booking, []models.BookingWithDetails, error) {
	if update.Empty() {
		return nil, nil, ErrEmptyUpdate
	}
	if _, err := ParseStatusFilter(listStatus); err != nil {
		return nil, nil, err
	}

	current, err := s.Bookings.GetByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil, booking.ErrBookingNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	if update.Status != nil {
		if err := s.Status.Check(current.Status, *update.Status); err != nil {
			return nil, nil, err
		}
	}

	updated, err := s.Bookings.Update(ctx, id, update)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil, booking.ErrBookingNotFound
	}
	if err != nil {
		s.Logger.Error("Failed to update booking", zap.String("bookingID", id), zap.Error(err))
		return nil, nil, err
	}

	if update.Status != nil {
		s.Metrics.StatusUpdates.WithLabelValues(string(updated.Status)).Inc()
		if updated.Status != current.Status {
			s.notifyStatus(*updated)
		}
	}
	s.Logger.Info("Booking updated by admin",
		zap.String("bookingID", id),
		zap.String("from", string(current.Status)),
		zap.String("to", string(updated.Status)))

	list, err := s.ListBookings(ctx, listStatus)
	if err != nil {
		return nil, nil, err
	}
	return updated, list, nil
}

func (s *DefaultAdminService) notifyStatus(b models.Booking) {
	if s.Notifications == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.Notifications.NotifyStatusChange(ctx, b); err != nil {
			s.Metrics.NotificationsFailed.WithLabelValues("fcm").Inc()
			s.Logger.Warn("Status push failed", zap.String("bookingID", b.ID), zap.Error(err))
		}
	}()
}
