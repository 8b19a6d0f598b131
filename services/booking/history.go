package booking

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"scrapiz/database"
	bookingRepo "scrapiz/database/repository/booking"
	"scrapiz/models"

	"go.uber.org/zap"
)

const supportMessage = "Hi, I need help regarding my booking."

// HistoryService serves the "my bookings" view.
type HistoryService struct {
	Bookings      bookingRepo.BookingRepository
	SupportNumber string
	Logger        *zap.Logger
}

func NewHistoryService(bookings bookingRepo.BookingRepository, supportNumber string, logger *zap.Logger) *HistoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryService{Bookings: bookings, SupportNumber: supportNumber, Logger: logger}
}

// ListForUser returns the user's bookings newest first. A read failure is logged and yields an empty list.
func (s *HistoryService) ListForUser(ctx context.Context, userID string) []models.BookingWithDetails {
	list, err := s.Bookings.ListDetailed(ctx, bookingRepo.BookingFilter{UserID: userID})
	if err != nil {
		s.Logger.Error("Failed to load booking history", zap.String("userID", userID), zap.Error(err))
		return []models.BookingWithDetails{}
	}
	for i := range list {
		// the owner already knows who they are
		list[i].Customer = nil
	}
	return list
}

// GetForUser returns one booking if the user owns it.
func (s *HistoryService) GetForUser(ctx context.Context, userID, bookingID string) (*models.BookingWithDetails, error) {
	b, err := s.Bookings.GetDetails(ctx, bookingID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrBookingNotFound
	}
	b.Customer = nil
	return b, nil
}

// SupportLink opens a WhatsApp chat with the support line, prefilled with a help message.
func SupportLink(number string) string {
	text := strings.ReplaceAll(url.QueryEscape(supportMessage), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", number, text)
}

func (s *HistoryService) SupportLink(ctx context.Context, userID, bookingID string) (string, error) {
	if _, err := s.GetForUser(ctx, userID, bookingID); err != nil {
		return "", err
	}
	return SupportLink(s.SupportNumber), nil
}
