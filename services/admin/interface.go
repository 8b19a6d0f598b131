package admin

import (
	"context"
	"io"
	"time"

	bookingRepo "scrapiz/database/repository/booking"
	profileRepo "scrapiz/database/repository/profile"
	"scrapiz/models"
	"scrapiz/services/booking"
	"scrapiz/services/notification"
	"scrapiz/utils"

	"go.uber.org/zap"
)

type AdminService interface {
	Stats(ctx context.Context) models.DashboardStats
	ListBookings(ctx context.Context, status string) ([]models.BookingWithDetails, error)
	GetBooking(ctx context.Context, id string) (*models.BookingWithDetails, error)
	UpdateBooking(ctx context.Context, id string, update models.BookingUpdate, listStatus string) (*models.Booking, []models.BookingWithDetails, error)
	ExportBookings(ctx context.Context, status string, w io.Writer) error
}

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Bookings      bookingRepo.BookingRepository
	Profiles      profileRepo.ProfileRepository
	Status        booking.StatusMachine
	Notifications notification.NotificationService
	Metrics       *utils.Metrics
	Logger        *zap.Logger
	Location      *time.Location
	Now           func() time.Time
}

func NewAdminService(
	bookings bookingRepo.BookingRepository,
	profiles profileRepo.ProfileRepository,
	status booking.StatusMachine,
	notifications notification.NotificationService,
	metrics *utils.Metrics,
	loc *time.Location,
	logger *zap.Logger,
) *DefaultAdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	if metrics == nil {
		metrics = utils.NopMetrics()
	}
	return &DefaultAdminService{
		Bookings:      bookings,
		Profiles:      profiles,
		Status:        status,
		Notifications: notifications,
		Metrics:       metrics,
		Logger:        logger,
		Location:      loc,
		Now:           time.Now,
	}
}

func (s *DefaultAdminService) now() time.Time {
	if s.Now == nil {
		return time.Now().In(s.Location)
	}
	return s.Now().In(s.Location)
}
