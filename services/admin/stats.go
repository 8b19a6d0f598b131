package admin

import (
	"context"
	"time"

	"scrapiz/database"
	bookingRepo "scrapiz/database/repository/booking"
	"scrapiz/models"

	"go.uber.org/zap"
)

const statsQueryTimeout = 5 * time.Second

// MonthStart is midnight on the first day of t's month, in t's location.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// Stats runs each dashboard query on its own. A failed query is logged and its value stays 0.
func (s *DefaultAdminService) Stats(ctx context.Context) models.DashboardStats {
	var stats models.DashboardStats
	now := s.now()
	today := now.Format(models.DateLayout)

	count := func(name string, filter bookingRepo.BookingFilter, dst *int64) {
		qctx, cancel := database.WithTimeout(ctx, statsQueryTimeout)
		defer cancel()
		n, err := s.Bookings.Count(qctx, filter)
		if err != nil {
			s.Logger.Error("Dashboard query failed", zap.String("stat", name), zap.Error(err))
			return
		}
		*dst = n
	}

	count("total_bookings", bookingRepo.BookingFilter{}, &stats.TotalBookings)
	count("pending_bookings", bookingRepo.BookingFilter{Status: models.StatusScheduled}, &stats.PendingBookings)
	count("completed_bookings", bookingRepo.BookingFilter{Status: models.StatusCompleted}, &stats.CompletedBookings)
	count("today_pickups", bookingRepo.BookingFilter{PickupDate: today}, &stats.TodayPickups)

	func() {
		qctx, cancel := database.WithTimeout(ctx, statsQueryTimeout)
		defer cancel()
		n, err := s.Profiles.Count(qctx)
		if err != nil {
			s.Logger.Error("Dashboard query failed", zap.String("stat", "total_users"), zap.Error(err))
			return
		}
		stats.TotalUsers = n
	}()

	func() {
		qctx, cancel := database.WithTimeout(ctx, statsQueryTimeout)
		defer cancel()
		sum, err := s.Bookings.SumFinalPrice(qctx, models.StatusCompleted, MonthStart(now))
		if err != nil {
			s.Logger.Error("Dashboard query failed", zap.String("stat", "monthly_revenue"), zap.Error(err))
			return
		}
		stats.MonthlyRevenue = sum
	}()

	return stats
}
