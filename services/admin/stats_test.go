package admin

import (
	"context"
	"errors"
	"testing"
	"time"

	memoryRepo "scrapiz/database/repository/memory"
	"scrapiz/models"
	"scrapiz/services/booking"
)

func floatPtr(f float64) *float64 { return &f }

func newTestService(store *memoryRepo.Store, now time.Time) *DefaultAdminService {
	s := NewAdminService(store.Bookings(), store.Profiles(), booking.NewStatusMachine(false), nil, nil, time.UTC, nil)
	s.Now = func() time.Time { return now }
	return s
}

func TestMonthStart(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	got := MonthStart(time.Date(2026, 10, 16, 15, 42, 0, 0, loc))
	want := time.Date(2026, 10, 1, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("MonthStart() = %v, want %v", got, want)
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	store := memoryRepo.NewStore()
	repo := store.Bookings()

	repo.Put(models.Booking{ID: "a", Status: models.StatusScheduled, PickupDate: "2026-10-16", CreatedAt: now})
	repo.Put(models.Booking{ID: "b", Status: models.StatusScheduled, PickupDate: "2026-10-17", CreatedAt: now})
	repo.Put(models.Booking{ID: "c", Status: models.StatusCompleted, PickupDate: "2026-10-16", FinalPrice: floatPtr(120), CreatedAt: now})
	repo.Put(models.Booking{ID: "d", Status: models.StatusCompleted, PickupDate: "2026-10-02", CreatedAt: now.AddDate(0, 0, -10)})
	// completed last month, outside the revenue window
	repo.Put(models.Booking{ID: "e", Status: models.StatusCompleted, PickupDate: "2026-09-29", FinalPrice: floatPtr(500), CreatedAt: now.AddDate(0, -1, 0)})

	for _, id := range []string{"u1", "u2"} {
		if err := store.Profiles().Upsert(ctx, &models.Profile{ID: id}); err != nil {
			t.Fatal(err)
		}
	}

	got := newTestService(store, now).Stats(ctx)
	want := models.DashboardStats{
		TotalBookings:     5,
		PendingBookings:   2,
		CompletedBookings: 3,
		TotalUsers:        2,
		TodayPickups:      2,
		MonthlyRevenue:    120,
	}
	if got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

func TestStatsFailedQueriesStayZero(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	store := memoryRepo.NewStore()
	store.Bookings().Put(models.Booking{ID: "a", Status: models.StatusCompleted, FinalPrice: floatPtr(40), CreatedAt: now})
	store.Profiles().Upsert(ctx, &models.Profile{ID: "u1"})

	store.SetFault("bookings.Count", errors.New("timeout"))
	got := newTestService(store, now).Stats(ctx)

	if got.TotalBookings != 0 || got.CompletedBookings != 0 || got.TodayPickups != 0 {
		t.Errorf("failed counts should stay 0: %+v", got)
	}
	if got.TotalUsers != 1 || got.MonthlyRevenue != 40 {
		t.Errorf("independent queries should still answer: %+v", got)
	}
}
