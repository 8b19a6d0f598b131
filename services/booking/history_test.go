package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	memoryRepo "scrapiz/database/repository/memory"
	"scrapiz/models"
)

func TestHistoryNewestFirstAndOwnership(t *testing.T) {
	ctx := context.Background()
	store := memoryRepo.NewStore()
	repo := store.Bookings()

	base := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	repo.Put(models.Booking{ID: "old", UserID: "u1", Status: models.StatusCompleted, CreatedAt: base})
	repo.Put(models.Booking{ID: "new", UserID: "u1", Status: models.StatusScheduled, CreatedAt: base.Add(time.Hour)})
	repo.Put(models.Booking{ID: "theirs", UserID: "u2", Status: models.StatusScheduled, CreatedAt: base.Add(2 * time.Hour)})

	svc := NewHistoryService(repo, "1234567890", nil)

	list := svc.ListForUser(ctx, "u1")
	if len(list) != 2 || list[0].ID != "new" || list[1].ID != "old" {
		t.Fatalf("unexpected history: %+v", list)
	}

	if _, err := svc.GetForUser(ctx, "u1", "theirs"); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("foreign booking err = %v", err)
	}

	t.Run("read failure yields empty list", func(t *testing.T) {
		store.SetFault("bookings.ListDetailed", errors.New("timeout"))
		defer store.SetFault("bookings.ListDetailed", nil)
		if got := svc.ListForUser(ctx, "u1"); len(got) != 0 {
			t.Errorf("got %d bookings, want 0", len(got))
		}
	})
}

func TestDeletedAddressLeavesBooking(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	d := f.completeDraft(t, "u1", 0)

	b, err := f.submitter.Submit(ctx, "u1", d.ID)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.addresses.Delete(ctx, "u1", b.PickupAddressID); err != nil {
		t.Fatal(err)
	}

	svc := NewHistoryService(f.store.Bookings(), "1234567890", nil)
	got, err := svc.GetForUser(ctx, "u1", b.ID)
	if err != nil {
		t.Fatalf("booking should survive address deletion: %v", err)
	}
	if got.Address != nil {
		t.Error("joined address should be empty after deletion")
	}
	if got.PickupAddressID != b.PickupAddressID {
		t.Error("booking lost its address reference")
	}
}

func TestSupportLink(t *testing.T) {
	want := "https://wa.me/1234567890?text=Hi%2C%20I%20need%20help%20regarding%20my%20booking."
	if got := SupportLink("1234567890"); got != want {
		t.Errorf("SupportLink() = %q, want %q", got, want)
	}
}
