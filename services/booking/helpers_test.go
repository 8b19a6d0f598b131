package booking

import (
	"context"
	"testing"
	"time"

	memoryRepo "scrapiz/database/repository/memory"
	"scrapiz/models"
	"scrapiz/services/address"
	"scrapiz/services/storage"
	"scrapiz/utils"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR fake image body")

func fixedWizard() Wizard {
	return Wizard{
		Now:      func() time.Time { return time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC) },
		Location: time.UTC,
	}
}

func strPtr(s string) *string { return &s }

type fixture struct {
	store     *memoryRepo.Store
	drafts    *MemoryDraftStore
	photos    *storage.MemoryPhotoStore
	addresses *address.DefaultAddressService
	service   *DraftService
	submitter *Submitter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memoryRepo.NewStore()
	drafts := NewMemoryDraftStore()
	photos := storage.NewMemoryPhotoStore("https://cdn.test/booking-photos")
	addresses := address.NewAddressService(store.Addresses(), nil)
	w := fixedWizard()

	return &fixture{
		store:     store,
		drafts:    drafts,
		photos:    photos,
		addresses: addresses,
		service:   NewDraftService(w, drafts, addresses, nil),
		submitter: &Submitter{
			Wizard:      w,
			Drafts:      drafts,
			Addresses:   addresses,
			Bookings:    store.Bookings(),
			Submissions: store.Bookings(),
			Photos:      photos,
			Metrics:     utils.NopMetrics(),
			Now:         w.Now,
		},
	}
}

// completeDraft walks a new draft through every step with the given number of photos.
func (f *fixture) completeDraft(t *testing.T, userID string, photos int) models.BookingDraft {
	t.Helper()
	ctx := context.Background()

	d, err := f.service.Create(ctx, userID)
	if err != nil {
		t.Fatal(err)
	}
	metal := models.CategoryMetal
	cash := models.PaymentCash
	d, err = f.service.Update(ctx, userID, d.ID, models.DraftChange{
		MaterialCategory:   &metal,
		QuantityEstimation: strPtr("2 kg aluminum cans"),
		Address: &models.DraftAddress{
			Title:       "Home",
			AddressLine: "12 MG Road",
			City:        "Pune",
			PinCode:     "411001",
		},
		PickupDate:    strPtr("2026-10-18"),
		TimeSlot:      strPtr("9:00 AM - 11:00 AM"),
		PaymentMethod: &cash,
	})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < photos; i++ {
		d, err = f.service.AddPhoto(ctx, userID, d.ID, "cans.png", pngBytes)
		if err != nil {
			t.Fatal(err)
		}
	}
	return d
}
