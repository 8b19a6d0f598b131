package booking

import (
	"errors"
	"testing"

	"scrapiz/models"
)

func TestAvailableDates(t *testing.T) {
	dates := fixedWizard().AvailableDates()
	if len(dates) != 8 {
		t.Fatalf("got %d dates, want 8", len(dates))
	}
	if dates[0] != "2026-10-16" || dates[7] != "2026-10-23" {
		t.Errorf("dates = %v", dates)
	}
}

func TestNewDraftDefaults(t *testing.T) {
	d := fixedWizard().NewDraft("d1", "u1")
	if d.Step != 1 {
		t.Errorf("step = %d, want 1", d.Step)
	}
	if d.PaymentMethod != models.PaymentCash {
		t.Errorf("payment = %q, want cash", d.PaymentMethod)
	}
}

func TestStepNavigation(t *testing.T) {
	w := fixedWizard()
	d := w.NewDraft("d1", "u1")

	t.Run("previous clamps at first step", func(t *testing.T) {
		if got := w.Previous(d).Step; got != 1 {
			t.Errorf("step = %d, want 1", got)
		}
	})

	t.Run("next refuses incomplete step", func(t *testing.T) {
		_, err := w.Next(d)
		if !errors.Is(err, ErrStepIncomplete) {
			t.Fatalf("err = %v, want ErrStepIncomplete", err)
		}
	})

	metal := models.CategoryMetal
	d, err := w.Apply(d, models.DraftChange{
		MaterialCategory:   &metal,
		QuantityEstimation: strPtr("2 kg aluminum cans"),
		Address:            &models.DraftAddress{Title: "Home", AddressLine: "12 MG Road", City: "Pune", PinCode: "411001"},
		PickupDate:         strPtr("2026-10-16"),
		TimeSlot:           strPtr("5:00 PM - 7:00 PM"),
	})
	if err != nil {
		t.Fatal(err)
	}

	for want := 2; want <= 6; want++ {
		d, err = w.Next(d)
		if err != nil {
			t.Fatalf("Next to %d: %v", want, err)
		}
		if d.Step != want {
			t.Fatalf("step = %d, want %d", d.Step, want)
		}
	}

	t.Run("next clamps at last step", func(t *testing.T) {
		next, err := w.Next(d)
		if err != nil {
			t.Fatal(err)
		}
		if next.Step != 6 {
			t.Errorf("step = %d, want 6", next.Step)
		}
	})

	t.Run("going back keeps later values", func(t *testing.T) {
		back := d
		for i := 0; i < 5; i++ {
			back = w.Previous(back)
		}
		if back.Step != 1 {
			t.Fatalf("step = %d, want 1", back.Step)
		}
		if back.TimeSlot != "5:00 PM - 7:00 PM" || back.QuantityEstimation != "2 kg aluminum cans" || back.Address.City != "Pune" {
			t.Errorf("values lost going back: %+v", back)
		}
	})
}

func TestStepValid(t *testing.T) {
	w := fixedWizard()
	base := w.NewDraft("d1", "u1")

	tests := []struct {
		name   string
		step   int
		mutate func(d *models.BookingDraft)
		valid  bool
	}{
		{"category empty", 1, func(d *models.BookingDraft) {}, false},
		{"category set", 1, func(d *models.BookingDraft) { d.MaterialCategory = models.CategoryGlass }, true},
		{"quantity blank", 2, func(d *models.BookingDraft) { d.QuantityEstimation = "   " }, false},
		{"quantity set", 2, func(d *models.BookingDraft) { d.QuantityEstimation = "one bag" }, true},
		{"address missing pin", 3, func(d *models.BookingDraft) {
			d.Address = models.DraftAddress{Title: "Home", AddressLine: "x", City: "y"}
		}, false},
		{"address without area", 3, func(d *models.BookingDraft) {
			d.Address = models.DraftAddress{Title: "Home", AddressLine: "x", City: "y", PinCode: "1"}
		}, true},
		{"saved address", 3, func(d *models.BookingDraft) { d.Address = models.DraftAddress{ID: "a1"} }, true},
		{"date without slot", 4, func(d *models.BookingDraft) { d.PickupDate = "2026-10-17" }, false},
		{"past date", 4, func(d *models.BookingDraft) {
			d.PickupDate = "2026-10-15"
			d.TimeSlot = "9:00 AM - 11:00 AM"
		}, false},
		{"unknown slot", 4, func(d *models.BookingDraft) {
			d.PickupDate = "2026-10-17"
			d.TimeSlot = "8:00 PM - 9:00 PM"
		}, false},
		{"today with slot", 4, func(d *models.BookingDraft) {
			d.PickupDate = "2026-10-16"
			d.TimeSlot = "9:00 AM - 11:00 AM"
		}, true},
		{"photos optional", 5, func(d *models.BookingDraft) {}, true},
		{"six photos", 5, func(d *models.BookingDraft) { d.Photos = make([]models.DraftPhoto, 6) }, false},
		{"review", 6, func(d *models.BookingDraft) {}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := base
			d.Photos = clonePhotos(base.Photos)
			tt.mutate(&d)
			err := w.StepValid(d, tt.step)
			if (err == nil) != tt.valid {
				t.Errorf("StepValid(step %d) err = %v, want valid=%v", tt.step, err, tt.valid)
			}
		})
	}
}

func TestApplyRejectsUnknownValues(t *testing.T) {
	w := fixedWizard()
	d := w.NewDraft("d1", "u1")

	bogusCategory := models.MaterialCategory("wood")
	bogusPayment := models.PaymentMethod("card")

	for name, ch := range map[string]models.DraftChange{
		"category": {MaterialCategory: &bogusCategory},
		"payment":  {PaymentMethod: &bogusPayment},
		"slot":     {TimeSlot: strPtr("midnight")},
		"date":     {PickupDate: strPtr("18/10/2026")},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := w.Apply(d, ch)
			if !errors.Is(err, ErrInvalidDraft) {
				t.Fatalf("err = %v, want ErrInvalidDraft", err)
			}
			if got.MaterialCategory != "" || got.PaymentMethod != models.PaymentCash {
				t.Error("rejected change leaked into the draft")
			}
		})
	}
}

func TestPhotosLimitAndValueSemantics(t *testing.T) {
	w := fixedWizard()
	d := w.NewDraft("d1", "u1")

	var err error
	for i := 0; i < models.MaxDraftPhotos; i++ {
		d, err = w.AddPhoto(d, models.DraftPhoto{Key: string(rune('a' + i))})
		if err != nil {
			t.Fatal(err)
		}
	}
	if _, err := w.AddPhoto(d, models.DraftPhoto{Key: "z"}); !errors.Is(err, ErrTooManyPhotos) {
		t.Fatalf("err = %v, want ErrTooManyPhotos", err)
	}

	before := d
	after, removed, err := w.RemovePhoto(d, 1)
	if err != nil {
		t.Fatal(err)
	}
	if removed.Key != "b" || len(after.Photos) != 4 || after.Photos[1].Key != "c" {
		t.Errorf("unexpected removal result: removed=%v photos=%v", removed, after.Photos)
	}
	if len(before.Photos) != 5 || before.Photos[1].Key != "b" {
		t.Error("RemovePhoto mutated the previous draft")
	}

	if _, _, err := w.RemovePhoto(after, 9); !errors.Is(err, ErrPhotoNotFound) {
		t.Errorf("err = %v, want ErrPhotoNotFound", err)
	}
}
