package booking

import (
	"context"
	"testing"
	"time"

	"scrapiz/models"
)

func TestReconcilerSweep(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	base := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	clock := base
	f.store.Now = func() time.Time { return clock }

	repo := f.store.Bookings()
	b := models.Booking{ID: "b1", UserID: "u1", Status: models.StatusScheduled}
	if err := repo.Create(ctx, &b); err != nil {
		t.Fatal(err)
	}
	if err := repo.AddPhoto(ctx, &models.BookingPhoto{ID: "p1", BookingID: "b1", PhotoURL: "x"}); err != nil {
		t.Fatal(err)
	}

	subs := []models.BookingSubmission{
		{ID: "s-abandoned", State: models.SubmissionPending},
		{ID: "s-partial", BookingID: "b1", PhotosExpected: 2, State: models.SubmissionPending},
		{ID: "s-complete", BookingID: "b1", PhotosExpected: 1, State: models.SubmissionPending},
	}
	for i := range subs {
		if err := repo.CreateSubmission(ctx, &subs[i]); err != nil {
			t.Fatal(err)
		}
	}

	clock = base.Add(5 * time.Minute)
	fresh := models.BookingSubmission{ID: "s-fresh", State: models.SubmissionPending}
	if err := repo.CreateSubmission(ctx, &fresh); err != nil {
		t.Fatal(err)
	}

	r := &Reconciler{
		Submissions: repo,
		Bookings:    repo,
		After:       30 * time.Minute,
		Now:         func() time.Time { return base.Add(31 * time.Minute) },
	}
	counts, err := r.Sweep(ctx)
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]models.SubmissionState{
		"s-abandoned": models.SubmissionAbandoned,
		"s-partial":   models.SubmissionPartial,
		"s-complete":  models.SubmissionCompleted,
		"s-fresh":     models.SubmissionPending,
	}
	for id, state := range want {
		sub, err := repo.GetSubmission(ctx, id)
		if err != nil {
			t.Fatal(err)
		}
		if sub.State != state {
			t.Errorf("%s state = %q, want %q", id, sub.State, state)
		}
	}
	if counts[models.SubmissionAbandoned] != 1 || counts[models.SubmissionPartial] != 1 || counts[models.SubmissionCompleted] != 1 {
		t.Errorf("counts = %v", counts)
	}
}
