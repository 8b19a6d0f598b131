package booking

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestDraftServiceOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	d, err := f.service.Create(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.service.Get(ctx, "u2", d.ID); !errors.Is(err, ErrDraftNotFound) {
		t.Errorf("foreign draft err = %v, want ErrDraftNotFound", err)
	}
	if _, err := f.service.Next(ctx, "u2", d.ID); !errors.Is(err, ErrDraftNotFound) {
		t.Errorf("foreign next err = %v, want ErrDraftNotFound", err)
	}
}

func TestDraftServiceNextRequiresStep(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	d, _ := f.service.Create(ctx, "u1")
	if _, err := f.service.Next(ctx, "u1", d.ID); !errors.Is(err, ErrStepIncomplete) {
		t.Fatalf("err = %v, want ErrStepIncomplete", err)
	}

	d = f.completeDraft(t, "u1", 0)
	for want := 2; want <= 6; want++ {
		var err error
		d, err = f.service.Next(ctx, "u1", d.ID)
		if err != nil {
			t.Fatal(err)
		}
		if d.Step != want {
			t.Errorf("step = %d, want %d", d.Step, want)
		}
	}
	d, _ = f.service.Previous(ctx, "u1", d.ID)
	if d.Step != 5 {
		t.Errorf("step after previous = %d, want 5", d.Step)
	}
}

func TestDraftServicePhotos(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	d := f.completeDraft(t, "u1", 2)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"not an image", []byte("%PDF-1.4 not a photo")},
		{"too large", append(append([]byte{}, pngBytes...), bytes.Repeat([]byte{0}, MaxPhotoBytes)...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.service.AddPhoto(ctx, "u1", d.ID, "x", tt.data); !errors.Is(err, ErrInvalidPhoto) {
				t.Errorf("err = %v, want ErrInvalidPhoto", err)
			}
		})
	}

	removedKey := d.Photos[0].Key
	d, err := f.service.RemovePhoto(ctx, "u1", d.ID, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Photos) != 1 {
		t.Fatalf("photos = %d, want 1", len(d.Photos))
	}
	if _, err := f.drafts.GetPhoto(ctx, d.ID, removedKey); err == nil {
		t.Error("removed photo bytes still staged")
	}
	if _, err := f.service.RemovePhoto(ctx, "u1", d.ID, 4); !errors.Is(err, ErrPhotoNotFound) {
		t.Errorf("err = %v, want ErrPhotoNotFound", err)
	}
}

func TestDraftServiceLockedAfterSubmissionStarts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	d := f.completeDraft(t, "u1", 1)

	f.store.SetFault("bookings.Create", errors.New("down"))
	if _, err := f.submitter.Submit(ctx, "u1", d.ID); err == nil {
		t.Fatal("expected submission failure")
	}

	if _, err := f.service.AddPhoto(ctx, "u1", d.ID, "more.png", pngBytes); !errors.Is(err, ErrDraftLocked) {
		t.Errorf("AddPhoto err = %v, want ErrDraftLocked", err)
	}
	if _, err := f.service.RemovePhoto(ctx, "u1", d.ID, 0); !errors.Is(err, ErrDraftLocked) {
		t.Errorf("RemovePhoto err = %v, want ErrDraftLocked", err)
	}
}
