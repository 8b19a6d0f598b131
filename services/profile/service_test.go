package profile

import (
	"context"
	"errors"
	"testing"

	memoryRepo "scrapiz/database/repository/memory"
	"scrapiz/models"
)

func TestGetReturnsDefaults(t *testing.T) {
	store := memoryRepo.NewStore()
	svc := NewProfileService(store.Profiles(), nil)

	p, err := svc.Get(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if p.PreferredLanguage != models.LanguageEnglish || !p.PushNotificationsEnabled {
		t.Errorf("unexpected defaults: %+v", p)
	}
	if n, _ := store.Profiles().Count(context.Background()); n != 0 {
		t.Error("reading defaults must not persist a profile")
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	store := memoryRepo.NewStore()
	svc := NewProfileService(store.Profiles(), nil)

	name := "  Asha Patel "
	hindi := models.LanguageHindi
	off := false
	p, err := svc.Update(ctx, "u1", models.ProfileUpdateRequest{
		FullName:                 &name,
		PreferredLanguage:        &hindi,
		PushNotificationsEnabled: &off,
	})
	if err != nil {
		t.Fatal(err)
	}
	if p.FullName == nil || *p.FullName != "Asha Patel" {
		t.Errorf("full name = %v", p.FullName)
	}
	if p.PreferredLanguage != models.LanguageHindi || p.PushNotificationsEnabled {
		t.Errorf("unexpected profile: %+v", p)
	}

	phone := "9876543210"
	p, err = svc.Update(ctx, "u1", models.ProfileUpdateRequest{Phone: &phone})
	if err != nil {
		t.Fatal(err)
	}
	if p.FullName == nil || p.PreferredLanguage != models.LanguageHindi {
		t.Error("partial update dropped earlier values")
	}

	bad := models.Language("french")
	if _, err := svc.Update(ctx, "u1", models.ProfileUpdateRequest{PreferredLanguage: &bad}); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("err = %v, want ErrInvalidProfile", err)
	}
}

func TestRegisterDevice(t *testing.T) {
	ctx := context.Background()
	store := memoryRepo.NewStore()
	svc := NewProfileService(store.Profiles(), nil)

	if err := svc.RegisterDevice(ctx, "u1", " "); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("err = %v, want ErrInvalidProfile", err)
	}
	if err := svc.RegisterDevice(ctx, "u1", "token-1"); err != nil {
		t.Fatal(err)
	}
	p, err := svc.Get(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if p.FCMToken != "token-1" || !p.PushNotificationsEnabled {
		t.Errorf("unexpected profile: %+v", p)
	}
}
