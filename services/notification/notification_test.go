package notification

import (
	"context"
	"strings"
	"testing"

	memoryRepo "scrapiz/database/repository/memory"
	"scrapiz/models"

	"firebase.google.com/go/v4/messaging"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakePusher struct {
	sent []*messaging.Message
}

func (f *fakePusher) Send(_ context.Context, m *messaging.Message) (string, error) {
	f.sent = append(f.sent, m)
	return "msg-1", nil
}

type fakeTelegram struct {
	texts []string
}

func (f *fakeTelegram) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		f.texts = append(f.texts, m.Text)
	}
	return tgbotapi.Message{}, nil
}

func booking() models.Booking {
	return models.Booking{
		ID:                 "b1",
		UserID:             "u1",
		MaterialCategory:   models.CategoryMetal,
		QuantityEstimation: "2 kg aluminum cans",
		PickupDate:         "2026-10-20",
		TimeSlot:           "9:00 AM - 11:00 AM",
		Status:             models.StatusAgentOnWay,
		PaymentMethod:      models.PaymentCash,
	}
}

func TestNotifyStatusChange(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		profile  *models.Profile
		wantSent bool
		wantText string
	}{
		{"no profile", nil, false, ""},
		{"no device token", &models.Profile{ID: "u1", PushNotificationsEnabled: true}, false, ""},
		{"push disabled", &models.Profile{ID: "u1", FCMToken: "tok"}, false, ""},
		{"english", &models.Profile{ID: "u1", FCMToken: "tok", PushNotificationsEnabled: true, PreferredLanguage: models.LanguageEnglish}, true, "Agent On Way"},
		{"hindi", &models.Profile{ID: "u1", FCMToken: "tok", PushNotificationsEnabled: true, PreferredLanguage: models.LanguageHindi}, true, "एजेंट रास्ते में है"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memoryRepo.NewStore()
			if tt.profile != nil {
				if err := store.Profiles().Upsert(ctx, tt.profile); err != nil {
					t.Fatal(err)
				}
			}
			pusher := &fakePusher{}
			svc := NewDefaultNotificationService(store.Profiles(), pusher, nil)

			if err := svc.NotifyStatusChange(ctx, booking()); err != nil {
				t.Fatal(err)
			}
			if got := len(pusher.sent) == 1; got != tt.wantSent {
				t.Fatalf("sent = %d messages, want sent=%v", len(pusher.sent), tt.wantSent)
			}
			if !tt.wantSent {
				return
			}
			msg := pusher.sent[0]
			if msg.Token != "tok" || msg.Data["bookingId"] != "b1" {
				t.Errorf("unexpected message: %+v", msg)
			}
			if !strings.Contains(msg.Notification.Body, tt.wantText) {
				t.Errorf("body %q does not mention %q", msg.Notification.Body, tt.wantText)
			}
		})
	}
}

func TestNilPusherIsNoop(t *testing.T) {
	svc := NewDefaultNotificationService(memoryRepo.NewStore().Profiles(), nil, nil)
	if err := svc.SendPickupReminder(context.Background(), booking()); err != nil {
		t.Fatal(err)
	}
}

func TestOpsNotifier(t *testing.T) {
	if _, ok := NewOpsNotifier(nil, 42).(NopOpsNotifier); !ok {
		t.Error("missing bot should give a no-op notifier")
	}

	tg := &fakeTelegram{}
	n := NewOpsNotifier(tg, 42)
	area := "Kothrud"
	addr := &models.Address{AddressLine: "12 MG Road", Area: &area, City: "Pune", PinCode: "411001"}
	if err := n.NewBooking(context.Background(), booking(), addr, 1); err != nil {
		t.Fatal(err)
	}
	if len(tg.texts) != 1 {
		t.Fatalf("sent %d messages", len(tg.texts))
	}
	for _, want := range []string{"Metal", "2 kg aluminum cans", "Pune", "photos: 1"} {
		if !strings.Contains(tg.texts[0], want) {
			t.Errorf("message %q missing %q", tg.texts[0], want)
		}
	}
}
