package notification

import (
	"context"
	"fmt"
	"strings"

	"scrapiz/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// OpsNotifier tells the operations team about new bookings.
type OpsNotifier interface {
	NewBooking(ctx context.Context, booking models.Booking, address *models.Address, photos int) error
}

// TelegramSender is the part of tgbotapi.BotAPI we use.
type TelegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramOpsNotifier struct {
	bot    TelegramSender
	chatID int64
}

// NewOpsNotifier returns a no-op notifier when the bot or chat is not configured.
func NewOpsNotifier(bot TelegramSender, chatID int64) OpsNotifier {
	if bot == nil || chatID == 0 {
		return NopOpsNotifier{}
	}
	return &TelegramOpsNotifier{bot: bot, chatID: chatID}
}

func (n *TelegramOpsNotifier) NewBooking(_ context.Context, b models.Booking, address *models.Address, photos int) error {
	msg := tgbotapi.NewMessage(n.chatID, formatNewBooking(b, address, photos))
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram: failed to send ops message: %w", err)
	}
	return nil
}

func formatNewBooking(b models.Booking, address *models.Address, photos int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "New pickup %s\n", b.ID)
	fmt.Fprintf(&sb, "Material: %s (%s)\n", b.MaterialCategory.Label(), b.QuantityEstimation)
	fmt.Fprintf(&sb, "When: %s, %s\n", b.PickupDate, b.TimeSlot)
	if address != nil {
		fmt.Fprintf(&sb, "Where: %s, %s, %s\n", address.AddressLine, address.City, address.PinCode)
	}
	fmt.Fprintf(&sb, "Payment: %s, photos: %d", b.PaymentMethod, photos)
	if b.SpecialInstructions != nil && *b.SpecialInstructions != "" {
		fmt.Fprintf(&sb, "\nNotes: %s", *b.SpecialInstructions)
	}
	return sb.String()
}

type NopOpsNotifier struct{}

func (NopOpsNotifier) NewBooking(context.Context, models.Booking, *models.Address, int) error {
	return nil
}
