package utils

import (
	"scrapiz/config"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// NewTelegramBot returns nil when TELEGRAM_BOT_TOKEN is not configured.
func NewTelegramBot() (*tgbotapi.BotAPI, error) {
	if config.AppConfig.TelegramBotToken == "" {
		return nil, nil
	}
	return tgbotapi.NewBotAPI(config.AppConfig.TelegramBotToken)
}
