package services

import (
	"fmt"
	"log"
	"strconv"

	"backend_timesheet/config"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// NotificationService отправляет служебные уведомления в Telegram.
// Уведомления необязательны: при пустом токене или сбое отправки
// основная операция не прерывается.
type NotificationService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewNotificationService создает Telegram клиент из конфигурации.
// Возвращает отключенный сервис, если бот не настроен.
func NewNotificationService(cfg config.NotificationsConfig) *NotificationService {
	if cfg.TelegramBotToken == "" || cfg.TelegramChatID == "" {
		return &NotificationService{}
	}

	chatID, err := strconv.ParseInt(cfg.TelegramChatID, 10, 64)
	if err != nil {
		log.Printf("⚠️  Неверный TELEGRAM_CHAT_ID: %s, уведомления отключены", cfg.TelegramChatID)
		return &NotificationService{}
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.Printf("⚠️  Ошибка создания Telegram бота: %v, уведомления отключены", err)
		return &NotificationService{}
	}
	bot.Debug = false

	log.Printf("✅ Telegram бот авторизован: %s", bot.Self.UserName)
	return &NotificationService{bot: bot, chatID: chatID}
}

// Enabled сообщает, настроена ли отправка уведомлений
func (ns *NotificationService) Enabled() bool {
	return ns.bot != nil
}

// NotifyTimesheetGenerated отправляет уведомление о сформированном
// табеле. Ошибки отправки только логируются.
func (ns *NotificationService) NotifyTimesheetGenerated(login string, month, year, entryCount int) {
	if !ns.Enabled() {
		return
	}

	message := fmt.Sprintf("📋 Табель сформирован\nПользователь: %s\nПериод: %02d.%d\nДней с записями: %d",
		login, month, year, entryCount)

	msg := tgbotapi.NewMessage(ns.chatID, message)
	if _, err := ns.bot.Send(msg); err != nil {
		log.Printf("Ошибка отправки Telegram уведомления: %v", err)
	}
}
