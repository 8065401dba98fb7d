package notify

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"

	"github.com/m04kA/MST-BookingService/internal/domain"
)

const (
	// Таймаут на доставку одного уведомления
	sendTimeout = 10 * time.Second

	// Telegram ограничивает ~30 сообщений в секунду на бота,
	// держимся заметно ниже лимита
	messagesPerSecond = 10
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Metrics интерфейс для учета отправленных уведомлений
type Metrics interface {
	IncNotification(result string)
}

// Notifier отправляет уведомления о событиях бронирования в Telegram-канал мастера.
// Доставка асинхронная и негарантированная: ошибки отправки логируются,
// но никогда не влияют на результат операции бронирования
type Notifier struct {
	bot     *tgbotapi.BotAPI
	chatID  int64
	limiter *rate.Limiter
	logger  Logger
	metrics Metrics
}

// New создает нотификатор. Пустой токен выключает отправку,
// нотификатор при этом остается безопасным для вызовов
func New(token string, chatID int64, logger Logger, metrics Metrics) (*Notifier, error) {
	n := &Notifier{
		chatID:  chatID,
		limiter: rate.NewLimiter(rate.Limit(messagesPerSecond), messagesPerSecond),
		logger:  logger,
		metrics: metrics,
	}

	if token == "" {
		return n, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("notify: create telegram bot: %w", err)
	}
	n.bot = bot

	return n, nil
}

// Enabled возвращает true, если нотификатор сконфигурирован для отправки
func (n *Notifier) Enabled() bool {
	return n.bot != nil
}

// BookingCreated уведомляет о новой записи
func (n *Notifier) BookingCreated(booking *domain.Booking) {
	n.send(fmt.Sprintf(
		"Новая запись #%d: %s, %s %s, клиент %d, статус %s",
		booking.ID,
		booking.ServiceName,
		booking.BookingDate.Format(domain.DateFormat),
		booking.StartTime,
		booking.UserID,
		booking.Status,
	))
}

// BookingStatusChanged уведомляет о смене статуса записи
func (n *Notifier) BookingStatusChanged(booking *domain.Booking, previous domain.BookingStatus) {
	n.send(fmt.Sprintf(
		"Запись #%d: статус %s -> %s (%s %s)",
		booking.ID,
		previous,
		booking.Status,
		booking.BookingDate.Format(domain.DateFormat),
		booking.StartTime,
	))
}

// BookingCancelled уведомляет об отмене записи
func (n *Notifier) BookingCancelled(booking *domain.Booking, by domain.CancelledBy) {
	n.send(fmt.Sprintf(
		"Запись #%d отменена (%s): %s %s",
		booking.ID,
		by,
		booking.BookingDate.Format(domain.DateFormat),
		booking.StartTime,
	))
}

// send отправляет сообщение в фоне, не блокируя вызывающую операцию
func (n *Notifier) send(text string) {
	if n.bot == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		if err := n.limiter.Wait(ctx); err != nil {
			n.logger.Warn("notify: rate limiter wait: %v", err)
			n.metrics.IncNotification("dropped")
			return
		}

		msg := tgbotapi.NewMessage(n.chatID, text)
		if _, err := n.bot.Send(msg); err != nil {
			n.logger.Warn("notify: telegram send: %v", err)
			n.metrics.IncNotification("error")
			return
		}

		n.metrics.IncNotification("ok")
	}()
}
