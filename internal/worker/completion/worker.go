package completion

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
)

// DefaultSchedule расписание запуска по умолчанию
const DefaultSchedule = "@every 5m"

// Worker периодически переводит прошедшие подтвержденные записи в completed
// Запись считается прошедшей, когда момент её начала уже позади
type Worker struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger

	cron     *cron.Cron
	schedule string
}

// New создает воркер завершения записей
// Пустое расписание заменяется на DefaultSchedule
func New(bookingRepo BookingRepository, logger Logger, schedule string) *Worker {
	if schedule == "" {
		schedule = DefaultSchedule
	}

	return &Worker{
		bookingRepo:  bookingRepo,
		timeProvider: RealTimeProvider{},
		logger:       logger,
		cron:         cron.New(),
		schedule:     schedule,
	}
}

// Start регистрирует задачу и запускает планировщик
func (w *Worker) Start(ctx context.Context) error {
	if _, err := w.cron.AddFunc(w.schedule, func() {
		w.Run(ctx)
	}); err != nil {
		return fmt.Errorf("completion worker: Start - invalid schedule %q: %w", w.schedule, err)
	}

	w.cron.Start()
	w.logger.Info("Completion worker started with schedule %q", w.schedule)
	return nil
}

// Stop останавливает планировщик и дожидается завершения текущего прогона
func (w *Worker) Stop() {
	stopCtx := w.cron.Stop()
	<-stopCtx.Done()
	w.logger.Info("Completion worker stopped")
}

// Run выполняет один проход: завершает все прошедшие подтвержденные записи
// Ошибки логируются и не прерывают планировщик
func (w *Worker) Run(ctx context.Context) {
	now := w.timeProvider.Now()

	completed, err := w.bookingRepo.CompletePast(ctx, now)
	if err != nil {
		w.logger.Error("Completion worker: failed to complete past bookings: %v", err)
		return
	}

	if completed > 0 {
		w.logger.Info("Completion worker: marked %d past bookings as completed", completed)
	}
}
