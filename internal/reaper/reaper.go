package reaper

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
)

// BookingService интерфейс сервиса бронирований
type BookingService interface {
	CancelStalePending(ctx context.Context, ttl time.Duration) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Reaper по расписанию отменяет pending-бронирования, не оплаченные за TTL,
// и возвращает их слоты в оборот
type Reaper struct {
	service  BookingService
	schedule string
	ttl      time.Duration
	logger   Logger
	cron     *cron.Cron
}

// New создает новый reaper
func New(service BookingService, schedule string, ttl time.Duration, logger Logger) *Reaper {
	return &Reaper{
		service:  service,
		schedule: schedule,
		ttl:      ttl,
		logger:   logger,
		cron:     cron.New(),
	}
}

// Start запускает фоновое расписание
func (r *Reaper) Start() error {
	_, err := r.cron.AddFunc(r.schedule, r.sweep)
	if err != nil {
		return err
	}

	r.cron.Start()
	r.logger.Info("Reaper: started with schedule %q, ttl=%s", r.schedule, r.ttl)
	return nil
}

// Stop останавливает расписание и дожидается завершения текущего прохода
func (r *Reaper) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.logger.Info("Reaper: stopped")
}

func (r *Reaper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cancelled, err := r.service.CancelStalePending(ctx, r.ttl)
	if err != nil {
		r.logger.Error("Reaper: sweep failed: %v", err)
		return
	}

	if cancelled > 0 {
		r.logger.Info("Reaper: cancelled %d stale pending bookings", cancelled)
	}
}
