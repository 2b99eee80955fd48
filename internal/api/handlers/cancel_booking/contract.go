package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-DiagnosticsService/internal/service/bookings/models"
)

type BookingService interface {
	Cancel(ctx context.Context, bookingRef string, req *models.CancelBookingRequest) (*models.StatusResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
