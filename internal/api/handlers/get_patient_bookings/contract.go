package get_patient_bookings

import (
	"context"

	"github.com/m04kA/SMC-DiagnosticsService/internal/service/bookings/models"
)

type BookingService interface {
	GetPatientBookings(ctx context.Context, req *models.GetPatientBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
