package cancel_appointment

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type CancelAppointmentUseCase interface {
	Execute(ctx context.Context, appointmentID, userID int64, reason *string) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
