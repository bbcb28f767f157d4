package list_client_appointments

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type ListClientAppointmentsUseCase interface {
	Execute(ctx context.Context, clientID, requesterID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
