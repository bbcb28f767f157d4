package get_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
)

// UseCase use case получения записи по ID.
// Запись видят две стороны: клиент и мастер
type UseCase struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(appointmentRepo AppointmentRepository, logger Logger) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// Execute выполняет use case получения записи
func (uc *UseCase) Execute(ctx context.Context, appointmentID, userID int64) (*domain.Appointment, error) {
	if appointmentID <= 0 || userID <= 0 {
		return nil, fmt.Errorf("%w: appointmentID and userID must be positive", ErrInvalidInput)
	}

	appt, err := uc.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("GetAppointment: appointment id=%d not found", appointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("GetAppointment: repository error: %v", err)
		return nil, fmt.Errorf("%w: get appointment: %v", ErrInternal, err)
	}

	if appt.ClientID != userID && appt.ProviderID != userID {
		uc.logger.Warn("GetAppointment: user=%d denied access to appointment=%d", userID, appointmentID)
		return nil, ErrAccessDenied
	}

	return appt, nil
}
