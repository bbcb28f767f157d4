package cancel_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	apptRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
)

// UseCase use case отмены записи.
// Клиент отменяет свою запись (cancelled_by_client),
// мастер - запись на свою услугу (cancelled_by_provider)
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

// Execute выполняет use case отмены записи
func (uc *UseCase) Execute(ctx context.Context, appointmentID, userID int64, reason *string) (*domain.Appointment, error) {
	if appointmentID <= 0 || userID <= 0 {
		return nil, fmt.Errorf("%w: appointmentID and userID must be positive", ErrInvalidInput)
	}

	// 1. Получаем запись
	appt, err := uc.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("CancelAppointment: appointment id=%d not found", appointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("CancelAppointment: repository error: %v", err)
		return nil, fmt.Errorf("%w: get appointment: %v", ErrInternal, err)
	}

	// 2. Определяем сторону отмены по владельцу
	var cancelStatus domain.AppointmentStatus
	switch userID {
	case appt.ClientID:
		cancelStatus = domain.StatusCancelledByClient
	case appt.ProviderID:
		cancelStatus = domain.StatusCancelledByProvider
	default:
		uc.logger.Warn("CancelAppointment: user=%d denied access to appointment=%d", userID, appointmentID)
		return nil, ErrAccessDenied
	}

	// 3. Проверяем, допускает ли статус отмену
	if !appt.CanBeCancelled() {
		uc.logger.Warn("CancelAppointment: appointment id=%d cannot be cancelled, status=%s",
			appointmentID, appt.Status)
		return nil, ErrCannotCancel
	}

	// 4. Отменяем
	if err := uc.appointmentRepo.Cancel(ctx, appointmentID, cancelStatus, reason); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("CancelAppointment: cancel failed for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: cancel appointment: %v", ErrInternal, err)
	}

	appt.Status = cancelStatus
	appt.CancellationReason = reason

	uc.logger.Info("CancelAppointment: appointment id=%d cancelled by user=%d, status=%s",
		appointmentID, userID, cancelStatus)

	return appt, nil
}
