package list_client_appointments

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// UseCase use case получения истории записей клиента
// Клиент видит только собственные записи, опционально с фильтром по статусу
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

// Execute выполняет use case получения истории записей
func (uc *UseCase) Execute(ctx context.Context, clientID, requesterID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	if clientID <= 0 || requesterID <= 0 {
		return nil, fmt.Errorf("%w: clientID and requesterID must be positive", ErrInvalidInput)
	}

	if clientID != requesterID {
		uc.logger.Warn("ListClientAppointments: user=%d denied access to client=%d history", requesterID, clientID)
		return nil, ErrAccessDenied
	}

	appointments, err := uc.appointmentRepo.GetByClientID(ctx, clientID, status)
	if err != nil {
		uc.logger.Error("ListClientAppointments: repository error: %v", err)
		return nil, fmt.Errorf("%w: get appointments: %v", ErrInternal, err)
	}

	uc.logger.Info("ListClientAppointments: client=%d, count=%d", clientID, len(appointments))

	return appointments, nil
}
