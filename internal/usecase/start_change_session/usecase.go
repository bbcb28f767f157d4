package start_change_session

import (
	"context"
	"errors"
	"fmt"

	apptRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/service/wizardsession/models"
)

// UseCase use case открытия сессии изменения существующей записи.
// Режим определяется статусом записи: pending редактируется напрямую,
// активные записи в остальных статусах требуют запрос переноса
// с одобрением мастера
type UseCase struct {
	appointmentRepo AppointmentRepository
	wizardService   WizardSessionService
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	wizardService WizardSessionService,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		wizardService:   wizardService,
		logger:          logger,
	}
}

// Execute выполняет use case открытия сессии изменения
func (uc *UseCase) Execute(ctx context.Context, appointmentID, clientID int64) (*models.SessionResponse, error) {
	uc.logger.Info("StartChangeSession: appointment=%d, client=%d", appointmentID, clientID)

	if appointmentID <= 0 || clientID <= 0 {
		return nil, fmt.Errorf("%w: appointmentID and clientID must be positive", ErrInvalidInput)
	}

	appt, err := uc.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("StartChangeSession: appointment id=%d not found", appointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("StartChangeSession: repository error: %v", err)
		return nil, fmt.Errorf("%w: get appointment: %v", ErrInternal, err)
	}

	if appt.ClientID != clientID {
		uc.logger.Warn("StartChangeSession: client=%d denied access to appointment=%d", clientID, appointmentID)
		return nil, ErrAccessDenied
	}

	if !appt.CanBeEditedDirectly() && !appt.CanBeRescheduled() {
		uc.logger.Warn("StartChangeSession: appointment=%d in status=%s cannot be changed",
			appointmentID, appt.Status)
		return nil, ErrNotChangeable
	}

	resp, err := uc.wizardService.StartChange(ctx, clientID, appt)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("StartChangeSession: session=%s opened in mode=%s for appointment=%d",
		resp.SessionID, resp.Mode, appointmentID)

	return resp, nil
}
