package start_change_session

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/wizardsession/models"
)

type StartChangeSessionUseCase interface {
	Execute(ctx context.Context, appointmentID, clientID int64) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
