package start_wizard_session

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/wizardsession/models"
)

type WizardSessionService interface {
	Start(ctx context.Context, req *models.StartSessionRequest) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
