package back_wizard_step

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/wizardsession/models"
)

type WizardSessionService interface {
	Back(ctx context.Context, sessionID string, clientID int64) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
