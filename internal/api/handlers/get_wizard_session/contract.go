package get_wizard_session

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/wizardsession/models"
)

type WizardSessionService interface {
	Get(ctx context.Context, sessionID string, clientID int64) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
