package advance_wizard_step

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/wizardsession/models"
)

type WizardSessionService interface {
	Advance(ctx context.Context, req *models.AdvanceStepRequest) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
