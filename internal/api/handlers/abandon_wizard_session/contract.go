package abandon_wizard_session

import "context"

type WizardSessionService interface {
	Abandon(ctx context.Context, sessionID string, clientID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
