package submit_change

import (
	"context"

	submitChange "github.com/m04kA/SMC-AppointmentService/internal/usecase/submit_change"
)

type SubmitChangeUseCase interface {
	Execute(ctx context.Context, req *submitChange.Request) (*submitChange.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
