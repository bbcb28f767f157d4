package get_max_duration

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ProviderServiceClient интерфейс клиента для ProviderService
type ProviderServiceClient interface {
	GetWorkingHoursWithGracefulDegradation(ctx context.Context, providerID int64, date time.Time) (*domain.WorkingHours, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
