package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/providerservice"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// GetIntervalsByProviderAndDate получает занятые интервалы мастера на дату
	GetIntervalsByProviderAndDate(ctx context.Context, providerID int64, date time.Time, excludeAppointmentID *int64) ([]domain.BookedInterval, error)
}

// ProviderServiceClient интерфейс клиента для ProviderService
type ProviderServiceClient interface {
	GetService(ctx context.Context, providerID, serviceID int64) (*providerservice.ServiceInfo, error)
	GetWorkingHoursWithGracefulDegradation(ctx context.Context, providerID int64, date time.Time) (*domain.WorkingHours, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
