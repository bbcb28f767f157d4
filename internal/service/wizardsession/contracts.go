package wizardsession

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/providerservice"
)

// SessionStore интерфейс хранилища сессий мастера записи
type SessionStore interface {
	Save(ctx context.Context, sess *domain.WizardSession) error
	Get(ctx context.Context, sessionID string) (*domain.WizardSession, error)
	Delete(ctx context.Context, sessionID string) error
}

// QuoteRepository интерфейс репозитория смет
type QuoteRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Quote, error)
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
