package submit_change

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, appt *domain.Appointment) error
	GetIntervalsByProviderAndDate(ctx context.Context, providerID int64, date time.Time, excludeAppointmentID *int64) ([]domain.BookedInterval, error)
}

// RescheduleRepository интерфейс репозитория запросов на перенос
type RescheduleRepository interface {
	Create(ctx context.Context, req *domain.RescheduleRequest) (*domain.RescheduleRequest, error)
	GetPendingByAppointmentID(ctx context.Context, appointmentID int64) (*domain.RescheduleRequest, error)
}

// SessionStore интерфейс хранилища сессий мастера записи
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (*domain.WizardSession, error)
	SaveSubmitted(ctx context.Context, sess *domain.WizardSession) error
	AcquireSubmitLock(ctx context.Context, sessionID string) (bool, error)
	ReleaseSubmitLock(ctx context.Context, sessionID string) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
