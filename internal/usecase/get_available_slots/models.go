package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ClientID      int64     // ID клиента (для логирования, не влияет на результат)
	ProviderID    int64     // ID мастера
	ServiceID     int64     // ID услуги
	Date          time.Time // Дата для получения слотов (без времени)
	DurationHours int       // Желаемая длительность услуги в часах
}

// Response модель ответа со списком доступных слотов.
// ProviderID, ServiceID и Date повторяют запрос: UI сверяет эту тройку
// с актуальным состоянием черновика и отбрасывает устаревшие ответы,
// пришедшие после смены даты или услуги
type Response struct {
	ProviderID    int64         `json:"providerId"`
	ServiceID     int64         `json:"serviceId"`
	Date          time.Time     `json:"date"`
	DurationHours int           `json:"durationHours"`
	Slots         []domain.Slot `json:"slots"`

	// AvailabilityUnknown = true означает мягкую деградацию: график мастера
	// не удалось получить, клиенту предлагается связаться с мастером напрямую
	AvailabilityUnknown bool `json:"availabilityUnknown"`
}
