package get_max_duration

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на вычисление максимальной длительности
type Request struct {
	ProviderID int64
	Date       time.Time
	StartTime  types.TimeString
}

// Response модель ответа
type Response struct {
	ProviderID       int64            `json:"providerId"`
	Date             time.Time        `json:"date"`
	StartTime        types.TimeString `json:"startTime"`
	MaxDurationHours int              `json:"maxDurationHours"`

	// Fallback = true означает, что график мастера был недоступен
	// и возвращено консервативное значение по умолчанию
	Fallback bool `json:"fallback"`
}
