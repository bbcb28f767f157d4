package get_max_duration

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getMaxDuration "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_max_duration"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// MaxDurationResponse HTTP response model
type MaxDurationResponse struct {
	ProviderID       int64  `json:"providerId"`
	Date             string `json:"date"`
	StartTime        string `json:"startTime"`
	MaxDurationHours int    `json:"maxDurationHours"`

	// Fallback = true: график мастера недоступен, возвращено
	// консервативное значение по умолчанию
	Fallback bool `json:"fallback,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getMaxDuration.Response) *MaxDurationResponse {
	return &MaxDurationResponse{
		ProviderID:       resp.ProviderID,
		Date:             resp.Date.Format(domain.DateFormat),
		StartTime:        resp.StartTime.String(),
		MaxDurationHours: resp.MaxDurationHours,
		Fallback:         resp.Fallback,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(providerID int64, dateStr, startTimeStr string) (*getMaxDuration.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(startTimeStr)
	if err != nil {
		return nil, err
	}

	return &getMaxDuration.Request{
		ProviderID: providerID,
		Date:       date,
		StartTime:  startTime,
	}, nil
}
