package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ProviderID    int64           `json:"providerId"`
	ServiceID     int64           `json:"serviceId"`
	Date          string          `json:"date"`
	DurationHours int             `json:"durationHours"`
	Slots         []AvailableSlot `json:"slots"`

	// AvailabilityUnknown = true: график мастера недоступен, слоты не
	// вычислены, UI предлагает связаться с мастером напрямую
	AvailabilityUnknown bool `json:"availabilityUnknown,omitempty"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	Time          string `json:"time"`
	FormattedTime string `json:"formattedTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			Time:          slot.Time.String(),
			FormattedTime: slot.FormattedTime,
		}
	}

	return &AvailableSlotsResponse{
		ProviderID:          resp.ProviderID,
		ServiceID:           resp.ServiceID,
		Date:                resp.Date.Format(domain.DateFormat),
		DurationHours:       resp.DurationHours,
		Slots:               slots,
		AvailabilityUnknown: resp.AvailabilityUnknown,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(clientID, providerID, serviceID int64, dateStr string, durationHours int) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ClientID:      clientID,
		ProviderID:    providerID,
		ServiceID:     serviceID,
		Date:          date,
		DurationHours: durationHours,
	}, nil
}
