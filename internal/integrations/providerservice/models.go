package providerservice

// Logger интерфейс логгера, используемый клиентом
type Logger interface {
	Info(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// ServiceInfo модель услуги мастера из ProviderService
type ServiceInfo struct {
	ID         int64   `json:"id"`
	ProviderID int64   `json:"provider_id"`
	Name       string  `json:"name"`
	BasePrice  float64 `json:"base_price"`
	TravelFee  float64 `json:"travel_fee"`
	IsActive   bool    `json:"is_active"`
}

// WorkingHoursResponse график мастера на конкретную дату
type WorkingHoursResponse struct {
	IsAvailable bool   `json:"is_available"`
	StartTime   string `json:"start_time"` // "HH:MM"
	EndTime     string `json:"end_time"`   // "HH:MM"
}

// ErrorResponse модель ошибки от ProviderService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
