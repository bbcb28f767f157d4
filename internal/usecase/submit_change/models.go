package submit_change

// Request модель запроса на отправку изменений записи
type Request struct {
	SessionID string
	ClientID  int64

	// AppointmentID из URL; 0 - без сверки с сессией
	AppointmentID int64
}

// Response модель ответа
type Response struct {
	AppointmentID int64  `json:"appointmentId"`
	Mode          string `json:"mode"`

	// Applied = true в режиме edit: изменения применены к записи сразу
	Applied bool `json:"applied"`

	// RescheduleRequestID заполняется в режиме reschedule: изменения
	// отправлены на одобрение мастеру
	RescheduleRequestID *int64 `json:"rescheduleRequestId,omitempty"`

	ChangedFields []string `json:"changedFields"`
}
