package submit_booking

// Request модель запроса на отправку собранного черновика
type Request struct {
	SessionID string
	ClientID  int64
}

// Response модель ответа с созданной записью
type Response struct {
	AppointmentID int64   `json:"appointmentId"`
	Status        string  `json:"status"`
	TotalPrice    float64 `json:"totalPrice"`

	// QuoteAccepted = true, если сессия была создана из сметы и смета
	// помечена принятой
	QuoteAccepted bool `json:"quoteAccepted,omitempty"`
}
