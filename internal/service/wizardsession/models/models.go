package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модели

// StartSessionRequest запрос на открытие сессии мастера записи
type StartSessionRequest struct {
	ClientID   int64 `json:"clientId"`
	ProviderID int64 `json:"providerId"`
	ServiceID  int64 `json:"serviceId"`

	// Смета: сессия создается из принятия сметы, слот и цена предзаполнены
	QuoteID *int64 `json:"quoteId,omitempty"`

	// Предвыбранный слот (deep-link со страницы услуги): шаг выбора
	// времени пропускается
	PreselectedDate *string `json:"preselectedDate,omitempty"` // "2006-01-02"
	PreselectedTime *string `json:"preselectedTime,omitempty"` // "15:04"

	BookingSource string `json:"bookingSource,omitempty"`
}

// AdvanceStepRequest запрос на переход к следующему шагу
// Заполняется ровно одна секция, соответствующая текущему шагу сессии
type AdvanceStepRequest struct {
	SessionID string `json:"-"`
	ClientID  int64  `json:"-"`

	RescheduleDetails *RescheduleDetailsInput `json:"rescheduleDetails,omitempty"`
	TimeSelection     *TimeSelectionInput     `json:"timeSelection,omitempty"`
	Duration          *DurationInput          `json:"duration,omitempty"`
	Location          *LocationInput          `json:"location,omitempty"`
	Payment           *PaymentInput           `json:"payment,omitempty"`
}

// RescheduleDetailsInput ввод шага причины переноса
type RescheduleDetailsInput struct {
	Reason string `json:"reason"`
	Notes  string `json:"notes"`
}

// TimeSelectionInput ввод шага выбора времени - слот из выдачи слотов
type TimeSelectionInput struct {
	Date string `json:"date"` // "2006-01-02"
	Time string `json:"time"` // "15:04"
}

// DurationInput ввод шага выбора длительности
type DurationInput struct {
	DurationHours int `json:"durationHours"`
}

// LocationInput ввод шага локации и контактов
type LocationInput struct {
	LocationType         string `json:"locationType"`
	ClientAddress        string `json:"clientAddress"`
	ClientCity           string `json:"clientCity"`
	ClientPostalCode     string `json:"clientPostalCode"`
	LocationInstructions string `json:"locationInstructions"`

	ClientPhone       string `json:"clientPhone"`
	ClientEmail       string `json:"clientEmail"`
	ContactPreference string `json:"contactPreference"`

	SpecialRequirements string `json:"specialRequirements"`
}

// PaymentInput ввод шага оплаты
type PaymentInput struct {
	PaymentMethod string `json:"paymentMethod"`
	AgreedToTerms bool   `json:"agreedToTerms"`
}

// Response модели

// FieldError ошибка валидации, привязанная к конкретному полю шага.
// Все ошибки шага собираются и возвращаются вместе, чтобы UI мог
// подсветить сразу все проблемные поля
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DraftResponse снимок черновика записи
type DraftResponse struct {
	ServiceID  int64  `json:"serviceId"`
	ProviderID int64  `json:"providerId"`
	QuoteID    *int64 `json:"quoteId,omitempty"`

	AppointmentDate string `json:"appointmentDate,omitempty"` // "2006-01-02"
	AppointmentTime string `json:"appointmentTime,omitempty"` // "15:04"
	FormattedTime   string `json:"formattedTime,omitempty"`   // "2:30 PM"
	DurationHours   int    `json:"durationHours,omitempty"`

	BasePrice  float64 `json:"basePrice"`
	TotalPrice float64 `json:"totalPrice"`
	TravelFee  float64 `json:"travelFee"`

	LocationType         string `json:"locationType,omitempty"`
	ClientAddress        string `json:"clientAddress,omitempty"`
	ClientCity           string `json:"clientCity,omitempty"`
	ClientPostalCode     string `json:"clientPostalCode,omitempty"`
	LocationInstructions string `json:"locationInstructions,omitempty"`

	ClientPhone       string `json:"clientPhone,omitempty"`
	ClientEmail       string `json:"clientEmail,omitempty"`
	ContactPreference string `json:"contactPreference,omitempty"`

	SpecialRequirements string `json:"specialRequirements,omitempty"`
	PaymentMethod       string `json:"paymentMethod,omitempty"`
	AgreedToTerms       bool   `json:"agreedToTerms"`
}

// SessionResponse состояние сессии мастера записи
type SessionResponse struct {
	SessionID   string `json:"sessionId"`
	Mode        string `json:"mode"`
	CurrentStep string `json:"currentStep"`

	Draft DraftResponse `json:"draft"`

	AppointmentID    *int64 `json:"appointmentId,omitempty"`
	MaxDurationHours int    `json:"maxDurationHours,omitempty"`

	// Errors заполняется при неуспешной валидации шага; сессия при этом
	// остаётся на текущем шаге
	Errors []FieldError `json:"errors,omitempty"`

	// ReadyToSubmit = true, когда все шаги пройдены и сессию можно отправлять
	ReadyToSubmit bool `json:"readyToSubmit"`

	// HasChanges актуально для режимов edit/reschedule: false означает,
	// что черновик не отличается от исходной записи
	HasChanges bool `json:"hasChanges"`

	SubmittedAppointmentID *int64 `json:"submittedAppointmentId,omitempty"`
}

// FromDomainSession конвертирует доменную сессию в response
func FromDomainSession(sess *domain.WizardSession, ready bool) *SessionResponse {
	return &SessionResponse{
		SessionID:              sess.ID,
		Mode:                   string(sess.Mode),
		CurrentStep:            string(sess.CurrentStep),
		Draft:                  fromDomainDraft(sess.Draft),
		AppointmentID:          sess.AppointmentID,
		MaxDurationHours:       sess.MaxDurationHours,
		ReadyToSubmit:          ready,
		HasChanges:             sess.HasChanges(),
		SubmittedAppointmentID: sess.SubmittedAppointmentID,
	}
}

func fromDomainDraft(d domain.BookingDraft) DraftResponse {
	resp := DraftResponse{
		ServiceID:            d.ServiceID,
		ProviderID:           d.ProviderID,
		QuoteID:              d.QuoteID,
		DurationHours:        d.DurationHours,
		BasePrice:            d.BasePrice,
		TotalPrice:           d.TotalPrice,
		TravelFee:            d.TravelFee,
		LocationType:         string(d.LocationType),
		ClientAddress:        d.ClientAddress,
		ClientCity:           d.ClientCity,
		ClientPostalCode:     d.ClientPostalCode,
		LocationInstructions: d.LocationInstructions,
		ClientPhone:          d.ClientPhone,
		ClientEmail:          d.ClientEmail,
		ContactPreference:    d.ContactPreference,
		SpecialRequirements:  d.SpecialRequirements,
		PaymentMethod:        d.PaymentMethod,
		AgreedToTerms:        d.AgreedToTerms,
	}

	if !d.AppointmentDate.IsZero() {
		resp.AppointmentDate = d.AppointmentDate.Format(domain.DateFormat)
	}
	if !d.AppointmentTime.IsZero() {
		resp.AppointmentTime = string(d.AppointmentTime)
		resp.FormattedTime = d.AppointmentTime.Format12Hour()
	}

	return resp
}

// ParseDate парсит дату в формате "2006-01-02"
func ParseDate(value string) (time.Time, error) {
	return time.Parse(domain.DateFormat, value)
}

// ParseTime парсит время слота в формате "15:04"
func ParseTime(value string) (types.TimeString, error) {
	return types.NewTimeStringFromString(value)
}
