package domain

const (
	// DateFormat - формат даты в API и БД
	DateFormat = "2006-01-02"
	// TimeFormat - формат времени слотов
	TimeFormat = "15:04"

	// MinutesPerHour - минут в часе
	MinutesPerHour = 60

	// DefaultSlotGranularityMinutes - шаг сетки слотов по умолчанию
	DefaultSlotGranularityMinutes = 30

	// MinDurationHours - минимальная длительность записи
	MinDurationHours = 1
	// MaxDurationCeilingHours - верхний предел длительности независимо от графика
	MaxDurationCeilingHours = 12
	// FallbackMaxDurationHours - длительность по умолчанию, когда график недоступен
	FallbackMaxDurationHours = 8

	// MaxNotesLength - максимальная длина свободного текста (пожелания, инструкции)
	MaxNotesLength = 500
	// MinPhoneDigits - минимальное число цифр в телефоне клиента
	MinPhoneDigits = 7

	// DefaultSessionTTLMinutes - время жизни незавершённой сессии мастера
	DefaultSessionTTLMinutes = 30
)

// Validation error codes returned to the client in collected form
const (
	CodeDurationOutOfRange = "DURATION_OUT_OF_RANGE"
	CodeLocationIncomplete = "LOCATION_INCOMPLETE"
	CodeContactMissing     = "CONTACT_MISSING"
	CodeContactInvalid     = "CONTACT_INVALID"
	CodeTermsNotAccepted   = "TERMS_NOT_ACCEPTED"
	CodeScheduleMissing    = "SCHEDULE_MISSING"
	CodeReasonInvalid      = "REASON_INVALID"
)

// ActiveStatuses - статусы, блокирующие слоты в расписании мастера
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
}

// InactiveStatuses - завершённые и отменённые записи, слоты не занимают
var InactiveStatuses = []AppointmentStatus{
	StatusCompleted,
	StatusCancelledByClient,
	StatusCancelledByProvider,
	StatusNoShow,
}
