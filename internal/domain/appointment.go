package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending             AppointmentStatus = "pending"
	StatusConfirmed           AppointmentStatus = "confirmed"
	StatusInProgress          AppointmentStatus = "in_progress"
	StatusCompleted           AppointmentStatus = "completed"
	StatusCancelledByClient   AppointmentStatus = "cancelled_by_client"
	StatusCancelledByProvider AppointmentStatus = "cancelled_by_provider"
	StatusNoShow              AppointmentStatus = "no_show"
)

// IsValid returns true for a known appointment status
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress,
		StatusCompleted, StatusCancelledByClient, StatusCancelledByProvider, StatusNoShow:
		return true
	}
	return false
}

// Appointment represents a confirmed service appointment in the system
type Appointment struct {
	ID         int64
	ClientID   int64
	ProviderID int64
	ServiceID  int64
	QuoteID    *int64 // Заполняется только для флоу принятия сметы

	AppointmentDate time.Time
	StartTime       types.TimeString
	DurationHours   int

	BasePrice  float64
	TotalPrice float64
	TravelFee  float64

	LocationType         LocationType
	ClientAddress        *string
	ClientCity           *string
	ClientPostalCode     *string
	LocationInstructions *string

	ClientPhone       *string
	ClientEmail       *string
	ContactPreference *string

	SpecialRequirements *string
	PaymentMethod       string
	BookingSource       string

	// Ключ идемпотентности сабмита: повторная отправка того же черновика
	// не создает дубликат записи
	IdempotencyKey string

	Status AppointmentStatus

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its time slot
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending ||
		a.Status == StatusConfirmed ||
		a.Status == StatusInProgress
}

// CanBeEditedDirectly returns true if changes may overwrite the appointment
// without provider approval
func (a *Appointment) CanBeEditedDirectly() bool {
	return a.Status == StatusPending
}

// CanBeRescheduled returns true if changes require a reschedule request
// approved by the provider
func (a *Appointment) CanBeRescheduled() bool {
	return a.Status == StatusConfirmed || a.Status == StatusInProgress
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// EndTime returns the end time implied by the start time and duration
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationHours * MinutesPerHour)
}
