package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// RescheduleReason is the client's enumerated reason for a reschedule request
type RescheduleReason string

const (
	ReasonPersonalEmergency RescheduleReason = "personal_emergency"
	ReasonWorkConflict      RescheduleReason = "work_conflict"
	ReasonTravelPlans       RescheduleReason = "travel_plans"
	ReasonHealthReasons     RescheduleReason = "health_reasons"
	ReasonWeatherConcerns   RescheduleReason = "weather_concerns"
	ReasonOther             RescheduleReason = "other"
)

// IsValid returns true for a known reschedule reason
func (r RescheduleReason) IsValid() bool {
	switch r {
	case ReasonPersonalEmergency, ReasonWorkConflict, ReasonTravelPlans,
		ReasonHealthReasons, ReasonWeatherConcerns, ReasonOther:
		return true
	}
	return false
}

// RescheduleStatus represents the provider's decision on a request
type RescheduleStatus string

const (
	RescheduleStatusPending  RescheduleStatus = "pending_approval"
	RescheduleStatusApproved RescheduleStatus = "approved"
	RescheduleStatusDeclined RescheduleStatus = "declined"
)

// RescheduleRequest is a proposed date/time change to an active appointment
// requiring provider approval, as opposed to a direct edit
type RescheduleRequest struct {
	ID            int64
	AppointmentID int64
	ClientID      int64

	RequestedDate time.Time
	RequestedTime types.TimeString
	DurationHours int

	Reason RescheduleReason
	Notes  string

	// Контактные поля и локация тоже могут меняться в рамках переноса
	LocationType         LocationType
	ClientAddress        *string
	ClientCity           *string
	ClientPostalCode     *string
	LocationInstructions *string
	ClientPhone          *string
	ClientEmail          *string
	ContactPreference    *string

	Status RescheduleStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}
