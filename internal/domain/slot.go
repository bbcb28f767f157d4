package domain

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Slot represents an offerable appointment start time for a provider/service/date
// Slots are computed fresh per query and never persisted.
type Slot struct {
	Date          time.Time
	Time          types.TimeString
	FormattedTime string // Отображаемое время для UI ("2:30 PM")
}

// NewSlot builds a slot with its display string
func NewSlot(date time.Time, start types.TimeString) Slot {
	return Slot{
		Date:          date,
		Time:          start,
		FormattedTime: start.Format12Hour(),
	}
}
