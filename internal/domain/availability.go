package domain

import "github.com/m04kA/SMC-AppointmentService/pkg/types"

// WorkingHours represents a provider's declared availability for one date
// Produced by ProviderService; read-only input for the slot engine.
type WorkingHours struct {
	IsAvailable bool
	StartTime   types.TimeString
	EndTime     types.TimeString
}

// MaxDurationFrom returns the whole hours fitting between start and the end
// of the working day, capped at MaxDurationCeilingHours. Zero when start is
// at or past closing.
func (w *WorkingHours) MaxDurationFrom(start types.TimeString) (int, error) {
	startMinutes, err := start.Minutes()
	if err != nil {
		return 0, err
	}
	endMinutes, err := w.EndTime.Minutes()
	if err != nil {
		return 0, err
	}

	hours := 0
	if endMinutes > startMinutes {
		hours = (endMinutes - startMinutes) / MinutesPerHour
	}
	if hours > MaxDurationCeilingHours {
		hours = MaxDurationCeilingHours
	}

	return hours, nil
}

// BookedInterval represents the time range of an existing active appointment
// blocking new overlapping slots
type BookedInterval struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Overlaps returns true if the interval truly overlaps [start, end)
// Boundary touch is not overlap: an interval ending exactly where the
// candidate starts (or vice versa) does not block the candidate.
func (b BookedInterval) Overlaps(start, end types.TimeString) bool {
	return b.StartTime.IsBefore(end) && b.EndTime.IsAfter(start)
}
