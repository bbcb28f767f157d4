package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationHours < domain.MinDurationHours || req.DurationHours > domain.MaxDurationCeilingHours {
		return fmt.Errorf("%w: durationHours must be between %d and %d",
			ErrInvalidInput, domain.MinDurationHours, domain.MaxDurationCeilingHours)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и не дальше горизонта записи
func validateDate(date, now time.Time, maxAdvanceDays int) error {
	if isDateInPast(date, now) {
		return ErrInvalidDate
	}

	// Если maxAdvanceDays = 0, горизонт не ограничен
	if maxAdvanceDays == 0 {
		return nil
	}

	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, maxAdvanceDays)

	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, maxAdvanceDays)
	}

	return nil
}
