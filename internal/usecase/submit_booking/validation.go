package submit_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateDraft проверяет, что черновик прошёл все шаги и готов к отправке.
// Пошаговые валидации уже выполнены сервисом сессий; здесь - страховка
// от отправки сессии, перескочившей шаги
func validateDraft(draft domain.BookingDraft) error {
	if draft.ProviderID <= 0 || draft.ServiceID <= 0 {
		return fmt.Errorf("%w: provider and service are required", ErrDraftIncomplete)
	}
	if draft.AppointmentDate.IsZero() || draft.AppointmentTime.IsZero() {
		return fmt.Errorf("%w: schedule is not selected", ErrDraftIncomplete)
	}
	if draft.DurationHours < domain.MinDurationHours {
		return fmt.Errorf("%w: duration is not selected", ErrDraftIncomplete)
	}
	if !draft.LocationType.IsValid() {
		return fmt.Errorf("%w: location type is not selected", ErrDraftIncomplete)
	}
	if draft.LocationType.RequiresAddress() && (draft.ClientAddress == "" || draft.ClientCity == "") {
		return fmt.Errorf("%w: address is incomplete", ErrDraftIncomplete)
	}
	if !draft.HasContact() {
		return fmt.Errorf("%w: contact is missing", ErrDraftIncomplete)
	}
	if draft.PaymentMethod == "" || !draft.AgreedToTerms {
		return fmt.Errorf("%w: payment step is not completed", ErrDraftIncomplete)
	}
	return nil
}

// validateDate проверяет, что дата записи не в прошлом и не дальше горизонта
func validateDate(date, now time.Time, maxAdvanceDays int) error {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(today) {
		return ErrInvalidDate
	}

	// Если maxAdvanceDays = 0, горизонт не ограничен
	if maxAdvanceDays == 0 {
		return nil
	}

	if dateOnly.After(today.AddDate(0, 0, maxAdvanceDays)) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, maxAdvanceDays)
	}

	return nil
}
