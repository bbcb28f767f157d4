package wizardsession

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/wizardsession/models"
)

// Простая проверка формы local@domain; полная RFC-валидация здесь не нужна,
// адрес всё равно подтверждается письмом на стороне нотификаций
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// validateRescheduleDetails валидирует шаг причины переноса
func validateRescheduleDetails(input *models.RescheduleDetailsInput) []models.FieldError {
	var errs []models.FieldError

	if !domain.RescheduleReason(input.Reason).IsValid() {
		errs = append(errs, models.FieldError{
			Field:   "reason",
			Code:    domain.CodeReasonInvalid,
			Message: "reschedule reason must be one of the supported values",
		})
	}

	if strings.TrimSpace(input.Notes) == "" {
		errs = append(errs, models.FieldError{
			Field:   "notes",
			Code:    domain.CodeReasonInvalid,
			Message: "notes are required for a reschedule request",
		})
	} else if len(input.Notes) > domain.MaxNotesLength {
		errs = append(errs, models.FieldError{
			Field:   "notes",
			Code:    domain.CodeReasonInvalid,
			Message: fmt.Sprintf("notes must not exceed %d characters", domain.MaxNotesLength),
		})
	}

	return errs
}

// validateDuration валидирует шаг выбора длительности
func validateDuration(input *models.DurationInput, maxDurationHours int) []models.FieldError {
	if input.DurationHours < domain.MinDurationHours || input.DurationHours > maxDurationHours {
		return []models.FieldError{{
			Field:   "durationHours",
			Code:    domain.CodeDurationOutOfRange,
			Message: fmt.Sprintf("duration must be between %d and %d hours", domain.MinDurationHours, maxDurationHours),
		}}
	}
	return nil
}

// validateLocation валидирует шаг локации и контактов.
// Все ошибки шага собираются и возвращаются вместе, без short-circuit
func validateLocation(input *models.LocationInput) []models.FieldError {
	var errs []models.FieldError

	locationType := domain.LocationType(input.LocationType)
	if !locationType.IsValid() {
		errs = append(errs, models.FieldError{
			Field:   "locationType",
			Code:    domain.CodeLocationIncomplete,
			Message: "location type must be one of the supported values",
		})
	} else if locationType.RequiresAddress() {
		if strings.TrimSpace(input.ClientAddress) == "" {
			errs = append(errs, models.FieldError{
				Field:   "clientAddress",
				Code:    domain.CodeLocationIncomplete,
				Message: "address is required for this location type",
			})
		}
		if strings.TrimSpace(input.ClientCity) == "" {
			errs = append(errs, models.FieldError{
				Field:   "clientCity",
				Code:    domain.CodeLocationIncomplete,
				Message: "city is required for this location type",
			})
		}
	}

	phone := strings.TrimSpace(input.ClientPhone)
	email := strings.TrimSpace(input.ClientEmail)

	if phone == "" && email == "" {
		errs = append(errs, models.FieldError{
			Field:   "clientPhone",
			Code:    domain.CodeContactMissing,
			Message: "at least one contact (phone or email) is required",
		})
	}

	if phone != "" && countDigits(phone) < domain.MinPhoneDigits {
		errs = append(errs, models.FieldError{
			Field:   "clientPhone",
			Code:    domain.CodeContactInvalid,
			Message: fmt.Sprintf("phone must contain at least %d digits", domain.MinPhoneDigits),
		})
	}

	if email != "" && !emailPattern.MatchString(email) {
		errs = append(errs, models.FieldError{
			Field:   "clientEmail",
			Code:    domain.CodeContactInvalid,
			Message: "email must have the form local@domain",
		})
	}

	if len(input.SpecialRequirements) > domain.MaxNotesLength {
		errs = append(errs, models.FieldError{
			Field:   "specialRequirements",
			Code:    domain.CodeLocationIncomplete,
			Message: fmt.Sprintf("special requirements must not exceed %d characters", domain.MaxNotesLength),
		})
	}

	return errs
}

// validatePayment валидирует шаг оплаты
func validatePayment(input *models.PaymentInput) []models.FieldError {
	var errs []models.FieldError

	if strings.TrimSpace(input.PaymentMethod) == "" {
		errs = append(errs, models.FieldError{
			Field:   "paymentMethod",
			Code:    domain.CodeTermsNotAccepted,
			Message: "payment method is required",
		})
	}

	if !input.AgreedToTerms {
		errs = append(errs, models.FieldError{
			Field:   "agreedToTerms",
			Code:    domain.CodeTermsNotAccepted,
			Message: "terms of service must be accepted",
		})
	}

	return errs
}

func countDigits(s string) int {
	count := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			count++
		}
	}
	return count
}
