package submit_booking

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("submit_booking: wizard session not found")

	// ErrAccessDenied возвращается при попытке отправить чужую сессию
	ErrAccessDenied = errors.New("submit_booking: access denied")

	// ErrWrongMode возвращается для сессий режимов edit/reschedule
	ErrWrongMode = errors.New("submit_booking: session is not a booking session")

	// ErrDraftIncomplete возвращается, когда черновик не прошёл все шаги
	ErrDraftIncomplete = errors.New("submit_booking: draft is incomplete")

	// ErrInvalidDate возвращается, когда дата черновика ушла в прошлое
	ErrInvalidDate = errors.New("submit_booking: appointment date is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата превышает горизонт maxAdvanceDays
	ErrDateTooFarInFuture = errors.New("submit_booking: date is too far in the future")

	// ErrSlotConflict возвращается, когда слот заняли между выбором и отправкой.
	// Отличается от общей ошибки отправки: UI должен перезапросить слоты,
	// а не повторять запрос вслепую
	ErrSlotConflict = errors.New("submit_booking: slot is no longer available")

	// ErrSubmissionInFlight возвращается при параллельном сабмите той же сессии
	ErrSubmissionInFlight = errors.New("submit_booking: submission already in flight")

	// ErrSubmissionFailed возвращается при сбое отправки. Черновик остаётся
	// нетронутым, запрос можно повторить немедленно
	ErrSubmissionFailed = errors.New("submit_booking: submission failed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_booking: internal error")
)
