package submit_change

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("submit_change: wizard session not found")

	// ErrAccessDenied возвращается при попытке отправить чужую сессию
	ErrAccessDenied = errors.New("submit_change: access denied")

	// ErrWrongMode возвращается для обычных booking-сессий
	ErrWrongMode = errors.New("submit_change: session is not a change session")

	// ErrAppointmentNotFound возвращается, когда исходная запись исчезла
	ErrAppointmentNotFound = errors.New("submit_change: appointment not found")

	// ErrSessionMismatch возвращается, когда сессия привязана к другой записи
	ErrSessionMismatch = errors.New("submit_change: session belongs to another appointment")

	// ErrNoChanges возвращается, когда черновик не отличается от исходной
	// записи - отправлять нечего
	ErrNoChanges = errors.New("submit_change: draft has no changes")

	// ErrSlotConflict возвращается, когда новое время конфликтует с другой записью
	ErrSlotConflict = errors.New("submit_change: slot is no longer available")

	// ErrStatusChanged возвращается, когда статус записи изменился после
	// открытия сессии и выбранный режим больше не применим
	ErrStatusChanged = errors.New("submit_change: appointment status changed")

	// ErrReschedulePending возвращается, когда по записи уже есть
	// неодобренный запрос на перенос
	ErrReschedulePending = errors.New("submit_change: reschedule request already pending")

	// ErrSubmissionInFlight возвращается при параллельном сабмите той же сессии
	ErrSubmissionInFlight = errors.New("submit_change: submission already in flight")

	// ErrDraftIncomplete возвращается, когда черновик не прошёл все шаги
	ErrDraftIncomplete = errors.New("submit_change: draft is incomplete")

	// ErrInvalidDate возвращается, когда новая дата ушла в прошлое
	ErrInvalidDate = errors.New("submit_change: appointment date is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата превышает горизонт maxAdvanceDays
	ErrDateTooFarInFuture = errors.New("submit_change: date is too far in the future")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_change: internal error")
)
