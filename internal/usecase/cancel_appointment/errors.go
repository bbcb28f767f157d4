package cancel_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("cancel_appointment: appointment not found")

	// ErrAccessDenied возвращается для пользователя, не являющегося
	// ни клиентом, ни мастером записи
	ErrAccessDenied = errors.New("cancel_appointment: access denied")

	// ErrCannotCancel возвращается для записи в статусе, не допускающем отмену
	ErrCannotCancel = errors.New("cancel_appointment: appointment cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_appointment: internal error")
)
