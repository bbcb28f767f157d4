package get_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("get_appointment: appointment not found")

	// ErrAccessDenied возвращается для пользователя, не являющегося
	// ни клиентом, ни мастером записи
	ErrAccessDenied = errors.New("get_appointment: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_appointment: internal error")
)
