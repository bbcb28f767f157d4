package start_change_session

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("start_change_session: appointment not found")

	// ErrAccessDenied возвращается при попытке изменить чужую запись
	ErrAccessDenied = errors.New("start_change_session: access denied")

	// ErrNotChangeable возвращается для завершённых и отменённых записей
	ErrNotChangeable = errors.New("start_change_session: appointment can no longer be changed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("start_change_session: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("start_change_session: internal error")
)
