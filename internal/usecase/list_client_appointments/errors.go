package list_client_appointments

import "errors"

var (
	// ErrAccessDenied возвращается при запросе чужой истории записей
	ErrAccessDenied = errors.New("list_client_appointments: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("list_client_appointments: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("list_client_appointments: internal error")
)
