package providerservice

import "errors"

var (
	// ErrProviderNotFound возвращается, когда мастер не найден
	ErrProviderNotFound = errors.New("provider not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена у мастера
	ErrServiceNotFound = errors.New("service not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("providerservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("providerservice client: invalid response")

	// ErrAvailabilityUnknown возвращается при применении graceful degradation:
	// график мастера недоступен, вызывающая сторона использует значения по умолчанию
	ErrAvailabilityUnknown = errors.New("providerservice unavailable: availability unknown")
)
