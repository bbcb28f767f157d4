package wizardsession

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("wizard session not found")

	// ErrAccessDenied возвращается при попытке доступа к чужой сессии
	ErrAccessDenied = errors.New("access denied")

	// ErrAlreadySubmitted возвращается при попытке изменить завершённую сессию
	ErrAlreadySubmitted = errors.New("wizard session already submitted")

	// ErrProviderNotFound возвращается, когда мастер не найден
	ErrProviderNotFound = errors.New("provider not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrQuoteNotFound возвращается, когда смета не найдена
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrQuoteNotAcceptable возвращается, когда смета отклонена, истекла или уже принята
	ErrQuoteNotAcceptable = errors.New("quote is not acceptable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
