package quote

import "errors"

var (
	// ErrQuoteNotFound возвращается, когда смета не найдена
	ErrQuoteNotFound = errors.New("quote.repository: quote not found")

	// ErrAlreadyAccepted возвращается при повторном принятии сметы.
	// Для идемпотентного сабмита это не ошибка бизнес-логики
	ErrAlreadyAccepted = errors.New("quote.repository: quote already accepted")

	// ErrNotAcceptable возвращается, когда смета отклонена или истекла
	ErrNotAcceptable = errors.New("quote.repository: quote is not acceptable")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("quote.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("quote.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("quote.repository: failed to scan row")
)
