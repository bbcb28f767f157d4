package session

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия мастера не найдена или истекла
	ErrSessionNotFound = errors.New("session.store: wizard session not found")

	// ErrMarshal возвращается при ошибке сериализации сессии
	ErrMarshal = errors.New("session.store: failed to marshal session")

	// ErrStore возвращается при ошибке обращения к Redis
	ErrStore = errors.New("session.store: redis operation failed")
)
