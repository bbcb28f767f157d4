package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const (
	sessionKeyPrefix = "wizard:session:"
	lockKeyPrefix    = "wizard:submit-lock:"

	// submitLockTTL ограничивает время удержания блокировки сабмита,
	// чтобы упавший процесс не оставил сессию заблокированной навсегда
	submitLockTTL = 30 * time.Second

	// submittedTTL время жизни завершённой сессии. Короткое надгробие
	// вместо немедленного удаления: отставший клиент со старой вкладкой
	// получает понятный конфликт, а не "сессия не найдена"
	submittedTTL = 5 * time.Minute
)

// Store хранилище сессий мастера записи в Redis.
// Сессия живет ограниченное время (TTL) и продлевается при каждом чтении,
// что позволяет клиенту продолжить заполнение после перезагрузки страницы
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore создает новое хранилище сессий
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// Save сохраняет сессию с TTL
func (s *Store) Save(ctx context.Context, sess *domain.WizardSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	if err := s.client.Set(ctx, sessionKey(sess.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save - %v", ErrStore, err)
	}

	return nil
}

// SaveSubmitted сохраняет завершённую сессию с укороченным TTL
func (s *Store) SaveSubmitted(ctx context.Context, sess *domain.WizardSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	if err := s.client.Set(ctx, sessionKey(sess.ID), data, submittedTTL).Err(); err != nil {
		return fmt.Errorf("%w: SaveSubmitted - %v", ErrStore, err)
	}

	return nil
}

// Get загружает сессию по ID и продлевает её TTL
func (s *Store) Get(ctx context.Context, sessionID string) (*domain.WizardSession, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - %v", ErrStore, err)
	}

	var sess domain.WizardSession
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	// Активность клиента продлевает жизнь сессии; надгробие завершённой
	// сессии не продлевается
	if !sess.IsSubmitted() {
		if err := s.client.Expire(ctx, sessionKey(sessionID), s.ttl).Err(); err != nil {
			return nil, fmt.Errorf("%w: Get - refresh ttl: %v", ErrStore, err)
		}
	}

	return &sess, nil
}

// Delete удаляет сессию (после успешного сабмита или отмены клиентом)
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: Delete - %v", ErrStore, err)
	}
	return nil
}

// AcquireSubmitLock пытается взять блокировку сабмита для сессии.
// Возвращает false, если сабмит этой сессии уже выполняется
func (s *Store) AcquireSubmitLock(ctx context.Context, sessionID string) (bool, error) {
	ok, err := s.client.SetNX(ctx, lockKey(sessionID), "1", submitLockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("%w: AcquireSubmitLock - %v", ErrStore, err)
	}
	return ok, nil
}

// ReleaseSubmitLock снимает блокировку сабмита
func (s *Store) ReleaseSubmitLock(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, lockKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: ReleaseSubmitLock - %v", ErrStore, err)
	}
	return nil
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func lockKey(sessionID string) string {
	return lockKeyPrefix + sessionID
}
