// Package jwt реализует выпуск и проверку HS256 токенов доступа.
//
// Токен содержит идентификатор пользователя, время выпуска, время истечения
// (выпуск + TTL) и случайный jti, чтобы два токена одного пользователя не совпадали.
package jwt

import (
	"errors"
	"time"
)

var (
	// ErrInvalidSignature токен повреждён, подписан другим ключом или другим алгоритмом.
	ErrInvalidSignature = errors.New("invalid token signature")
	// ErrExpired подпись верна, но срок действия токена истёк.
	ErrExpired = errors.New("token expired")
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
type Maker interface {
	GenerateToken(userUID string) (string, error)
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string           // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration    // Время жизни токена.
	now       func() time.Time // Источник времени, UTC.
}

// Option настраивает MakerImpl.
type Option func(*MakerImpl)

// WithClock подменяет источник времени.
func WithClock(now func() time.Time) Option {
	return func(m *MakerImpl) {
		m.now = now
	}
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration, opts ...Option) *MakerImpl {
	m := &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TTL возвращает время жизни выпускаемых токенов.
func (j *MakerImpl) TTL() time.Duration {
	return j.tokenTTL
}
