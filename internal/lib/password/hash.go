// Package password реализует хеширование паролей и генерацию токенов сброса пароля.
package password

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// MaxBytes предел длины пароля в байтах, больше bcrypt не принимает.
const MaxBytes = 72

// resetTokenBytes длина случайной части токена сброса пароля.
const resetTokenBytes = 20

var (
	dummyOnce sync.Once
	dummyHash []byte
)

// GetHash принимает пароль пользователя и возвращает его bcrypt‑хэш.
// Соль генерируется для каждого хэша отдельно.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash сравнивает bcrypt‑хэш с введённым паролем.
//
// Возвращает nil, если пароль соответствует хэшу, иначе ошибку.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CompareDummy тратит на проверку столько же времени, сколько CompareHash,
// когда пользователь не найден. Всегда возвращает ошибку.
func CompareDummy(externalPassword string) error {
	dummyOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("novelamania-dummy-password"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(externalPassword))
	return bcrypt.ErrMismatchedHashAndPassword
}

// NewResetToken возвращает случайный токен сброса пароля в hex (20 байт).
func NewResetToken() (string, error) {
	const op = "password.NewResetToken"
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return hex.EncodeToString(buf), nil
}
