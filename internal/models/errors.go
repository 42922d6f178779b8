package models

import (
	"errors"
	"fmt"
)

// Виды ошибок ядра. Обработчики HTTP сопоставляют их со статусами ответа.
var (
	ErrValidation            = errors.New("validation error")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrAccountInactive       = errors.New("account is inactive")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrSubscriptionRequired  = errors.New("active subscription required, contact the administrator to subscribe")
	ErrNotFound              = errors.New("not found")
	ErrConflict              = errors.New("already exists")
	ErrInvalidOrExpiredToken = errors.New("reset token is invalid or expired")
)

// Причины ErrUnauthorized.
var (
	ErrNoToken         = fmt.Errorf("%w: no token provided", ErrUnauthorized)
	ErrInvalidToken    = fmt.Errorf("%w: invalid token", ErrUnauthorized)
	ErrTokenExpired    = fmt.Errorf("%w: token expired", ErrUnauthorized)
	ErrSessionNotFound = fmt.Errorf("%w: session not found", ErrUnauthorized)
)
