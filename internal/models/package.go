package models

import "time"

// Package пакет подписки. Длительность подписки берётся из DurationInDays.
type Package struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	DurationInDays int       `json:"durationInDays"`
	Price          float64   `json:"price"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Session серверная запись об одном активном входе.
type Session struct {
	ID        string
	UserUID   string
	Token     string
	CreatedAt time.Time
}

// Identity пользователь, установленный по токену запроса.
type Identity struct {
	UserUID   string
	FirstName string
	LastName  string
	Role      Role
	Status    UserStatus
	SessionID string
}

// Entitlement результат проверки подписки.
type Entitlement struct {
	Active         bool       `json:"active"`
	DaysRemaining  int        `json:"daysRemaining"`
	PackageName    string     `json:"packageName,omitempty"`
	DurationInDays int        `json:"durationInDays,omitempty"`
	EndDate        *time.Time `json:"endDate,omitempty"`
}
