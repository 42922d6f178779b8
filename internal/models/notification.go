package models

import "time"

// PasswordResetMessage сообщение в очередь для отправки письма сброса пароля.
type PasswordResetMessage struct {
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	ResetURL  string    `json:"reset_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ExpiringSubscriptionMessage сообщение об окончании подписки.
type ExpiringSubscriptionMessage struct {
	UserUID     string    `json:"user_uid"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	PackageName string    `json:"package_name"`
	EndDate     time.Time `json:"end_date"`
}
