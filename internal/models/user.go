// Package models содержит доменные типы сервиса: пользователя с встроенной подпиской,
// пакеты, сессии, роли и сообщения уведомлений.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// UserStatus статус учётной записи.
type UserStatus string

const (
	// StatusActive учётная запись может входить в систему.
	StatusActive UserStatus = "Active"
	// StatusInactive учётная запись заблокирована.
	StatusInactive UserStatus = "Inactive"
)

// Valid сообщает, является ли статус допустимым.
func (s UserStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID                  string        // Уникальный идентификатор пользователя
	FirstName            string        // Имя
	LastName             string        // Фамилия
	Email                string        // Электронная почта, может быть пустой
	Gender               string        // masculino, feminino или outro
	DateOfBirth          *time.Time    // Дата рождения
	Province             string        // Провинция
	Contact              string        // Телефон, уникальный идентификатор для входа
	Avatar               string        // Ссылка на аватар
	PasswordHash         string        // bcrypt-хэш пароля
	Role                 Role          // Роль пользователя
	Status               UserStatus    // Статус учётной записи
	Subscription         *Subscription // Подписка, nil если не оформлена
	ResetPasswordToken   string
	ResetPasswordExpires *time.Time
	CreatedAt            time.Time
}

// Summary возвращает публичные данные пользователя без хэша пароля.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.UID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}

// UserSummary минимальный набор полей, отдаваемый клиенту после входа.
type UserSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `json:"role"`
}

// Profile профиль пользователя для ответа /user/userprofile.
type Profile struct {
	ID           string        `json:"id"`
	FirstName    string        `json:"firstName"`
	LastName     string        `json:"lastName"`
	Email        string        `json:"email,omitempty"`
	Gender       string        `json:"gender"`
	DateOfBirth  *time.Time    `json:"dob,omitempty"`
	Province     string        `json:"province,omitempty"`
	Contact      string        `json:"contact1"`
	Avatar       string        `json:"avatar,omitempty"`
	Role         Role          `json:"role"`
	Status       UserStatus    `json:"status"`
	Subscription *Subscription `json:"subscription,omitempty"`
}

// Profile формирует профиль пользователя.
func (u *User) Profile() Profile {
	return Profile{
		ID:           u.UID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Gender:       u.Gender,
		DateOfBirth:  u.DateOfBirth,
		Province:     u.Province,
		Contact:      u.Contact,
		Avatar:       u.Avatar,
		Role:         u.Role,
		Status:       u.Status,
		Subscription: u.Subscription,
	}
}

// Subscription подписка, встроенная в пользователя.
// Подписка без PackageID считается отсутствующей.
type Subscription struct {
	PackageID string    `json:"package"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}
