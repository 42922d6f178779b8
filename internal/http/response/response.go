// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков и перевода ошибок сервисов в HTTP-статусы.
package response

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/novelamania/internal/lib/sl"
	"github.com/magabrotheeeer/novelamania/internal/models"
)

// Response стандартное тело JSON-ответа: статус "OK" или "Error", текст ошибки при неуспехе
// и данные при успехе.
type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// ErrorResponse структура ошибки для Swagger-документации.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Error  string `json:"error" example:"invalid request body"`
}

const (
	// StatusOK значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// StatusOKWithData возвращает успешный Response с переданными данными.
func StatusOKWithData(data any) Response {
	return Response{
		Status: StatusOK,
		Data:   data,
	}
}

// Error возвращает ответ с ошибкой и переданным сообщением.
func Error(msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Error:  msg,
	}
}

// ValidationError формирует Response со статусом Error на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) Response {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "numeric":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only numbers", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "url":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid url", err.Field()))
		case "min":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at least %s", err.Field(), err.Param()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at most %s", err.Field(), err.Param()))
		case "oneof":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be one of: %s", err.Field(), err.Param()))
		case "uuid":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only uuid", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Response{
		Status: StatusError,
		Error:  strings.Join(errsMsgs, ", "),
	}
}

// HTTPStatus переводит ошибку сервиса в HTTP-статус. Неизвестные ошибки дают 500.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrInvalidOrExpiredToken):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidCredentials),
		errors.Is(err, models.ErrAccountInactive),
		errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden), errors.Is(err, models.ErrSubscriptionRequired):
		return http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Message текст ошибки для клиента. Внутренние ошибки не раскрываются.
func Message(err error) string {
	switch {
	case errors.Is(err, models.ErrInvalidCredentials):
		return "invalid credentials"
	case errors.Is(err, models.ErrAccountInactive):
		return "account is inactive, contact the administrator"
	case errors.Is(err, models.ErrTokenExpired):
		return "token expired"
	case errors.Is(err, models.ErrNoToken):
		return "token is required"
	case errors.Is(err, models.ErrSessionNotFound):
		return "session not found, sign in again"
	case errors.Is(err, models.ErrUnauthorized):
		return "invalid token"
	case errors.Is(err, models.ErrSubscriptionRequired):
		return models.ErrSubscriptionRequired.Error()
	case errors.Is(err, models.ErrInvalidOrExpiredToken):
		return models.ErrInvalidOrExpiredToken.Error()
	case errors.Is(err, models.ErrValidation):
		return validationMessage(err)
	case errors.Is(err, models.ErrForbidden):
		return "access denied"
	case errors.Is(err, models.ErrNotFound):
		return "not found"
	case errors.Is(err, models.ErrConflict):
		return "already exists"
	default:
		return "internal error"
	}
}

// validationMessage убирает из текста ошибки префиксы операций.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return ValidationError(verrs).Error
	}
	msg := err.Error()
	if i := strings.Index(msg, models.ErrValidation.Error()); i >= 0 {
		return msg[i:]
	}
	return models.ErrValidation.Error()
}

// WriteError пишет ответ с ошибкой сервиса. Ошибки со статусом 500 логируются как error,
// остальные как info.
func WriteError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Error("request failed", sl.Err(err))
	} else {
		log.Info("request rejected", slog.Int("status", status), sl.Err(err))
	}
	render.Status(r, status)
	render.JSON(w, r, Error(Message(err)))
}
