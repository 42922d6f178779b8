// Package signout реализует HTTP-обработчик выхода. Повторный выход не считается ошибкой.
package signout

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/novelamania/internal/http/middlewarectx"
	"github.com/magabrotheeeer/novelamania/internal/http/response"
	"github.com/magabrotheeeer/novelamania/internal/models"
)

// Result тело успешного ответа.
type Result struct {
	AlreadyLoggedOut bool   `json:"alreadyLoggedOut"`
	Message          string `json:"message"`
}

// Service описывает бизнес-логику выхода.
type Service interface {
	SignOut(ctx context.Context, token string) (bool, error)
}

// Handler обрабатывает запросы на выход.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Выход пользователя
// @Description Удаляет сессию токена и очищает cookie. Выход по уже удалённой сессии успешен.
// @Tags Auth
// @Produce  json
// @Param token header string true "Токен сессии"
// @Success 200 {object} Result "Сессия завершена"
// @Failure 401 {object} response.ErrorResponse "Токен не передан"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /logout [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signout"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token := middlewarectx.TokenFromRequest(r)
	if token == "" {
		response.WriteError(w, r, log, fmt.Errorf("%s: %w", op, models.ErrNoToken))
		return
	}

	already, err := h.service.SignOut(r.Context(), token)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middlewarectx.TokenName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	msg := "logged out successfully"
	if already {
		msg = "user is already logged out"
	}
	log.Info(msg)
	render.JSON(w, r, response.StatusOKWithData(Result{
		AlreadyLoggedOut: already,
		Message:          msg,
	}))
}
