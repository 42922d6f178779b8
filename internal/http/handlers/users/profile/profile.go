// Package profile реализует HTTP-обработчик профиля текущего пользователя.
package profile

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

// Service описывает чтение профиля.
type Service interface {
	Profile(ctx context.Context, uid string) (*models.User, error)
}

// Handler обрабатывает запросы профиля.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Профиль пользователя
// @Description Возвращает данные текущего пользователя без хэша пароля.
// @Tags Users
// @Produce  json
// @Param token header string true "Токен сессии"
// @Success 200 {object} models.Profile "Профиль"
// @Failure 401 {object} response.ErrorResponse "Токен недействителен"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /user/userprofile [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.profile"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := middlewarectx.IdentityFrom(r.Context())
	if !ok {
		response.WriteError(w, r, log, fmt.Errorf("%s: %w", op, models.ErrUnauthorized))
		return
	}
	user, err := h.service.Profile(r.Context(), id.UserUID)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(user.Profile()))
}
