// Package subscribers реализует HTTP-обработчик списка подписчиков.
package subscribers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/novelamania/internal/http/response"
	services "github.com/magabrotheeeer/novelamania/internal/services/auth"
)

// Service описывает разбиение пользователей по наличию подписки.
type Service interface {
	Subscribers(ctx context.Context) (*services.SubscriberList, error)
}

// Handler обрабатывает запросы списка подписчиков.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Подписчики
// @Description Возвращает пользователей с оформленной подпиской и без нее. Только для администратора.
// @Tags Users
// @Produce  json
// @Param token header string true "Токен администратора"
// @Success 200 {object} services.SubscriberList "Списки пользователей"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /user/subscribers [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.subscribers"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	list, err := h.service.Subscribers(r.Context())
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	log.Debug("subscribers listed",
		slog.Int("subscribers", len(list.Subscribers)),
		slog.Int("non_subscribers", len(list.NonSubscribers)),
	)
	render.JSON(w, r, response.StatusOKWithData(list))
}
