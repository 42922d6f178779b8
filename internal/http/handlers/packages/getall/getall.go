// Package getall реализует HTTP-обработчик списка пакетов подписки.
package getall

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/novelamania/internal/http/response"
	"github.com/magabrotheeeer/novelamania/internal/models"
)

// Service описывает чтение каталога.
type Service interface {
	List(ctx context.Context) ([]*models.Package, error)
}

// Handler обрабатывает запросы списка пакетов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список пакетов
// @Tags Packages
// @Produce  json
// @Param token header string true "Токен сессии"
// @Success 200 {array} models.Package "Пакеты"
// @Failure 401 {object} response.ErrorResponse "Токен недействителен"
// @Failure 403 {object} response.ErrorResponse "Нужна действующая подписка"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /package/getall [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.packages.getall"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	list, err := h.service.List(r.Context())
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(list))
}
