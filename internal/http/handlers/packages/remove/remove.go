// Package remove реализует HTTP-обработчик удаления пакета подписки.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/novelamania/internal/http/response"
)

// Service описывает удаление пакета.
type Service interface {
	Delete(ctx context.Context, id string) error
}

// Handler обрабатывает запросы удаления пакета.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить пакет
// @Description Удаляет пакет. Подписки на него перестают действовать. Только для администратора.
// @Tags Packages
// @Produce  json
// @Param token header string true "Токен администратора"
// @Param id path string true "ID пакета"
// @Success 200 {object} response.Response "Пакет удален"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Пакет не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /package/delete/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.packages.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Info("package deleted", slog.String("package_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]string{
		"message": "package deleted",
	}))
}
