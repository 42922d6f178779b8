// Package getbyid реализует HTTP-обработчик чтения пакета по ID.
package getbyid

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/novelamania/internal/http/response"
	"github.com/magabrotheeeer/novelamania/internal/models"
)

// Service описывает чтение пакета.
type Service interface {
	Get(ctx context.Context, id string) (*models.Package, error)
}

// Handler обрабатывает запросы пакета по ID.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Пакет по ID
// @Tags Packages
// @Produce  json
// @Param token header string true "Токен сессии"
// @Param id path string true "ID пакета"
// @Success 200 {object} models.Package "Пакет"
// @Failure 403 {object} response.ErrorResponse "Нужна действующая подписка"
// @Failure 404 {object} response.ErrorResponse "Пакет не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /package/getbyid/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.packages.getbyid"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	pkg, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(pkg))
}
