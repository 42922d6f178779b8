// Package edit реализует HTTP-обработчик изменения пакета подписки.
package edit

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/novelamania/internal/http/response"
	"github.com/magabrotheeeer/novelamania/internal/lib/sl"
	"github.com/magabrotheeeer/novelamania/internal/models"
	"github.com/magabrotheeeer/novelamania/internal/services/packages"
)

// Request новые значения полей пакета.
type Request struct {
	Name           string  `json:"name" validate:"required,max=100"`
	DurationInDays int     `json:"durationInDays" validate:"required,min=1"`
	Price          float64 `json:"price" validate:"min=0"`
}

// Service описывает изменение пакета.
type Service interface {
	Edit(ctx context.Context, id string, in packages.Input) (*models.Package, error)
}

// Handler обрабатывает запросы на изменение пакета.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Изменить пакет
// @Description Обновляет название, длительность и цену пакета. Только для администратора.
// @Tags Packages
// @Accept  json
// @Produce  json
// @Param token header string true "Токен администратора"
// @Param id path string true "ID пакета"
// @Param request body Request true "Новые данные пакета"
// @Success 200 {object} models.Package "Пакет изменен"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Пакет не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /package/edit/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.packages.edit"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	pkg, err := h.service.Edit(r.Context(), id, packages.Input{
		Name:           req.Name,
		DurationInDays: req.DurationInDays,
		Price:          req.Price,
	})
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Info("package updated", slog.String("package_id", id))
	render.JSON(w, r, response.StatusOKWithData(pkg))
}
