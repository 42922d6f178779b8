// Package create реализует HTTP-обработчик создания пакета подписки.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/novelamania/internal/http/response"
	"github.com/magabrotheeeer/novelamania/internal/lib/sl"
	"github.com/magabrotheeeer/novelamania/internal/models"
	"github.com/magabrotheeeer/novelamania/internal/services/packages"
)

// Request поля нового пакета.
type Request struct {
	Name           string  `json:"name" validate:"required,max=100" example:"Mensal"`
	DurationInDays int     `json:"durationInDays" validate:"required,min=1" example:"30"`
	Price          float64 `json:"price" validate:"min=0" example:"250"`
}

// Service описывает создание пакета.
type Service interface {
	Create(ctx context.Context, in packages.Input) (*models.Package, error)
}

// Handler обрабатывает запросы на создание пакета.
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
// @Summary Создать пакет
// @Description Добавляет пакет подписки в каталог. Только для администратора.
// @Tags Packages
// @Accept  json
// @Produce  json
// @Param token header string true "Токен администратора"
// @Param request body Request true "Данные пакета"
// @Success 201 {object} models.Package "Пакет создан"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Токен недействителен"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /package/create [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.packages.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	pkg, err := h.service.Create(r.Context(), packages.Input{
		Name:           req.Name,
		DurationInDays: req.DurationInDays,
		Price:          req.Price,
	})
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(pkg))
}
