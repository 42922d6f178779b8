// Package subscribe реализует HTTP-обработчик оформления подписки на пакет.
//
// Подписку оформляет сам пользователь или администратор. Начало подписки текущий момент,
// окончание через durationInDays дней пакета.
package subscribe

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/novelamania/internal/http/middlewarectx"
	"github.com/magabrotheeeer/novelamania/internal/http/response"
	"github.com/magabrotheeeer/novelamania/internal/lib/sl"
	"github.com/magabrotheeeer/novelamania/internal/models"
)

// Request пакет и пользователь, которому оформляется подписка.
type Request struct {
	PackageID string `json:"packageId" validate:"required"`
	UserID    string `json:"userId" validate:"required"`
}

// Service описывает оформление подписки.
type Service interface {
	Subscribe(ctx context.Context, caller *models.Identity, packageID, userUID string) (*models.Subscription, error)
}

// Handler обрабатывает запросы на оформление подписки.
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
// @Summary Оформить подписку
// @Description Назначает пользователю-подписчику пакет с текущего момента.
// @Tags Packages
// @Accept  json
// @Produce  json
// @Param token header string true "Токен сессии"
// @Param request body Request true "Пакет и пользователь"
// @Success 200 {object} models.Subscription "Подписка оформлена"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Токен недействителен"
// @Failure 403 {object} response.ErrorResponse "Чужой пользователь или роль не subscriber"
// @Failure 404 {object} response.ErrorResponse "Пакет или пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /package/subscribe [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.packages.subscribe"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	caller, ok := middlewarectx.IdentityFrom(r.Context())
	if !ok {
		response.WriteError(w, r, log, fmt.Errorf("%s: %w", op, models.ErrUnauthorized))
		return
	}

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

	sub, err := h.service.Subscribe(r.Context(), caller, req.PackageID, req.UserID)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(sub))
}
