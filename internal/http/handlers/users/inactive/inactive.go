// Package inactive реализует HTTP-обработчик смены статуса учетной записи.
// Блокировка завершает все сессии пользователя.
package inactive

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
)

// Request новый статус учетной записи.
type Request struct {
	Status models.UserStatus `json:"status" validate:"required,oneof=Active Inactive" example:"Inactive"`
}

// Service описывает смену статуса.
type Service interface {
	SetStatus(ctx context.Context, uid string, status models.UserStatus) error
}

// Handler обрабатывает запросы смены статуса.
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
// @Summary Сменить статус пользователя
// @Description Активирует или блокирует учетную запись. Только для администратора.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param token header string true "Токен администратора"
// @Param id path string true "ID пользователя"
// @Param request body Request true "Новый статус"
// @Success 200 {object} response.Response "Статус изменен"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /user/inactive/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.inactive"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	uid := chi.URLParam(r, "id")

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

	if err := h.service.SetStatus(r.Context(), uid, req.Status); err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Info("user status changed", sl.UserUID(uid), slog.String("status", string(req.Status)))
	render.JSON(w, r, response.StatusOKWithData(map[string]string{
		"status": string(req.Status),
	}))
}
