// Package forgot реализует HTTP-обработчик запроса ссылки сброса пароля.
package forgot

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
)

// Request контакт пользователя, которому нужен сброс пароля.
type Request struct {
	Contact string `json:"contact1" validate:"required"`
}

// Service описывает запуск сброса пароля.
type Service interface {
	InitiatePasswordReset(ctx context.Context, contact string) error
}

// Handler обрабатывает запросы на сброс пароля.
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
// @Summary Запрос сброса пароля
// @Description Сохраняет одноразовый токен сброса на час и отправляет ссылку на почту пользователя.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Контакт пользователя"
// @Success 200 {object} response.Response "Письмо отправлено"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 429 {object} response.ErrorResponse "Слишком много запросов"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /forgot-password [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.forgot"
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
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.InitiatePasswordReset(r.Context(), req.Contact); err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]string{
		"message": "password reset email sent",
	}))
}
