// Package reset реализует HTTP-обработчик установки нового пароля по токену сброса.
package reset

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

// Request токен из письма и новый пароль.
type Request struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// Service описывает завершение сброса пароля.
type Service interface {
	CompletePasswordReset(ctx context.Context, token, newPassword string) error
}

// Handler обрабатывает запросы на установку нового пароля.
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
// @Summary Установка нового пароля
// @Description Меняет пароль по одноразовому токену сброса и завершает все сессии пользователя.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Токен и новый пароль"
// @Success 200 {object} response.Response "Пароль изменен"
// @Failure 400 {object} response.ErrorResponse "Токен недействителен или истек"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /reset-password [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.reset"
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

	if err := h.service.CompletePasswordReset(r.Context(), req.Token, req.Password); err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Info("password changed")
	render.JSON(w, r, response.StatusOKWithData(map[string]string{
		"message": "password reset successful",
	}))
}
