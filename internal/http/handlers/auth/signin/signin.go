// Package signin реализует HTTP-обработчик входа по контакту и паролю.
//
// При успешном входе токен возвращается в теле ответа и в http-only cookie token
// со сроком жизни токена. Третий вход вытесняет самую старую сессию пользователя.
package signin

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/novelamania/internal/http/middlewarectx"
	"github.com/magabrotheeeer/novelamania/internal/http/response"
	"github.com/magabrotheeeer/novelamania/internal/lib/sl"
	"github.com/magabrotheeeer/novelamania/internal/models"
	services "github.com/magabrotheeeer/novelamania/internal/services/auth"
)

// Request учетные данные для входа.
type Request struct {
	Contact  string `json:"contact1" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Result тело успешного ответа.
type Result struct {
	Token string             `json:"token"`
	User  models.UserSummary `json:"user"`
}

// Service описывает бизнес-логику входа.
type Service interface {
	SignIn(ctx context.Context, contact, password string) (*services.SignInResult, error)
}

// Handler обрабатывает запросы на вход.
type Handler struct {
	log      *slog.Logger
	service  Service
	tokenTTL time.Duration // Срок жизни cookie с токеном
	validate *validator.Validate
}

// New создает Handler.
func New(log *slog.Logger, service Service, tokenTTL time.Duration) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		tokenTTL: tokenTTL,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Проверяет контакт и пароль, создает сессию и выдает токен. У пользователя не больше двух сессий.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные"
// @Success 200 {object} Result "Успешный вход"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные или учетная запись заблокирована"
// @Failure 429 {object} response.ErrorResponse "Слишком много запросов"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /signin [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signin"
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

	res, err := h.service.SignIn(r.Context(), req.Contact, req.Password)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middlewarectx.TokenName,
		Value:    res.Token,
		Path:     "/",
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	log.Info("user signed in", sl.UserUID(res.User.ID))
	render.JSON(w, r, response.StatusOKWithData(Result{
		Token: res.Token,
		User:  res.User,
	}))
}
