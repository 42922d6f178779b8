// Package signup реализует HTTP-обработчик регистрации пользователя.
//
// Роли admin и partner может назначить только аутентифицированный администратор,
// поэтому маршрут стоит за OptionalAuthenticate.
package signup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/novelamania/internal/http/middlewarectx"
	"github.com/magabrotheeeer/novelamania/internal/http/response"
	"github.com/magabrotheeeer/novelamania/internal/lib/sl"
	"github.com/magabrotheeeer/novelamania/internal/models"
	services "github.com/magabrotheeeer/novelamania/internal/services/auth"
)

// Request данные регистрации.
type Request struct {
	FirstName   string      `json:"firstName" example:"Ana"`
	LastName    string      `json:"lastName" example:"Silva"`
	Email       string      `json:"email" example:"ana@example.com"`
	Gender      string      `json:"gender" example:"feminino"`
	DateOfBirth string      `json:"dob" example:"1998-04-21"`
	Province    string      `json:"province" example:"Maputo"`
	Contact     string      `json:"contact1" example:"841234567"`
	Avatar      string      `json:"avatar"`
	Role        models.Role `json:"role" example:"2"`
	Password    string      `json:"password" example:"secret123"`
}

// Service описывает бизнес-логику регистрации.
type Service interface {
	SignUp(ctx context.Context, caller *models.Identity, in services.SignUpInput) (*models.User, error)
}

// Handler обрабатывает запросы на регистрацию.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создает учетную запись. Роли admin и partner назначает только администратор.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param token header string false "Токен администратора"
// @Param request body Request true "Данные пользователя"
// @Success 201 {object} models.Profile "Пользователь создан"
// @Failure 400 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Недействительный токен"
// @Failure 403 {object} response.ErrorResponse "Роль может назначить только администратор"
// @Failure 409 {object} response.ErrorResponse "Контакт уже зарегистрирован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /user/signup [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signup"
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

	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		response.WriteError(w, r, log, fmt.Errorf("%s: %w: field dob must be a date", op, models.ErrValidation))
		return
	}

	caller, _ := middlewarectx.IdentityFrom(r.Context())
	user, err := h.service.SignUp(r.Context(), caller, services.SignUpInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Gender:      req.Gender,
		DateOfBirth: dob,
		Province:    req.Province,
		Contact:     req.Contact,
		Avatar:      req.Avatar,
		Role:        req.Role,
		Password:    req.Password,
	})
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Info("user created", sl.UserUID(user.UID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(user.Profile()))
}

// parseDate принимает дату в виде 2006-01-02 или RFC 3339. Пустая строка даёт nil.
func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unsupported date %q", s)
}
