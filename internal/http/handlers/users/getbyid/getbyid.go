// Package getbyid реализует HTTP-обработчик чтения пользователя по идентификатору.
package getbyid

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/novelamania/internal/http/middlewarectx"
	"github.com/magabrotheeeer/novelamania/internal/http/response"
	"github.com/magabrotheeeer/novelamania/internal/models"
)

// Service описывает поиск пользователя с проверкой прав вызывающего.
type Service interface {
	FindUser(ctx context.Context, caller *models.Identity, uid string) (*models.User, error)
}

// Entitlements вычисляет состояние подписки пользователя.
type Entitlements interface {
	Evaluate(ctx context.Context, user *models.User) (models.Entitlement, error)
}

// Result профиль пользователя вместе с состоянием подписки.
type Result struct {
	models.Profile
	Entitlement models.Entitlement `json:"entitlement"`
}

// Handler обрабатывает запросы чтения пользователя.
type Handler struct {
	log          *slog.Logger
	service      Service
	entitlements Entitlements
}

// New создает Handler.
func New(log *slog.Logger, service Service, entitlements Entitlements) *Handler {
	return &Handler{log: log, service: service, entitlements: entitlements}
}

// ServeHTTP godoc
// @Summary Пользователь по ID
// @Description Возвращает профиль и состояние подписки. Доступно владельцу, администратору и партнеру.
// @Tags Users
// @Produce  json
// @Param token header string true "Токен сессии"
// @Param id path string true "ID пользователя"
// @Success 200 {object} Result "Пользователь"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /user/getuserbyid/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.getbyid"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	caller, _ := middlewarectx.IdentityFrom(r.Context())
	user, err := h.service.FindUser(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	ent, err := h.entitlements.Evaluate(r.Context(), user)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	render.JSON(w, r, response.StatusOKWithData(Result{Profile: user.Profile(), Entitlement: ent}))
}
