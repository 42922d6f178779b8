// Package remove реализует HTTP-обработчик удаления учетной записи администратором.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/novelamania/internal/http/middlewarectx"
	"github.com/magabrotheeeer/novelamania/internal/http/response"
	"github.com/magabrotheeeer/novelamania/internal/lib/sl"
	"github.com/magabrotheeeer/novelamania/internal/models"
)

// Service описывает удаление пользователя.
type Service interface {
	DeleteUser(ctx context.Context, caller *models.Identity, uid string) error
}

// Handler обрабатывает запросы удаления пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить пользователя
// @Description Завершает все сессии пользователя и удаляет учетную запись. Только для администратора.
// @Tags Users
// @Produce  json
// @Param token header string true "Токен администратора"
// @Param id path string true "ID пользователя"
// @Success 200 {object} response.Response "Пользователь удален"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/user/delete/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.users.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	caller, _ := middlewarectx.IdentityFrom(r.Context())
	uid := chi.URLParam(r, "id")
	if err := h.service.DeleteUser(r.Context(), caller, uid); err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Info("user deleted", sl.UserUID(uid))
	render.JSON(w, r, response.StatusOKWithData(map[string]string{
		"message": "user deleted",
	}))
}
