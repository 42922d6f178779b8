// Package verify реализует проверку токена запроса. Сама проверка выполняется
// middleware Authenticate, обработчик только подтверждает результат.
package verify

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/novelamania/internal/http/middlewarectx"
	"github.com/magabrotheeeer/novelamania/internal/http/response"
	"github.com/magabrotheeeer/novelamania/internal/models"
)

// Result тело успешного ответа.
type Result struct {
	Message string      `json:"message"`
	UserID  string      `json:"userId"`
	Role    models.Role `json:"role"`
}

// New возвращает обработчик проверки токена.
//
// @Summary Проверка токена
// @Description Подтверждает, что токен подписан, не истек и его сессия жива.
// @Tags Auth
// @Produce  json
// @Param token header string true "Токен сессии"
// @Success 200 {object} Result "Токен действителен"
// @Failure 401 {object} response.ErrorResponse "Токен недействителен"
// @Router /check/verify-token [get]
func New(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.verify"
		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, ok := middlewarectx.IdentityFrom(r.Context())
		if !ok {
			response.WriteError(w, r, log, fmt.Errorf("%s: %w", op, models.ErrUnauthorized))
			return
		}
		render.JSON(w, r, response.StatusOKWithData(Result{
			Message: "token is valid",
			UserID:  id.UserUID,
			Role:    id.Role,
		}))
	}
}
