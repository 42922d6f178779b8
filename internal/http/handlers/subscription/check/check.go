// Package check реализует проверку действующей подписки.
// Маршрут стоит за RequireActiveSubscription, обработчик отдаёт результат проверки.
package check

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/novelamania/internal/http/middlewarectx"
	"github.com/magabrotheeeer/novelamania/internal/http/response"
)

// New возвращает обработчик проверки подписки.
//
// @Summary Проверка подписки
// @Description Пропускает пользователей с действующей подпиской и администраторов.
// @Tags Subscription
// @Produce  json
// @Param token header string true "Токен сессии"
// @Success 200 {object} models.Entitlement "Подписка действует"
// @Failure 401 {object} response.ErrorResponse "Токен недействителен"
// @Failure 403 {object} response.ErrorResponse "Подписки нет или она истекла"
// @Router /check/checkSubscription [get]
func New(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.subscription.check"
		ent, _ := middlewarectx.EntitlementFrom(r.Context())
		log.Debug("subscription is active",
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.Int("days_remaining", ent.DaysRemaining),
		)
		render.JSON(w, r, response.StatusOKWithData(ent))
	}
}
