// Package validate реализует HTTP-обработчик, возвращающий число оставшихся дней подписки.
package validate

import (
	"context"
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
	DaysRemaining int    `json:"daysRemaining"`
	Active        bool   `json:"active"`
	PackageName   string `json:"packageName"`
}

// Service возвращает состояние подписки пользователя.
type Service interface {
	Entitlement(ctx context.Context, id *models.Identity) (models.Entitlement, error)
}

// Handler обрабатывает запросы оставшихся дней подписки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Оставшиеся дни подписки
// @Description Возвращает число полных дней до окончания подписки, истекшая подписка дает 0.
// @Description Доступно только пользователям с оформленной подпиской, администратор получает 403.
// @Tags Subscription
// @Produce  json
// @Param token header string true "Токен сессии"
// @Success 200 {object} Result "Оставшиеся дни"
// @Failure 401 {object} response.ErrorResponse "Токен недействителен"
// @Failure 403 {object} response.ErrorResponse "Подписка не оформлена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /validate/subscription [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.validate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, ok := middlewarectx.IdentityFrom(r.Context())
	if !ok {
		response.WriteError(w, r, log, fmt.Errorf("%s: %w", op, models.ErrUnauthorized))
		return
	}
	if id.Role == models.RoleAdmin {
		response.WriteError(w, r, log, fmt.Errorf("%s: %w: administrators have no subscription", op, models.ErrForbidden))
		return
	}

	ent, err := h.service.Entitlement(r.Context(), id)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	if ent.EndDate == nil {
		response.WriteError(w, r, log, fmt.Errorf("%s: %w", op, models.ErrSubscriptionRequired))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(Result{
		DaysRemaining: ent.DaysRemaining,
		Active:        ent.Active,
		PackageName:   ent.PackageName,
	}))
}
