package middlewarectx

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/novelamania/internal/http/response"
	"github.com/magabrotheeeer/novelamania/internal/models"
	"github.com/magabrotheeeer/novelamania/internal/services/access"
)

// SubscriptionGate проверяет действующую подписку.
type SubscriptionGate interface {
	RequireActiveSubscription(ctx context.Context, id *models.Identity) (models.Entitlement, error)
}

// RequireRole пропускает пользователей с одной из ролей allowed. Ставится после Authenticate.
func RequireRole(log *slog.Logger, allowed ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireRole"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
			id, _ := IdentityFrom(r.Context())
			if err := access.RequireRole(id, allowed...); err != nil {
				response.WriteError(w, r, log, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireActiveSubscription пропускает пользователей с действующей подпиской и кладёт
// результат проверки в контекст. Ставится после Authenticate.
func RequireActiveSubscription(log *slog.Logger, gate SubscriptionGate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireActiveSubscription"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
			id, ok := IdentityFrom(r.Context())
			if !ok {
				response.WriteError(w, r, log, fmt.Errorf("%s: %w", op, models.ErrUnauthorized))
				return
			}
			ent, err := gate.RequireActiveSubscription(r.Context(), id)
			if err != nil {
				response.WriteError(w, r, log, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), EntitlementKey, ent)))
		})
	}
}
