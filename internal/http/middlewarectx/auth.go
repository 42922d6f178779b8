package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/novelamania/internal/http/response"
	"github.com/magabrotheeeer/novelamania/internal/models"
)

// TokenName имя заголовка и cookie с токеном.
const TokenName = "token"

// Authenticator устанавливает пользователя по токену.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Identity, error)
}

// TokenFromRequest возвращает токен из заголовка token, а если его нет, из cookie token.
func TokenFromRequest(r *http.Request) string {
	if token := r.Header.Get(TokenName); token != "" {
		return token
	}
	if c, err := r.Cookie(TokenName); err == nil {
		return c.Value
	}
	return ""
}

// Authenticate пропускает только запросы с действующим токеном и живой сессией.
func Authenticate(log *slog.Logger, authn Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Authenticate"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token := TokenFromRequest(r)
			id, err := authn.Authenticate(r.Context(), token)
			if err != nil {
				response.WriteError(w, r, log, err)
				return
			}
			ctx := WithIdentity(r.Context(), id)
			ctx = context.WithValue(ctx, TokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuthenticate устанавливает пользователя, если токен передан, и пропускает
// анонимные запросы. Переданный, но недействительный токен отклоняется.
func OptionalAuthenticate(log *slog.Logger, authn Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.OptionalAuthenticate"
			token := TokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			id, err := authn.Authenticate(r.Context(), token)
			if err != nil {
				response.WriteError(w, r, log.With(slog.String("op", op)), err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}
