// Package middlewarectx содержит HTTP middleware: установление пользователя по токену,
// проверки роли и подписки, ограничение частоты запросов.
package middlewarectx

import (
	"context"

	"github.com/magabrotheeeer/novelamania/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// IdentityKey ключ установленного пользователя (*models.Identity).
	IdentityKey Key = "identity"
	// EntitlementKey ключ результата проверки подписки (models.Entitlement).
	EntitlementKey Key = "entitlement"
	// TokenKey ключ токена, по которому установлен пользователь.
	TokenKey Key = "token"
)

// IdentityFrom возвращает пользователя из контекста запроса.
func IdentityFrom(ctx context.Context) (*models.Identity, bool) {
	id, ok := ctx.Value(IdentityKey).(*models.Identity)
	return id, ok && id != nil
}

// EntitlementFrom возвращает результат проверки подписки из контекста запроса.
func EntitlementFrom(ctx context.Context) (models.Entitlement, bool) {
	ent, ok := ctx.Value(EntitlementKey).(models.Entitlement)
	return ent, ok
}

// WithIdentity кладёт пользователя в контекст.
func WithIdentity(ctx context.Context, id *models.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, id)
}
