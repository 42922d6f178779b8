// Package access проверяет роль, подписку и владение ресурсом для установленного пользователя.
package access

import (
	"context"
	"fmt"
	"slices"

	"github.com/magabrotheeeer/novelamania/internal/models"
)

// UserFetcher читает актуальную запись пользователя.
type UserFetcher interface {
	GetUserByUID(ctx context.Context, uid string) (*models.User, error)
}

// EntitlementEvaluator вычисляет право доступа по подписке.
type EntitlementEvaluator interface {
	Evaluate(ctx context.Context, user *models.User) (models.Entitlement, error)
}

// RequireRole пропускает пользователя, роль которого входит в allowed.
func RequireRole(id *models.Identity, allowed ...models.Role) error {
	const op = "access.RequireRole"
	if id == nil {
		return fmt.Errorf("%s: %w", op, models.ErrUnauthorized)
	}
	if !slices.Contains(allowed, id.Role) {
		return fmt.Errorf("%s: %w: role %s is not allowed", op, models.ErrForbidden, id.Role)
	}
	return nil
}

// RequireResourceOwnerOrAdmin пропускает владельца ресурса, администратора и партнёра.
func RequireResourceOwnerOrAdmin(id *models.Identity, ownerUID string) error {
	const op = "access.RequireResourceOwnerOrAdmin"
	if id == nil {
		return fmt.Errorf("%s: %w", op, models.ErrUnauthorized)
	}
	if id.Role.Privileged() || id.UserUID == ownerUID {
		return nil
	}
	return fmt.Errorf("%s: %w", op, models.ErrForbidden)
}

// Gate проверяет действующую подписку.
type Gate struct {
	users        UserFetcher
	entitlements EntitlementEvaluator
}

// NewGate создает Gate.
func NewGate(users UserFetcher, entitlements EntitlementEvaluator) *Gate {
	return &Gate{users: users, entitlements: entitlements}
}

// Entitlement возвращает состояние подписки пользователя без требования активности.
// Администратор всегда считается подписанным.
func (g *Gate) Entitlement(ctx context.Context, id *models.Identity) (models.Entitlement, error) {
	const op = "access.Entitlement"
	if id == nil {
		return models.Entitlement{}, fmt.Errorf("%s: %w", op, models.ErrUnauthorized)
	}
	if id.Role == models.RoleAdmin {
		return models.Entitlement{Active: true}, nil
	}

	user, err := g.users.GetUserByUID(ctx, id.UserUID)
	if err != nil {
		return models.Entitlement{}, fmt.Errorf("%s: %w", op, err)
	}
	ent, err := g.entitlements.Evaluate(ctx, user)
	if err != nil {
		return models.Entitlement{}, fmt.Errorf("%s: %w", op, err)
	}
	return ent, nil
}

// RequireActiveSubscription возвращает право доступа пользователя или models.ErrSubscriptionRequired.
// Администратор проходит без подписки.
func (g *Gate) RequireActiveSubscription(ctx context.Context, id *models.Identity) (models.Entitlement, error) {
	const op = "access.RequireActiveSubscription"
	ent, err := g.Entitlement(ctx, id)
	if err != nil {
		return models.Entitlement{}, fmt.Errorf("%s: %w", op, err)
	}
	if !ent.Active {
		return ent, fmt.Errorf("%s: %w", op, models.ErrSubscriptionRequired)
	}
	return ent, nil
}
