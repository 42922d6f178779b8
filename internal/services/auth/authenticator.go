package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/novelamania/internal/lib/jwt"
	"github.com/magabrotheeeer/novelamania/internal/metrics"
	"github.com/magabrotheeeer/novelamania/internal/models"
)

// UserFetcher читает актуальную запись пользователя.
type UserFetcher interface {
	GetUserByUID(ctx context.Context, uid string) (*models.User, error)
}

// Authenticator устанавливает пользователя по токену запроса.
type Authenticator struct {
	jwtMaker jwt.Maker
	sessions SessionRegistry
	users    UserFetcher
	metrics  *metrics.Metrics
}

// NewAuthenticator создает Authenticator.
func NewAuthenticator(jwtMaker jwt.Maker, sessions SessionRegistry, users UserFetcher, m *metrics.Metrics) *Authenticator {
	return &Authenticator{
		jwtMaker: jwtMaker,
		sessions: sessions,
		users:    users,
		metrics:  m,
	}
}

// Authenticate проверяет по порядку: наличие токена, подпись и срок, живую сессию,
// затем заново читает пользователя, чтобы роль и статус были актуальными.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (*models.Identity, error) {
	const op = "services.auth.Authenticate"

	if token == "" {
		a.metrics.AuthFailure("no_token")
		return nil, fmt.Errorf("%s: %w", op, models.ErrNoToken)
	}

	claims, err := a.jwtMaker.ParseToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrExpired) {
			a.metrics.AuthFailure("expired")
			return nil, fmt.Errorf("%s: %w", op, models.ErrTokenExpired)
		}
		a.metrics.AuthFailure("invalid_token")
		return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidToken)
	}

	sess, err := a.sessions.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			a.metrics.AuthFailure("session_not_found")
			return nil, fmt.Errorf("%s: %w", op, models.ErrSessionNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if sess.UserUID != claims.UserUID {
		a.metrics.AuthFailure("invalid_token")
		return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidToken)
	}

	user, err := a.users.GetUserByUID(ctx, sess.UserUID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			a.metrics.AuthFailure("session_not_found")
			return nil, fmt.Errorf("%s: %w", op, models.ErrSessionNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if user.Status != models.StatusActive {
		a.metrics.AuthFailure("inactive")
		return nil, fmt.Errorf("%s: %w", op, models.ErrAccountInactive)
	}

	return &models.Identity{
		UserUID:   user.UID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		Status:    user.Status,
		SessionID: sess.ID,
	}, nil
}
