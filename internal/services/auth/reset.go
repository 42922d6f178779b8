package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/novelamania/internal/lib/password"
	"github.com/magabrotheeeer/novelamania/internal/lib/sl"
	"github.com/magabrotheeeer/novelamania/internal/models"
)

const minPasswordLen = 6

// InitiatePasswordReset сохраняет у пользователя случайный токен сброса со сроком действия
// и отправляет ссылку на почту. Неизвестный контакт возвращает models.ErrNotFound.
func (s *AuthService) InitiatePasswordReset(ctx context.Context, contact string) error {
	const op = "services.auth.InitiatePasswordReset"

	user, err := s.users.GetUserByContact(ctx, strings.TrimSpace(contact))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	token, err := password.NewResetToken()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	expires := s.now().Add(s.settings.ResetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.UID, token, expires); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if user.Email == "" {
		s.log.Warn("user has no email, reset link not sent", sl.UserUID(user.UID))
		return nil
	}
	msg := models.PasswordResetMessage{
		Email:     user.Email,
		FirstName: user.FirstName,
		ResetURL:  strings.TrimRight(s.settings.ResetURL, "/") + "/" + token,
		ExpiresAt: expires,
	}
	if err := s.notifier.SendPasswordReset(ctx, msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("password reset requested", sl.UserUID(user.UID))
	return nil
}

// CompletePasswordReset заменяет пароль по действующему токену сброса и завершает все
// сессии пользователя. Токен одноразовый: повтор даёт models.ErrInvalidOrExpiredToken.
func (s *AuthService) CompletePasswordReset(ctx context.Context, token, newPassword string) error {
	const op = "services.auth.CompletePasswordReset"

	if len(newPassword) < minPasswordLen {
		return fmt.Errorf("%s: %w: password must contain at least %d characters", op, models.ErrValidation, minPasswordLen)
	}
	if len(newPassword) > password.MaxBytes {
		return fmt.Errorf("%s: %w: password must be at most %d bytes", op, models.ErrValidation, password.MaxBytes)
	}
	if token == "" {
		return fmt.Errorf("%s: %w", op, models.ErrInvalidOrExpiredToken)
	}

	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	uid, err := s.users.ConsumeResetToken(ctx, token, hashed, s.now())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := s.sessions.RevokeAll(ctx, uid)
	if err != nil {
		s.log.Error("failed to revoke sessions after password reset", sl.UserUID(uid), sl.Err(err))
		return nil
	}
	s.log.Info("password reset completed", sl.UserUID(uid), slog.Int("revoked_sessions", n))
	return nil
}
