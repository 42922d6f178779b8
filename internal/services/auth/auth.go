// Package services содержит логику аутентификации: вход с ограничением числа сессий,
// выход, регистрацию, сброс пароля и проверку токена запроса.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/novelamania/internal/lib/jwt"
	"github.com/magabrotheeeer/novelamania/internal/lib/password"
	"github.com/magabrotheeeer/novelamania/internal/lib/sl"
	"github.com/magabrotheeeer/novelamania/internal/metrics"
	"github.com/magabrotheeeer/novelamania/internal/models"
	"github.com/magabrotheeeer/novelamania/internal/services/access"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (string, error)
	GetUserByContact(ctx context.Context, contact string) (*models.User, error)
	GetUserByUID(ctx context.Context, uid string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	SetUserStatus(ctx context.Context, uid string, status models.UserStatus) error
	DeleteUser(ctx context.Context, uid string) error
	SetResetToken(ctx context.Context, uid, token string, expires time.Time) error
	ConsumeResetToken(ctx context.Context, token, passwordHash string, now time.Time) (string, error)
}

// SessionRegistry реестр серверных сессий.
type SessionRegistry interface {
	Admit(ctx context.Context, userUID, token string, limit int) (*models.Session, int, error)
	FindByToken(ctx context.Context, token string) (*models.Session, error)
	DeleteByToken(ctx context.Context, token string) (bool, error)
	RevokeAll(ctx context.Context, userUID string) (int, error)
}

// Notifier доставляет письмо со ссылкой сброса пароля.
type Notifier interface {
	SendPasswordReset(ctx context.Context, msg models.PasswordResetMessage) error
}

// Settings параметры политики аутентификации.
type Settings struct {
	MaxSessions   int           // Максимум живых сессий на пользователя
	ResetTokenTTL time.Duration // Срок действия токена сброса пароля
	ResetURL      string        // Базовый адрес страницы сброса пароля
}

// AuthService отвечает за вход, выход, регистрацию и сброс пароля.
type AuthService struct {
	users    UserRepository
	sessions SessionRegistry
	jwtMaker jwt.Maker
	notifier Notifier
	log      *slog.Logger
	metrics  *metrics.Metrics
	validate *validator.Validate
	settings Settings
	now      func() time.Time
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, sessions SessionRegistry, jwtMaker jwt.Maker, notifier Notifier,
	log *slog.Logger, m *metrics.Metrics, settings Settings) *AuthService {
	if settings.MaxSessions < 1 {
		settings.MaxSessions = 2
	}
	if settings.ResetTokenTTL <= 0 {
		settings.ResetTokenTTL = time.Hour
	}
	return &AuthService{
		users:    users,
		sessions: sessions,
		jwtMaker: jwtMaker,
		notifier: notifier,
		log:      log,
		metrics:  m,
		validate: validator.New(),
		settings: settings,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock подменяет источник времени.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

// SignInResult токен и публичные данные пользователя.
type SignInResult struct {
	Token     string
	SessionID string
	User      models.UserSummary
}

// SignIn проверяет контакт и пароль, вытесняет самую старую сессию при превышении лимита
// и выдаёт новый токен. Отсутствие пользователя и неверный пароль дают одну и ту же ошибку.
func (s *AuthService) SignIn(ctx context.Context, contact, rawPassword string) (*SignInResult, error) {
	const op = "services.auth.SignIn"

	user, err := s.users.GetUserByContact(ctx, contact)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			_ = password.CompareDummy(rawPassword)
			s.metrics.SignIn("invalid_credentials")
			return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		s.metrics.SignIn("invalid_credentials")
		return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidCredentials)
	}
	if user.Status != models.StatusActive {
		s.metrics.SignIn("inactive")
		return nil, fmt.Errorf("%s: %w", op, models.ErrAccountInactive)
	}

	token, err := s.jwtMaker.GenerateToken(user.UID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	sess, evicted, err := s.sessions.Admit(ctx, user.UID, token, s.settings.MaxSessions)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.metrics.SignIn("success")
	s.log.Info("user signed in", sl.UserUID(user.UID), slog.Int("evicted_sessions", evicted))
	return &SignInResult{
		Token:     token,
		SessionID: sess.ID,
		User:      user.Summary(),
	}, nil
}

// SignOut удаляет сессию токена. Повторный выход не является ошибкой:
// возвращается alreadyLoggedOut = true.
func (s *AuthService) SignOut(ctx context.Context, token string) (bool, error) {
	const op = "services.auth.SignOut"
	if token == "" {
		return true, nil
	}
	deleted, err := s.sessions.DeleteByToken(ctx, token)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return !deleted, nil
}

// SignUpInput данные регистрации.
type SignUpInput struct {
	FirstName   string      `validate:"required,max=100"`
	LastName    string      `validate:"required,max=100"`
	Email       string      `validate:"omitempty,email"`
	Gender      string      `validate:"required,oneof=masculino feminino outro"`
	DateOfBirth *time.Time
	Province    string      `validate:"max=100"`
	Contact     string      `validate:"required,numeric,min=6,max=20"`
	Avatar      string      `validate:"omitempty,url"`
	Role        models.Role `validate:"required"`
	Password    string      `validate:"required,min=6,max=72"`
}

// SignUp регистрирует пользователя. Роли admin и partner может назначить только
// аутентифицированный администратор, caller может быть nil.
func (s *AuthService) SignUp(ctx context.Context, caller *models.Identity, in SignUpInput) (*models.User, error) {
	const op = "services.auth.SignUp"

	in.Contact = strings.TrimSpace(in.Contact)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, models.ErrValidation, err)
	}
	if len(in.Password) > password.MaxBytes {
		return nil, fmt.Errorf("%s: %w: password must be at most %d bytes", op, models.ErrValidation, password.MaxBytes)
	}
	if !in.Role.Valid() {
		return nil, fmt.Errorf("%s: %w: unknown role %d", op, models.ErrValidation, int(in.Role))
	}
	if in.Role.Privileged() && (caller == nil || caller.Role != models.RoleAdmin) {
		return nil, fmt.Errorf("%s: %w: only an administrator can assign role %s", op, models.ErrForbidden, in.Role)
	}

	if _, err := s.users.GetUserByContact(ctx, in.Contact); err == nil {
		return nil, fmt.Errorf("%s: %w: contact already registered", op, models.ErrConflict)
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Gender:       in.Gender,
		DateOfBirth:  in.DateOfBirth,
		Province:     in.Province,
		Contact:      in.Contact,
		Avatar:       in.Avatar,
		PasswordHash: hashed,
		Role:         in.Role,
		Status:       models.StatusActive,
		CreatedAt:    s.now(),
	}
	uid, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user.UID = uid

	s.log.Info("user registered", sl.UserUID(uid), slog.String("role", user.Role.String()))
	return &user, nil
}

// EnsureAdmin создаёт администратора с указанным контактом, если такого пользователя ещё нет.
func (s *AuthService) EnsureAdmin(ctx context.Context, contact, rawPassword string) error {
	const op = "services.auth.EnsureAdmin"
	if contact == "" || rawPassword == "" {
		return nil
	}
	_, err := s.users.GetUserByContact(ctx, contact)
	if err == nil {
		return nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}
	admin := &models.Identity{Role: models.RoleAdmin}
	_, err = s.SignUp(ctx, admin, SignUpInput{
		FirstName: "Admin",
		LastName:  "Novelamania",
		Gender:    "outro",
		Contact:   contact,
		Role:      models.RoleAdmin,
		Password:  rawPassword,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Profile возвращает пользователя по UID.
func (s *AuthService) Profile(ctx context.Context, uid string) (*models.User, error) {
	const op = "services.auth.Profile"
	user, err := s.users.GetUserByUID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// SetStatus меняет статус учётной записи. Блокировка завершает все сессии пользователя.
func (s *AuthService) SetStatus(ctx context.Context, uid string, status models.UserStatus) error {
	const op = "services.auth.SetStatus"
	if !status.Valid() {
		return fmt.Errorf("%s: %w: unknown status %q", op, models.ErrValidation, status)
	}
	if err := s.users.SetUserStatus(ctx, uid, status); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if status == models.StatusInactive {
		n, err := s.sessions.RevokeAll(ctx, uid)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		s.log.Info("user deactivated", sl.UserUID(uid), slog.Int("revoked_sessions", n))
	}
	return nil
}

// FindUser возвращает пользователя uid. Читать чужой профиль могут только администратор и партнёр.
func (s *AuthService) FindUser(ctx context.Context, caller *models.Identity, uid string) (*models.User, error) {
	const op = "services.auth.FindUser"
	if err := access.RequireResourceOwnerOrAdmin(caller, uid); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user, err := s.users.GetUserByUID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// SubscriberList пользователи, разделённые по наличию подписки.
type SubscriberList struct {
	Subscribers    []models.Profile `json:"subscribers"`
	NonSubscribers []models.Profile `json:"nonSubscribers"`
}

// Subscribers делит всех пользователей на тех, у кого оформлена подписка, и остальных.
// Срок подписки не проверяется.
func (s *AuthService) Subscribers(ctx context.Context) (*SubscriberList, error) {
	const op = "services.auth.Subscribers"
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	list := &SubscriberList{
		Subscribers:    make([]models.Profile, 0),
		NonSubscribers: make([]models.Profile, 0),
	}
	for _, u := range users {
		if u.Subscription != nil && u.Subscription.PackageID != "" {
			list.Subscribers = append(list.Subscribers, u.Profile())
		} else {
			list.NonSubscribers = append(list.NonSubscribers, u.Profile())
		}
	}
	return list, nil
}

// DeleteUser удаляет учётную запись. Сессии пользователя завершаются до удаления записи,
// администратор не может удалить самого себя.
func (s *AuthService) DeleteUser(ctx context.Context, caller *models.Identity, uid string) error {
	const op = "services.auth.DeleteUser"
	if err := access.RequireRole(caller, models.RoleAdmin); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if caller.UserUID == uid {
		return fmt.Errorf("%s: %w: administrator cannot delete own account", op, models.ErrForbidden)
	}

	n, err := s.sessions.RevokeAll(ctx, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.DeleteUser(ctx, uid); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user deleted", sl.UserUID(uid), slog.Int("revoked_sessions", n), slog.String("by", caller.UserUID))
	return nil
}
