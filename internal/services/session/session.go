// Package session реализует реестр серверных сессий: каждая сессия связывает
// выданный токен с пользователем и живёт не дольше TTL.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/novelamania/internal/lib/sl"
	"github.com/magabrotheeeer/novelamania/internal/metrics"
	"github.com/magabrotheeeer/novelamania/internal/models"
)

// Repository хранилище сессий.
type Repository interface {
	AdmitSession(ctx context.Context, sess models.Session, limit int, notBefore time.Time) (int, error)
	CreateSession(ctx context.Context, sess models.Session) (string, error)
	CountSessions(ctx context.Context, userUID string, notBefore time.Time) (int, error)
	EvictOldestSession(ctx context.Context, userUID string, notBefore time.Time) (bool, error)
	FindSessionByToken(ctx context.Context, token string, notBefore time.Time) (*models.Session, error)
	DeleteSessionByToken(ctx context.Context, token string) (bool, error)
	DeleteSessionByID(ctx context.Context, id string) (bool, error)
	DeleteUserSessions(ctx context.Context, userUID string) (int, error)
	PurgeSessionsBefore(ctx context.Context, before time.Time) (int, error)
}

// Registry реестр сессий с TTL.
type Registry struct {
	repo    Repository
	ttl     time.Duration
	log     *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewRegistry создаёт реестр. m может быть nil.
func NewRegistry(repo Repository, ttl time.Duration, log *slog.Logger, m *metrics.Metrics) *Registry {
	return &Registry{
		repo:    repo,
		ttl:     ttl,
		log:     log,
		metrics: m,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock подменяет источник времени.
func (r *Registry) WithClock(now func() time.Time) *Registry {
	r.now = now
	return r
}

func (r *Registry) notBefore() time.Time {
	return r.now().Add(-r.ttl)
}

// Create сохраняет новую сессию без проверки лимита.
func (r *Registry) Create(ctx context.Context, userUID, token string) (*models.Session, error) {
	const op = "session.Create"
	sess := models.Session{ID: uuid.NewString(), UserUID: userUID, Token: token, CreatedAt: r.now()}
	if _, err := r.repo.CreateSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &sess, nil
}

// Admit атомарно вытесняет самые старые сессии пользователя и создаёт новую,
// так что живых сессий остаётся не больше limit.
func (r *Registry) Admit(ctx context.Context, userUID, token string, limit int) (*models.Session, int, error) {
	const op = "session.Admit"
	if limit < 1 {
		limit = 1
	}
	sess := models.Session{ID: uuid.NewString(), UserUID: userUID, Token: token, CreatedAt: r.now()}
	evicted, err := r.repo.AdmitSession(ctx, sess, limit, r.notBefore())
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	if evicted > 0 {
		r.metrics.Evicted(evicted)
		r.log.Info("evicted oldest sessions", sl.UserUID(userUID), slog.Int("evicted", evicted))
	}
	return &sess, evicted, nil
}

// CountFor возвращает число живых сессий пользователя.
func (r *Registry) CountFor(ctx context.Context, userUID string) (int, error) {
	const op = "session.CountFor"
	n, err := r.repo.CountSessions(ctx, userUID, r.notBefore())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// EvictOldest удаляет самую раннюю живую сессию пользователя.
func (r *Registry) EvictOldest(ctx context.Context, userUID string) (bool, error) {
	const op = "session.EvictOldest"
	ok, err := r.repo.EvictOldestSession(ctx, userUID, r.notBefore())
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if ok {
		r.metrics.Evicted(1)
	}
	return ok, nil
}

// FindByToken возвращает живую сессию или models.ErrNotFound.
func (r *Registry) FindByToken(ctx context.Context, token string) (*models.Session, error) {
	const op = "session.FindByToken"
	sess, err := r.repo.FindSessionByToken(ctx, token, r.notBefore())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sess, nil
}

// DeleteByToken удаляет сессию по токену. false, если её уже не было.
func (r *Registry) DeleteByToken(ctx context.Context, token string) (bool, error) {
	const op = "session.DeleteByToken"
	ok, err := r.repo.DeleteSessionByToken(ctx, token)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return ok, nil
}

// DeleteByID удаляет сессию по идентификатору.
func (r *Registry) DeleteByID(ctx context.Context, sessionID string) (bool, error) {
	const op = "session.DeleteByID"
	ok, err := r.repo.DeleteSessionByID(ctx, sessionID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return ok, nil
}

// RevokeAll удаляет все сессии пользователя.
func (r *Registry) RevokeAll(ctx context.Context, userUID string) (int, error) {
	const op = "session.RevokeAll"
	n, err := r.repo.DeleteUserSessions(ctx, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// PurgeExpired удаляет сессии старше TTL.
func (r *Registry) PurgeExpired(ctx context.Context) (int, error) {
	const op = "session.PurgeExpired"
	n, err := r.repo.PurgeSessionsBefore(ctx, r.notBefore())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	r.metrics.Purged(n)
	return n, nil
}
