// Package services содержит периодические задачи: очистку истёкших сессий
// и рассылку предупреждений об окончании подписки.
package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/magabrotheeeer/novelamania/internal/lib/sl"
	"github.com/magabrotheeeer/novelamania/internal/models"
)

// noticeLead за сколько до окончания подписки отправляется предупреждение.
const noticeLead = 24 * time.Hour

// SessionPurger удаляет сессии старше TTL.
type SessionPurger interface {
	PurgeExpired(ctx context.Context) (int, error)
}

// SubscriptionFinder ищет подписки, заканчивающиеся в полуинтервале [from, to).
type SubscriptionFinder interface {
	FindSubscriptionsExpiringBetween(ctx context.Context, from, to time.Time) ([]*models.ExpiringSubscriptionMessage, error)
}

// ExpiryNotifier публикует предупреждение об окончании подписки.
type ExpiryNotifier interface {
	NotifyExpiringSubscription(ctx context.Context, msg models.ExpiringSubscriptionMessage) error
}

// Cache отмечает уже отправленные предупреждения.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Intervals периоды запуска задач.
type Intervals struct {
	SessionPurge time.Duration
	ExpiryNotice time.Duration
}

// SchedulerService запускает периодические задачи до отмены контекста.
type SchedulerService struct {
	purger    SessionPurger
	finder    SubscriptionFinder
	notifier  ExpiryNotifier
	cache     Cache
	log       *slog.Logger
	intervals Intervals
	now       func() time.Time
}

// NewSchedulerService создает новый экземпляр SchedulerService. cache может быть nil.
func NewSchedulerService(purger SessionPurger, finder SubscriptionFinder, notifier ExpiryNotifier,
	cache Cache, log *slog.Logger, intervals Intervals) *SchedulerService {
	if intervals.SessionPurge <= 0 {
		intervals.SessionPurge = time.Hour
	}
	if intervals.ExpiryNotice <= 0 {
		intervals.ExpiryNotice = 12 * time.Hour
	}
	return &SchedulerService{
		purger:    purger,
		finder:    finder,
		notifier:  notifier,
		cache:     cache,
		log:       log,
		intervals: intervals,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Run выполняет обе задачи сразу и затем по тикеру. Возвращается после отмены ctx.
func (s *SchedulerService) Run(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.every(ctx, s.intervals.SessionPurge, s.PurgeSessions)
	}()
	go func() {
		defer wg.Done()
		s.every(ctx, s.intervals.ExpiryNotice, s.NotifyExpiring)
	}()
	wg.Wait()
}

func (s *SchedulerService) every(ctx context.Context, interval time.Duration, job func(context.Context)) {
	job(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			job(ctx)
		}
	}
}

// PurgeSessions удаляет истёкшие сессии.
func (s *SchedulerService) PurgeSessions(ctx context.Context) {
	n, err := s.purger.PurgeExpired(ctx)
	if err != nil {
		s.log.Error("failed to purge expired sessions", sl.Err(err))
		return
	}
	if n > 0 {
		s.log.Info("expired sessions purged", slog.Int("count", n))
	}
}

// NotifyExpiring публикует предупреждения для подписок, заканчивающихся через сутки.
// Окно равно интервалу запуска, поэтому соседние запуски не пересекаются.
func (s *SchedulerService) NotifyExpiring(ctx context.Context) {
	from := s.now().Add(noticeLead)
	to := from.Add(s.intervals.ExpiryNotice)

	entries, err := s.finder.FindSubscriptionsExpiringBetween(ctx, from, to)
	if err != nil {
		s.log.Error("failed to find expiring subscriptions", sl.Err(err))
		return
	}
	if len(entries) == 0 {
		s.log.Info("no expiring subscriptions found")
		return
	}
	s.log.Info("found expiring subscriptions", slog.Int("count", len(entries)))

	for _, entry := range entries {
		key := "notified:expiring:" + entry.UserUID + ":" + entry.EndDate.UTC().Format(time.RFC3339)
		if s.alreadyNotified(ctx, key) {
			continue
		}
		if err := s.notifier.NotifyExpiringSubscription(ctx, *entry); err != nil {
			s.log.Error("failed to publish message", sl.UserUID(entry.UserUID), sl.Err(err))
			continue
		}
		if s.cache != nil {
			if err := s.cache.Set(ctx, key, true, noticeLead+s.intervals.ExpiryNotice); err != nil {
				s.log.Warn("failed to mark notification as sent", sl.Err(err))
			}
		}
	}
}

func (s *SchedulerService) alreadyNotified(ctx context.Context, key string) bool {
	if s.cache == nil {
		return false
	}
	var sent bool
	found, err := s.cache.Get(ctx, key, &sent)
	if err != nil {
		s.log.Warn("failed to read notification mark", sl.Err(err))
		return false
	}
	return found && sent
}
