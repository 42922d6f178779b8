// Package entitlement вычисляет, действует ли подписка пользователя и сколько дней осталось.
package entitlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/magabrotheeeer/novelamania/internal/lib/sl"
	"github.com/magabrotheeeer/novelamania/internal/models"
)

const day = 24 * time.Hour

// PackageLookup возвращает пакет подписки по ID.
type PackageLookup interface {
	Get(ctx context.Context, id string) (*models.Package, error)
}

// EndDateWriter сохраняет пересчитанную дату окончания подписки.
type EndDateWriter interface {
	UpdateSubscriptionEndDate(ctx context.Context, uid string, endDate time.Time) error
}

// Compute не обращается к хранилищу. Без подписки или пакета результат {Active: false, DaysRemaining: 0}.
// Подписка действует по дату окончания включительно.
func Compute(sub *models.Subscription, pkg *models.Package, now time.Time) models.Entitlement {
	if sub == nil || sub.PackageID == "" || pkg == nil {
		return models.Entitlement{}
	}
	end := EndDate(sub.StartDate, pkg.DurationInDays)
	days := int(math.Floor(float64(end.Sub(now)) / float64(day)))
	if days < 0 {
		days = 0
	}
	return models.Entitlement{
		Active:         !now.After(end),
		DaysRemaining:  days,
		PackageName:    pkg.Name,
		DurationInDays: pkg.DurationInDays,
		EndDate:        &end,
	}
}

// EndDate дата окончания подписки, начатой start, на durationInDays календарных дней.
func EndDate(start time.Time, durationInDays int) time.Time {
	return start.AddDate(0, 0, durationInDays)
}

// Evaluator вычисляет право доступа по актуальной записи пользователя.
type Evaluator struct {
	packages PackageLookup
	writer   EndDateWriter
	log      *slog.Logger
	now      func() time.Time
}

// NewEvaluator создает Evaluator.
func NewEvaluator(packages PackageLookup, writer EndDateWriter, log *slog.Logger) *Evaluator {
	return &Evaluator{
		packages: packages,
		writer:   writer,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// WithClock подменяет источник времени.
func (e *Evaluator) WithClock(now func() time.Time) *Evaluator {
	e.now = now
	return e
}

// Evaluate вычисляет право доступа и, если сохранённая дата окончания устарела, обновляет её.
// Удалённый пакет означает отсутствие подписки.
func (e *Evaluator) Evaluate(ctx context.Context, user *models.User) (models.Entitlement, error) {
	const op = "entitlement.Evaluate"
	if user == nil || user.Subscription == nil || user.Subscription.PackageID == "" {
		return models.Entitlement{}, nil
	}

	pkg, err := e.packages.Get(ctx, user.Subscription.PackageID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.Entitlement{}, nil
		}
		return models.Entitlement{}, fmt.Errorf("%s: %w", op, err)
	}

	ent := Compute(user.Subscription, pkg, e.now())
	if !ent.EndDate.Equal(user.Subscription.EndDate) {
		if err := e.Refresh(ctx, user.UID, *ent.EndDate); err != nil {
			e.log.Warn("failed to refresh subscription end date", sl.UserUID(user.UID), sl.Err(err))
		}
	}
	return ent, nil
}

// Refresh записывает дату окончания подписки пользователя.
func (e *Evaluator) Refresh(ctx context.Context, uid string, endDate time.Time) error {
	const op = "entitlement.Refresh"
	if err := e.writer.UpdateSubscriptionEndDate(ctx, uid, endDate); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
