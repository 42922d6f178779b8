// Package notifier публикует уведомления в брокер для сервиса отправки писем.
package notifier

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/novelamania/internal/models"
	"github.com/magabrotheeeer/novelamania/internal/rabbitmq"
)

const appID = "novelamania"

// Publisher публикует уведомления в обменник notifications.
type Publisher struct {
	pub *rabbitmq.Publisher
}

// New создает Publisher поверх открытого канала.
func New(ch rabbitmq.Channel) *Publisher {
	return &Publisher{pub: rabbitmq.NewPublisher(ch, appID)}
}

// SendPasswordReset ставит в очередь письмо со ссылкой сброса пароля.
func (p *Publisher) SendPasswordReset(ctx context.Context, msg models.PasswordResetMessage) error {
	const op = "notifier.SendPasswordReset"
	return p.publish(ctx, op, rabbitmq.RoutingPasswordReset, msg)
}

// NotifyExpiringSubscription ставит в очередь предупреждение об окончании подписки.
func (p *Publisher) NotifyExpiringSubscription(ctx context.Context, msg models.ExpiringSubscriptionMessage) error {
	const op = "notifier.NotifyExpiringSubscription"
	return p.publish(ctx, op, rabbitmq.RoutingExpiring, msg)
}

func (p *Publisher) publish(ctx context.Context, op, key string, msg any) error {
	if _, err := p.pub.Publish(ctx, key, msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
