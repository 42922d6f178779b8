package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

// ErrUnknownRoutingKey ключ, к которому не привязана ни одна очередь уведомлений.
var ErrUnknownRoutingKey = errors.New("unknown notification routing key")

// Channel часть *amqp.Channel, нужная для публикации.
type Channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Publisher публикует уведомления в NotificationsExchange. Каждое сообщение получает
// собственный MessageId, по которому его находят в логах отправителя и потребителя.
type Publisher struct {
	ch    Channel
	appID string
	keys  map[string]struct{}
	now   func() time.Time
	newID func() string
}

// NewPublisher создает Publisher. appID попадает в свойство app_id каждого сообщения.
func NewPublisher(ch Channel, appID string) *Publisher {
	keys := make(map[string]struct{})
	for _, q := range GetNotificationQueues() {
		keys[q.RoutingKey] = struct{}{}
	}
	return &Publisher{
		ch:    ch,
		appID: appID,
		keys:  keys,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Publish сериализует message в JSON и публикует его как постоянное сообщение с ключом key.
// Возвращает MessageId опубликованного сообщения.
func (p *Publisher) Publish(ctx context.Context, key string, message any) (string, error) {
	const op = "rabbitmq.Publish"
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if _, ok := p.keys[key]; !ok {
		return "", fmt.Errorf("%s: %w: %q", op, ErrUnknownRoutingKey, key)
	}
	body, err := json.Marshal(message)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	id := p.newID()
	err = p.ch.Publish(
		NotificationsExchange,
		key,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    id,
			Timestamp:    p.now().UTC(),
			Type:         key,
			AppId:        p.appID,
			Body:         body,
		},
	)
	if err != nil {
		return "", fmt.Errorf("%s: %s: %w", op, id, err)
	}
	return id, nil
}
