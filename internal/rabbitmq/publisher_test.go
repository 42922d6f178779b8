package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type ChannelMock struct {
	mock.Mock
}

func (m *ChannelMock) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func newTestPublisher(ch Channel) *Publisher {
	p := NewPublisher(ch, "novelamania")
	p.now = func() time.Time { return time.Date(2026, 10, 15, 9, 30, 0, 0, time.FixedZone("CAT", 2*3600)) }
	p.newID = func() string { return "msg-1" }
	return p
}

func TestPublisher_Publish(t *testing.T) {
	type payload struct {
		Email string `json:"email"`
		Days  int    `json:"days"`
	}

	t.Run("stamps persistent json message", func(t *testing.T) {
		ch := new(ChannelMock)
		ch.On("Publish", NotificationsExchange, RoutingExpiring, false, false,
			mock.MatchedBy(func(p amqp.Publishing) bool {
				var got payload
				if err := json.Unmarshal(p.Body, &got); err != nil {
					return false
				}
				return p.ContentType == "application/json" &&
					p.DeliveryMode == amqp.Persistent &&
					p.MessageId == "msg-1" &&
					p.Type == RoutingExpiring &&
					p.AppId == "novelamania" &&
					p.Timestamp.Equal(time.Date(2026, 10, 15, 7, 30, 0, 0, time.UTC)) &&
					p.Timestamp.Location() == time.UTC &&
					got == payload{Email: "ana@example.com", Days: 3}
			})).Return(nil).Once()

		id, err := newTestPublisher(ch).Publish(context.Background(), RoutingExpiring, payload{Email: "ana@example.com", Days: 3})
		require.NoError(t, err)
		assert.Equal(t, "msg-1", id)
		ch.AssertExpectations(t)
	})

	t.Run("every message gets its own id", func(t *testing.T) {
		ch := new(ChannelMock)
		ids := map[string]bool{}
		ch.On("Publish", NotificationsExchange, RoutingPasswordReset, false, false, mock.Anything).
			Run(func(args mock.Arguments) {
				ids[args.Get(4).(amqp.Publishing).MessageId] = true
			}).Return(nil).Twice()

		p := NewPublisher(ch, "novelamania")
		_, err := p.Publish(context.Background(), RoutingPasswordReset, payload{})
		require.NoError(t, err)
		_, err = p.Publish(context.Background(), RoutingPasswordReset, payload{})
		require.NoError(t, err)
		assert.Len(t, ids, 2)
	})

	t.Run("unknown routing key", func(t *testing.T) {
		ch := new(ChannelMock)
		_, err := newTestPublisher(ch).Publish(context.Background(), "newsletter", payload{})
		require.ErrorIs(t, err, ErrUnknownRoutingKey)
		ch.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("canceled context", func(t *testing.T) {
		ch := new(ChannelMock)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newTestPublisher(ch).Publish(ctx, RoutingExpiring, payload{})
		require.ErrorIs(t, err, context.Canceled)
		ch.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("marshal error", func(t *testing.T) {
		ch := new(ChannelMock)
		_, err := newTestPublisher(ch).Publish(context.Background(), RoutingExpiring, struct {
			Ch chan int `json:"ch"`
		}{Ch: make(chan int)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rabbitmq.Publish")
		ch.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("broker error names the message", func(t *testing.T) {
		ch := new(ChannelMock)
		ch.On("Publish", NotificationsExchange, RoutingExpiring, false, false, mock.Anything).
			Return(errors.New("channel closed")).Once()

		_, err := newTestPublisher(ch).Publish(context.Background(), RoutingExpiring, payload{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "msg-1")
		assert.Contains(t, err.Error(), "channel closed")
	})
}

func TestGetNotificationQueues(t *testing.T) {
	queues := GetNotificationQueues()
	require.Len(t, queues, 2)

	keys := map[string]string{}
	for _, q := range queues {
		_, dup := keys[q.QueueName]
		assert.Falsef(t, dup, "duplicate queue name: %s", q.QueueName)
		keys[q.QueueName] = q.RoutingKey
	}
	assert.Equal(t, RoutingPasswordReset, keys["notification.password_reset"])
	assert.Equal(t, RoutingExpiring, keys["notification.expiring"])
}
