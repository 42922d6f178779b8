package rabbitmq

// NotificationsExchange direct-обменник для всех уведомлений.
const NotificationsExchange = "notifications"

// Ключи маршрутизации уведомлений.
const (
	RoutingPasswordReset = "password_reset"
	RoutingExpiring      = "expiring"
)

// Очереди сервиса отправки писем.
const (
	QueuePasswordReset = "notification.password_reset"
	QueueExpiring      = "notification.expiring"
)

// QueueConfig очередь и ключ, которым она привязана к NotificationsExchange.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues возвращает очереди, которые читает сервис отправки писем.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: QueuePasswordReset, RoutingKey: RoutingPasswordReset},
		{QueueName: QueueExpiring, RoutingKey: RoutingExpiring},
	}
}
