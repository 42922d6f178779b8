// Package sender собирает сервис рассылки писем: читает очереди уведомлений
// и отправляет письма через SMTP.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/novelamania/internal/config"
	"github.com/magabrotheeeer/novelamania/internal/lib/sl"
	"github.com/magabrotheeeer/novelamania/internal/lib/smtp"
	"github.com/magabrotheeeer/novelamania/internal/rabbitmq"
	senderservice "github.com/magabrotheeeer/novelamania/internal/services/sender"
)

// App приложение рассылки.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

// New подключается к брокеру и объявляет очереди уведомлений.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg.SMTP, logger)
	senderService := senderservice.NewSenderService(logger, transport)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run обрабатывает очереди до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.logger, a.ch, rabbitmq.QueuePasswordReset, a.senderService.SendPasswordReset)
	if err != nil {
		a.logger.Error("failed to start password reset consumer", sl.Err(err))
		return err
	}

	err = rabbitmq.ConsumerMessage(ctx, a.logger, a.ch, rabbitmq.QueueExpiring, a.senderService.SendExpiringSubscription)
	if err != nil {
		a.logger.Error("failed to start expiring subscription consumer", sl.Err(err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
	return nil
}
