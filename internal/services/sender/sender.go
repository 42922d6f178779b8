// Package services отправляет письма уведомлений, полученные из очереди.
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/novelamania/internal/lib/sl"
	"github.com/magabrotheeeer/novelamania/internal/lib/smtp"
	"github.com/magabrotheeeer/novelamania/internal/models"
)

// SenderService формирует и отправляет письма.
type SenderService struct {
	transport smtp.Mailer
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(log *slog.Logger, transport smtp.Mailer) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendPasswordReset отправляет письмо со ссылкой сброса пароля.
func (s *SenderService) SendPasswordReset(body []byte) error {
	const op = "services.sender.SendPasswordReset"
	var message models.PasswordResetMessage
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", slog.String("op", op), sl.Err(err))
		return fmt.Errorf("%s: error unmarshalling message: %w", op, err)
	}
	if message.Email == "" || message.ResetURL == "" {
		return fmt.Errorf("%s: %w: email and reset url are required", op, models.ErrValidation)
	}

	subject := "Redefinição de senha Novelamania"
	bodyText := fmt.Sprintf("Olá, %s!\n\nRecebemos um pedido para redefinir a sua senha.\n"+
		"Use o link abaixo até %s:\n\n%s\n\nSe não foi você, ignore este e-mail.",
		message.FirstName, message.ExpiresAt.Format("02/01/2006 15:04 MST"), message.ResetURL)

	return s.sendEmail([]string{message.Email}, subject, bodyText)
}

// SendExpiringSubscription предупреждает о скором окончании подписки.
func (s *SenderService) SendExpiringSubscription(body []byte) error {
	const op = "services.sender.SendExpiringSubscription"
	var message models.ExpiringSubscriptionMessage
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", slog.String("op", op), sl.Err(err))
		return fmt.Errorf("%s: error unmarshalling message: %w", op, err)
	}
	if message.Email == "" {
		return fmt.Errorf("%s: %w: email is required", op, models.ErrValidation)
	}

	subject := "A sua assinatura Novelamania está a terminar"
	bodyText := fmt.Sprintf("Olá, %s!\n\nA sua assinatura do pacote %s termina em %s.\n"+
		"Contacte o administrador para renovar e continuar a assistir.",
		message.FirstName, message.PackageName, message.EndDate.Format("02/01/2006"))

	return s.sendEmail([]string{message.Email}, subject, bodyText)
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.Sender(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Mail(s.transport.Sender()); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", s.transport.Sender()), sl.Err(err))
		return err
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return err
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}
	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return err
	}
	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent", slog.Any("to", to))
	return nil
}
