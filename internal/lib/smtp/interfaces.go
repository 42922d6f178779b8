// Package smtp отправляет письма уведомлений через SMTP-сервер.
package smtp

import "io"

// Client сеанс SMTP, в котором передаётся одно письмо.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// Mailer открывает сеансы от имени адреса отправителя.
type Mailer interface {
	Connect() (Client, error)
	Sender() string
}
