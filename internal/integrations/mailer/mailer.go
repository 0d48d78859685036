package mailer

import (
	"context"
	"errors"
)

// ErrSendFailed возвращается, когда письмо не удалось отправить
var ErrSendFailed = errors.New("mailer: send failed")

// Message письмо одному получателю
type Message struct {
	ToEmail string
	ToName  string
	Subject string
	Text    string
	HTML    string
}

// Sender отправляет письма
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}
