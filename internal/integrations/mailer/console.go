package mailer

import "context"

// LogMailer пишет письма в лог вместо отправки (локальная разработка, тесты)
type LogMailer struct {
	log Logger
}

// NewLogMailer создает отправителя в лог
func NewLogMailer(log Logger) *LogMailer {
	return &LogMailer{log: log}
}

// Send логирует письмо
func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.log.Info("Mail to=%s subject=%q\n%s", msg.ToEmail, msg.Subject, msg.Text)
	return nil
}
