package payment_webhook

import "context"

type WebhookUseCase interface {
	HandleWebhook(ctx context.Context, signature string, body []byte) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
