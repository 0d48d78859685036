package paystack

import "time"

// Transaction statuses returned by /transaction/verify
const (
	StatusSuccess   = "success"
	StatusFailed    = "failed"
	StatusAbandoned = "abandoned"
	StatusReversed  = "reversed"
)

// EventChargeSuccess событие вебхука об успешном платеже
const EventChargeSuccess = "charge.success"

// InitializeRequest тело POST /transaction/initialize
type InitializeRequest struct {
	Email       string            `json:"email"`
	Amount      int64             `json:"amount"` // в kobo
	Currency    string            `json:"currency,omitempty"`
	Reference   string            `json:"reference"`
	CallbackURL string            `json:"callback_url,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// InitializeResult данные ответа /transaction/initialize
type InitializeResult struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// Transaction данные ответа /transaction/verify
type Transaction struct {
	ID              int64      `json:"id"`
	Status          string     `json:"status"`
	Reference       string     `json:"reference"`
	Amount          int64      `json:"amount"`
	Currency        string     `json:"currency"`
	GatewayResponse string     `json:"gateway_response"`
	PaidAt          *time.Time `json:"paid_at"`
}

// IsSuccessful returns true if the charge went through
func (t *Transaction) IsSuccessful() bool {
	return t.Status == StatusSuccess
}

// Event тело вебхука
type Event struct {
	Event string      `json:"event"`
	Data  Transaction `json:"data"`
}

// envelope общий формат ответов Paystack
type envelope[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}
