package initialize_payment

import initializePayment "github.com/m04kA/InternHub-Service/internal/usecase/initialize_payment"

// PaymentResponse HTTP response model
type PaymentResponse struct {
	AuthorizationURL string `json:"authorizationUrl"`
	Reference        string `json:"reference"`
	AccessCode       string `json:"accessCode"`
	Amount           int64  `json:"amount"` // kobo
	Currency         string `json:"currency"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *initializePayment.Response) *PaymentResponse {
	return &PaymentResponse{
		AuthorizationURL: resp.AuthorizationURL,
		Reference:        resp.Reference,
		AccessCode:       resp.AccessCode,
		Amount:           resp.Amount,
		Currency:         resp.Currency,
	}
}
