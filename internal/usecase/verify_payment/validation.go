package verify_payment

import (
	"fmt"
	"strings"

	"github.com/m04kA/InternHub-Service/internal/domain"
	"github.com/m04kA/InternHub-Service/internal/integrations/paystack"
)

// validateReference проверяет референс платежа
func validateReference(reference string) error {
	if strings.TrimSpace(reference) == "" {
		return fmt.Errorf("%w: reference is required", ErrInvalidInput)
	}
	return nil
}

// validateTransaction сверяет результат шлюза с бронированием
func validateTransaction(tx *paystack.Transaction, booking *domain.Booking) error {
	if !tx.IsSuccessful() {
		return fmt.Errorf("%w: status=%s (%s)", ErrPaymentNotSuccessful, tx.Status, tx.GatewayResponse)
	}
	if tx.Amount < booking.Amount {
		return fmt.Errorf("%w: paid %d, expected %d", ErrPaymentNotSuccessful, tx.Amount, booking.Amount)
	}
	if tx.Currency != "" && booking.Currency != "" && !strings.EqualFold(tx.Currency, booking.Currency) {
		return fmt.Errorf("%w: currency %s, expected %s", ErrPaymentNotSuccessful, tx.Currency, booking.Currency)
	}
	return nil
}
