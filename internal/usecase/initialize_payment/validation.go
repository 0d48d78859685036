package initialize_payment

import (
	"fmt"

	"github.com/m04kA/InternHub-Service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	return nil
}

// validateBooking проверяет, что бронирование пользователя ожидает оплаты
func validateBooking(booking *domain.Booking, userID int64) error {
	if booking.UserID != userID {
		return ErrAccessDenied
	}
	if booking.Status == domain.StatusPaid {
		return ErrAlreadyPaid
	}
	if !booking.IsAwaitingPayment() {
		return fmt.Errorf("%w: status=%s type=%s amount=%d",
			ErrPaymentNotAllowed, booking.Status, booking.Type, booking.Amount)
	}
	return nil
}
