package verify_payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/InternHub-Service/internal/domain"
	bookingRepo "github.com/m04kA/InternHub-Service/internal/infra/storage/booking"
	"github.com/m04kA/InternHub-Service/internal/integrations/paystack"
	"github.com/m04kA/InternHub-Service/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeTx struct{}

func (fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type fakeMetrics struct{ payments []string }

func (f *fakeMetrics) IncPayment(outcome string)           { f.payments = append(f.payments, outcome) }
func (f *fakeMetrics) IncBookingTransition(string, string) {}

type fakeNotifier struct{ notified []domain.BookingStatus }

func (f *fakeNotifier) BookingStatusChanged(_ context.Context, b *domain.Booking) {
	f.notified = append(f.notified, b.Status)
}

// fakeBookings хранит одно бронирование и повторяет условный UPDATE
type fakeBookings struct {
	booking *domain.Booking
	history []domain.StatusChange
}

func (f *fakeBookings) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	copied := *f.booking
	return &copied, nil
}

func (f *fakeBookings) GetByPaymentReference(_ context.Context, reference string) (*domain.Booking, error) {
	if f.booking == nil || f.booking.PaymentReference == nil || *f.booking.PaymentReference != reference {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *f.booking
	return &copied, nil
}

func (f *fakeBookings) MarkPaid(_ context.Context, _ int64, reference string, paidAt time.Time) (bool, error) {
	if f.booking.Status != domain.StatusApproved || *f.booking.PaymentReference != reference {
		return false, nil
	}
	f.booking.Status = domain.StatusPaid
	f.booking.PaidAt = &paidAt
	return true, nil
}

func (f *fakeBookings) AddStatusHistory(_ context.Context, change domain.StatusChange) error {
	f.history = append(f.history, change)
	return nil
}

type fakeGateway struct {
	tx  *paystack.Transaction
	err error
}

func (f *fakeGateway) VerifyTransaction(_ context.Context, _ string) (*paystack.Transaction, error) {
	return f.tx, f.err
}

func (f *fakeGateway) VerifySignature(_ []byte, signature string) bool {
	return signature == "valid"
}

func awaiting() *domain.Booking {
	return &domain.Booking{
		ID:               8,
		Type:             domain.BookingTypeMentorship,
		Status:           domain.StatusApproved,
		Amount:           300000,
		Currency:         "NGN",
		PaymentReference: ptr.Ptr("IH-ref"),
	}
}

func successTx() *paystack.Transaction {
	return &paystack.Transaction{Status: paystack.StatusSuccess, Reference: "IH-ref", Amount: 300000, Currency: "NGN"}
}

type fixture struct {
	bookings *fakeBookings
	metrics  *fakeMetrics
	notifier *fakeNotifier
	uc       *UseCase
}

func newFixture(booking *domain.Booking, gateway *fakeGateway) fixture {
	f := fixture{
		bookings: &fakeBookings{booking: booking},
		metrics:  &fakeMetrics{},
		notifier: &fakeNotifier{},
	}
	f.uc = NewUseCase(f.bookings, gateway, fakeTx{}, f.notifier, f.metrics, nopLogger{}).
		WithTimeProvider(fixedTime{now: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)})
	return f
}

func TestExecute_MarksPaidOnce(t *testing.T) {
	f := newFixture(awaiting(), &fakeGateway{tx: successTx()})

	got, err := f.uc.Execute(context.Background(), "IH-ref")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, got.Status)
	require.NotNil(t, got.PaidAt)

	again, err := f.uc.Execute(context.Background(), "IH-ref")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, again.Status)

	assert.Len(t, f.bookings.history, 1)
	assert.Equal(t, []string{"success"}, f.metrics.payments)
	assert.Equal(t, []domain.BookingStatus{domain.StatusPaid}, f.notifier.notified)
}

func TestExecute_Failures(t *testing.T) {
	underpaid := successTx()
	underpaid.Amount = 100
	abandoned := successTx()
	abandoned.Status = paystack.StatusAbandoned
	rejected := awaiting()
	rejected.Status = domain.StatusRejected

	tests := []struct {
		name      string
		booking   *domain.Booking
		gateway   *fakeGateway
		reference string
		want      error
	}{
		{"unknown reference", awaiting(), &fakeGateway{tx: successTx()}, "IH-other", ErrBookingNotFound},
		{"empty reference", awaiting(), &fakeGateway{tx: successTx()}, " ", ErrInvalidInput},
		{"abandoned", awaiting(), &fakeGateway{tx: abandoned}, "IH-ref", ErrPaymentNotSuccessful},
		{"underpaid", awaiting(), &fakeGateway{tx: underpaid}, "IH-ref", ErrPaymentNotSuccessful},
		{"gateway lost transaction", awaiting(), &fakeGateway{err: paystack.ErrTransactionNotFound}, "IH-ref", ErrPaymentNotSuccessful},
		{"gateway down", awaiting(), &fakeGateway{err: errors.New("timeout")}, "IH-ref", ErrPaymentProvider},
		{"booking rejected meanwhile", rejected, &fakeGateway{tx: successTx()}, "IH-ref", ErrPaymentNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.booking, tt.gateway)
			_, err := f.uc.Execute(context.Background(), tt.reference)
			assert.ErrorIs(t, err, tt.want)
			assert.NotEqual(t, domain.StatusPaid, f.bookings.booking.Status)
			assert.Empty(t, f.notifier.notified)
		})
	}
}

func TestHandleWebhook(t *testing.T) {
	body := []byte(`{"event":"charge.success","data":{"reference":"IH-ref","status":"success","amount":300000,"currency":"NGN"}}`)

	f := newFixture(awaiting(), &fakeGateway{tx: successTx()})
	assert.ErrorIs(t, f.uc.HandleWebhook(context.Background(), "forged", body), ErrInvalidSignature)
	assert.Equal(t, domain.StatusApproved, f.bookings.booking.Status)

	require.NoError(t, f.uc.HandleWebhook(context.Background(), "valid", body))
	assert.Equal(t, domain.StatusPaid, f.bookings.booking.Status)

	// повторная доставка того же события
	require.NoError(t, f.uc.HandleWebhook(context.Background(), "valid", body))
	assert.Len(t, f.bookings.history, 1)
}

func TestHandleWebhook_IgnoresOtherEvents(t *testing.T) {
	f := newFixture(awaiting(), &fakeGateway{tx: successTx()})

	err := f.uc.HandleWebhook(context.Background(), "valid", []byte(`{"event":"transfer.success","data":{"reference":"IH-ref"}}`))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, f.bookings.booking.Status)

	err = f.uc.HandleWebhook(context.Background(), "valid", []byte(`{"event":"charge.success","data":{"reference":"IH-unknown"}}`))
	require.NoError(t, err)

	err = f.uc.HandleWebhook(context.Background(), "valid", []byte(`not json`))
	assert.ErrorIs(t, err, ErrInvalidInput)
}
