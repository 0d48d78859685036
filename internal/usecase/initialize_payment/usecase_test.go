package initialize_payment

import (
	"context"
	"strings"
	"testing"

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

type nopMetrics struct{}

func (nopMetrics) IncPayment(string) {}

type fakeBookings struct {
	booking   *domain.Booking
	storedAs  string
	storedURL string

	// concurrent имитирует параллельный запрос, успевший записать свой референс
	concurrent *domain.Booking
}

func (f *fakeBookings) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.booking == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.booking, nil
}

func (f *fakeBookings) SetPaymentReference(_ context.Context, _ int64, reference, paymentURL, _ string) error {
	if f.concurrent != nil {
		f.booking = f.concurrent
		return bookingRepo.ErrStatusConflict
	}
	f.storedAs = reference
	f.storedURL = paymentURL
	return nil
}

type fakeUsers struct{}

func (fakeUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	return &domain.User{ID: id, Email: "student@example.com"}, nil
}

type fakeGateway struct {
	requests   []paystack.InitializeRequest
	rejectRefs map[string]bool
}

func (f *fakeGateway) InitializeTransaction(_ context.Context, in paystack.InitializeRequest) (*paystack.InitializeResult, error) {
	f.requests = append(f.requests, in)
	if f.rejectRefs[in.Reference] {
		return nil, paystack.ErrInvalidResponse
	}
	return &paystack.InitializeResult{
		AuthorizationURL: "https://checkout.example/" + in.Reference,
		Reference:        in.Reference,
	}, nil
}

func approvedSession() *domain.Booking {
	return &domain.Booking{
		ID:       3,
		Type:     domain.BookingTypeMentorship,
		UserID:   9,
		Status:   domain.StatusApproved,
		Amount:   250000,
		Currency: "NGN",
	}
}

func TestExecute_NewReference(t *testing.T) {
	bookings := &fakeBookings{booking: approvedSession()}
	gateway := &fakeGateway{}
	uc := NewUseCase(bookings, fakeUsers{}, gateway, nopMetrics{}, Config{CallbackURL: "https://app/payments/return"}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{UserID: 9, BookingID: 3})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Reference, ReferencePrefix))
	assert.Equal(t, resp.Reference, bookings.storedAs)
	assert.Equal(t, "https://checkout.example/"+resp.Reference, resp.AuthorizationURL)
	assert.Equal(t, resp.AuthorizationURL, bookings.storedURL)
	require.Len(t, gateway.requests, 1)
	assert.Equal(t, int64(250000), gateway.requests[0].Amount)
	assert.Equal(t, "student@example.com", gateway.requests[0].Email)
	assert.Equal(t, "3", gateway.requests[0].Metadata["booking_id"])
	assert.Equal(t, "https://app/payments/return", gateway.requests[0].CallbackURL)
}

func TestExecute_ReusesStoredPaymentLink(t *testing.T) {
	booking := approvedSession()
	booking.PaymentReference = ptr.Ptr("IH-existing")
	booking.PaymentURL = ptr.Ptr("https://checkout.example/IH-existing")
	booking.PaymentAccess = ptr.Ptr("acc_1")
	bookings := &fakeBookings{booking: booking}
	gateway := &fakeGateway{}
	uc := NewUseCase(bookings, fakeUsers{}, gateway, nopMetrics{}, Config{}, nopLogger{})

	first, err := uc.Execute(context.Background(), &Request{UserID: 9, BookingID: 3})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), &Request{UserID: 9, BookingID: 3})
	require.NoError(t, err)

	assert.Equal(t, "IH-existing", first.Reference)
	assert.Equal(t, "https://checkout.example/IH-existing", first.AuthorizationURL)
	assert.Equal(t, "acc_1", first.AccessCode)
	assert.Equal(t, first, second)
	assert.Empty(t, gateway.requests)
	assert.Empty(t, bookings.storedAs)
}

func TestExecute_StoredReferenceIsNeverReplaced(t *testing.T) {
	booking := approvedSession()
	booking.PaymentReference = ptr.Ptr("IH-stale")
	bookings := &fakeBookings{booking: booking}
	gateway := &fakeGateway{rejectRefs: map[string]bool{"IH-stale": true}}
	uc := NewUseCase(bookings, fakeUsers{}, gateway, nopMetrics{}, Config{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 9, BookingID: 3})

	assert.ErrorIs(t, err, ErrPaymentProvider)
	require.Len(t, gateway.requests, 1)
	assert.Equal(t, "IH-stale", gateway.requests[0].Reference)
	assert.Empty(t, bookings.storedAs)
}

func TestExecute_ConcurrentInitializeReturnsWinnerLink(t *testing.T) {
	winner := approvedSession()
	winner.PaymentReference = ptr.Ptr("IH-winner")
	winner.PaymentURL = ptr.Ptr("https://checkout.example/IH-winner")
	bookings := &fakeBookings{booking: approvedSession(), concurrent: winner}
	uc := NewUseCase(bookings, fakeUsers{}, &fakeGateway{}, nopMetrics{}, Config{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{UserID: 9, BookingID: 3})

	require.NoError(t, err)
	assert.Equal(t, "IH-winner", resp.Reference)
	assert.Equal(t, "https://checkout.example/IH-winner", resp.AuthorizationURL)
}

func TestExecute_ConcurrentStatusChange(t *testing.T) {
	rejected := approvedSession()
	rejected.Status = domain.StatusRejected
	bookings := &fakeBookings{booking: approvedSession(), concurrent: rejected}
	uc := NewUseCase(bookings, fakeUsers{}, &fakeGateway{}, nopMetrics{}, Config{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 9, BookingID: 3})

	assert.ErrorIs(t, err, ErrPaymentNotAllowed)
}

func TestExecute_Rejections(t *testing.T) {
	paid := approvedSession()
	paid.Status = domain.StatusPaid
	pending := approvedSession()
	pending.Status = domain.StatusPending
	free := approvedSession()
	free.Amount = 0

	tests := []struct {
		name    string
		booking *domain.Booking
		userID  int64
		want    error
	}{
		{"missing booking", nil, 9, ErrBookingNotFound},
		{"someone else's booking", approvedSession(), 10, ErrAccessDenied},
		{"already paid", paid, 9, ErrAlreadyPaid},
		{"not approved yet", pending, 9, ErrPaymentNotAllowed},
		{"free session", free, 9, ErrPaymentNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := &fakeGateway{}
			uc := NewUseCase(&fakeBookings{booking: tt.booking}, fakeUsers{}, gateway, nopMetrics{}, Config{}, nopLogger{})
			_, err := uc.Execute(context.Background(), &Request{UserID: tt.userID, BookingID: 3})
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, gateway.requests)
		})
	}
}
