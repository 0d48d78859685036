package expire_bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/InternHub-Service/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopMetrics struct{}

func (nopMetrics) IncBookingTransition(string, string) {}

type countingNotifier struct{ count int }

func (n *countingNotifier) BookingStatusChanged(context.Context, *domain.Booking) { n.count++ }

type fakeTx struct{ calls int }

func (f *fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeBookings struct {
	sessionsAt time.Time
	cutoff     time.Time
	sessions   []domain.ExpiredBooking
	apps       []domain.ExpiredBooking
	err        error
	historyErr error
	history    []domain.StatusChange
	calls      int
}

func (f *fakeBookings) ExpireSessions(_ context.Context, now time.Time) ([]domain.ExpiredBooking, error) {
	f.calls++
	f.sessionsAt = now
	return f.sessions, f.err
}

func (f *fakeBookings) ExpireApplications(_ context.Context, cutoff time.Time) ([]domain.ExpiredBooking, error) {
	f.cutoff = cutoff
	return f.apps, nil
}

func (f *fakeBookings) AddStatusHistory(_ context.Context, change domain.StatusChange) error {
	if f.historyErr != nil {
		return f.historyErr
	}
	f.history = append(f.history, change)
	return nil
}

func expired(id int64, typ domain.BookingType, prev domain.BookingStatus) domain.ExpiredBooking {
	return domain.ExpiredBooking{
		Booking:        &domain.Booking{ID: id, Type: typ, Status: domain.StatusExpired},
		PreviousStatus: prev,
	}
}

func TestRunOnce(t *testing.T) {
	lagos := time.FixedZone("WAT", 60*60)

	bookings := &fakeBookings{
		sessions: []domain.ExpiredBooking{expired(1, domain.BookingTypeMentorship, domain.StatusApproved)},
		apps: []domain.ExpiredBooking{
			expired(2, domain.BookingTypeInternship, domain.StatusPending),
			expired(3, domain.BookingTypeInternship, domain.StatusPending),
		},
	}
	notifier := &countingNotifier{}
	tx := &fakeTx{}
	now := time.Date(2026, 3, 2, 23, 30, 0, 0, time.UTC) // 00:30 3 марта в Лагосе
	uc := NewUseCase(bookings, tx, notifier, nopMetrics{}, Config{ApplicationReviewDays: 30, Location: lagos}, nopLogger{}).
		WithTimeProvider(fixedTime{now: now})

	result, err := uc.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, Result{Sessions: 1, Applications: 2}, result)
	assert.Equal(t, 3, result.Total())
	assert.Equal(t, 3, notifier.count)
	assert.Equal(t, lagos, bookings.sessionsAt.Location())
	assert.Equal(t, "2026-02-01", bookings.cutoff.Format(domain.DateFormat))
	assert.Equal(t, 2, tx.calls)

	require.Len(t, bookings.history, 3)
	first := bookings.history[0]
	assert.Equal(t, int64(1), first.BookingID)
	assert.Equal(t, domain.StatusApproved, first.From)
	assert.Equal(t, domain.StatusExpired, first.To)
	assert.Nil(t, first.ChangedBy)
	require.NotNil(t, first.Reason)
	assert.Equal(t, sessionExpiredReason, *first.Reason)
	assert.Equal(t, domain.StatusPending, bookings.history[2].From)
	assert.Equal(t, applicationExpiredReason, *bookings.history[2].Reason)
}

func TestRunOnce_HistoryFailureSkipsNotifications(t *testing.T) {
	bookings := &fakeBookings{
		sessions:   []domain.ExpiredBooking{expired(1, domain.BookingTypeMentorship, domain.StatusPending)},
		historyErr: errors.New("insert failed"),
	}
	notifier := &countingNotifier{}
	uc := NewUseCase(bookings, &fakeTx{}, notifier, nopMetrics{}, Config{}, nopLogger{})

	result, err := uc.RunOnce(context.Background())

	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 0, result.Total())
	assert.Equal(t, 0, notifier.count)
}

func TestRunOnce_Error(t *testing.T) {
	uc := NewUseCase(&fakeBookings{err: errors.New("db down")}, &fakeTx{}, &countingNotifier{}, nopMetrics{}, Config{}, nopLogger{})

	_, err := uc.RunOnce(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestRun_StopsOnCancel(t *testing.T) {
	bookings := &fakeBookings{}
	uc := NewUseCase(bookings, &fakeTx{}, &countingNotifier{}, nopMetrics{}, Config{Interval: time.Hour}, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		uc.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
	assert.GreaterOrEqual(t, bookings.calls, 1)
}
