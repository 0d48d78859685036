package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/InternHub-Service/internal/domain"
	bookingRepo "github.com/m04kA/InternHub-Service/internal/infra/storage/booking"
	"github.com/m04kA/InternHub-Service/internal/service/bookings/models"
	"github.com/m04kA/InternHub-Service/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTx struct{}

func (fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type nopMetrics struct{}

func (nopMetrics) IncBookingTransition(string, string) {}

type fakeNotifier struct{ sent []domain.BookingStatus }

func (f *fakeNotifier) BookingStatusChanged(_ context.Context, b *domain.Booking) {
	f.sent = append(f.sent, b.Status)
}

type fakeStorage struct{}

func (fakeStorage) URL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://files.example/" + key, nil
}

// fakeResolver выдает отрасли industry_admin по userID
type fakeResolver struct{ scopes map[int64][]int64 }

func (f fakeResolver) Resolve(_ context.Context, actor domain.Actor) (domain.Actor, error) {
	if actor.Role == domain.RoleIndustryAdmin {
		actor.IndustryIDs = f.scopes[actor.UserID]
	}
	return actor, nil
}

type fakeBookings struct {
	items      map[int64]*domain.Booking
	history    []domain.StatusChange
	lastFilter domain.BookingsFilter
}

func (f *fakeBookings) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.items[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookings) GetByUserID(_ context.Context, userID int64, status *domain.BookingStatus, bookingType *domain.BookingType) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.items {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		if bookingType != nil && b.Type != *bookingType {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookings) ListWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.lastFilter = filter
	return []*domain.Booking{f.items[1]}, nil
}

func (f *fakeBookings) CountWithFilter(_ context.Context, _ domain.BookingsFilter) (int64, error) {
	return 1, nil
}

func (f *fakeBookings) UpdateStatus(_ context.Context, change domain.StatusChange) error {
	b := f.items[change.BookingID]
	if b.Status != change.From {
		return bookingRepo.ErrStatusConflict
	}
	b.Status = change.To
	b.RejectionReason = change.Reason
	b.ReviewedBy = change.ChangedBy
	return nil
}

func (f *fakeBookings) AddStatusHistory(_ context.Context, change domain.StatusChange) error {
	f.history = append(f.history, change)
	return nil
}

const (
	studentID       = int64(10)
	otherStudentID  = int64(11)
	globalAdminID   = int64(1)
	industryAdminID = int64(2)
)

var (
	student       = domain.Actor{UserID: studentID, Role: domain.RoleStudent}
	globalAdmin   = domain.Actor{UserID: globalAdminID, Role: domain.RoleAdmin}
	industryAdmin = domain.Actor{UserID: industryAdminID, Role: domain.RoleIndustryAdmin}
)

func newService() (*Service, *fakeBookings, *fakeNotifier) {
	bookings := &fakeBookings{items: map[int64]*domain.Booking{
		1: {ID: 1, Type: domain.BookingTypeMentorship, UserID: studentID, IndustryID: 3, Status: domain.StatusPending, Amount: 1000},
		2: {ID: 2, Type: domain.BookingTypeInternship, UserID: studentID, IndustryID: 4, Status: domain.StatusPending, CVKey: ptr.Ptr("cvs/10/a.pdf")},
		3: {ID: 3, Type: domain.BookingTypeMentorship, UserID: studentID, IndustryID: 3, Status: domain.StatusPaid, Amount: 1000},
	}}
	notifier := &fakeNotifier{}
	resolver := fakeResolver{scopes: map[int64][]int64{industryAdminID: {3}}}
	svc := NewService(bookings, resolver, fakeStorage{}, notifier, nopMetrics{}, fakeTx{}, nopLogger{})
	return svc, bookings, notifier
}

func TestGetByID_Access(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	_, err := svc.GetByID(ctx, 1, student)
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, 1, domain.Actor{UserID: otherStudentID, Role: domain.RoleStudent})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(ctx, 1, industryAdmin)
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, 2, industryAdmin)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(ctx, 2, globalAdmin)
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, 99, globalAdmin)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_Filters(t *testing.T) {
	svc, _, _ := newService()

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: studentID,
		Type:   ptr.Ptr("internship"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.True(t, resp.Bookings[0].HasCV)

	_, err = svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: studentID,
		Status: ptr.Ptr("cancelled"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListForAdmin_Scope(t *testing.T) {
	svc, bookings, _ := newService()
	ctx := context.Background()

	page, err := svc.ListForAdmin(ctx, industryAdmin, &models.AdminListRequest{})
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, bookings.lastFilter.IndustryIDs)
	assert.Equal(t, uint64(domain.DefaultPageLimit), page.Limit)

	_, err = svc.ListForAdmin(ctx, industryAdmin, &models.AdminListRequest{IndustryID: ptr.Ptr(int64(4))})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.ListForAdmin(ctx, globalAdmin, &models.AdminListRequest{Limit: 1000})
	require.NoError(t, err)
	assert.Nil(t, bookings.lastFilter.IndustryIDs)
	assert.Equal(t, uint64(domain.MaxPageLimit), bookings.lastFilter.Limit)

	_, err = svc.ListForAdmin(ctx, student, &models.AdminListRequest{})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus(t *testing.T) {
	svc, bookings, notifier := newService()
	ctx := context.Background()

	resp, err := svc.UpdateStatus(ctx, industryAdmin, 1, &models.UpdateStatusRequest{Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)
	assert.True(t, resp.RequiresPayment)
	require.Len(t, bookings.history, 1)
	assert.Equal(t, domain.StatusPending, bookings.history[0].From)
	assert.Equal(t, []domain.BookingStatus{domain.StatusApproved}, notifier.sent)

	_, err = svc.UpdateStatus(ctx, industryAdmin, 2, &models.UpdateStatusRequest{Status: "approved"})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.UpdateStatus(ctx, globalAdmin, 2, &models.UpdateStatusRequest{Status: "rejected", Reason: ptr.Ptr("  ")})
	assert.ErrorIs(t, err, ErrReasonRequired)

	resp, err = svc.UpdateStatus(ctx, globalAdmin, 2, &models.UpdateStatusRequest{Status: "rejected", Reason: ptr.Ptr("position filled")})
	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Status)
	assert.Equal(t, "position filled", *resp.RejectionReason)

	_, err = svc.UpdateStatus(ctx, globalAdmin, 3, &models.UpdateStatusRequest{Status: "rejected", Reason: ptr.Ptr("late")})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.UpdateStatus(ctx, globalAdmin, 1, &models.UpdateStatusRequest{Status: "paid"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(ctx, student, 1, &models.UpdateStatusRequest{Status: "rejected", Reason: ptr.Ptr("x")})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel(t *testing.T) {
	svc, bookings, _ := newService()
	ctx := context.Background()

	_, err := svc.Cancel(ctx, otherStudentID, 1)
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.Cancel(ctx, studentID, 1)
	require.NoError(t, err)
	assert.Equal(t, "rejected", resp.Status)
	assert.Equal(t, domain.WithdrawnReason, *resp.RejectionReason)
	assert.Nil(t, resp.ReviewedBy)
	require.Len(t, bookings.history, 1)
	assert.Equal(t, studentID, *bookings.history[0].ChangedBy)

	_, err = svc.Cancel(ctx, studentID, 1)
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestGetCVURL(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	resp, err := svc.GetCVURL(ctx, globalAdmin, 2)
	require.NoError(t, err)
	assert.Equal(t, "https://files.example/cvs/10/a.pdf", resp.URL)

	_, err = svc.GetCVURL(ctx, globalAdmin, 1)
	assert.ErrorIs(t, err, ErrNoCV)

	_, err = svc.GetCVURL(ctx, industryAdmin, 2)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetCVURL(ctx, student, 2)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
