package get_user_bookings

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/InternHub-Service/internal/api/middleware"
	"github.com/m04kA/InternHub-Service/internal/domain"
	"github.com/m04kA/InternHub-Service/internal/service/bookings"
	"github.com/m04kA/InternHub-Service/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	got *models.GetUserBookingsRequest
	err error
}

func (f *fakeService) GetUserBookings(_ context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingListResponse{Bookings: []models.BookingResponse{}}, nil
}

func authed(target string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	return r.WithContext(middleware.WithUser(r.Context(), 9, domain.RoleStudent))
}

func TestHandle_PassesFilters(t *testing.T) {
	svc := &fakeService{}
	w := httptest.NewRecorder()

	NewHandler(svc, nopLogger{}).Handle(w, authed("/api/v1/users/me/bookings?status=paid"))

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.got)
	assert.Equal(t, int64(9), svc.got.UserID)
	require.NotNil(t, svc.got.Status)
	assert.Equal(t, "paid", *svc.got.Status)
	assert.Nil(t, svc.got.Type)
}

func TestHandle_Errors(t *testing.T) {
	w := httptest.NewRecorder()
	NewHandler(&fakeService{}, nopLogger{}).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/users/me/bookings", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	svc := &fakeService{err: fmt.Errorf("%w: unknown status", bookings.ErrInvalidInput)}
	NewHandler(svc, nopLogger{}).Handle(w, authed("/api/v1/users/me/bookings?status=lost"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	svc = &fakeService{err: fmt.Errorf("%w: db", bookings.ErrInternal)}
	NewHandler(svc, nopLogger{}).Handle(w, authed("/api/v1/users/me/bookings"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
