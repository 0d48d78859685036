package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/InternHub-Service/internal/domain"
	mentorRepo "github.com/m04kA/InternHub-Service/internal/infra/storage/mentor"
	"github.com/m04kA/InternHub-Service/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeMentors struct {
	mentor *domain.Mentor
	err    error
}

func (f *fakeMentors) GetByID(_ context.Context, _ int64) (*domain.Mentor, error) {
	return f.mentor, f.err
}

type fakeAvailability struct {
	windows map[time.Weekday][]*domain.AvailabilityWindow
}

func (f *fakeAvailability) GetByMentorAndDay(_ context.Context, _ int64, day time.Weekday) ([]*domain.AvailabilityWindow, error) {
	return f.windows[day], nil
}

type fakeBookings struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookings) GetMentorBookingsForDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Booking, error) {
	return f.bookings, f.err
}

// 2026-03-02 - понедельник
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func newUseCase(m *fakeMentors, b *fakeBookings, now time.Time) *UseCase {
	availability := &fakeAvailability{windows: map[time.Weekday][]*domain.AvailabilityWindow{
		time.Monday: {
			{DayOfWeek: time.Monday, StartTime: "09:00", EndTime: "12:00"},
		},
	}}
	cfg := Config{AdvanceBookingDays: 30, MinBookingNoticeMinutes: 60, Location: time.UTC}
	return NewUseCase(m, availability, b, cfg, nopLogger{}).WithTimeProvider(fixedTime{now: now})
}

func activeMentor() *domain.Mentor {
	return &domain.Mentor{ID: 7, SessionDurationMinutes: 60, IsActive: true}
}

func starts(slots []domain.AvailableSlot) []types.TimeString {
	result := make([]types.TimeString, 0, len(slots))
	for _, s := range slots {
		result = append(result, s.StartTime)
	}
	return result
}

func TestExecute_FutureDateExcludesBooked(t *testing.T) {
	bookings := &fakeBookings{bookings: []*domain.Booking{
		{Status: domain.StatusPending, StartTime: "10:00", DurationMinutes: 60},
	}}
	uc := newUseCase(&fakeMentors{mentor: activeMentor()}, bookings, monday.AddDate(0, 0, -3))

	resp, err := uc.Execute(context.Background(), &Request{MentorID: 7, Date: monday})

	require.NoError(t, err)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, []types.TimeString{"09:00", "11:00"}, starts(resp.Slots))
}

func TestExecute_TodayHonoursNotice(t *testing.T) {
	now := monday.Add(9*time.Hour + 30*time.Minute)
	uc := newUseCase(&fakeMentors{mentor: activeMentor()}, &fakeBookings{}, now)

	resp, err := uc.Execute(context.Background(), &Request{MentorID: 7, Date: monday})

	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"11:00"}, starts(resp.Slots))
}

func TestExecute_NoWindows(t *testing.T) {
	uc := newUseCase(&fakeMentors{mentor: activeMentor()}, &fakeBookings{}, monday)

	resp, err := uc.Execute(context.Background(), &Request{MentorID: 7, Date: monday.AddDate(0, 0, 1)})

	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mentors *fakeMentors
		date    time.Time
		want    error
	}{
		{
			name:    "mentor not found",
			mentors: &fakeMentors{err: mentorRepo.ErrMentorNotFound},
			date:    monday,
			want:    ErrMentorNotFound,
		},
		{
			name:    "inactive mentor",
			mentors: &fakeMentors{mentor: &domain.Mentor{ID: 7, SessionDurationMinutes: 60}},
			date:    monday,
			want:    ErrMentorNotFound,
		},
		{
			name:    "date in the past",
			mentors: &fakeMentors{mentor: activeMentor()},
			date:    monday.AddDate(0, 0, -1),
			want:    ErrInvalidDate,
		},
		{
			name:    "too far ahead",
			mentors: &fakeMentors{mentor: activeMentor()},
			date:    monday.AddDate(0, 0, 31),
			want:    ErrDateTooFarInFuture,
		},
		{
			name:    "repository failure",
			mentors: &fakeMentors{err: errors.New("boom")},
			date:    monday,
			want:    ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUseCase(tt.mentors, &fakeBookings{}, monday)
			_, err := uc.Execute(context.Background(), &Request{MentorID: 7, Date: tt.date})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newUseCase(&fakeMentors{mentor: activeMentor()}, &fakeBookings{}, monday)

	_, err := uc.Execute(context.Background(), &Request{MentorID: 0, Date: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
