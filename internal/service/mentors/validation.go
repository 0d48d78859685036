package mentors

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/InternHub-Service/internal/domain"
	"github.com/m04kA/InternHub-Service/internal/service/mentors/models"
	"github.com/m04kA/InternHub-Service/pkg/types"
)

// mentorFromRequest валидирует поля ментора и собирает domain модель
func mentorFromRequest(req *models.MentorRequest) (*domain.Mentor, error) {
	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, fmt.Errorf("%w: fullName is required", ErrInvalidInput)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	if req.IndustryID <= 0 {
		return nil, fmt.Errorf("%w: industryId must be positive", ErrInvalidInput)
	}

	if req.SessionPrice < 0 || req.SessionPrice > domain.MaxSessionPrice {
		return nil, fmt.Errorf("%w: sessionPrice must be between 0 and %d", ErrInvalidInput, domain.MaxSessionPrice)
	}

	duration := req.SessionDurationMinutes
	if duration == 0 {
		duration = domain.DefaultSessionDurationMinutes
	}
	if duration < domain.MinSessionDurationMinutes || duration > domain.MaxSessionDurationMinutes {
		return nil, fmt.Errorf("%w: sessionDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSessionDurationMinutes, domain.MaxSessionDurationMinutes)
	}

	mentor := &domain.Mentor{
		IndustryID:             req.IndustryID,
		FullName:               fullName,
		Email:                  email,
		Title:                  strings.TrimSpace(req.Title),
		Bio:                    strings.TrimSpace(req.Bio),
		SessionPrice:           req.SessionPrice,
		SessionDurationMinutes: duration,
		IsActive:               true,
	}
	if req.Company != nil {
		if c := strings.TrimSpace(*req.Company); c != "" {
			mentor.Company = &c
		}
	}
	if req.IsActive != nil {
		mentor.IsActive = *req.IsActive
	}

	return mentor, nil
}

// windowsFromRequest валидирует расписание:
// день 0..6, начало раньше конца, окно вмещает хотя бы одну сессию,
// окна одного дня не пересекаются
func windowsFromRequest(mentorID int64, sessionDuration int, req *models.SetAvailabilityRequest) ([]*domain.AvailabilityWindow, error) {
	if len(req.Windows) > domain.MaxAvailabilityWindows {
		return nil, fmt.Errorf("%w: at most %d windows allowed", ErrInvalidAvailability, domain.MaxAvailabilityWindows)
	}

	windows := make([]*domain.AvailabilityWindow, 0, len(req.Windows))
	for i, w := range req.Windows {
		if w.DayOfWeek < 0 || w.DayOfWeek > 6 {
			return nil, fmt.Errorf("%w: windows[%d].dayOfWeek must be between 0 and 6", ErrInvalidAvailability, i)
		}

		start, err := types.NewTimeStringFromString(w.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: windows[%d].startTime must be HH:MM", ErrInvalidAvailability, i)
		}
		end, err := types.NewTimeStringFromString(w.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: windows[%d].endTime must be HH:MM", ErrInvalidAvailability, i)
		}

		if !start.IsBefore(end) {
			return nil, fmt.Errorf("%w: windows[%d] startTime must be before endTime", ErrInvalidAvailability, i)
		}

		window := &domain.AvailabilityWindow{
			MentorID:  mentorID,
			DayOfWeek: time.Weekday(w.DayOfWeek),
			StartTime: start,
			EndTime:   end,
		}
		if window.DurationMinutes() < sessionDuration {
			return nil, fmt.Errorf("%w: windows[%d] must fit at least one %d minute session",
				ErrInvalidAvailability, i, sessionDuration)
		}

		windows = append(windows, window)
	}

	sort.Slice(windows, func(i, j int) bool {
		if windows[i].DayOfWeek != windows[j].DayOfWeek {
			return windows[i].DayOfWeek < windows[j].DayOfWeek
		}
		return windows[i].StartTime.IsBefore(windows[j].StartTime)
	})

	for i := 1; i < len(windows); i++ {
		if windows[i-1].Overlaps(windows[i]) {
			return nil, fmt.Errorf("%w: windows on %s overlap (%s-%s and %s-%s)",
				ErrInvalidAvailability, windows[i].DayOfWeek,
				windows[i-1].StartTime, windows[i-1].EndTime, windows[i].StartTime, windows[i].EndTime)
		}
	}

	return windows, nil
}
