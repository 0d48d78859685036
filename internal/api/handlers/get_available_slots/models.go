package get_available_slots

import (
	"github.com/m04kA/InternHub-Service/internal/domain"
	getAvailableSlots "github.com/m04kA/InternHub-Service/internal/usecase/get_available_slots"
)

// SlotResponse свободный слот
type SlotResponse struct {
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
}

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	MentorID        int64          `json:"mentorId"`
	Date            string         `json:"date"`
	DurationMinutes int            `json:"durationMinutes"`
	Slots           []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		end, err := s.StartTime.AddMinutes(s.DurationMinutes)
		endTime := end.String()
		if err != nil {
			endTime = "24:00"
		}
		slots = append(slots, SlotResponse{
			StartTime:       s.StartTime.String(),
			EndTime:         endTime,
			DurationMinutes: s.DurationMinutes,
		})
	}

	return &AvailableSlotsResponse{
		MentorID:        resp.MentorID,
		Date:            resp.Date.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
