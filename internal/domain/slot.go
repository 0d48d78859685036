package domain

import (
	"sort"

	"github.com/m04kA/InternHub-Service/pkg/types"
)

// AvailableSlot represents a mentor time slot available for booking
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
}

// EndMinutes возвращает конец слота в минутах от полуночи
func (s *AvailableSlot) EndMinutes() int {
	return s.StartTime.EndMinutes(s.DurationMinutes)
}

// Overlaps returns true if the slot strictly overlaps [start, start+duration)
// Touching intervals (one ends where the other starts) do not overlap
func (s *AvailableSlot) Overlaps(start types.TimeString, duration int) bool {
	return s.StartTime.Minutes() < start.EndMinutes(duration) && start.Minutes() < s.EndMinutes()
}

// GenerateSlots нарезает окна доступности на слоты длиной duration
// Слоты, не помещающиеся в окно целиком, отбрасываются
// Результат отсортирован по времени начала и не содержит дубликатов
func GenerateSlots(windows []*AvailabilityWindow, duration int) []AvailableSlot {
	if duration <= 0 {
		return []AvailableSlot{}
	}

	seen := make(map[int]struct{})
	starts := make([]int, 0)

	for _, w := range windows {
		start := w.StartTime.Minutes()
		end := w.EndTime.Minutes()
		if start < 0 || end <= start {
			continue
		}
		for m := start; m+duration <= end; m += duration {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			starts = append(starts, m)
		}
	}

	sort.Ints(starts)

	slots := make([]AvailableSlot, 0, len(starts))
	for _, m := range starts {
		ts, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			continue
		}
		slots = append(slots, AvailableSlot{StartTime: ts, DurationMinutes: duration})
	}
	return slots
}

// RemoveBooked убирает слоты, пересекающиеся с активными бронированиями
func RemoveBooked(slots []AvailableSlot, bookings []*Booking) []AvailableSlot {
	result := make([]AvailableSlot, 0, len(slots))
	for _, slot := range slots {
		if !overlapsAny(slot, bookings) {
			result = append(result, slot)
		}
	}
	return result
}

// RemoveBefore убирает слоты, начинающиеся раньше earliest (в минутах от полуночи)
func RemoveBefore(slots []AvailableSlot, earliest int) []AvailableSlot {
	result := make([]AvailableSlot, 0, len(slots))
	for _, slot := range slots {
		if slot.StartTime.Minutes() >= earliest {
			result = append(result, slot)
		}
	}
	return result
}

// ContainsStart проверяет, начинается ли какой-либо слот в start
func ContainsStart(slots []AvailableSlot, start types.TimeString) bool {
	for _, slot := range slots {
		if slot.StartTime.Minutes() == start.Minutes() {
			return true
		}
	}
	return false
}

func overlapsAny(slot AvailableSlot, bookings []*Booking) bool {
	for _, b := range bookings {
		if !b.IsActive() || b.StartTime.IsZero() {
			continue
		}
		if slot.Overlaps(b.StartTime, b.DurationMinutes) {
			return true
		}
	}
	return false
}
