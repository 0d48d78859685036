package expire_bookings

import "time"

// Config параметры фонового истечения бронирований
type Config struct {
	Interval              time.Duration
	ApplicationReviewDays int
	Location              *time.Location
}

// Result итог одного прохода
type Result struct {
	Sessions     int
	Applications int
}

// Total общее число истекших бронирований
func (r Result) Total() int {
	return r.Sessions + r.Applications
}
