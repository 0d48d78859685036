package domain

import (
	"time"

	"github.com/m04kA/InternHub-Service/pkg/types"
)

// BookingType тип бронирования: заявка на стажировку или сессия с ментором
type BookingType string

const (
	BookingTypeInternship BookingType = "internship"
	BookingTypeMentorship BookingType = "mentorship"
)

// IsValid проверяет тип бронирования
func (t BookingType) IsValid() bool {
	return t == BookingTypeInternship || t == BookingTypeMentorship
}

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending  BookingStatus = "pending"
	StatusApproved BookingStatus = "approved"
	StatusPaid     BookingStatus = "paid"
	StatusRejected BookingStatus = "rejected"
	StatusExpired  BookingStatus = "expired"
)

// IsValid проверяет, что статус известен
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusPaid, StatusRejected, StatusExpired:
		return true
	}
	return false
}

// IsTerminal returns true if no further transitions are possible
func (s BookingStatus) IsTerminal() bool {
	return s == StatusPaid || s == StatusRejected || s == StatusExpired
}

// Booking заявка студента на стажировку или запрос сессии с ментором
type Booking struct {
	ID         int64
	Type       BookingType
	UserID     int64
	IndustryID int64
	Status     BookingStatus

	// Стажировка
	InternshipID *int64
	CoverLetter  *string
	CVKey        *string

	// Менторская сессия
	MentorID        *int64
	SessionDate     *time.Time
	StartTime       types.TimeString
	DurationMinutes int

	// Денормализованные данные для истории
	Title string // название стажировки или имя ментора

	Amount           int64 // в минимальных единицах валюты (kobo)
	Currency         string
	PaymentReference *string
	PaymentURL       *string // ссылка на страницу оплаты, выданная вместе с референсом
	PaymentAccess    *string
	PaidAt           *time.Time

	Notes           *string
	ReviewedBy      *int64
	ReviewedAt      *time.Time
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies a slot or awaits review
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusApproved || b.Status == StatusPaid
}

// RequiresPayment returns true if the booking must be paid after approval
func (b *Booking) RequiresPayment() bool {
	return b.Type == BookingTypeMentorship && b.Amount > 0
}

// IsAwaitingPayment returns true if the booking is approved and not paid yet
func (b *Booking) IsAwaitingPayment() bool {
	return b.Status == StatusApproved && b.RequiresPayment()
}

// CanBeWithdrawn returns true if the student may withdraw the booking
func (b *Booking) CanBeWithdrawn() bool {
	return b.Status == StatusPending
}

// CanTransitionTo проверяет допустимость перехода статуса
//
//	pending  -> approved | rejected | expired
//	approved -> paid (только платные сессии) | rejected | expired (только неоплаченные сессии)
//	paid, rejected, expired - конечные
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case StatusPending:
		return next == StatusApproved || next == StatusRejected || next == StatusExpired
	case StatusApproved:
		switch next {
		case StatusPaid:
			return b.RequiresPayment()
		case StatusRejected:
			return true
		case StatusExpired:
			return b.Type == BookingTypeMentorship
		}
	}
	return false
}

// SessionStart возвращает момент начала сессии в часовом поясе loc
// Для заявок на стажировку возвращает false
func (b *Booking) SessionStart(loc *time.Location) (time.Time, bool) {
	if b.Type != BookingTypeMentorship || b.SessionDate == nil || b.StartTime.IsZero() {
		return time.Time{}, false
	}
	return b.StartTime.OnDate(*b.SessionDate, loc), true
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	UserID       *int64
	Type         *BookingType
	Status       *BookingStatus
	IndustryIDs  []int64 // nil - без ограничения по отраслям
	MentorID     *int64
	InternshipID *int64
	StartDate    *time.Time // по дате сессии (менторство) или дате создания (стажировки)
	EndDate      *time.Time
	ActiveOnly   bool
	Limit        uint64
	Offset       uint64
}

// ExpiredBooking бронирование, переведенное воркером в expired,
// вместе со статусом до перехода
type ExpiredBooking struct {
	Booking        *Booking
	PreviousStatus BookingStatus
}

// StatusChange запись о смене статуса
type StatusChange struct {
	BookingID int64
	From      BookingStatus
	To        BookingStatus
	ChangedBy *int64
	Reason    *string
	ChangedAt time.Time
}
