package models

import (
	"errors"
	"time"

	"github.com/m04kA/InternHub-Service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidType возвращается при некорректном типе бронирования
	ErrInvalidType = errors.New("invalid booking type")
)

// Request модели

// UpdateStatusRequest запрос администратора на смену статуса
type UpdateStatusRequest struct {
	Status string  `json:"status" validate:"required,oneof=approved rejected"`
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64
	Status *string
	Type   *string
}

// AdminListRequest фильтр административного списка бронирований
type AdminListRequest struct {
	Type         *string
	Status       *string
	IndustryID   *int64
	MentorID     *int64
	InternshipID *int64
	From         *time.Time
	To           *time.Time
	Limit        uint64
	Offset       uint64
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64  `json:"id"`
	Type       string `json:"type"`
	UserID     int64  `json:"userId"`
	IndustryID int64  `json:"industryId"`
	Status     string `json:"status"`
	Title      string `json:"title"`

	InternshipID *int64  `json:"internshipId,omitempty"`
	CoverLetter  *string `json:"coverLetter,omitempty"`
	HasCV        bool    `json:"hasCv"`

	MentorID        *int64  `json:"mentorId,omitempty"`
	SessionDate     *string `json:"sessionDate,omitempty"` // "2026-03-02"
	StartTime       *string `json:"startTime,omitempty"`   // "10:00"
	DurationMinutes int     `json:"durationMinutes,omitempty"`

	Amount           int64      `json:"amount"` // kobo
	Currency         string     `json:"currency"`
	RequiresPayment  bool       `json:"requiresPayment"`
	PaymentReference *string    `json:"paymentReference,omitempty"`
	PaidAt           *time.Time `json:"paidAt,omitempty"`

	Notes           *string    `json:"notes,omitempty"`
	ReviewedBy      *int64     `json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time `json:"reviewedAt,omitempty"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// BookingPageResponse страница административного списка
type BookingPageResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int64             `json:"total"`
	Limit    uint64            `json:"limit"`
	Offset   uint64            `json:"offset"`
}

// CVURLResponse ссылка на скачивание CV
type CVURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:               b.ID,
		Type:             string(b.Type),
		UserID:           b.UserID,
		IndustryID:       b.IndustryID,
		Status:           string(b.Status),
		Title:            b.Title,
		InternshipID:     b.InternshipID,
		CoverLetter:      b.CoverLetter,
		HasCV:            b.CVKey != nil && *b.CVKey != "",
		MentorID:         b.MentorID,
		DurationMinutes:  b.DurationMinutes,
		Amount:           b.Amount,
		Currency:         b.Currency,
		RequiresPayment:  b.RequiresPayment(),
		PaymentReference: b.PaymentReference,
		PaidAt:           b.PaidAt,
		Notes:            b.Notes,
		ReviewedBy:       b.ReviewedBy,
		ReviewedAt:       b.ReviewedAt,
		RejectionReason:  b.RejectionReason,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}

	if b.SessionDate != nil {
		date := b.SessionDate.Format(domain.DateFormat)
		resp.SessionDate = &date
	}
	if !b.StartTime.IsZero() {
		start := b.StartTime.String()
		resp.StartTime = &start
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	return &BookingListResponse{Bookings: toResponses(bookings)}
}

// FromDomainBookingPage конвертирует страницу бронирований в DTO
func FromDomainBookingPage(bookings []*domain.Booking, total int64, limit, offset uint64) *BookingPageResponse {
	return &BookingPageResponse{
		Bookings: toResponses(bookings),
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}
}

func toResponses(bookings []*domain.Booking) []BookingResponse {
	result := make([]BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			result = append(result, *bookingResp)
		}
	}
	return result
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ToDomainBookingType конвертирует строку в domain.BookingType с валидацией
func ToDomainBookingType(bookingType string) (domain.BookingType, error) {
	t := domain.BookingType(bookingType)
	if !t.IsValid() {
		return "", ErrInvalidType
	}
	return t, nil
}
