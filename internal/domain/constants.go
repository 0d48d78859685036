package domain

// Default configuration values
const (
	DefaultSessionDurationMinutes = 60
	DefaultCurrency               = "NGN"
	DefaultPageLimit              = 20
	MaxPageLimit                  = 100
)

// Business validation constants
const (
	MinSessionDurationMinutes = 15
	MaxSessionDurationMinutes = 240
	MaxSessionPrice           = 100_000_000 // 1 000 000 NGN в kobo
	MaxNotesLength            = 500
	MaxCoverLetterLength      = 5000
	MaxRejectionReasonLength  = 500
	MaxAvailabilityWindows    = 50
)

// Time format constants
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"
)

// WithdrawnReason причина отклонения при отзыве заявки студентом
const WithdrawnReason = "withdrawn by student"

// ActiveStatuses статусы, при которых бронирование занимает слот ментора
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusApproved,
	StatusPaid,
}

// InactiveStatuses конечные статусы без оплаты
var InactiveStatuses = []BookingStatus{
	StatusRejected,
	StatusExpired,
}

// AllStatuses все статусы бронирования
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusApproved,
	StatusPaid,
	StatusRejected,
	StatusExpired,
}

// StatusStrings конвертирует статусы в строки для SQL фильтров
func StatusStrings(statuses []BookingStatus) []string {
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
