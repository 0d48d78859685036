package domain

import "time"

// AnalyticsFilter параметры выборки аналитики
type AnalyticsFilter struct {
	IndustryIDs []int64 // nil - все отрасли
	From        time.Time
	To          time.Time
	Location    *time.Location // границы месяцев при группировке, nil - UTC
}

// TimezoneName имя часового пояса для AT TIME ZONE
func (f AnalyticsFilter) TimezoneName() string {
	if f.Location == nil {
		return "UTC"
	}
	return f.Location.String()
}

// CountByKey количество бронирований по ключу (статус, тип, месяц)
type CountByKey struct {
	Key   string
	Count int64
}

// IndustryCount количество бронирований по отрасли
type IndustryCount struct {
	IndustryID   int64
	IndustryName string
	Count        int64
}

// AnalyticsSummary агрегированные данные для дашборда
type AnalyticsSummary struct {
	From            time.Time
	To              time.Time
	TotalBookings   int64
	ByStatus        []CountByKey
	ByType          []CountByKey
	ByIndustry      []IndustryCount
	ByMonth         []CountByKey
	Revenue         int64
	Currency        string
	Companies       int64
	OpenInternships int64
	ActiveMentors   int64
	Students        int64
}
