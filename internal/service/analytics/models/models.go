package models

import (
	"github.com/m04kA/InternHub-Service/internal/domain"
)

// SummaryRequest период выборки, даты YYYY-MM-DD включительно
type SummaryRequest struct {
	From *string
	To   *string
}

// CountItem количество по ключу
type CountItem struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// IndustryItem количество по отрасли
type IndustryItem struct {
	IndustryID   int64  `json:"industryId"`
	IndustryName string `json:"industryName"`
	Count        int64  `json:"count"`
}

// SummaryResponse данные дашборда
type SummaryResponse struct {
	From            string         `json:"from"`
	To              string         `json:"to"`
	TotalBookings   int64          `json:"totalBookings"`
	ByStatus        []CountItem    `json:"byStatus"`
	ByType          []CountItem    `json:"byType"`
	ByIndustry      []IndustryItem `json:"byIndustry"`
	ByMonth         []CountItem    `json:"byMonth"`
	Revenue         int64          `json:"revenue"`
	Currency        string         `json:"currency"`
	Companies       int64          `json:"companies"`
	OpenInternships int64          `json:"openInternships"`
	ActiveMentors   int64          `json:"activeMentors"`
	Students        int64          `json:"students"`
}

// FromDomainSummary конвертирует сводку. To в ответе включительный
func FromDomainSummary(s *domain.AnalyticsSummary) *SummaryResponse {
	return &SummaryResponse{
		From:            s.From.Format(domain.DateFormat),
		To:              s.To.AddDate(0, 0, -1).Format(domain.DateFormat),
		TotalBookings:   s.TotalBookings,
		ByStatus:        toItems(s.ByStatus),
		ByType:          toItems(s.ByType),
		ByIndustry:      toIndustryItems(s.ByIndustry),
		ByMonth:         toItems(s.ByMonth),
		Revenue:         s.Revenue,
		Currency:        s.Currency,
		Companies:       s.Companies,
		OpenInternships: s.OpenInternships,
		ActiveMentors:   s.ActiveMentors,
		Students:        s.Students,
	}
}

func toItems(counts []domain.CountByKey) []CountItem {
	result := make([]CountItem, 0, len(counts))
	for _, c := range counts {
		result = append(result, CountItem{Key: c.Key, Count: c.Count})
	}
	return result
}

func toIndustryItems(counts []domain.IndustryCount) []IndustryItem {
	result := make([]IndustryItem, 0, len(counts))
	for _, c := range counts {
		result = append(result, IndustryItem{IndustryID: c.IndustryID, IndustryName: c.IndustryName, Count: c.Count})
	}
	return result
}
