package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/InternHub-Service/internal/domain"
	"github.com/m04kA/InternHub-Service/internal/service/analytics/models"
)

const (
	// defaultRangeMonths период по умолчанию, включая текущий месяц
	defaultRangeMonths = 12

	// maxRangeDays ограничение длины периода
	maxRangeDays = 3 * 366
)

// Config параметры аналитики
type Config struct {
	Currency string
	Location *time.Location
}

// Service сервис аналитики для дашборда администратора
type Service struct {
	repo      Repository
	actors    ActorResolver
	txManager TransactionManager
	config    Config
	logger    Logger
	now       func() time.Time
}

// NewService создает новый экземпляр сервиса аналитики
func NewService(repo Repository, actors ActorResolver, txManager TransactionManager, config Config, logger Logger) *Service {
	if config.Location == nil {
		config.Location = time.UTC
	}
	if config.Currency == "" {
		config.Currency = domain.DefaultCurrency
	}

	return &Service{
		repo:      repo,
		actors:    actors,
		txManager: txManager,
		config:    config,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock подменяет источник времени (для тестов)
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// GetSummary собирает сводку за период
// Для industry_admin все показатели ограничены его отраслями
func (s *Service) GetSummary(ctx context.Context, actor domain.Actor, req *models.SummaryRequest) (*models.SummaryResponse, error) {
	if !actor.Role.IsAdmin() {
		return nil, ErrAccessDenied
	}

	resolved, err := s.actors.Resolve(ctx, actor)
	if err != nil {
		s.logger.Warn("GetSummary: failed to resolve actor user=%d: %v", actor.UserID, err)
		return nil, ErrAccessDenied
	}

	now := s.now().In(s.config.Location)
	from, to, err := s.parseRange(req, now)
	if err != nil {
		return nil, err
	}

	filter := domain.AnalyticsFilter{
		IndustryIDs: resolved.ScopeIndustryIDs(),
		From:        from,
		To:          to,
		Location:    s.config.Location,
	}

	summary := &domain.AnalyticsSummary{From: from, To: to, Currency: s.config.Currency}

	err = s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
		return s.collect(ctx, summary, filter, now)
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, s.internal("DoReadOnly", err)
	}

	for _, c := range summary.ByStatus {
		summary.TotalBookings += c.Count
	}

	s.logger.Info("GetSummary: user=%d range=%s..%s total=%d",
		actor.UserID, from.Format(domain.DateFormat), to.Format(domain.DateFormat), summary.TotalBookings)

	return models.FromDomainSummary(summary), nil
}

func (s *Service) collect(ctx context.Context, summary *domain.AnalyticsSummary, filter domain.AnalyticsFilter, now time.Time) error {
	var err error
	if summary.ByStatus, err = s.repo.CountByStatus(ctx, filter); err != nil {
		return s.internal("CountByStatus", err)
	}
	if summary.ByType, err = s.repo.CountByType(ctx, filter); err != nil {
		return s.internal("CountByType", err)
	}
	if summary.ByIndustry, err = s.repo.CountByIndustry(ctx, filter); err != nil {
		return s.internal("CountByIndustry", err)
	}
	byMonth, err := s.repo.CountByMonth(ctx, filter)
	if err != nil {
		return s.internal("CountByMonth", err)
	}
	summary.ByMonth = fillMonths(byMonth, filter.From, filter.To)

	if summary.Revenue, err = s.repo.Revenue(ctx, filter); err != nil {
		return s.internal("Revenue", err)
	}
	if summary.Companies, err = s.repo.CountCompanies(ctx, filter.IndustryIDs); err != nil {
		return s.internal("CountCompanies", err)
	}
	if summary.OpenInternships, err = s.repo.CountOpenInternships(ctx, filter.IndustryIDs, now); err != nil {
		return s.internal("CountOpenInternships", err)
	}
	if summary.ActiveMentors, err = s.repo.CountActiveMentors(ctx, filter.IndustryIDs); err != nil {
		return s.internal("CountActiveMentors", err)
	}
	if summary.Students, err = s.repo.CountStudents(ctx, filter.IndustryIDs); err != nil {
		return s.internal("CountStudents", err)
	}

	return nil
}

func (s *Service) internal(op string, err error) error {
	s.logger.Error("GetSummary: %s failed: %v", op, err)
	return fmt.Errorf("%w: GetSummary: %s: %w", ErrInternal, op, err)
}

// parseRange возвращает полуинтервал [from, to) в часовом поясе сервиса
func (s *Service) parseRange(req *models.SummaryRequest, now time.Time) (time.Time, time.Time, error) {
	loc := s.config.Location
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	to := today.AddDate(0, 0, 1)
	if req.To != nil && *req.To != "" {
		parsed, err := time.ParseInLocation(domain.DateFormat, *req.To, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: to must be in YYYY-MM-DD format", ErrInvalidRange)
		}
		to = parsed.AddDate(0, 0, 1)
	}

	lastDay := to.AddDate(0, 0, -1)
	from := time.Date(lastDay.Year(), lastDay.Month()-(defaultRangeMonths-1), 1, 0, 0, 0, 0, loc)
	if req.From != nil && *req.From != "" {
		parsed, err := time.ParseInLocation(domain.DateFormat, *req.From, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: from must be in YYYY-MM-DD format", ErrInvalidRange)
		}
		from = parsed
	}

	if !from.Before(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from must not be after to", ErrInvalidRange)
	}
	if to.Sub(from) > maxRangeDays*24*time.Hour {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: range must be at most %d days", ErrInvalidRange, maxRangeDays)
	}

	return from, to, nil
}

// fillMonths дополняет помесячную статистику нулями, чтобы месяцы шли подряд
func fillMonths(counts []domain.CountByKey, from, to time.Time) []domain.CountByKey {
	byKey := make(map[string]int64, len(counts))
	for _, c := range counts {
		byKey[c.Key] = c.Count
	}

	result := make([]domain.CountByKey, 0)
	month := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, from.Location())
	for month.Before(to) {
		key := month.Format(domain.MonthFormat)
		result = append(result, domain.CountByKey{Key: key, Count: byKey[key]})
		month = month.AddDate(0, 1, 0)
	}

	return result
}
