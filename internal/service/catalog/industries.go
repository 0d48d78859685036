package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/InternHub-Service/internal/domain"
	industryRepo "github.com/m04kA/InternHub-Service/internal/infra/storage/industry"
	"github.com/m04kA/InternHub-Service/internal/service/catalog/models"
)

// ListIndustries возвращает все отрасли
func (s *Service) ListIndustries(ctx context.Context) (*models.IndustryListResponse, error) {
	industries, err := s.industryRepo.List(ctx)
	if err != nil {
		s.logger.Error("ListIndustries: failed to list industries: %v", err)
		return nil, fmt.Errorf("%w: ListIndustries: %w", ErrInternal, err)
	}

	return models.FromDomainIndustryList(industries), nil
}

// CreateIndustry создает отрасль с уникальным названием
func (s *Service) CreateIndustry(ctx context.Context, req *models.CreateIndustryRequest) (*models.IndustryResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	industry, err := s.industryRepo.Create(ctx, &domain.Industry{Name: name})
	if err != nil {
		if errors.Is(err, industryRepo.ErrAlreadyExists) {
			return nil, ErrIndustryExists
		}
		s.logger.Error("CreateIndustry: failed to create industry: %v", err)
		return nil, fmt.Errorf("%w: CreateIndustry: %w", ErrInternal, err)
	}

	s.logger.Info("CreateIndustry: industry created id=%d", industry.ID)

	resp := models.FromDomainIndustry(industry)
	return &resp, nil
}

// DeleteIndustry удаляет отрасль без ссылок
func (s *Service) DeleteIndustry(ctx context.Context, id int64) error {
	if err := s.industryRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, industryRepo.ErrIndustryNotFound):
			return ErrIndustryNotFound
		case errors.Is(err, industryRepo.ErrInUse):
			return ErrIndustryInUse
		}
		s.logger.Error("DeleteIndustry: failed to delete industry id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteIndustry: %w", ErrInternal, err)
	}

	s.logger.Info("DeleteIndustry: industry deleted id=%d", id)
	return nil
}
