package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/InternHub-Service/internal/domain"
	companyRepo "github.com/m04kA/InternHub-Service/internal/infra/storage/company"
	"github.com/m04kA/InternHub-Service/internal/service/catalog/models"
)

// ListCompanies возвращает компании, опционально по отрасли
func (s *Service) ListCompanies(ctx context.Context, industryID *int64) (*models.CompanyListResponse, error) {
	companies, err := s.companyRepo.List(ctx, industryID)
	if err != nil {
		s.logger.Error("ListCompanies: failed to list companies: %v", err)
		return nil, fmt.Errorf("%w: ListCompanies: %w", ErrInternal, err)
	}

	result := make([]models.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		result = append(result, models.FromDomainCompany(c, s.imageURL(ctx, "ListCompanies", c.LogoKey)))
	}

	return &models.CompanyListResponse{Companies: result}, nil
}

// GetCompany возвращает компанию по ID
func (s *Service) GetCompany(ctx context.Context, id int64) (*models.CompanyResponse, error) {
	company, err := s.getCompany(ctx, "GetCompany", id)
	if err != nil {
		return nil, err
	}

	resp := models.FromDomainCompany(company, s.imageURL(ctx, "GetCompany", company.LogoKey))
	return &resp, nil
}

// CreateCompany создает компанию с необязательным логотипом
func (s *Service) CreateCompany(ctx context.Context, req *models.CompanyRequest, logo *domain.Upload) (*models.CompanyResponse, error) {
	company, err := companyFromRequest(req)
	if err != nil {
		return nil, err
	}

	if logo != nil {
		key, err := s.uploadImage(ctx, companyLogoPrefix, logo)
		if err != nil {
			return nil, err
		}
		company.LogoKey = &key
	}

	created, err := s.companyRepo.Create(ctx, company)
	if err != nil {
		if company.LogoKey != nil {
			s.deleteObject(ctx, "CreateCompany", *company.LogoKey)
		}
		if errors.Is(err, companyRepo.ErrInvalidIndustry) {
			return nil, ErrIndustryNotFound
		}
		s.logger.Error("CreateCompany: failed to create company: %v", err)
		return nil, fmt.Errorf("%w: CreateCompany: %w", ErrInternal, err)
	}

	s.logger.Info("CreateCompany: company created id=%d industry=%d", created.ID, created.IndustryID)

	resp := models.FromDomainCompany(created, s.imageURL(ctx, "CreateCompany", created.LogoKey))
	return &resp, nil
}

// UpdateCompany обновляет компанию
// При смене отрасли стажировки компании переносятся в ту же транзакцию
func (s *Service) UpdateCompany(ctx context.Context, id int64, req *models.CompanyRequest, logo *domain.Upload) (*models.CompanyResponse, error) {
	update, err := companyFromRequest(req)
	if err != nil {
		return nil, err
	}

	existing, err := s.getCompany(ctx, "UpdateCompany", id)
	if err != nil {
		return nil, err
	}

	update.ID = id
	update.LogoKey = existing.LogoKey
	if req.RemoveLogo {
		update.LogoKey = nil
	}

	var newKey *string
	if logo != nil {
		key, err := s.uploadImage(ctx, companyLogoPrefix, logo)
		if err != nil {
			return nil, err
		}
		newKey = &key
		update.LogoKey = newKey
	}

	var updated *domain.Company
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.companyRepo.Update(ctx, update)
		if err != nil {
			return err
		}

		if existing.IndustryID != update.IndustryID {
			if err := s.internshipRepo.SyncIndustry(ctx, id, update.IndustryID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if newKey != nil {
			s.deleteObject(ctx, "UpdateCompany", *newKey)
		}
		switch {
		case errors.Is(err, companyRepo.ErrCompanyNotFound):
			return nil, ErrCompanyNotFound
		case errors.Is(err, companyRepo.ErrInvalidIndustry):
			return nil, ErrIndustryNotFound
		}
		s.logger.Error("UpdateCompany: failed to update company id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateCompany: %w", ErrInternal, err)
	}

	// Старый логотип больше не нужен
	if existing.LogoKey != nil && (updated.LogoKey == nil || *updated.LogoKey != *existing.LogoKey) {
		s.deleteObject(ctx, "UpdateCompany", *existing.LogoKey)
	}

	s.logger.Info("UpdateCompany: company updated id=%d", id)

	resp := models.FromDomainCompany(updated, s.imageURL(ctx, "UpdateCompany", updated.LogoKey))
	return &resp, nil
}

// DeleteCompany удаляет компанию вместе со стажировками без заявок
func (s *Service) DeleteCompany(ctx context.Context, id int64) error {
	company, err := s.getCompany(ctx, "DeleteCompany", id)
	if err != nil {
		return err
	}

	if err := s.companyRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, companyRepo.ErrCompanyNotFound):
			return ErrCompanyNotFound
		case errors.Is(err, companyRepo.ErrInUse):
			s.logger.Warn("DeleteCompany: company id=%d has internship applications", id)
			return ErrCompanyInUse
		}
		s.logger.Error("DeleteCompany: failed to delete company id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteCompany: %w", ErrInternal, err)
	}

	if company.LogoKey != nil {
		s.deleteObject(ctx, "DeleteCompany", *company.LogoKey)
	}

	s.logger.Info("DeleteCompany: company deleted id=%d", id)
	return nil
}

func (s *Service) getCompany(ctx context.Context, op string, id int64) (*domain.Company, error) {
	company, err := s.companyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("%s: failed to get company id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
	}
	return company, nil
}

func companyFromRequest(req *models.CompanyRequest) (*domain.Company, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.IndustryID <= 0 {
		return nil, fmt.Errorf("%w: industryId must be positive", ErrInvalidInput)
	}

	return &domain.Company{
		IndustryID:  req.IndustryID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Website:     trimmed(req.Website),
		Location:    trimmed(req.Location),
	}, nil
}

// trimmed возвращает nil для пустых строк
func trimmed(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}
