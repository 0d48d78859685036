package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/InternHub-Service/internal/domain"
	internshipRepo "github.com/m04kA/InternHub-Service/internal/infra/storage/internship"
	"github.com/m04kA/InternHub-Service/internal/service/catalog/models"
)

// ListInternships возвращает страницу стажировок по фильтрам
func (s *Service) ListInternships(ctx context.Context, req *models.ListInternshipsRequest) (*models.InternshipPageResponse, error) {
	limit, offset := normalizePage(req.Limit, req.Offset)
	now := s.localNow()

	filter := domain.InternshipsFilter{
		IndustryID: req.IndustryID,
		CompanyID:  req.CompanyID,
		Query:      strings.TrimSpace(req.Query),
		OpenOnly:   req.OpenOnly,
		Today:      now,
		Limit:      limit,
		Offset:     offset,
	}

	internships, err := s.internshipRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListInternships: failed to list internships: %v", err)
		return nil, fmt.Errorf("%w: ListInternships: %w", ErrInternal, err)
	}

	total, err := s.internshipRepo.Count(ctx, filter)
	if err != nil {
		s.logger.Error("ListInternships: failed to count internships: %v", err)
		return nil, fmt.Errorf("%w: ListInternships: %w", ErrInternal, err)
	}

	return models.FromDomainInternshipPage(internships, total, limit, offset, now), nil
}

// GetInternship возвращает стажировку по ID
func (s *Service) GetInternship(ctx context.Context, id int64) (*models.InternshipResponse, error) {
	internship, err := s.internshipRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, internshipRepo.ErrInternshipNotFound) {
			return nil, ErrInternshipNotFound
		}
		s.logger.Error("GetInternship: failed to get internship id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetInternship: %w", ErrInternal, err)
	}

	resp := models.FromDomainInternship(internship, s.localNow())
	return &resp, nil
}

// CreateInternship создает стажировку. Отрасль берется из компании
func (s *Service) CreateInternship(ctx context.Context, req *models.InternshipRequest) (*models.InternshipResponse, error) {
	internship, err := internshipFromRequest(req)
	if err != nil {
		return nil, err
	}

	company, err := s.getCompany(ctx, "CreateInternship", req.CompanyID)
	if err != nil {
		return nil, err
	}
	internship.IndustryID = company.IndustryID

	created, err := s.internshipRepo.Create(ctx, internship)
	if err != nil {
		if errors.Is(err, internshipRepo.ErrInvalidCompany) {
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("CreateInternship: failed to create internship: %v", err)
		return nil, fmt.Errorf("%w: CreateInternship: %w", ErrInternal, err)
	}
	created.CompanyName = company.Name

	s.logger.Info("CreateInternship: internship created id=%d company=%d", created.ID, company.ID)

	resp := models.FromDomainInternship(created, s.localNow())
	return &resp, nil
}

// UpdateInternship обновляет стажировку
func (s *Service) UpdateInternship(ctx context.Context, id int64, req *models.InternshipRequest) (*models.InternshipResponse, error) {
	internship, err := internshipFromRequest(req)
	if err != nil {
		return nil, err
	}

	company, err := s.getCompany(ctx, "UpdateInternship", req.CompanyID)
	if err != nil {
		return nil, err
	}
	internship.ID = id
	internship.IndustryID = company.IndustryID

	updated, err := s.internshipRepo.Update(ctx, internship)
	if err != nil {
		switch {
		case errors.Is(err, internshipRepo.ErrInternshipNotFound):
			return nil, ErrInternshipNotFound
		case errors.Is(err, internshipRepo.ErrInvalidCompany):
			return nil, ErrCompanyNotFound
		}
		s.logger.Error("UpdateInternship: failed to update internship id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateInternship: %w", ErrInternal, err)
	}
	updated.CompanyName = company.Name

	s.logger.Info("UpdateInternship: internship updated id=%d", id)

	resp := models.FromDomainInternship(updated, s.localNow())
	return &resp, nil
}

// DeleteInternship удаляет стажировку без заявок
// Стажировку с заявками можно только деактивировать (isActive=false)
func (s *Service) DeleteInternship(ctx context.Context, id int64) error {
	if err := s.internshipRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, internshipRepo.ErrInternshipNotFound):
			return ErrInternshipNotFound
		case errors.Is(err, internshipRepo.ErrInUse):
			s.logger.Warn("DeleteInternship: internship id=%d has applications", id)
			return ErrInternshipInUse
		}
		s.logger.Error("DeleteInternship: failed to delete internship id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteInternship: %w", ErrInternal, err)
	}

	s.logger.Info("DeleteInternship: internship deleted id=%d", id)
	return nil
}

func internshipFromRequest(req *models.InternshipRequest) (*domain.Internship, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if req.CompanyID <= 0 {
		return nil, fmt.Errorf("%w: companyId must be positive", ErrInvalidInput)
	}

	internship := &domain.Internship{
		CompanyID:   req.CompanyID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Location:    trimmed(req.Location),
		Duration:    trimmed(req.Duration),
		Stipend:     trimmed(req.Stipend),
		IsActive:    true,
	}
	if req.IsActive != nil {
		internship.IsActive = *req.IsActive
	}

	if deadline := trimmed(req.Deadline); deadline != nil {
		parsed, err := time.Parse(domain.DateFormat, *deadline)
		if err != nil {
			return nil, fmt.Errorf("%w: deadline must be in YYYY-MM-DD format", ErrInvalidInput)
		}
		internship.Deadline = &parsed
	}

	return internship, nil
}
