package admins

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/m04kA/InternHub-Service/internal/domain"
	userRepo "github.com/m04kA/InternHub-Service/internal/infra/storage/user"
	"github.com/m04kA/InternHub-Service/internal/service/admins/models"
	"github.com/m04kA/InternHub-Service/pkg/password"
)

// adminRoles роли, управляемые сервисом
var adminRoles = []domain.Role{domain.RoleAdmin, domain.RoleIndustryAdmin}

// Service управление администраторами (только для глобального админа)
type Service struct {
	userRepo     UserRepository
	industryRepo IndustryRepository
	hasher       PasswordHasher
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса администраторов
func NewService(
	userRepo UserRepository,
	industryRepo IndustryRepository,
	hasher PasswordHasher,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		userRepo:     userRepo,
		industryRepo: industryRepo,
		hasher:       hasher,
		txManager:    txManager,
		logger:       logger,
	}
}

// CreateAdmin создает администратора с подтвержденным email
func (s *Service) CreateAdmin(ctx context.Context, req *models.CreateAdminRequest) (*models.AdminResponse, error) {
	role := domain.Role(req.Role)
	if !role.IsAdmin() {
		return nil, fmt.Errorf("%w: role must be admin or industry_admin", ErrInvalidInput)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	firstName := strings.TrimSpace(req.FirstName)
	if email == "" || firstName == "" {
		return nil, fmt.Errorf("%w: email and firstName are required", ErrInvalidInput)
	}

	if err := password.Validate(req.Password); err != nil {
		return nil, ErrWeakPassword
	}

	var industries []int64
	if role == domain.RoleIndustryAdmin {
		var err error
		industries, err = s.checkIndustries(ctx, "CreateAdmin", req.IndustryIDs)
		if err != nil {
			return nil, err
		}
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error("CreateAdmin: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: CreateAdmin: %w", ErrInternal, err)
	}

	var created *domain.User
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.userRepo.Create(ctx, &domain.User{
			Email:         email,
			PasswordHash:  hash,
			FirstName:     firstName,
			LastName:      strings.TrimSpace(req.LastName),
			Role:          role,
			EmailVerified: true,
		})
		if err != nil {
			return err
		}

		if len(industries) > 0 {
			if err := s.userRepo.SetIndustries(ctx, created.ID, industries); err != nil {
				return err
			}
		}
		created.IndustryIDs = industries
		return nil
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("CreateAdmin: failed to create admin: %v", err)
		return nil, fmt.Errorf("%w: CreateAdmin: %w", ErrInternal, err)
	}

	s.logger.Info("CreateAdmin: admin created id=%d role=%s industries=%v", created.ID, role, industries)

	resp := models.FromDomainAdmin(created)
	return &resp, nil
}

// ListAdmins возвращает всех администраторов
func (s *Service) ListAdmins(ctx context.Context) (*models.AdminListResponse, error) {
	users, err := s.userRepo.ListByRoles(ctx, adminRoles)
	if err != nil {
		s.logger.Error("ListAdmins: failed to list admins: %v", err)
		return nil, fmt.Errorf("%w: ListAdmins: %w", ErrInternal, err)
	}

	result := make([]models.AdminResponse, 0, len(users))
	for _, u := range users {
		result = append(result, models.FromDomainAdmin(u))
	}

	return &models.AdminListResponse{Admins: result}, nil
}

// UpdateAdminIndustries заменяет отрасли industry_admin
// Новая зона действует со следующего запроса администратора
func (s *Service) UpdateAdminIndustries(ctx context.Context, id int64, req *models.UpdateIndustriesRequest) (*models.AdminResponse, error) {
	admin, err := s.getAdmin(ctx, "UpdateAdminIndustries", id)
	if err != nil {
		return nil, err
	}
	if admin.Role != domain.RoleIndustryAdmin {
		return nil, ErrNotIndustryAdmin
	}

	industries, err := s.checkIndustries(ctx, "UpdateAdminIndustries", req.IndustryIDs)
	if err != nil {
		return nil, err
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.userRepo.SetIndustries(ctx, id, industries)
	})
	if err != nil {
		s.logger.Error("UpdateAdminIndustries: failed to set industries admin=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateAdminIndustries: %w", ErrInternal, err)
	}

	admin.IndustryIDs = industries
	s.logger.Info("UpdateAdminIndustries: admin=%d industries=%v", id, industries)

	resp := models.FromDomainAdmin(admin)
	return &resp, nil
}

// DeleteAdmin удаляет администратора. Удалить себя нельзя
func (s *Service) DeleteAdmin(ctx context.Context, callerID, id int64) error {
	if callerID == id {
		return ErrCannotDeleteSelf
	}

	if _, err := s.getAdmin(ctx, "DeleteAdmin", id); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrAdminNotFound
		}
		s.logger.Error("DeleteAdmin: failed to delete admin id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteAdmin: %w", ErrInternal, err)
	}

	s.logger.Info("DeleteAdmin: admin deleted id=%d by=%d", id, callerID)
	return nil
}

// getAdmin загружает пользователя и проверяет, что это администратор
func (s *Service) getAdmin(ctx context.Context, op string, id int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrAdminNotFound
		}
		s.logger.Error("%s: failed to get user id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
	}
	if !user.Role.IsAdmin() {
		return nil, ErrAdminNotFound
	}
	return user, nil
}

// checkIndustries убирает дубликаты и проверяет, что все отрасли существуют
func (s *Service) checkIndustries(ctx context.Context, op string, ids []int64) ([]int64, error) {
	unique := uniqueIDs(ids)
	if len(unique) == 0 {
		return nil, ErrIndustriesRequired
	}

	count, err := s.industryRepo.CountExisting(ctx, unique)
	if err != nil {
		s.logger.Error("%s: failed to check industries: %v", op, err)
		return nil, fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
	}
	if count != len(unique) {
		return nil, ErrUnknownIndustry
	}

	return unique, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}
