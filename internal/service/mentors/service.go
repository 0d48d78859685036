package mentors

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/InternHub-Service/internal/domain"
	"github.com/m04kA/InternHub-Service/internal/infra/filestorage"
	mentorRepo "github.com/m04kA/InternHub-Service/internal/infra/storage/mentor"
	"github.com/m04kA/InternHub-Service/internal/service/mentors/models"
)

const (
	mentorPhotoPrefix = "photos/mentors"

	// DefaultImageURLTTL срок действия ссылки на фото
	DefaultImageURLTTL = time.Hour
)

// Service сервис менторов и их расписания
type Service struct {
	mentorRepo       MentorRepository
	availabilityRepo AvailabilityRepository
	bookings         BookingCounter
	actors           ActorResolver
	storage          FileStorage
	txManager        TransactionManager
	imageURLTTL      time.Duration
	logger           Logger
}

// NewService создает новый экземпляр сервиса менторов
func NewService(
	mentorRepo MentorRepository,
	availabilityRepo AvailabilityRepository,
	bookings BookingCounter,
	actors ActorResolver,
	storage FileStorage,
	txManager TransactionManager,
	imageURLTTL time.Duration,
	logger Logger,
) *Service {
	if imageURLTTL <= 0 {
		imageURLTTL = DefaultImageURLTTL
	}

	return &Service{
		mentorRepo:       mentorRepo,
		availabilityRepo: availabilityRepo,
		bookings:         bookings,
		actors:           actors,
		storage:          storage,
		txManager:        txManager,
		imageURLTTL:      imageURLTTL,
		logger:           logger,
	}
}

// List возвращает менторов. Неактивные видны только администраторам
func (s *Service) List(ctx context.Context, industryID *int64, includeInactive bool) (*models.MentorListResponse, error) {
	mentors, err := s.mentorRepo.List(ctx, domain.MentorsFilter{
		IndustryID:      industryID,
		IncludeInactive: includeInactive,
	})
	if err != nil {
		s.logger.Error("List: failed to list mentors: %v", err)
		return nil, fmt.Errorf("%w: List: %w", ErrInternal, err)
	}

	result := make([]models.MentorResponse, 0, len(mentors))
	for _, m := range mentors {
		result = append(result, models.FromDomainMentor(m, s.photoURL(ctx, m)))
	}

	return &models.MentorListResponse{Mentors: result}, nil
}

// Get возвращает ментора с недельным расписанием
func (s *Service) Get(ctx context.Context, id int64, includeInactive bool) (*models.MentorResponse, error) {
	mentor, err := s.getMentor(ctx, "Get", id)
	if err != nil {
		return nil, err
	}
	if !mentor.IsActive && !includeInactive {
		return nil, ErrMentorNotFound
	}

	windows, err := s.availabilityRepo.GetByMentor(ctx, id)
	if err != nil {
		s.logger.Error("Get: failed to get availability mentor=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Get: %w", ErrInternal, err)
	}

	resp := models.FromDomainMentor(mentor, s.photoURL(ctx, mentor))
	resp.Availability = models.FromDomainWindows(windows)
	return &resp, nil
}

// Create создает ментора с необязательным фото
func (s *Service) Create(ctx context.Context, req *models.MentorRequest, photo *domain.Upload) (*models.MentorResponse, error) {
	mentor, err := mentorFromRequest(req)
	if err != nil {
		return nil, err
	}

	if photo != nil {
		key, err := s.uploadPhoto(ctx, photo)
		if err != nil {
			return nil, err
		}
		mentor.PhotoKey = &key
	}

	created, err := s.mentorRepo.Create(ctx, mentor)
	if err != nil {
		if mentor.PhotoKey != nil {
			s.deleteObject(ctx, "Create", *mentor.PhotoKey)
		}
		if errors.Is(err, mentorRepo.ErrInvalidIndustry) {
			return nil, ErrIndustryNotFound
		}
		s.logger.Error("Create: failed to create mentor: %v", err)
		return nil, fmt.Errorf("%w: Create: %w", ErrInternal, err)
	}

	s.logger.Info("Create: mentor created id=%d industry=%d", created.ID, created.IndustryID)

	resp := models.FromDomainMentor(created, s.photoURL(ctx, created))
	return &resp, nil
}

// Update обновляет ментора. Существующие бронирования сохраняют свою цену
func (s *Service) Update(ctx context.Context, id int64, req *models.MentorRequest, photo *domain.Upload) (*models.MentorResponse, error) {
	update, err := mentorFromRequest(req)
	if err != nil {
		return nil, err
	}

	existing, err := s.getMentor(ctx, "Update", id)
	if err != nil {
		return nil, err
	}

	update.ID = id
	update.PhotoKey = existing.PhotoKey
	if req.RemovePhoto {
		update.PhotoKey = nil
	}

	var newKey *string
	if photo != nil {
		key, err := s.uploadPhoto(ctx, photo)
		if err != nil {
			return nil, err
		}
		newKey = &key
		update.PhotoKey = newKey
	}

	updated, err := s.mentorRepo.Update(ctx, update)
	if err != nil {
		if newKey != nil {
			s.deleteObject(ctx, "Update", *newKey)
		}
		switch {
		case errors.Is(err, mentorRepo.ErrMentorNotFound):
			return nil, ErrMentorNotFound
		case errors.Is(err, mentorRepo.ErrInvalidIndustry):
			return nil, ErrIndustryNotFound
		}
		s.logger.Error("Update: failed to update mentor id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update: %w", ErrInternal, err)
	}

	if existing.PhotoKey != nil && (updated.PhotoKey == nil || *updated.PhotoKey != *existing.PhotoKey) {
		s.deleteObject(ctx, "Update", *existing.PhotoKey)
	}

	s.logger.Info("Update: mentor updated id=%d", id)

	resp := models.FromDomainMentor(updated, s.photoURL(ctx, updated))
	return &resp, nil
}

// Delete удаляет ментора. При наличии бронирований ментор только деактивируется
func (s *Service) Delete(ctx context.Context, id int64) (*models.DeleteMentorResponse, error) {
	mentor, err := s.getMentor(ctx, "Delete", id)
	if err != nil {
		return nil, err
	}

	count, err := s.bookings.CountByMentorID(ctx, id)
	if err != nil {
		s.logger.Error("Delete: failed to count bookings mentor=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Delete: %w", ErrInternal, err)
	}

	if count > 0 {
		return s.deactivate(ctx, id)
	}

	if err := s.mentorRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, mentorRepo.ErrMentorNotFound):
			return nil, ErrMentorNotFound
		case errors.Is(err, mentorRepo.ErrInUse):
			// бронирование появилось после подсчета
			s.logger.Warn("Delete: mentor id=%d got bookings before delete, deactivating", id)
			return s.deactivate(ctx, id)
		}
		s.logger.Error("Delete: failed to delete mentor id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Delete: %w", ErrInternal, err)
	}

	if mentor.PhotoKey != nil {
		s.deleteObject(ctx, "Delete", *mentor.PhotoKey)
	}

	s.logger.Info("Delete: mentor deleted id=%d", id)
	return &models.DeleteMentorResponse{ID: id}, nil
}

func (s *Service) deactivate(ctx context.Context, id int64) (*models.DeleteMentorResponse, error) {
	if err := s.mentorRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, mentorRepo.ErrMentorNotFound) {
			return nil, ErrMentorNotFound
		}
		s.logger.Error("Delete: failed to deactivate mentor id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Delete: %w", ErrInternal, err)
	}

	s.logger.Info("Delete: mentor deactivated id=%d", id)
	return &models.DeleteMentorResponse{ID: id, Deactivated: true}, nil
}

// SetAvailability заменяет недельное расписание ментора
// Доступ: глобальный админ или industry_admin отрасли ментора
func (s *Service) SetAvailability(ctx context.Context, actor domain.Actor, mentorID int64, req *models.SetAvailabilityRequest) (*models.AvailabilityResponse, error) {
	resolved, err := s.actors.Resolve(ctx, actor)
	if err != nil {
		s.logger.Warn("SetAvailability: failed to resolve actor user=%d: %v", actor.UserID, err)
		return nil, ErrAccessDenied
	}

	var saved []*domain.AvailabilityWindow
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Ментор блокируется FOR SHARE до конца транзакции
		mentor, err := s.getMentor(ctx, "SetAvailability", mentorID)
		if err != nil {
			return err
		}

		// 2. Проверяем зону ответственности
		if !resolved.CanManageIndustry(mentor.IndustryID) {
			return ErrAccessDenied
		}

		// 3. Валидируем окна под длительность сессии ментора
		windows, err := windowsFromRequest(mentorID, mentor.SessionDurationMinutes, req)
		if err != nil {
			return err
		}

		// 4. Заменяем расписание целиком
		saved, err = s.availabilityRepo.ReplaceForMentor(ctx, mentorID, windows)
		if err != nil {
			return fmt.Errorf("%w: SetAvailability: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("SetAvailability: failed for mentor=%d: %v", mentorID, err)
		}
		return nil, err
	}

	s.logger.Info("SetAvailability: mentor=%d windows=%d by user=%d", mentorID, len(saved), actor.UserID)

	return &models.AvailabilityResponse{
		MentorID: mentorID,
		Windows:  models.FromDomainWindows(saved),
	}, nil
}

func (s *Service) getMentor(ctx context.Context, op string, id int64) (*domain.Mentor, error) {
	mentor, err := s.mentorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mentorRepo.ErrMentorNotFound) {
			return nil, ErrMentorNotFound
		}
		s.logger.Error("%s: failed to get mentor id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s: %w", ErrInternal, op, err)
	}
	return mentor, nil
}

func (s *Service) uploadPhoto(ctx context.Context, file *domain.Upload) (string, error) {
	if file.Reader == nil || file.Size <= 0 {
		return "", fmt.Errorf("%w: photo file is empty", ErrInvalidImage)
	}
	if file.Size > domain.MaxImageSizeBytes {
		return "", fmt.Errorf("%w: photo must be at most %d MB", ErrInvalidImage, domain.MaxImageSizeBytes>>20)
	}

	ext, contentType, ok := file.ImageType()
	if !ok {
		return "", fmt.Errorf("%w: photo must be jpg, png or webp", ErrInvalidImage)
	}

	key := filestorage.NewObjectKey(mentorPhotoPrefix, ext)
	if err := s.storage.Save(ctx, key, contentType, file.Reader, file.Size); err != nil {
		s.logger.Error("uploadPhoto: failed to save photo: %v", err)
		return "", fmt.Errorf("%w: save photo: %w", ErrInternal, err)
	}

	return key, nil
}

func (s *Service) deleteObject(ctx context.Context, op, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Warn("%s: failed to delete object key=%s: %v", op, key, err)
	}
}

func (s *Service) photoURL(ctx context.Context, m *domain.Mentor) *string {
	if m.PhotoKey == nil || *m.PhotoKey == "" {
		return nil
	}

	url, err := s.storage.URL(ctx, *m.PhotoKey, s.imageURLTTL)
	if err != nil {
		s.logger.Warn("photoURL: failed to build url mentor=%d: %v", m.ID, err)
		return nil
	}

	return &url
}
