package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/InternHub-Service/internal/domain"
	"github.com/m04kA/InternHub-Service/internal/infra/filestorage"
)

const (
	companyLogoPrefix = "logos/companies"

	// DefaultImageURLTTL срок действия ссылки на логотип
	DefaultImageURLTTL = time.Hour
)

// Config параметры каталога
type Config struct {
	ImageURLTTL time.Duration
	Location    *time.Location
}

// Service сервис отраслей, компаний и стажировок
type Service struct {
	industryRepo   IndustryRepository
	companyRepo    CompanyRepository
	internshipRepo InternshipRepository
	storage        FileStorage
	txManager      TransactionManager
	config         Config
	logger         Logger
	now            func() time.Time
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	industryRepo IndustryRepository,
	companyRepo CompanyRepository,
	internshipRepo InternshipRepository,
	storage FileStorage,
	txManager TransactionManager,
	config Config,
	logger Logger,
) *Service {
	if config.ImageURLTTL <= 0 {
		config.ImageURLTTL = DefaultImageURLTTL
	}
	if config.Location == nil {
		config.Location = time.UTC
	}

	return &Service{
		industryRepo:   industryRepo,
		companyRepo:    companyRepo,
		internshipRepo: internshipRepo,
		storage:        storage,
		txManager:      txManager,
		config:         config,
		logger:         logger,
		now:            time.Now,
	}
}

// WithClock подменяет источник времени (для тестов)
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) localNow() time.Time {
	return s.now().In(s.config.Location)
}

// uploadImage проверяет и сохраняет изображение, возвращает ключ объекта
func (s *Service) uploadImage(ctx context.Context, prefix string, file *domain.Upload) (string, error) {
	if file.Reader == nil || file.Size <= 0 {
		return "", fmt.Errorf("%w: image file is empty", ErrInvalidImage)
	}
	if file.Size > domain.MaxImageSizeBytes {
		return "", fmt.Errorf("%w: image must be at most %d MB", ErrInvalidImage, domain.MaxImageSizeBytes>>20)
	}

	ext, contentType, ok := file.ImageType()
	if !ok {
		return "", fmt.Errorf("%w: image must be jpg, png or webp", ErrInvalidImage)
	}

	key := filestorage.NewObjectKey(prefix, ext)
	if err := s.storage.Save(ctx, key, contentType, file.Reader, file.Size); err != nil {
		return "", fmt.Errorf("%w: save image: %w", ErrInternal, err)
	}

	return key, nil
}

func (s *Service) deleteObject(ctx context.Context, op, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		s.logger.Warn("%s: failed to delete object key=%s: %v", op, key, err)
	}
}

// imageURL возвращает ссылку на объект или nil, если ключа нет
func (s *Service) imageURL(ctx context.Context, op string, key *string) *string {
	if key == nil || *key == "" {
		return nil
	}

	url, err := s.storage.URL(ctx, *key, s.config.ImageURLTTL)
	if err != nil {
		s.logger.Warn("%s: failed to build url key=%s: %v", op, *key, err)
		return nil
	}

	return &url
}

func normalizePage(limit, offset uint64) (uint64, uint64) {
	if limit == 0 {
		limit = domain.DefaultPageLimit
	}
	if limit > domain.MaxPageLimit {
		limit = domain.MaxPageLimit
	}
	return limit, offset
}
