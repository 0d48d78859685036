package apply_internship

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/InternHub-Service/internal/domain"
	"github.com/m04kA/InternHub-Service/internal/infra/filestorage"
	bookingRepo "github.com/m04kA/InternHub-Service/internal/infra/storage/booking"
	internshipRepo "github.com/m04kA/InternHub-Service/internal/infra/storage/internship"
	"github.com/m04kA/InternHub-Service/pkg/ptr"
)

// UseCase use case для подачи заявки на стажировку с CV
type UseCase struct {
	bookingRepo    BookingRepository
	internshipRepo InternshipRepository
	txManager      TransactionManager
	storage        FileStorage
	metrics        Metrics
	config         Config
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	internshipRepo InternshipRepository,
	txManager TransactionManager,
	storage FileStorage,
	metrics Metrics,
	config Config,
	logger Logger,
) *UseCase {
	if config.Location == nil {
		config.Location = time.UTC
	}
	if config.Currency == "" {
		config.Currency = domain.DefaultCurrency
	}
	return &UseCase{
		bookingRepo:    bookingRepo,
		internshipRepo: internshipRepo,
		txManager:      txManager,
		storage:        storage,
		metrics:        metrics,
		config:         config,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case подачи заявки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ApplyInternship: validation failed: %v", err)
		return nil, err
	}

	ext, contentType, err := validateCV(req.CV, uc.config.MaxCVSizeBytes)
	if err != nil {
		uc.logger.Warn("ApplyInternship: cv validation failed for user=%d: %v", req.UserID, err)
		return nil, err
	}

	uc.logger.Info("ApplyInternship: user=%d, internship=%d, cv size=%d", req.UserID, req.InternshipID, req.CV.Size)

	now := uc.timeProvider.Now().In(uc.config.Location)

	// 2. Стажировка должна существовать и принимать заявки
	internship, err := uc.internshipRepo.GetByID(ctx, req.InternshipID)
	if err != nil {
		if errors.Is(err, internshipRepo.ErrInternshipNotFound) {
			uc.logger.Warn("ApplyInternship: internship id=%d not found", req.InternshipID)
			return nil, ErrInternshipNotFound
		}
		uc.logger.Error("ApplyInternship: failed to get internship id=%d: %v", req.InternshipID, err)
		return nil, fmt.Errorf("%w: failed to get internship: %w", ErrInternal, err)
	}
	if !internship.IsOpen(now) {
		uc.logger.Warn("ApplyInternship: internship id=%d is closed", internship.ID)
		return nil, ErrInternshipClosed
	}

	// 3. Одна активная заявка на стажировку
	exists, err := uc.bookingRepo.HasActiveApplication(ctx, req.UserID, internship.ID)
	if err != nil {
		uc.logger.Error("ApplyInternship: failed to check existing application: %v", err)
		return nil, fmt.Errorf("%w: failed to check existing application: %w", ErrInternal, err)
	}
	if exists {
		uc.logger.Warn("ApplyInternship: user=%d already applied to internship id=%d", req.UserID, internship.ID)
		return nil, ErrAlreadyApplied
	}

	// 4. Загружаем CV
	key := filestorage.NewObjectKey("cvs/"+strconv.FormatInt(req.UserID, 10), ext)
	if err := uc.storage.Save(ctx, key, contentType, req.CV.Reader, req.CV.Size); err != nil {
		uc.logger.Error("ApplyInternship: failed to store cv key=%s: %v", key, err)
		return nil, fmt.Errorf("%w: failed to store cv: %w", ErrInternal, err)
	}

	// 5. Заявка и запись истории создаются в одной транзакции.
	// Загруженный файл удаляется вне ее, если транзакция не прошла
	booking := &domain.Booking{
		Type:         domain.BookingTypeInternship,
		UserID:       req.UserID,
		IndustryID:   internship.IndustryID,
		Status:       domain.StatusPending,
		InternshipID: ptr.Ptr(internship.ID),
		CoverLetter:  req.CoverLetter,
		CVKey:        ptr.Ptr(key),
		Title:        internship.Title,
		Amount:       0,
		Currency:     uc.config.Currency,
	}

	var created *domain.Booking
	err = uc.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		created, err = uc.bookingRepo.Create(ctx, booking)
		if err != nil {
			return err
		}

		return uc.bookingRepo.AddStatusHistory(ctx, domain.StatusChange{
			BookingID: created.ID,
			To:        domain.StatusPending,
			ChangedBy: ptr.Ptr(req.UserID),
			ChangedAt: now,
		})
	})
	if err != nil {
		uc.removeCV(ctx, key)
		if errors.Is(err, bookingRepo.ErrDuplicateApplication) {
			uc.logger.Warn("ApplyInternship: concurrent duplicate application user=%d internship=%d", req.UserID, internship.ID)
			return nil, ErrAlreadyApplied
		}
		uc.logger.Error("ApplyInternship: failed to create application: %v", err)
		return nil, fmt.Errorf("%w: failed to create application: %w", ErrInternal, err)
	}

	uc.metrics.IncBookingTransition(string(created.Type), string(created.Status))
	uc.logger.Info("ApplyInternship: successfully created application id=%d", created.ID)

	return created, nil
}

func (uc *UseCase) removeCV(ctx context.Context, key string) {
	if err := uc.storage.Delete(ctx, key); err != nil {
		uc.logger.Error("ApplyInternship: failed to delete orphaned cv key=%s: %v", key, err)
	}
}
