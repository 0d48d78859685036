package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/InternHub-Service/internal/domain"
	"github.com/m04kA/InternHub-Service/pkg/dbmetrics"
	"github.com/m04kA/InternHub-Service/pkg/psqlbuilder"
)

const (
	pqUniqueViolation = "23505"

	constraintMentorSlot     = "uq_bookings_mentor_slot_active"
	constraintUserInternship = "uq_bookings_user_internship_active"

	timestampLayout = "2006-01-02 15:04:05"
)

var bookingColumns = []string{
	"id",
	"type",
	"user_id",
	"industry_id",
	"status",
	"internship_id",
	"cover_letter",
	"cv_key",
	"mentor_id",
	"session_date",
	"start_time",
	"duration_minutes",
	"title",
	"amount",
	"currency",
	"payment_reference",
	"payment_url",
	"payment_access_code",
	"paid_at",
	"notes",
	"reviewed_by",
	"reviewed_at",
	"rejection_reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Нарушение частичных уникальных индексов переводится в ErrSlotNotAvailable / ErrDuplicateApplication
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var sessionDate interface{}
	if booking.SessionDate != nil {
		sessionDate = booking.SessionDate.Format(domain.DateFormat)
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"type",
			"user_id",
			"industry_id",
			"status",
			"internship_id",
			"cover_letter",
			"cv_key",
			"mentor_id",
			"session_date",
			"start_time",
			"duration_minutes",
			"title",
			"amount",
			"currency",
			"notes",
		).
		Values(
			booking.Type,
			booking.UserID,
			booking.IndustryID,
			booking.Status,
			booking.InternshipID,
			booking.CoverLetter,
			booking.CVKey,
			booking.MentorID,
			sessionDate,
			booking.StartTime,
			booking.DurationMinutes,
			booking.Title,
			booking.Amount,
			booking.Currency,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			switch pqErr.Constraint {
			case constraintMentorSlot:
				return nil, ErrSlotNotAvailable
			case constraintUserInternship:
				return nil, ErrDuplicateApplication
			}
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE) для последующей смены статуса
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return r.getOne(ctx, "GetByID", selectBuilder)
}

// GetByPaymentReference получает бронирование по референсу платежа
func (r *Repository) GetByPaymentReference(ctx context.Context, reference string) (*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"payment_reference": reference})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return r.getOne(ctx, "GetByPaymentReference", selectBuilder)
}

func (r *Repository) getOne(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %w", ErrScanRow, op, err)
	}

	return booking, nil
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу и типу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus, bookingType *domain.BookingType) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}
	if bookingType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"type": *bookingType})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListWithFilter получает бронирования с гибкой фильтрацией для админки
//
// IndustryIDs == nil - без ограничения по отраслям,
// пустой слайс - ни одной отрасли (пустой результат).
// StartDate/EndDate сравниваются с датой сессии для менторства
// и с датой подачи для заявок на стажировку.
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if filter.IndustryIDs != nil && len(filter.IndustryIDs) == 0 {
		return []*domain.Booking{}, nil
	}

	selectBuilder := applyFilter(psqlbuilder.Select(bookingColumns...).From("bookings"), filter).
		OrderBy("created_at DESC", "id DESC")

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(filter.Offset)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// CountWithFilter считает бронирования по тому же фильтру без пагинации
func (r *Repository) CountWithFilter(ctx context.Context, filter domain.BookingsFilter) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if filter.IndustryIDs != nil && len(filter.IndustryIDs) == 0 {
		return 0, nil
	}

	query, args, err := applyFilter(psqlbuilder.Select("COUNT(*)").From("bookings"), filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountWithFilter - build select query: %w", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: CountWithFilter - scan count: %w", ErrScanRow, err)
	}

	return total, nil
}

func applyFilter(selectBuilder squirrel.SelectBuilder, filter domain.BookingsFilter) squirrel.SelectBuilder {
	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.Type != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"type": *filter.Type})
	}
	if filter.IndustryIDs != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"industry_id": filter.IndustryIDs})
	}
	if filter.MentorID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"mentor_id": *filter.MentorID})
	}
	if filter.InternshipID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"internship_id": *filter.InternshipID})
	}

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Expr(
			"COALESCE(session_date, created_at::date) >= ?", filter.StartDate.Format(domain.DateFormat)))
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Expr(
			"COALESCE(session_date, created_at::date) <= ?", filter.EndDate.Format(domain.DateFormat)))
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if filter.ActiveOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.StatusStrings(domain.ActiveStatuses)})
	}

	return selectBuilder
}

// GetMentorBookingsForDate получает активные бронирования ментора на дату
// Внутри транзакции блокирует найденные строки (FOR UPDATE) для usecase создания бронирования
func (r *Repository) GetMentorBookingsForDate(ctx context.Context, mentorID int64, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{
			"type":         domain.BookingTypeMentorship,
			"mentor_id":    mentorID,
			"session_date": date.Format(domain.DateFormat),
			"status":       domain.StatusStrings(domain.ActiveStatuses),
		}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetMentorBookingsForDate - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetMentorBookingsForDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// HasActiveApplication проверяет наличие активной заявки пользователя на стажировку
func (r *Repository) HasActiveApplication(ctx context.Context, userID, internshipID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{
			"type":          domain.BookingTypeInternship,
			"user_id":       userID,
			"internship_id": internshipID,
			"status":        domain.StatusStrings(domain.ActiveStatuses),
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasActiveApplication - build select query: %w", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: HasActiveApplication - scan: %w", ErrScanRow, err)
	}

	return true, nil
}

// CountByMentorID считает все бронирования ментора (для выбора мягкого удаления)
func (r *Repository) CountByMentorID(ctx context.Context, mentorID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"mentor_id": mentorID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByMentorID - build select query: %w", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByMentorID - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// UpdateStatus меняет статус, только если текущий статус равен change.From
// Иначе возвращает ErrStatusConflict
func (r *Repository) UpdateStatus(ctx context.Context, change domain.StatusChange) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", change.To).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": change.BookingID, "status": change.From})

	if change.ChangedBy != nil {
		updateBuilder = updateBuilder.
			Set("reviewed_by", *change.ChangedBy).
			Set("reviewed_at", squirrel.Expr("NOW()"))
	}
	if change.To == domain.StatusRejected && change.Reason != nil {
		updateBuilder = updateBuilder.Set("rejection_reason", *change.Reason)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// AddStatusHistory сохраняет запись о смене статуса
func (r *Repository) AddStatusHistory(ctx context.Context, change domain.StatusChange) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Пустой From означает создание бронирования
	var from interface{}
	if change.From != "" {
		from = change.From
	}
	var changedAt interface{} = squirrel.Expr("NOW()")
	if !change.ChangedAt.IsZero() {
		changedAt = change.ChangedAt
	}

	query, args, err := psqlbuilder.Insert("booking_status_history").
		Columns("booking_id", "from_status", "to_status", "changed_by", "reason", "changed_at").
		Values(change.BookingID, from, change.To, change.ChangedBy, change.Reason, changedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddStatusHistory - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AddStatusHistory - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// SetPaymentReference сохраняет референс и ссылку на оплату для одобренного бронирования.
// Референс выдается один раз: если он уже записан, возвращается ErrStatusConflict
func (r *Repository) SetPaymentReference(ctx context.Context, id int64, reference, paymentURL, accessCode string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_reference", reference).
		Set("payment_url", paymentURL).
		Set("payment_access_code", accessCode).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusApproved, "payment_reference": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetPaymentReference - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetPaymentReference - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetPaymentReference - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// MarkPaid переводит бронирование в paid условным обновлением
// Возвращает false, если строка не изменилась (уже оплачено или статус сменился)
func (r *Repository) MarkPaid(ctx context.Context, id int64, reference string, paidAt time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusPaid).
		Set("paid_at", paidAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"id":                id,
			"status":            domain.StatusApproved,
			"payment_reference": reference,
		}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: MarkPaid - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: MarkPaid - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: MarkPaid - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// ExpireSessions переводит в expired менторские сессии pending/approved,
// начало которых (дата + время в локальном часовом поясе) уже наступило.
// now должен быть в часовом поясе бронирований
func (r *Repository) ExpireSessions(ctx context.Context, now time.Time) ([]domain.ExpiredBooking, error) {
	return r.expire(ctx, "ExpireSessions",
		squirrel.Eq{
			"type":   domain.BookingTypeMentorship,
			"status": []string{string(domain.StatusPending), string(domain.StatusApproved)},
		},
		squirrel.Expr("(session_date + start_time) <= ?::timestamp", now.Format(timestampLayout)),
	)
}

// ExpireApplications переводит в expired заявки pending на стажировки,
// дедлайн которых раньше cutoff
func (r *Repository) ExpireApplications(ctx context.Context, cutoff time.Time) ([]domain.ExpiredBooking, error) {
	return r.expire(ctx, "ExpireApplications",
		squirrel.Eq{
			"type":   domain.BookingTypeInternship,
			"status": domain.StatusPending,
		},
		squirrel.Expr(
			"internship_id IN (SELECT id FROM internships WHERE deadline IS NOT NULL AND deadline < ?::date)",
			cutoff.Format(domain.DateFormat),
		),
	)
}

// expire блокирует подходящие строки и переводит их в expired одним UPDATE.
// Подзапрос prev видит статус до обновления, он нужен для истории
func (r *Repository) expire(ctx context.Context, op string, filters ...squirrel.Sqlizer) ([]domain.ExpiredBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	locked := psqlbuilder.Select("id", "status").From("bookings")
	for _, f := range filters {
		locked = locked.Where(f)
	}
	locked = locked.Suffix("FOR UPDATE")

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusExpired).
		Set("updated_at", squirrel.Expr("NOW()")).
		FromSelect(locked, "prev").
		Where("bookings.id = prev.id").
		Suffix(qualifiedReturningColumns("bookings") + ", prev.status").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build update query: %w", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	expired := make([]domain.ExpiredBooking, 0)
	for rows.Next() {
		var prev domain.BookingStatus
		booking, err := scanBooking(withExtra{rows: rows, extra: []interface{}{&prev}})
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		expired = append(expired, domain.ExpiredBooking{Booking: booking, PreviousStatus: prev})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return expired, nil
}

func qualifiedReturningColumns(table string) string {
	suffix := "RETURNING "
	for i, c := range bookingColumns {
		if i > 0 {
			suffix += ", "
		}
		if table != "" {
			suffix += table + "."
		}
		suffix += c
	}
	return suffix
}

// withExtra дочитывает колонки после стандартного набора bookingColumns
type withExtra struct {
	rows  *sql.Rows
	extra []interface{}
}

func (w withExtra) Scan(dest ...interface{}) error {
	return w.rows.Scan(append(dest, w.extra...)...)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.Type,
		&booking.UserID,
		&booking.IndustryID,
		&booking.Status,
		&booking.InternshipID,
		&booking.CoverLetter,
		&booking.CVKey,
		&booking.MentorID,
		&booking.SessionDate,
		&booking.StartTime,
		&booking.DurationMinutes,
		&booking.Title,
		&booking.Amount,
		&booking.Currency,
		&booking.PaymentReference,
		&booking.PaymentURL,
		&booking.PaymentAccess,
		&booking.PaidAt,
		&booking.Notes,
		&booking.ReviewedBy,
		&booking.ReviewedAt,
		&booking.RejectionReason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
