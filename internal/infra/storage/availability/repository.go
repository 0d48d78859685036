package availability

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/InternHub-Service/internal/domain"
	"github.com/m04kA/InternHub-Service/pkg/dbmetrics"
	"github.com/m04kA/InternHub-Service/pkg/psqlbuilder"
)

// Repository репозиторий еженедельных окон доступности менторов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByMentor получает все окна ментора, отсортированные по дню и времени
func (r *Repository) GetByMentor(ctx context.Context, mentorID int64) ([]*domain.AvailabilityWindow, error) {
	return r.list(ctx, "GetByMentor", squirrel.Eq{"mentor_id": mentorID})
}

// GetByMentorAndDay получает окна ментора на день недели
func (r *Repository) GetByMentorAndDay(ctx context.Context, mentorID int64, day time.Weekday) ([]*domain.AvailabilityWindow, error) {
	return r.list(ctx, "GetByMentorAndDay", squirrel.Eq{"mentor_id": mentorID, "day_of_week": int(day)})
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Eq) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "mentor_id", "day_of_week", "start_time", "end_time").
		From("mentor_availability").
		Where(where).
		OrderBy("day_of_week ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	return scanWindows(rows, op)
}

// ReplaceForMentor заменяет все окна ментора
// Должен вызываться внутри транзакции, иначе читатели могут увидеть пустое расписание
func (r *Repository) ReplaceForMentor(ctx context.Context, mentorID int64, windows []*domain.AvailabilityWindow) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("mentor_availability").
		Where(squirrel.Eq{"mentor_id": mentorID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceForMentor - build delete query: %w", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: ReplaceForMentor - execute delete: %w", ErrExecQuery, err)
	}

	if len(windows) == 0 {
		return []*domain.AvailabilityWindow{}, nil
	}

	insertBuilder := psqlbuilder.Insert("mentor_availability").
		Columns("mentor_id", "day_of_week", "start_time", "end_time").
		Suffix("RETURNING id, mentor_id, day_of_week, start_time, end_time")
	for _, w := range windows {
		insertBuilder = insertBuilder.Values(mentorID, int(w.DayOfWeek), w.StartTime, w.EndTime)
	}

	query, args, err = insertBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceForMentor - build insert query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ReplaceForMentor - execute insert: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanWindows(rows, "ReplaceForMentor")
}

func scanWindows(rows *sql.Rows, op string) ([]*domain.AvailabilityWindow, error) {
	windows := make([]*domain.AvailabilityWindow, 0)
	for rows.Next() {
		var w domain.AvailabilityWindow
		var day int
		if err := rows.Scan(&w.ID, &w.MentorID, &day, &w.StartTime, &w.EndTime); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		w.DayOfWeek = time.Weekday(day)
		windows = append(windows, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}
	return windows, nil
}
