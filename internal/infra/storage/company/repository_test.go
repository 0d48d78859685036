package company

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelete(t *testing.T) {
	tests := []struct {
		name   string
		result error
		rows   int64
		want   error
	}{
		{name: "deleted", rows: 1},
		{name: "missing", rows: 0, want: ErrCompanyNotFound},
		{name: "referenced by bookings", result: &pq.Error{Code: pqForeignKeyViolation, Constraint: "bookings_internship_id_fkey"}, want: ErrInUse},
		{name: "bookings check rejects nulled reference", result: &pq.Error{Code: pqCheckViolation}, want: ErrInUse},
		{name: "connection lost", result: errors.New("bad connection"), want: ErrExecQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			exec := mock.ExpectExec(`DELETE FROM companies WHERE id = \$1`).WithArgs(int64(7))
			if tt.result != nil {
				exec.WillReturnError(tt.result)
			} else {
				exec.WillReturnResult(sqlmock.NewResult(0, tt.rows))
			}

			err = NewRepository(db).Delete(context.Background(), 7)

			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
