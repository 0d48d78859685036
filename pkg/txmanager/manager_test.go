package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/InternHub-Service/pkg/dbmetrics"
)

type fakeTx struct {
	dbmetrics.DBExecutor
	committed  bool
	rolledBack bool
	commitErr  error
}

func (t *fakeTx) Commit() error {
	t.committed = true
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type fakeBeginner struct {
	txs  []*fakeTx
	opts []*sql.TxOptions
}

func (b *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	tx := &fakeTx{}
	b.txs = append(b.txs, tx)
	b.opts = append(b.opts, opts)
	return tx, nil
}

func TestDo_CommitsOnSuccess(t *testing.T) {
	b := &fakeBeginner{}
	m := NewTransactionManager(b)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	require.Len(t, b.txs, 1)
	assert.True(t, b.txs[0].committed)
	assert.False(t, b.txs[0].rolledBack)
}

func TestDo_RollsBackOnError(t *testing.T) {
	b := &fakeBeginner{}
	m := NewTransactionManager(b)
	boom := errors.New("boom")

	err := m.Do(context.Background(), func(ctx context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.True(t, b.txs[0].rolledBack)
	assert.False(t, b.txs[0].committed)
}

func TestDoSerializable_RetriesSerializationFailures(t *testing.T) {
	b := &fakeBeginner{}
	m := NewTransactionManager(b)
	calls := 0

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return &pq.Error{Code: serializationFailure}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, sql.LevelSerializable, b.opts[0].Isolation)
}

func TestDoSerializable_RetriesWrappedFailures(t *testing.T) {
	b := &fakeBeginner{}
	m := NewTransactionManager(b)
	errExecQuery := errors.New("repository: exec query")
	errInternal := errors.New("usecase: internal error")
	calls := 0

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		calls++
		if calls == 1 {
			repoErr := fmt.Errorf("%w: GetMentorBookingsForDate: %w", errExecQuery, &pq.Error{Code: deadlockDetected})
			return fmt.Errorf("%w: failed to get bookings: %w", errInternal, repoErr)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, b.txs, 2)
	assert.True(t, b.txs[0].rolledBack)
	assert.True(t, b.txs[1].committed)
}

func TestDoSerializable_GivesUpAfterMaxRetries(t *testing.T) {
	b := &fakeBeginner{}
	m := NewTransactionManager(b)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return fmt.Errorf("wrapped: %w", &pq.Error{Code: serializationFailure})
	})

	assert.True(t, isRetryable(err))
	assert.Len(t, b.txs, defaultMaxRetries)
}

func TestIsRetryable_IgnoresOtherErrors(t *testing.T) {
	assert.False(t, isRetryable(nil))
	assert.False(t, isRetryable(errors.New("boom")))
	assert.False(t, isRetryable(fmt.Errorf("x: %w", &pq.Error{Code: "23505"})))
	// %v теряет цепочку, повтора не будет
	assert.False(t, isRetryable(fmt.Errorf("x: %v", &pq.Error{Code: serializationFailure})))
}

func TestNestedCallReusesTransaction(t *testing.T) {
	b := &fakeBeginner{}
	m := NewTransactionManager(b)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.DoSerializable(ctx, func(ctx context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Len(t, b.txs, 1)
}
