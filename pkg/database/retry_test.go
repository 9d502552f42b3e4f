package database

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBusyError(t *testing.T) {
	assert.False(t, isBusyError(nil))
	assert.False(t, isBusyError(errors.New("syntax error")))
	assert.True(t, isBusyError(errors.New("database is locked")))
	assert.True(t, isBusyError(errors.New("database table is locked")))
	assert.True(t, isBusyError(errors.New("SQLITE_BUSY: unable to acquire lock")))
	assert.True(t, isBusyError(errors.New("sqlite3: busy (5)")))
}

func TestRetryWithBackoff_SucceedsAfterBusy(t *testing.T) {
	attempts := 0
	err := retryWithBackoff(context.Background(), 3, func() error {
		attempts++
		if attempts < 3 {
			return errors.New("database is locked")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryWithBackoff_NonBusyErrorReturnsImmediately(t *testing.T) {
	attempts := 0
	err := retryWithBackoff(context.Background(), 3, func() error {
		attempts++
		return errors.New("constraint failed")
	})
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestRetryWithBackoff_GivesUpAfterMaxRetries(t *testing.T) {
	attempts := 0
	err := retryWithBackoff(context.Background(), 2, func() error {
		attempts++
		return errors.New("SQLITE_BUSY")
	})
	require.Error(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryWithBackoff_RespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := retryWithBackoff(ctx, 5, func() error {
		return errors.New("database is locked")
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
