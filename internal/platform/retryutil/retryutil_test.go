// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package retryutil_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkpost/internal/platform/retryutil"
)

var errFlaky = errors.New("connection reset")

func transient(err error) bool { return errors.Is(err, errFlaky) }

/*
TestDo_RetriesTransientOnce verifies a transient failure is retried exactly once.
*/
func TestDo_RetriesTransientOnce(t *testing.T) {
	calls := 0
	err := retryutil.Do(context.Background(), retryutil.Policy{Retries: 1, Transient: transient}, func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return errFlaky
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

/*
TestDo_GivesUpAfterBudget verifies the original error is returned once retries run out.
*/
func TestDo_GivesUpAfterBudget(t *testing.T) {
	calls := 0
	err := retryutil.Do(context.Background(), retryutil.Policy{Retries: 1, Transient: transient}, func(ctx context.Context) error {
		calls++
		return errFlaky
	})

	require.ErrorIs(t, err, errFlaky)
	assert.Equal(t, 2, calls)
}

/*
TestDo_PermanentErrorNotRetried verifies non-transient errors stop immediately.
*/
func TestDo_PermanentErrorNotRetried(t *testing.T) {
	permanent := errors.New("syntax error")
	calls := 0
	err := retryutil.Do(context.Background(), retryutil.Policy{Retries: 1, Transient: transient}, func(ctx context.Context) error {
		calls++
		return permanent
	})

	require.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

/*
TestDo_AttemptDeadline verifies each attempt runs under the configured timeout.
*/
func TestDo_AttemptDeadline(t *testing.T) {
	err := retryutil.Do(context.Background(), retryutil.Policy{Timeout: 20 * time.Millisecond}, func(ctx context.Context) error {
		deadline, ok := ctx.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(20*time.Millisecond), deadline, 20*time.Millisecond)
		return nil
	})

	assert.NoError(t, err)
}
