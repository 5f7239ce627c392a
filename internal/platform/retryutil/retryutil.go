// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package retryutil bounds calls to a remote collaborator with a
// per-attempt deadline and at most one retry on transient failure.
package retryutil

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

// Policy describes how a single operation is attempted.
type Policy struct {
	// Timeout bounds each individual attempt. Zero disables the per-attempt deadline.
	Timeout time.Duration

	// Retries is the maximum number of additional attempts.
	Retries uint64

	// Backoff is the constant pause between attempts.
	Backoff time.Duration

	// Transient decides whether a failed attempt may be retried.
	Transient func(error) bool
}

// Do runs op under policy. Errors that policy.Transient rejects are returned
// immediately; transient errors are retried up to policy.Retries times and
// the last error is returned when the budget is exhausted.
func Do(ctx context.Context, policy Policy, op func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(policy.Retries, retry.NewConstant(nonZero(policy.Backoff)))

	var lastErr error
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attemptCtx := ctx
		if policy.Timeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, policy.Timeout)
			defer cancel()
		}

		lastErr = op(attemptCtx)
		if lastErr == nil {
			return nil
		}

		if policy.Transient != nil && policy.Transient(lastErr) {
			return retry.RetryableError(lastErr)
		}
		return lastErr
	})

	if err != nil && lastErr != nil {
		// Surface the operation's own error rather than the retry wrapper.
		return lastErr
	}
	return err
}

// nonZero keeps NewConstant from panicking on a zero duration.
func nonZero(d time.Duration) time.Duration {
	if d <= 0 {
		return time.Millisecond
	}
	return d
}
