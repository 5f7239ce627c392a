// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package postgres

import (
	"context"

	"github.com/taibuivan/inkpost/internal/platform/constants"
	"github.com/taibuivan/inkpost/internal/platform/dberr"
	"github.com/taibuivan/inkpost/internal/platform/retryutil"
)

// storePolicy gives every store operation its own deadline and one retry
// when the failure happened before the statement reached the server.
var storePolicy = retryutil.Policy{
	Timeout:   constants.StoreTimeout,
	Retries:   constants.StoreRetries,
	Backoff:   constants.StoreRetryBackoff,
	Transient: dberr.IsTransient,
}

// WithRetry runs op under the store policy. A transactional op must begin
// and finish its transaction inside op so a retry replays it whole.
func WithRetry(ctx context.Context, op func(ctx context.Context) error) error {
	return retryutil.Do(ctx, storePolicy, op)
}
