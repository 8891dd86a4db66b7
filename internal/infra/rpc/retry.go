package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryConfig defines retry behavior.
type RetryConfig struct {
	MaxAttempts     int
	InitialDelay    time.Duration
	MaxDelay        time.Duration
	BackoffMultiple float64
}

// DefaultRetryConfig provides sensible defaults for interactive calls.
var DefaultRetryConfig = RetryConfig{
	MaxAttempts:     3,
	InitialDelay:    200 * time.Millisecond,
	MaxDelay:        2 * time.Second,
	BackoffMultiple: 2.0,
}

// ErrorAction determines how to handle an error.
type ErrorAction int

const (
	ActionRetry ErrorAction = iota
	ActionFatal
)

// JSON-RPC codes that signal a transient provider condition.
const (
	codeInternal      = -32603
	codeLimitExceeded = -32005
)

// ClassifyError determines the action for a given error.
func ClassifyError(err error) ErrorAction {
	if err == nil {
		return ActionRetry
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ActionFatal
	}
	if errors.Is(err, ErrForbidden) || errors.Is(err, ErrClosed) {
		return ActionFatal
	}

	// The wallet answered; only its overload codes are worth another try.
	var rpcErr *Error
	if errors.As(err, &rpcErr) {
		switch rpcErr.Code {
		case codeInternal, codeLimitExceeded:
			return ActionRetry
		}
		return ActionFatal
	}

	// Network, 5xx, 429
	return ActionRetry
}

// CallWithRetry executes a call with exponential backoff. Only use it for
// idempotent methods.
func CallWithRetry(
	ctx context.Context,
	t Transport,
	method string,
	params []any,
	config RetryConfig,
) (json.RawMessage, error) {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 1
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = config.InitialDelay
	expBackoff.MaxInterval = config.MaxDelay
	expBackoff.Multiplier = config.BackoffMultiple
	expBackoff.MaxElapsedTime = 0

	policy := backoff.WithContext(
		backoff.WithMaxRetries(expBackoff, uint64(config.MaxAttempts-1)),
		ctx,
	)

	var (
		result   json.RawMessage
		attempts int
	)
	err := backoff.Retry(func() error {
		attempts++
		res, err := t.Call(ctx, method, params)
		if err != nil {
			if ClassifyError(err) == ActionFatal {
				return backoff.Permanent(err)
			}
			return err
		}
		result = res
		return nil
	}, policy)
	if err != nil {
		if attempts <= 1 {
			return nil, err
		}
		return nil, fmt.Errorf("failed after %d attempts: %w", attempts, err)
	}

	return result, nil
}
