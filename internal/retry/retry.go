package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/abhii242004/applymail/internal/model"
)

// RetryCompleter is a decorator that retries rate-limited completions with
// exponential backoff before delegating to the wrapped Completer.
//
// Only HTTP 429 is retried. Any other HTTP status, a network failure, or a
// malformed response fails immediately; the chat payload is resent unchanged
// on every attempt.
type RetryCompleter struct {
	inner       model.Completer
	maxAttempts int
	baseDelay   time.Duration
	logger      *slog.Logger
	sleep       func(ctx context.Context, d time.Duration) error
}

// Ensure RetryCompleter implements model.Completer.
var _ model.Completer = (*RetryCompleter)(nil)

// NewRetryCompleter wraps a Completer with rate-limit retry logic.
// maxAttempts is the total number of attempts including the first (default: 4).
// baseDelay is the sleep before the first retry (default: 1s), doubled on
// each subsequent retry.
func NewRetryCompleter(inner model.Completer, maxAttempts int, baseDelay time.Duration, logger *slog.Logger) *RetryCompleter {
	return &RetryCompleter{
		inner:       inner,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		logger:      logger,
		sleep:       ctxSleep,
	}
}

// Complete attempts the completion, sleeping and retrying on HTTP 429 until
// the attempt budget is exhausted.
func (r *RetryCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	delay := r.baseDelay
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		out, err := r.inner.Complete(ctx, system, user)
		if err == nil {
			return out, nil
		}
		if !isRateLimited(err) {
			return "", err
		}
		lastErr = err

		if attempt == r.maxAttempts {
			break
		}

		wait := delay
		// A server-provided Retry-After takes precedence over the
		// computed backoff.
		if ra := retryAfter(err); ra > 0 {
			wait = ra
		}

		r.logger.Warn("rate limited, backing off",
			"attempt", attempt,
			"max_attempts", r.maxAttempts,
			"delay", wait,
		)

		if err := r.sleep(ctx, wait); err != nil {
			return "", fmt.Errorf("retry cancelled: %w", err)
		}
		delay *= 2
	}

	return "", fmt.Errorf("rate limited after %d attempts: %w", r.maxAttempts, lastErr)
}

// ctxSleep blocks for d or until the context is cancelled.
func ctxSleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// isRateLimited returns true only for HTTP 429 responses.
func isRateLimited(err error) bool {
	var httpErr *model.HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusTooManyRequests
}

// retryAfter extracts a server-provided Retry-After duration, zero if absent.
func retryAfter(err error) time.Duration {
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.RetryAfter
	}
	return 0
}
