package backend

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"macadam/internal/logging"
	"macadam/internal/services"
)

// RetryBackend wraps another backend and retries rate-limited uploads.
// A budget of N retries permits N+1 total attempts. Only rate limiting is
// retried; every other failure surfaces immediately.
type RetryBackend struct {
	inner      Backend
	maxRetries int
	delay      time.Duration
	sleep      func(time.Duration)
	logger     *slog.Logger
}

// NewRetry decorates inner with a rate-limit retry budget. The delay is
// applied between attempts, never before the first.
func NewRetry(inner Backend, maxRetries int, delay time.Duration, logger *slog.Logger) *RetryBackend {
	return &RetryBackend{
		inner:      inner,
		maxRetries: maxRetries,
		delay:      delay,
		sleep:      time.Sleep,
		logger:     logging.NewComponentLogger(logger, "backend"),
	}
}

func (b *RetryBackend) Upload(ctx context.Context, info UploadInfo) (Response, error) {
	for attempt := 0; ; attempt++ {
		resp, err := b.inner.Upload(ctx, info)
		if err == nil || !errors.Is(err, services.ErrRateLimited) {
			return resp, err
		}
		if attempt >= b.maxRetries {
			return Response{}, err
		}
		b.logger.Warn("upload was rate limited, retrying",
			logging.String(logging.FieldAssetName, info.Name),
			logging.Int(logging.FieldAttempt, attempt+1),
			logging.Int("budget", b.maxRetries),
			logging.Duration("delay", b.delay))
		b.sleep(b.delay)
	}
}
