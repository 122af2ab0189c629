// Package retry wraps model-facing operations with bounded-attempt
// exponential backoff. Retry eligibility is decided purely from error kind
// (see utils.IsRetryable), never from message text.
package retry

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"wanderwise/pkg/utils"
)

// Config holds the knobs for one retried operation.
type Config struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Factor       float64
	// RetryOn decides whether a failed attempt may be repeated.
	RetryOn func(error) bool
	// OnRetry observes each scheduled retry before the backoff sleep.
	OnRetry func(err error, attempt int, delay time.Duration)
}

const (
	// DefaultMaxAttempts applies to day-plan generation.
	DefaultMaxAttempts = 3
	// AuxiliaryMaxAttempts applies to tips, insights, and suggestions.
	AuxiliaryMaxAttempts = 2
)

// DefaultConfig mirrors the production generation settings: 3 attempts,
// 1s initial delay doubling up to 10s.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  DefaultMaxAttempts,
		InitialDelay: 1 * time.Second,
		MaxDelay:     10 * time.Second,
		Factor:       2.0,
		RetryOn:      utils.IsRetryable,
	}
}

// AuxiliaryConfig is DefaultConfig with the reduced attempt budget.
func AuxiliaryConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxAttempts = AuxiliaryMaxAttempts
	return cfg
}

// Operation is one attempt of the wrapped work.
type Operation func(ctx context.Context) error

// Do runs op up to cfg.MaxAttempts times. Non-retryable errors are returned
// immediately without consuming further attempts; exhausting the budget
// returns the last error. The backoff sleep honors ctx cancellation.
func Do(ctx context.Context, logger *zap.Logger, cfg Config, op Operation) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Factor <= 0 {
		cfg.Factor = 2.0
	}
	if cfg.RetryOn == nil {
		cfg.RetryOn = utils.IsRetryable
	}

	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := op(ctx)
		if err == nil {
			if attempt > 1 {
				logger.Info("operation succeeded after retry",
					zap.Int("attempt", attempt),
					zap.Int("max_attempts", cfg.MaxAttempts))
			}
			return nil
		}
		lastErr = err

		if !cfg.RetryOn(err) {
			logger.Debug("error is not retryable, stopping attempts",
				zap.Error(err),
				zap.Int("attempt", attempt))
			return err
		}

		if attempt == cfg.MaxAttempts {
			break
		}

		delay = min(time.Duration(float64(delay)*cfg.Factor), cfg.MaxDelay)

		if cfg.OnRetry != nil {
			cfg.OnRetry(err, attempt, delay)
		}
		logger.Debug("retrying after delay",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	logger.Warn("all retry attempts exhausted",
		zap.Error(lastErr),
		zap.Int("attempts", cfg.MaxAttempts))

	return fmt.Errorf("operation failed after %d attempts: %w", cfg.MaxAttempts, lastErr)
}
