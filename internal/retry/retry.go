// Package retry runs calls to external services under a fixed retry policy.
//
// Every failed attempt is treated as transient unless the error was wrapped
// with Permanent. Delays are constant between attempts.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

const (
	DefaultAttempts = 3
	DefaultDelay    = 2 * time.Second
)

// ErrServiceUnavailable is matched by errors returned once all attempts failed
var ErrServiceUnavailable = errors.New("service unavailable")

// Policy configures the number of attempts and the pause between them
type Policy struct {
	Attempts int
	Delay    time.Duration

	// Sleep overrides how the pause is performed (tests use a no-op)
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultPolicy returns three attempts two seconds apart
func DefaultPolicy() Policy {
	return Policy{
		Attempts: DefaultAttempts,
		Delay:    DefaultDelay,
	}
}

// UnavailableError reports that a service kept failing for every attempt
type UnavailableError struct {
	Service  string
	Attempts int
	Err      error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s unavailable after %d attempts: %v", e.Service, e.Attempts, e.Err)
}

// Unwrap exposes the last underlying failure
func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrServiceUnavailable
func (e *UnavailableError) Is(target error) bool {
	return target == ErrServiceUnavailable
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was marked with Permanent
func IsPermanent(err error) bool {
	var pe *permanentError
	return errors.As(err, &pe)
}

// IsTransient reports whether err is a service failure worth another attempt:
// any failure not marked with Permanent. Exhausted retries are not transient.
func IsTransient(err error) bool {
	return err != nil && !IsPermanent(err) && !errors.Is(err, ErrServiceUnavailable)
}

// Do calls fn until it succeeds, returns a permanent error, or the attempts run out
func Do[T any](ctx context.Context, p Policy, service string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, p.Delay); err != nil {
				return zero, err
			}
		}

		result, err := fn(ctx)
		if err == nil {
			if attempt > 1 {
				slog.Debug("request succeeded after retry", "service", service, "attempt", attempt)
			}
			return result, nil
		}

		if !IsTransient(err) {
			var pe *permanentError
			if errors.As(err, &pe) {
				return zero, pe.err
			}
			return zero, err
		}

		lastErr = err
		if attempt < attempts {
			slog.Warn("request failed, retrying",
				"service", service,
				"attempt", attempt,
				"max_attempts", attempts,
				"delay", p.Delay,
				"error", err)
		}
	}

	return zero, &UnavailableError{Service: service, Attempts: attempts, Err: lastErr}
}

// Run is Do for calls that only return an error
func Run(ctx context.Context, p Policy, service string, fn func(ctx context.Context) error) error {
	_, err := Do(ctx, p, service, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// PermanentStatus reports whether an HTTP status code should not be retried.
// Client errors are permanent except 429 Too Many Requests.
func PermanentStatus(code int) bool {
	return code >= 400 && code < 500 && code != 429
}
