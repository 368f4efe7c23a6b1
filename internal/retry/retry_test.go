package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// recordingSleep captures requested delays without waiting
type recordingSleep struct {
	delays []time.Duration
}

func (r *recordingSleep) sleep(_ context.Context, d time.Duration) error {
	r.delays = append(r.delays, d)
	return nil
}

func testPolicy(rec *recordingSleep) Policy {
	p := DefaultPolicy()
	p.Sleep = rec.sleep
	return p
}

func TestDo_SucceedsOnThirdAttempt(t *testing.T) {
	rec := &recordingSleep{}
	calls := 0

	got, err := Do(context.Background(), testPolicy(rec), "test", func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("connection reset")
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if got != "ok" {
		t.Errorf("Do() = %q, want ok", got)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if len(rec.delays) != 2 {
		t.Fatalf("sleeps = %d, want 2", len(rec.delays))
	}
	for _, d := range rec.delays {
		if d != 2*time.Second {
			t.Errorf("delay = %v, want fixed 2s", d)
		}
	}
}

func TestDo_ExhaustedAttempts(t *testing.T) {
	rec := &recordingSleep{}
	cause := errors.New("HTTP 503")
	calls := 0

	_, err := Do(context.Background(), testPolicy(rec), "embedding", func(ctx context.Context) (int, error) {
		calls++
		return 0, cause
	})
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("error = %v, want ErrServiceUnavailable", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("error should wrap the last failure")
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}

	var ue *UnavailableError
	if !errors.As(err, &ue) {
		t.Fatalf("error is not *UnavailableError")
	}
	if ue.Service != "embedding" || ue.Attempts != 3 {
		t.Errorf("UnavailableError = %+v", ue)
	}
}

func TestDo_PermanentErrorNotRetried(t *testing.T) {
	rec := &recordingSleep{}
	cause := errors.New("HTTP 401")
	calls := 0

	err := Run(context.Background(), testPolicy(rec), "tracker", func(ctx context.Context) error {
		calls++
		return Permanent(cause)
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if err != cause {
		t.Errorf("error = %v, want unwrapped cause", err)
	}
	if errors.Is(err, ErrServiceUnavailable) {
		t.Errorf("permanent error should not be reported as unavailable")
	}
	if len(rec.delays) != 0 {
		t.Errorf("sleeps = %d, want 0", len(rec.delays))
	}
}

func TestDo_ContextCancelledDuringSleep(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := Policy{
		Attempts: 3,
		Delay:    time.Second,
		Sleep: func(ctx context.Context, d time.Duration) error {
			cancel()
			return ctx.Err()
		},
	}

	err := Run(ctx, p, "test", func(ctx context.Context) error {
		return errors.New("boom")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestDo_ZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	_ = Run(context.Background(), Policy{}, "test", func(ctx context.Context) error {
		calls++
		return errors.New("boom")
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestPermanent_Nil(t *testing.T) {
	if Permanent(nil) != nil {
		t.Error("Permanent(nil) should be nil")
	}
	if IsPermanent(errors.New("x")) {
		t.Error("plain error should not be permanent")
	}
}

func TestPermanentStatus(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{400, true},
		{401, true},
		{404, true},
		{429, false},
		{500, false},
		{503, false},
		{0, false},
	}

	for _, tt := range tests {
		if got := PermanentStatus(tt.code); got != tt.want {
			t.Errorf("PermanentStatus(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"network", errors.New("connection reset"), true},
		{"permanent", Permanent(errors.New("HTTP 401")), false},
		{"wrapped permanent", fmt.Errorf("list issues: %w", Permanent(errors.New("HTTP 403"))), false},
		{"exhausted", &UnavailableError{Service: "llm", Attempts: 3, Err: errors.New("HTTP 503")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDo_NestedUnavailableNotRetried(t *testing.T) {
	rec := &recordingSleep{}
	calls := 0

	err := Run(context.Background(), testPolicy(rec), "outer", func(ctx context.Context) error {
		calls++
		return &UnavailableError{Service: "inner", Attempts: 3, Err: errors.New("HTTP 503")}
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	var ue *UnavailableError
	if !errors.As(err, &ue) || ue.Service != "inner" {
		t.Errorf("error = %v, want the inner UnavailableError", err)
	}
}
