package httputil

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetry_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Retry() error = %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return Retryable(errors.New("transient"))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Retry() error = %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetry_NonRetryableStopsImmediately(t *testing.T) {
	calls := 0
	fatal := errors.New("fatal")
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return fatal
	})
	if !errors.Is(err, fatal) {
		t.Fatalf("Retry() error = %v, want %v", err, fatal)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	calls := 0
	transient := errors.New("still down")
	err := Retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		return Retryable(transient)
	})
	if !errors.Is(err, transient) {
		t.Fatalf("Retry() error = %v, want last transient error", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetry_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	err := Retry(ctx, 3, time.Minute, func() error {
		calls++
		return Retryable(errors.New("transient"))
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Retry() error = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetry_ZeroAttemptsRunsOnce(t *testing.T) {
	calls := 0
	_ = Retry(context.Background(), 0, time.Millisecond, func() error {
		calls++
		return Retryable(errors.New("transient"))
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(Retryable(errors.New("x"))) {
		t.Error("IsRetryable(Retryable(err)) = false")
	}
	if IsRetryable(errors.New("x")) {
		t.Error("IsRetryable(plain) = true")
	}
	if IsRetryable(nil) {
		t.Error("IsRetryable(nil) = true")
	}
}

func TestRetryable_Nil(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) != nil")
	}
}

func TestRetryableError_Unwrap(t *testing.T) {
	inner := errors.New("inner")
	wrapped := Retryable(inner)
	if !errors.Is(wrapped, inner) {
		t.Error("errors.Is(wrapped, inner) = false")
	}
}
