package engine

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"
)

func fastRetry(maxRetries int) RetryConfig {
	return RetryConfig{
		MaxRetries:  maxRetries,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRetryDoSucceedsFirstTry(t *testing.T) {
	calls := 0
	got, err := RetryDo(context.Background(), fastRetry(3), func() (string, error) {
		calls++
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" || calls != 1 {
		t.Errorf("got %q after %d calls, want %q after 1", got, calls, "ok")
	}
}

func TestRetryDoRetriesTransientErrors(t *testing.T) {
	calls := 0
	got, err := RetryDo(context.Background(), fastRetry(3), func() (string, error) {
		calls++
		if calls < 3 {
			return "", &net.OpError{Op: "dial", Err: errors.New("connection refused")}
		}
		return "recovered", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "recovered" || calls != 3 {
		t.Errorf("got %q after %d calls, want %q after 3", got, calls, "recovered")
	}
}

func TestRetryDoStopsOnPermanentError(t *testing.T) {
	permanent := errors.New("bad request")
	calls := 0
	_, err := RetryDo(context.Background(), fastRetry(3), func() (string, error) {
		calls++
		return "", permanent
	})
	if !errors.Is(err, permanent) {
		t.Fatalf("got %v, want %v", err, permanent)
	}
	if calls != 1 {
		t.Errorf("permanent error retried %d times", calls)
	}
}

func TestRetryDoExhaustsRetries(t *testing.T) {
	calls := 0
	_, err := RetryDo(context.Background(), fastRetry(2), func() (string, error) {
		calls++
		return "", &net.DNSError{Err: "no such host", Name: "example.invalid"}
	})
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if calls != 3 { // initial try + 2 retries
		t.Errorf("got %d calls, want 3", calls)
	}
}

func TestFixedRetryConfigRetriesEveryError(t *testing.T) {
	calls := 0
	_, err := RetryDo(context.Background(), FixedRetryConfig(3, time.Millisecond), func() (string, error) {
		calls++
		return "", errors.New("format parse failure") // not a transient network error
	})
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if calls != 3 {
		t.Errorf("got %d calls, want exactly 3", calls)
	}
}

func TestFixedRetryConfigAttemptBound(t *testing.T) {
	for _, attempts := range []int{1, 2, 5} {
		calls := 0
		_, _ = RetryDo(context.Background(), FixedRetryConfig(attempts, time.Millisecond), func() (string, error) {
			calls++
			return "", errors.New("always fails")
		})
		if calls != attempts {
			t.Errorf("bound %d: got %d calls", attempts, calls)
		}
	}
}

func TestRetryDoRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := RetryDo(ctx, fastRetry(3), func() (string, error) {
		calls++
		return "", nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
	if calls != 0 {
		t.Errorf("cancelled context still ran fn %d times", calls)
	}
}

func TestIsRetryableStatus(t *testing.T) {
	for _, code := range []int{429, 500, 502, 503, 504} {
		if !isRetryableStatus(code) {
			t.Errorf("status %d should be retryable", code)
		}
	}
	for _, code := range []int{200, 301, 400, 401, 403, 404} {
		if isRetryableStatus(code) {
			t.Errorf("status %d should not be retryable", code)
		}
	}
}
