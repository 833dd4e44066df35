package textgen

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubClient struct {
	calls int
	fn    func(call int) (string, error)
}

func (s *stubClient) Generate(_ context.Context, _ string) (string, error) {
	s.calls++
	return s.fn(s.calls)
}

func newTestRetryer(client Client, maxAttempts int, waits *[]time.Duration) *Retryer {
	r := NewRetryer(client, maxAttempts)
	r.sleep = func(_ context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		return nil
	}
	return r
}

func TestRetryerRateLimitedExhaustsBudget(t *testing.T) {
	stub := &stubClient{fn: func(int) (string, error) {
		return "", ErrRateLimited
	}}
	var waits []time.Duration
	r := newTestRetryer(stub, 3, &waits)

	_, err := r.Generate(context.Background(), "prompt")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected rate-limited error, got %v", err)
	}
	if stub.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", stub.calls)
	}
	want := []time.Duration{2 * time.Second, 4 * time.Second}
	if len(waits) != len(want) {
		t.Fatalf("expected %d waits, got %v", len(want), waits)
	}
	for i, d := range want {
		if waits[i] != d {
			t.Fatalf("wait %d: got %v want %v", i, waits[i], d)
		}
	}
}

func TestRetryerUpstreamErrorStopsImmediately(t *testing.T) {
	stub := &stubClient{fn: func(int) (string, error) {
		return "", ErrUpstream
	}}
	var waits []time.Duration
	r := newTestRetryer(stub, 3, &waits)

	_, err := r.Generate(context.Background(), "prompt")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if stub.calls != 1 {
		t.Fatalf("expected 1 attempt, got %d", stub.calls)
	}
	if len(waits) != 0 {
		t.Fatalf("expected no waits, got %v", waits)
	}
}

func TestRetryerRecoversAfterThrottle(t *testing.T) {
	stub := &stubClient{fn: func(call int) (string, error) {
		if call == 1 {
			return "", ErrRateLimited
		}
		return "النص المطلوب", nil
	}}
	var waits []time.Duration
	r := newTestRetryer(stub, 3, &waits)

	text, err := r.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate err: %v", err)
	}
	if text != "النص المطلوب" {
		t.Fatalf("unexpected text: %q", text)
	}
	if stub.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", stub.calls)
	}
}

func TestRetryerZeroBudgetNeverCallsClient(t *testing.T) {
	stub := &stubClient{fn: func(int) (string, error) {
		return "unexpected", nil
	}}
	var waits []time.Duration
	r := newTestRetryer(stub, 0, &waits)

	if _, err := r.Generate(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error for zero retry budget")
	}
	if stub.calls != 0 {
		t.Fatalf("client should not be called, got %d calls", stub.calls)
	}
}

func TestRetryerCanceledBackoffPropagates(t *testing.T) {
	stub := &stubClient{fn: func(int) (string, error) {
		return "", ErrRateLimited
	}}
	r := NewRetryer(stub, 3)
	r.sleep = func(ctx context.Context, _ time.Duration) error {
		return context.Canceled
	}

	_, err := r.Generate(context.Background(), "prompt")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if stub.calls != 1 {
		t.Fatalf("expected 1 attempt, got %d", stub.calls)
	}
}
