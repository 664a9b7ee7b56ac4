package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRetry_SucceedsAfterTransientFailure(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockResponse{Content: json.RawMessage(`"ok"`)},
	)
	p := WithRetry(mock, fastRetryConfig())

	resp, err := p.Generate(context.Background(), Request{MaxTokens: 10})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if string(resp.Content) != `"ok"` {
		t.Errorf("content = %s", resp.Content)
	}
	if mock.CallCount() != 2 {
		t.Errorf("calls = %d, want 2", mock.CallCount())
	}
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockResponse{Content: json.RawMessage(`"never reached"`)},
	)
	p := WithRetry(mock, fastRetryConfig())

	_, err := p.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if mock.CallCount() != 3 {
		t.Errorf("calls = %d, want 3", mock.CallCount())
	}
}

func TestRetry_MaxTokensNotRetried(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrMaxTokensExceeded{}},
		MockResponse{Content: json.RawMessage(`"nope"`)},
	)
	p := WithRetry(mock, fastRetryConfig())

	_, err := p.Generate(context.Background(), Request{})
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrInvalidResponse{Err: errors.New("bad json")}},
		MockResponse{Err: &ErrInvalidResponse{Err: errors.New("bad json again")}},
		MockResponse{Content: json.RawMessage(`"unreached"`)},
	)
	p := WithRetry(mock, fastRetryConfig())

	_, err := p.Generate(context.Background(), Request{})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
	if mock.CallCount() != 2 {
		t.Errorf("calls = %d, want 2 (one retry)", mock.CallCount())
	}
}

func TestRetry_ContextCanceledNotRetried(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := NewMockProvider(
		MockResponse{Err: ctx.Err()},
		MockResponse{Content: json.RawMessage(`"unreached"`)},
	)
	p := WithRetry(mock, fastRetryConfig())

	_, err := p.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Errorf("calls = %d, want 1", mock.CallCount())
	}
}
