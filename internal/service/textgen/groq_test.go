package textgen

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newGroqTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *GroqClient) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewGroqClient(GroqConfig{
		APIKey:  "test-key",
		Model:   "test-model",
		BaseURL: srv.URL,
	})
	return srv, client
}

func TestGroqClientGenerate(t *testing.T) {
	_, client := newGroqTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ما هي القيمة التي يقدمها مشروعك؟"}}]}`))
	})

	text, err := client.Generate(context.Background(), "اكتب سؤالاً")
	if err != nil {
		t.Fatalf("Generate err: %v", err)
	}
	if text != "ما هي القيمة التي يقدمها مشروعك؟" {
		t.Fatalf("unexpected completion: %q", text)
	}
}

func TestGroqClientRateLimited(t *testing.T) {
	_, client := newGroqTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Generate(context.Background(), "prompt")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestGroqClientUpstreamStatus(t *testing.T) {
	_, client := newGroqTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Generate(context.Background(), "prompt")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestGroqClientMalformedBody(t *testing.T) {
	_, client := newGroqTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	})

	_, err := client.Generate(context.Background(), "prompt")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestGroqClientEmptyChoices(t *testing.T) {
	_, client := newGroqTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})

	_, err := client.Generate(context.Background(), "prompt")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}
