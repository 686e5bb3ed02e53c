package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/yungbote/notequiz-backend/internal/platform/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(logger.Nop(), Config{
		APIKey:      "sk-test",
		BaseURL:     srv.URL,
		Model:       "gpt-4o-mini",
		Temperature: 0.7,
		MaxTokens:   3000,
	}, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestGenerateTextSendsChatCompletion(t *testing.T) {
	var got chatCompletionRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("missing bearer auth")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"[1,2]"},"finish_reason":"stop"}],"usage":{"prompt_tokens":5,"completion_tokens":7}}`))
	})

	text, err := c.GenerateText(context.Background(), "sys", "user prompt")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if text != "[1,2]" {
		t.Fatalf("text = %q", text)
	}
	if got.Model != "gpt-4o-mini" || got.Temperature != 0.7 || got.MaxTokens != 3000 {
		t.Fatalf("unexpected request params: %+v", got)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Content != "user prompt" {
		t.Fatalf("unexpected messages: %+v", got.Messages)
	}
}

func TestGenerateTextDoesNotRetry(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	})

	_, err := c.GenerateText(context.Background(), "sys", "user")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "rate limited") {
		t.Fatalf("error lost body: %v", err)
	}
	var httpErr *openAIHTTPError
	if !errors.As(err, &httpErr) || httpErr.HTTPStatusCode() != http.StatusTooManyRequests {
		t.Fatalf("expected openAIHTTPError 429, got %T %v", err, err)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected exactly one call, got %d", n)
	}
}

func TestGenerateTextEmptyChoices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})
	if _, err := c.GenerateText(context.Background(), "s", "u"); err == nil {
		t.Fatalf("expected error for empty choices")
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(logger.Nop(), Config{}, nil); err == nil {
		t.Fatalf("expected missing key error")
	}
}
