package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/notequiz-backend/internal/observability"
	"github.com/yungbote/notequiz-backend/internal/platform/envutil"
	"github.com/yungbote/notequiz-backend/internal/platform/logger"
)

// Client is the language model gateway: one prompt in, free text out.
type Client interface {
	GenerateText(ctx context.Context, system string, user string) (string, error)
}

type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	// Timeout of zero leaves the call bounded only by MaxTokens.
	Timeout time.Duration
}

func ConfigFromEnv() (Config, error) {
	apiKey := envutil.String("OPENAI_API_KEY", "")
	if apiKey == "" {
		return Config{}, fmt.Errorf("missing OPENAI_API_KEY")
	}
	return Config{
		APIKey:      apiKey,
		BaseURL:     envutil.String("OPENAI_BASE_URL", "https://api.openai.com"),
		Model:       envutil.String("OPENAI_MODEL", "gpt-4o-mini"),
		Temperature: envutil.Float("OPENAI_TEMPERATURE", 0.7),
		MaxTokens:   envutil.Int("OPENAI_MAX_TOKENS", 3000),
		Timeout:     envutil.Seconds("OPENAI_TIMEOUT_SECONDS", 0),
	}, nil
}

type client struct {
	log         *logger.Logger
	metrics     *observability.Metrics
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	httpClient  *http.Client
}

func NewClient(log *logger.Logger, cfg Config, metrics *observability.Metrics) (Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("missing OPENAI_API_KEY")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gpt-4o-mini"
	}
	clientLog := log.With("client", "OpenAIClient")
	clientLog.Info("OpenAI client initialized", "model", model, "base_url", baseURL, "max_tokens", cfg.MaxTokens)
	return &client{
		log:         clientLog,
		metrics:     metrics,
		baseURL:     baseURL,
		apiKey:      cfg.APIKey,
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
			Refusal string `json:"refusal"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

type openAIHTTPError struct {
	StatusCode int
	Body       string
}

func (e *openAIHTTPError) Error() string {
	return fmt.Sprintf("openai http %d: %s", e.StatusCode, e.Body)
}

func (e *openAIHTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}

// GenerateText makes a single chat completion call. Nothing is retried.
func (c *client) GenerateText(ctx context.Context, system string, user string) (string, error) {
	req := chatCompletionRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	start := time.Now()
	resp, raw, err := c.doOnce(ctx, http.MethodPost, "/v1/chat/completions", req)
	if err != nil {
		c.metrics.ObserveLLMRequest(c.model, statusFromRespErr(resp, err), time.Since(start), 0, 0)
		c.log.Warn("OpenAI request failed", "model", c.model, "error", err)
		return "", err
	}

	var out chatCompletionResponse
	if uErr := json.Unmarshal(raw, &out); uErr != nil {
		c.metrics.ObserveLLMRequest(c.model, "decode_error", time.Since(start), 0, 0)
		return "", fmt.Errorf("openai decode error: %w; raw=%s", uErr, string(raw))
	}
	c.metrics.ObserveLLMRequest(c.model, strconv.Itoa(resp.StatusCode), time.Since(start), out.Usage.PromptTokens, out.Usage.CompletionTokens)

	if len(out.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	choice := out.Choices[0]
	if choice.Message.Refusal != "" {
		return "", fmt.Errorf("model refused: %s", choice.Message.Refusal)
	}
	if strings.TrimSpace(choice.Message.Content) == "" {
		return "", fmt.Errorf("openai returned empty content (finish_reason=%s)", choice.FinishReason)
	}
	c.log.Debug("OpenAI request complete",
		"model", c.model,
		"duration_ms", time.Since(start).Milliseconds(),
		"finish_reason", choice.FinishReason,
		"completion_tokens", out.Usage.CompletionTokens,
	)
	return choice.Message.Content, nil
}

func (c *client) doOnce(ctx context.Context, method, path string, body any) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}

	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, &openAIHTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}

func statusFromRespErr(resp *http.Response, err error) string {
	if resp != nil {
		return strconv.Itoa(resp.StatusCode)
	}
	var httpErr *openAIHTTPError
	if errors.As(err, &httpErr) {
		return strconv.Itoa(httpErr.StatusCode)
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "error"
}
