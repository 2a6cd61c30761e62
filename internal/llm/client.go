// Package llm is a thin client for an OpenAI-compatible chat-completions
// endpoint. The model output is advisory everywhere it is used; callers must
// degrade to their deterministic path on any error.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// ErrDisabled indicates no API key is configured.
var ErrDisabled = errors.New("llm client disabled: no api key")

// Defaults mirror the service configuration.
const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 25 * time.Second

	chatTemperature = 0.4

	// One in-flight burst, two requests per second. The agent makes at most
	// one completion call per inbound message; the limiter guards against
	// pathological fan-out.
	rateLimit = 2
	rateBurst = 1
)

// Config holds client configuration.
type Config struct {
	BaseURL string        `env:"LLM_BASE_URL" yaml:"base_url"`
	APIKey  string        `env:"LLM_API_KEY"  yaml:"api_key"`
	Model   string        `env:"LLM_MODEL"    yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// Client calls the chat-completions endpoint.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	httpc   *http.Client
	limiter *rate.Limiter
}

// NewClient creates a chat client. A client with an empty API key is valid
// but permanently disabled.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		httpc:   &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rateLimit, rateBurst),
	}
}

// Enabled reports whether the client is configured with an API key.
func (c *Client) Enabled() bool { return c.apiKey != "" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Chat sends one system+user exchange and returns the completion text.
func (c *Client) Chat(ctx context.Context, system, user string) (string, error) {
	if !c.Enabled() {
		return "", ErrDisabled
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: chatTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("chat completion status %d: %s", resp.StatusCode, string(msg))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", nil
	}
	return parsed.Choices[0].Message.Content, nil
}
