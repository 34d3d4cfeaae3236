// Package openrouter provides a minimal client for an OpenAI-compatible
// completion provider: one completion call, one model-listing call.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Madhav-sp/All-ai-models/pkg/llm"
)

const (
	contentTypeJSON = "application/json"
	userAgent       = "all-ai-models-relay/0.1"

	// Generation bounds applied to every forwarded request. These are
	// configuration constants, not negotiated per call.
	defaultMaxTokens   = 1000
	defaultTemperature = 0.7

	// LLM requests can be slow; keep a generous but bounded timeout.
	defaultTimeout = 2 * time.Minute
)

// Client talks to a single OpenAI-compatible upstream. The base URL and
// credential are read-only after construction and safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	maxTokens   int
	temperature float64
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds every outbound call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithGenerationBounds overrides the fixed max token and temperature values.
func WithGenerationBounds(maxTokens int, temperature float64) Option {
	return func(c *Client) {
		c.maxTokens = maxTokens
		c.temperature = temperature
	}
}

// New creates a Client for the given base URL and bearer credential.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		maxTokens:   defaultMaxTokens,
		temperature: defaultTemperature,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// completionPayload is the OpenAI-compatible chat completion request body.
type completionPayload struct {
	Model       string        `json:"model"`
	Messages    []llm.Message `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

// Completion is the subset of the upstream completion response the relay
// consumes. Usage is retained as raw JSON for verbatim passthrough.
type Completion struct {
	Choices []struct {
		Message llm.Message `json:"message"`
	} `json:"choices"`
	Usage json.RawMessage `json:"usage"`
}

// Result shapes the first choice into the outward CompletionResult,
// defaulting a missing role to "assistant" and missing content to the
// empty string, never null.
func (c *Completion) Result() llm.CompletionResult {
	var msg llm.Message
	if len(c.Choices) > 0 {
		msg = c.Choices[0].Message
	}
	if msg.Role == "" {
		msg.Role = llm.RoleAssistant
	}
	usage := c.Usage
	if len(usage) == 0 {
		usage = json.RawMessage(`{}`)
	}
	return llm.CompletionResult{Message: msg, Usage: usage}
}

// CreateCompletion issues exactly one completion call with the full
// message sequence and resolved model. Non-2xx responses surface as
// *APIError classified by status code.
func (c *Client) CreateCompletion(ctx context.Context, model string, messages []llm.Message) (*Completion, error) {
	payload := completionPayload{
		Model:       model,
		Messages:    messages,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseAPIError(resp)
	}

	var completion Completion
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return &completion, nil
}

// modelsResponse is the upstream model catalog envelope.
type modelsResponse struct {
	Data []llm.Model `json:"data"`
}

// ListModels fetches the upstream model catalog and returns it in the
// order the upstream reported it.
func (c *Client) ListModels(ctx context.Context) ([]llm.Model, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseAPIError(resp)
	}

	var models modelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&models); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return models.Data, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
}

func parseAPIError(resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("failed to read error body: %v", err),
		}
	}

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Raw:        body,
	}

	var envelope struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		apiErr.Type = envelope.Error.Type
		apiErr.Message = envelope.Error.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(body))
	}

	return apiErr
}
