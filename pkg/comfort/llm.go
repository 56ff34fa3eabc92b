package comfort

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var (
	// ErrNotConfigured is returned when no API key is available.
	ErrNotConfigured = errors.New("comfort: llm api key is not configured")
	// ErrRequest is returned when the model call fails or returns nothing.
	ErrRequest = errors.New("comfort: llm request failed")
)

// Prompt is a single-turn completion request.
type Prompt struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int64
}

// Completer produces text for a Prompt.
type Completer interface {
	Complete(ctx context.Context, p Prompt) (string, error)
}

// Client is a Completer backed by an OpenAI-compatible chat completions API.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client

	api openai.Client
}

var _ Completer = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithModel sets the model name.
func WithModel(model string) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

// WithBaseURL points the client at another OpenAI-compatible endpoint.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient returns a Client. An empty apiKey is allowed; Complete then
// fails with ErrNotConfigured.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:  strings.TrimSpace(apiKey),
		model:   "gemini-2.5-flash",
		baseURL: "https://generativelanguage.googleapis.com/v1beta/openai/",
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(c.apiKey),
		option.WithBaseURL(c.baseURL),
		option.WithMaxRetries(0),
	}
	if c.httpClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(c.httpClient))
	}
	c.api = openai.NewClient(reqOpts...)
	return c
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// Complete sends p as a system and a user message and returns the trimmed
// reply text.
func (c *Client) Complete(ctx context.Context, p Prompt) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(p.System),
			openai.UserMessage(p.User),
		},
		Temperature: openai.Float(p.Temperature),
	}
	if p.MaxTokens > 0 {
		params.MaxTokens = openai.Int(p.MaxTokens)
	}

	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: timed out after %s", ErrRequest, c.timeout)
		}
		return "", fmt.Errorf("%w: %v", ErrRequest, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrRequest)
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: empty response", ErrRequest)
	}
	return text, nil
}
