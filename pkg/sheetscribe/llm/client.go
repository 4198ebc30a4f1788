// Package llm calls the language model, directly or through the local relay.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Defaults matching the provider's Messages API.
const (
	DefaultEndpoint  = "https://api.anthropic.com/v1/messages"
	DefaultModel     = "claude-3-5-sonnet-20241022"
	DefaultVersion   = "2023-06-01"
	DefaultMaxTokens = 2000
	DefaultTimeout   = 2 * time.Minute
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 8 << 20

// Caller sends one prompt and returns the model's text reply.
type Caller interface {
	Call(ctx context.Context, prompt string) (string, error)
}

// Options configures a Client.
type Options struct {
	Endpoint  string
	Model     string
	Version   string
	MaxTokens int
	// HTTPClient is used for requests; nil means a client with DefaultTimeout.
	HTTPClient *http.Client
}

// DefaultOptions returns the provider defaults.
func DefaultOptions() Options {
	return Options{
		Endpoint:  DefaultEndpoint,
		Model:     DefaultModel,
		Version:   DefaultVersion,
		MaxTokens: DefaultMaxTokens,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Endpoint == "" {
		o.Endpoint = d.Endpoint
	}
	if o.Model == "" {
		o.Model = d.Model
	}
	if o.Version == "" {
		o.Version = d.Version
	}
	if o.MaxTokens <= 0 {
		o.MaxTokens = d.MaxTokens
	}
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	return o
}

// Client calls the Messages API directly.
type Client struct {
	apiKey string
	opts   Options
}

var _ Caller = (*Client)(nil)

// NewClient creates a Client for apiKey.
func NewClient(apiKey string, opts Options) *Client {
	return &Client{apiKey: strings.TrimSpace(apiKey), opts: opts.withDefaults()}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type messageResponse struct {
	Content []contentBlock `json:"content"`
}

// Call sends prompt as a single user message.
func (c *Client) Call(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	payload, err := json.Marshal(messageRequest{
		Model:     c.opts.Model,
		MaxTokens: c.opts.MaxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", c.opts.Version)

	status, body, err := do(c.opts.HTTPClient, req)
	if err != nil {
		return "", err
	}
	if status < 200 || status > 299 {
		return "", newUpstreamError(status, body)
	}

	var resp messageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" || block.Type == "" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", ErrEmptyReply
	}
	return sb.String(), nil
}

func do(hc *http.Client, req *http.Request) (int, []byte, error) {
	resp, err := hc.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request %s: %w", req.URL.Host, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, body, nil
}
