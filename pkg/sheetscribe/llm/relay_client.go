package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// DefaultRelayURL is where the local relay listens by default.
const DefaultRelayURL = "https://localhost:3001/api/claude"

// RelayRequest is the body the relay accepts.
type RelayRequest struct {
	APIKey string `json:"apiKey"`
	Prompt string `json:"prompt"`
}

// RelayResponse is the body the relay returns on success.
type RelayResponse struct {
	Content string `json:"content"`
}

// RelayClient calls the model through the local relay.
type RelayClient struct {
	url    string
	apiKey string
	hc     *http.Client
}

var _ Caller = (*RelayClient)(nil)

// NewRelayClient creates a RelayClient. A nil hc uses a client with DefaultTimeout.
func NewRelayClient(url, apiKey string, hc *http.Client) *RelayClient {
	if url == "" {
		url = DefaultRelayURL
	}
	if hc == nil {
		hc = &http.Client{Timeout: DefaultTimeout}
	}
	return &RelayClient{url: url, apiKey: strings.TrimSpace(apiKey), hc: hc}
}

// Call posts the prompt and the credential to the relay.
func (c *RelayClient) Call(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	payload, err := json.Marshal(RelayRequest{APIKey: c.apiKey, Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	status, body, err := do(c.hc, req)
	if err != nil {
		return "", err
	}
	if status < 200 || status > 299 {
		return "", newUpstreamError(status, body)
	}

	var resp RelayResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode relay response: %w", err)
	}
	if resp.Content == "" {
		return "", ErrEmptyReply
	}
	return resp.Content, nil
}
