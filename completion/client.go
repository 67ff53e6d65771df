package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/agentwire/relay/core/protocol"
)

// chatRequest is the request body for the chat completions endpoint.
type chatRequest struct {
	Model    string             `json:"model"`
	Messages []protocol.Message `json:"messages"`
}

// chatResponse is the subset of the chat completions response we consume.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client implements Completer against an OpenAI-style chat completions
// endpoint.
type Client struct {
	baseURL    string
	model      string
	token      string
	httpClient *http.Client
}

// NewClient creates a Client from configuration. Returns an error when no
// credential can be resolved.
func NewClient(cfg *Config) (*Client, error) {
	token, err := cfg.resolveToken()
	if err != nil {
		return nil, err
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		model:      model,
		token:      token,
		httpClient: &http.Client{Timeout: cfg.timeout()},
	}, nil
}

// Model returns the model identifier requests are sent with.
func (c *Client) Model() string {
	return c.model
}

// Complete sends the ordered message list to the completion endpoint and
// returns the reply text. Message order is preserved on the wire. Non-2xx
// responses surface as errors carrying the status and response body, which
// is the detail text the relay classifies.
func (c *Client) Complete(ctx context.Context, messages []protocol.Message) (string, error) {
	body, err := json.Marshal(chatRequest{Model: c.model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("completion API returned %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion API returned no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
