package rpc

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

// Client calls the envelope Run procedure on a relay server.
type Client struct {
	inner *connect.Client[RunRequest, RunResponse]
}

// NewClient creates a Client for the server at baseURL (scheme and host,
// e.g. "http://localhost:8000").
func NewClient(httpClient connect.HTTPClient, baseURL string) *Client {
	return &Client{
		inner: connect.NewClient[RunRequest, RunResponse](
			httpClient,
			strings.TrimSuffix(baseURL, "/")+ProcedureRun,
			connect.WithCodec(Codec{}),
		),
	}
}

// Run submits one user message to the named agent. An empty agent selects
// the server default; an empty sessionID starts a new conversation. The
// returned response carries the session identifier to reuse for follow-up
// messages.
func (c *Client) Run(ctx context.Context, agentName, sessionID, text string) (*RunResponse, error) {
	req := connect.NewRequest(&RunRequest{
		Agent:     agentName,
		SessionID: sessionID,
		Input:     []Message{TextMessage("user", text)},
	})

	resp, err := c.inner.CallUnary(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp.Msg, nil
}
