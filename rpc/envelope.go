// Package rpc carries the agent-communication envelope over Connect. A run
// submits one or more role-tagged messages, each built from typed content
// parts, to a named agent; the response echoes the session identifier and
// returns the assistant output in the same envelope shape.
package rpc

import "strings"

// ProcedureRun is the Connect procedure for submitting a run to an agent.
const ProcedureRun = "/relay.v1.AgentService/Run"

// ContentTypeText marks a part as plain text. Parts with other content types
// are ignored during text extraction.
const ContentTypeText = "text/plain"

// MessagePart is one typed content unit inside an envelope message.
type MessagePart struct {
	ContentType string `json:"content_type"`
	Content     string `json:"content"`
}

// Message is one role-tagged envelope message composed of content parts.
type Message struct {
	Role  string        `json:"role,omitempty"`
	Parts []MessagePart `json:"parts"`
}

// Text concatenates the message's text/plain parts. Non-text parts are
// skipped.
func (m Message) Text() string {
	var b strings.Builder
	for _, part := range m.Parts {
		if part.ContentType == ContentTypeText {
			b.WriteString(part.Content)
		}
	}
	return b.String()
}

// TextMessage builds a single-part text/plain envelope message.
func TextMessage(role, text string) Message {
	return Message{
		Role:  role,
		Parts: []MessagePart{{ContentType: ContentTypeText, Content: text}},
	}
}

// RunRequest submits messages to a named agent. Agent defaults to the
// server's default agent when empty. SessionID continues an existing
// conversation; when empty the server assigns a fresh identifier and echoes
// it in the response.
type RunRequest struct {
	Agent     string    `json:"agent,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
	Input     []Message `json:"input"`
}

// RunResponse carries the assistant output for a run. Output holds one
// message per non-empty input message, in order.
type RunResponse struct {
	SessionID string    `json:"session_id"`
	Output    []Message `json:"output"`
}
