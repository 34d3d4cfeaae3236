// Package llm provides the internal representations of LLM inference API
// requests and responses which the relay validates and forwards.
package llm

import "errors"

// ErrNoMessages is returned when a request arrives without any messages.
var ErrNoMessages = errors.New("messages array is required and cannot be empty")

// ChatRequest represents an inbound chat completion request.
type ChatRequest struct {
	Messages []Message `json:"messages"`        // Conversation history, caller-ordered
	Model    string    `json:"model,omitempty"` // Model identifier; empty selects the default
}

// Validate checks the request contract in order: the messages array must
// be present and non-empty, then every message must independently satisfy
// the Message contract. The first failure wins.
func (r ChatRequest) Validate() error {
	if len(r.Messages) == 0 {
		return ErrNoMessages
	}
	for _, msg := range r.Messages {
		if err := msg.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ResolveModel returns the request's model, or fallback when none was given.
func (r ChatRequest) ResolveModel(fallback string) string {
	if r.Model == "" {
		return fallback
	}
	return r.Model
}
