package llm

import "errors"

// Roles a message may carry. Anything else is rejected before the
// request leaves the relay.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// ErrInvalidMessage is returned when a message is missing a role or
// content, or carries a role outside the allowed set.
var ErrInvalidMessage = errors.New("each message must have a role (user, assistant, or system) and non-empty content")

// Message represents a single message in a conversation.
type Message struct {
	Role    string `json:"role"`    // "system", "user", "assistant"
	Content string `json:"content"` // The message content
}

// Validate checks the message contract: a legal role and non-empty content.
func (m Message) Validate() error {
	switch m.Role {
	case RoleUser, RoleAssistant, RoleSystem:
	default:
		return ErrInvalidMessage
	}
	if m.Content == "" {
		return ErrInvalidMessage
	}
	return nil
}
