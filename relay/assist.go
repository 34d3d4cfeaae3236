package relay

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Madhav-sp/All-ai-models/pkg/llm"
)

// Instructions for the auxiliary text operations served by the
// assistant provider.
const (
	summarizeInstruction = "Summarize the following conversation in a single short sentence suitable as a chat title. Respond with the title only."
	followupsInstruction = "Suggest three short follow-up questions the user could ask next in the following conversation. Respond with one question per line and nothing else."
)

// assistRequest is the inbound body for the auxiliary operations. The
// messages follow the same contract as chat completion requests.
type assistRequest struct {
	Messages []llm.Message `json:"messages"`
}

// AssistResult is the outward result of an auxiliary text operation.
type AssistResult struct {
	Text string `json:"text"`
}

// handleSummarize produces a short conversation summary via the
// assistant provider.
func (r *Relay) handleSummarize(c *fiber.Ctx) error {
	return r.handleAssist(c, summarizeInstruction)
}

// handleFollowups produces follow-up question suggestions via the
// assistant provider.
func (r *Relay) handleFollowups(c *fiber.Ctx) error {
	return r.handleAssist(c, followupsInstruction)
}

// handleAssist validates the conversation the same way the completion
// handler does, flattens it into a transcript, and makes exactly one
// call to the assistant provider with its fixed model.
func (r *Relay) handleAssist(c *fiber.Ctx, instruction string) error {
	var req assistRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		r.logger.Error("failed to parse request", zap.Error(err))
		return r.writeError(c, &Error{Kind: KindInvalidRequest, Message: "invalid request body", Cause: err})
	}

	if err := (llm.ChatRequest{Messages: req.Messages}).Validate(); err != nil {
		return r.writeError(c, invalidRequest(err))
	}

	prompt := []llm.Message{
		{Role: llm.RoleSystem, Content: instruction},
		{Role: llm.RoleUser, Content: transcript(req.Messages)},
	}

	completion, err := r.assistant.CreateCompletion(c.Context(), r.config.AssistantModel, prompt)
	if err != nil {
		return r.writeError(c, classifyUpstream(err))
	}

	return c.JSON(llm.OK(AssistResult{Text: completion.Result().Message.Content}))
}

// transcript flattens a conversation into role-prefixed lines, preserving
// the caller-supplied order.
func transcript(messages []llm.Message) string {
	var b strings.Builder
	for i, msg := range messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(msg.Role)
		b.WriteString(": ")
		b.WriteString(msg.Content)
	}
	return b.String()
}
