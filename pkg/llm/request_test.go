package llm_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Madhav-sp/All-ai-models/pkg/llm"
)

var _ = Describe("Message", func() {
	Describe("Validate", func() {
		It("accepts each of the legal roles", func() {
			for _, role := range []string{llm.RoleUser, llm.RoleAssistant, llm.RoleSystem} {
				msg := llm.Message{Role: role, Content: "hello"}
				Expect(msg.Validate()).To(Succeed())
			}
		})

		It("rejects an unknown role", func() {
			msg := llm.Message{Role: "robot", Content: "hello"}
			Expect(msg.Validate()).To(MatchError(llm.ErrInvalidMessage))
		})

		It("rejects a missing role", func() {
			msg := llm.Message{Content: "hello"}
			Expect(msg.Validate()).To(MatchError(llm.ErrInvalidMessage))
		})

		It("rejects empty content", func() {
			msg := llm.Message{Role: llm.RoleUser}
			Expect(msg.Validate()).To(MatchError(llm.ErrInvalidMessage))
		})
	})
})

var _ = Describe("ChatRequest", func() {
	Describe("Validate", func() {
		It("rejects a request with no messages", func() {
			req := llm.ChatRequest{}
			Expect(req.Validate()).To(MatchError(llm.ErrNoMessages))
		})

		It("rejects an empty messages array", func() {
			req := llm.ChatRequest{Messages: []llm.Message{}}
			Expect(req.Validate()).To(MatchError(llm.ErrNoMessages))
		})

		It("checks the messages contract before per-message validity", func() {
			req := llm.ChatRequest{}
			Expect(req.Validate()).To(MatchError(llm.ErrNoMessages))

			req.Messages = []llm.Message{{Role: "bad", Content: ""}}
			Expect(req.Validate()).To(MatchError(llm.ErrInvalidMessage))
		})

		It("fails when any single message is invalid", func() {
			req := llm.ChatRequest{Messages: []llm.Message{
				{Role: llm.RoleUser, Content: "fine"},
				{Role: llm.RoleAssistant, Content: ""},
			}}
			Expect(req.Validate()).To(MatchError(llm.ErrInvalidMessage))
		})

		It("accepts a well-formed conversation", func() {
			req := llm.ChatRequest{Messages: []llm.Message{
				{Role: llm.RoleSystem, Content: "be helpful"},
				{Role: llm.RoleUser, Content: "hi"},
				{Role: llm.RoleAssistant, Content: "hello"},
			}}
			Expect(req.Validate()).To(Succeed())
		})
	})

	Describe("ResolveModel", func() {
		It("keeps an explicit model", func() {
			req := llm.ChatRequest{Model: "m1"}
			Expect(req.ResolveModel("default-model")).To(Equal("m1"))
		})

		It("falls back to the default when the model is empty", func() {
			req := llm.ChatRequest{}
			Expect(req.ResolveModel("default-model")).To(Equal("default-model"))
		})
	})
})

var _ = Describe("CompletionResult", func() {
	It("serializes usage verbatim", func() {
		result := llm.CompletionResult{
			Message: llm.Message{Role: llm.RoleAssistant, Content: "hi"},
			Usage:   json.RawMessage(`{"prompt_tokens":3,"completion_tokens":2}`),
		}

		data, err := json.Marshal(result)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(ContainSubstring(`"prompt_tokens":3`))
	})

	It("never serializes content as null", func() {
		result := llm.CompletionResult{
			Message: llm.Message{Role: llm.RoleAssistant},
			Usage:   json.RawMessage(`{}`),
		}

		data, err := json.Marshal(result)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(ContainSubstring(`"content":""`))
	})
})
