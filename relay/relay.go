// Package relay provides the HTTP relay between the chat UI and the
// upstream LLM providers: validate an inbound request, forward it once,
// shape the response, classify the failure.
package relay

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	recoverer "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"github.com/Madhav-sp/All-ai-models/pkg/llm"
	"github.com/Madhav-sp/All-ai-models/pkg/openrouter"
)

// Relay is the stateless HTTP relay. Handlers share the configuration
// and the two upstream clients read-only; concurrent requests need no
// coordination.
type Relay struct {
	config    Config
	logger    *zap.Logger
	upstream  *openrouter.Client
	assistant *openrouter.Client
	server    *fiber.App
}

// New creates a Relay from a validated configuration.
func New(config Config, logger *zap.Logger) (*Relay, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             config.BodyLimit,
	})

	r := &Relay{
		config:    config,
		logger:    logger,
		server:    app,
		upstream:  openrouter.New(config.Upstream.BaseURL, config.Upstream.APIKey, openrouter.WithTimeout(config.RequestTimeout)),
		assistant: openrouter.New(config.Assistant.BaseURL, config.Assistant.APIKey, openrouter.WithTimeout(config.RequestTimeout)),
	}

	app.Use(recoverer.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{AllowOrigins: config.AllowOrigins}))
	app.Use(limiter.New(limiter.Config{
		Max:        config.RequestsPerMinute,
		Expiration: time.Minute,
	}))

	// Register routes
	app.Post("/api/chat/completion", r.handleCompletion)
	app.Post("/api/chat/summarize", r.handleSummarize)
	app.Post("/api/chat/followups", r.handleFollowups)
	app.Get("/api/models", r.handleModels)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(map[string]string{"status": "ok"})
	})

	return r, nil
}

// Run starts the relay server on the configured listening address.
func (r *Relay) Run() error {
	r.logger.Info("starting relay server",
		zap.String("listen", r.config.ListenAddr),
		zap.String("upstream", r.config.Upstream.BaseURL),
		zap.String("default_model", r.config.DefaultModel),
	)

	return r.server.Listen(r.config.ListenAddr)
}

// Shutdown gracefully stops the relay server.
func (r *Relay) Shutdown() error {
	return r.server.Shutdown()
}

// handleCompletion validates the inbound chat request, forwards it once
// to the upstream provider, and shapes the result. Validation happens
// before any upstream call; an invalid request makes zero outbound calls.
func (r *Relay) handleCompletion(c *fiber.Ctx) error {
	var req llm.ChatRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		r.logger.Error("failed to parse request", zap.Error(err))
		return r.writeError(c, &Error{Kind: KindInvalidRequest, Message: "invalid request body", Cause: err})
	}

	if err := req.Validate(); err != nil {
		return r.writeError(c, invalidRequest(err))
	}

	model := req.ResolveModel(r.config.DefaultModel)

	r.logger.Debug("forwarding chat completion",
		zap.String("model", model),
		zap.Int("message_count", len(req.Messages)),
	)

	completion, err := r.upstream.CreateCompletion(c.Context(), model, req.Messages)
	if err != nil {
		return r.writeError(c, classifyUpstream(err))
	}

	return c.JSON(llm.OK(completion.Result()))
}

// handleModels fetches the upstream model catalog and passes it through
// verbatim, preserving order.
func (r *Relay) handleModels(c *fiber.Ctx) error {
	models, err := r.upstream.ListModels(c.Context())
	if err != nil {
		return r.writeError(c, &Error{
			Kind:    KindModelListUnavailable,
			Message: "failed to fetch models from external API",
			Cause:   err,
		})
	}

	return c.JSON(llm.OK(models))
}

// invalidRequest shapes a validation failure into the outward error body.
// The empty-messages case carries its reason in the error field itself;
// the per-message case names the legal roles in the detail message.
func invalidRequest(err error) *Error {
	if errors.Is(err, llm.ErrNoMessages) {
		return &Error{Kind: KindInvalidRequest, Message: llm.ErrNoMessages.Error(), Cause: err}
	}
	return &Error{
		Kind:    KindInvalidRequest,
		Message: "invalid message format",
		Detail:  err.Error(),
		Cause:   err,
	}
}

// writeError logs the failure once with full detail and writes the
// outward error body. Upstream internals reach the caller only outside
// production mode.
func (r *Relay) writeError(c *fiber.Ctx, relayErr *Error) error {
	r.logger.Error("request failed",
		zap.String("kind", string(relayErr.Kind)),
		zap.String("path", c.Path()),
		zap.Error(relayErr.Cause),
	)

	body := llm.ErrorResponse{Error: relayErr.Message}
	switch relayErr.Kind {
	case KindInvalidRequest, KindUnauthorized, KindRateLimited:
		body.Message = relayErr.Detail
	default:
		if !r.config.Production() {
			body.Message = relayErr.Detail
		}
	}

	return c.Status(relayErr.Status()).JSON(body)
}
