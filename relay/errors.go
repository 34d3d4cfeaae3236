package relay

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Madhav-sp/All-ai-models/pkg/openrouter"
)

// Kind tags a relay failure. Handlers switch on the tag to pick the HTTP
// status; no other classification crosses the relay boundary.
type Kind string

const (
	KindInvalidRequest       Kind = "invalid_request"
	KindUnauthorized         Kind = "unauthorized"
	KindRateLimited          Kind = "rate_limited"
	KindUpstream             Kind = "upstream_error"
	KindModelListUnavailable Kind = "model_list_unavailable"
)

// Error is a classified relay failure. Message is safe to return to the
// caller for the invalid_request, unauthorized, and rate_limited kinds;
// Detail may carry upstream internals and is exposed only outside
// production.
type Error struct {
	Kind    Kind
	Message string
	Detail  string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Status maps the error kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindInvalidRequest:
		return fiber.StatusBadRequest
	case KindUnauthorized:
		return fiber.StatusUnauthorized
	case KindRateLimited:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

// classifyUpstream maps an upstream call failure into the relay taxonomy.
// Authentication and rate-limit rejections are recognized by upstream
// status; everything else (network errors, malformed responses, 5xx)
// collapses into the generic upstream kind carrying the original detail.
func classifyUpstream(err error) *Error {
	switch {
	case openrouter.IsAuth(err):
		return &Error{
			Kind:    KindUnauthorized,
			Message: "invalid API key provided to upstream provider",
			Cause:   err,
		}
	case openrouter.IsRateLimit(err):
		return &Error{
			Kind:    KindRateLimited,
			Message: "rate limit exceeded for upstream provider",
			Cause:   err,
		}
	default:
		return &Error{
			Kind:    KindUpstream,
			Message: "internal server error",
			Detail:  err.Error(),
			Cause:   err,
		}
	}
}
