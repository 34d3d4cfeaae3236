package llm

import "encoding/json"

// CompletionResult is the outward-facing result of a completion request.
// Usage is opaque token-accounting data from the upstream provider,
// passed through verbatim; the relay does not interpret it.
type CompletionResult struct {
	Message Message         `json:"message"`
	Usage   json.RawMessage `json:"usage"`
}

// SuccessResponse wraps a successful result for the HTTP layer.
type SuccessResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// OK wraps data in the standard success envelope.
func OK(data any) SuccessResponse {
	return SuccessResponse{Success: true, Data: data}
}
