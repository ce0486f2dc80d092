package resilience

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/websetkit/websets-mcp/secret"
)

// APIError is the normalized failure callers receive from the client.
// Raw transport errors never escape the executor; they are classified and
// wrapped so callers see a stable {code, message, details} shape with
// sensitive substrings masked.
type APIError struct {
	Kind      Kind
	Code      string
	Message   string
	Details   any
	Retryable bool
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// errorBody is the structured error payload the Websets API returns.
type errorBody struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details"`
}

// NewAPIError classifies err and builds the normalized APIError.
//
// When the failure carries a server-provided error body its code, message
// and details win; otherwise the transport error's message is used and the
// code falls back to the classified kind. Message and details are redacted
// before the error is returned, so it is safe to log or surface as-is.
func NewAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	kind := Classify(err)
	out := &APIError{
		Kind:      kind,
		Code:      kind.Code(),
		Message:   err.Error(),
		Retryable: ShouldRetry(kind),
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) && len(httpErr.Body) > 0 {
		if body := parseErrorBody(httpErr.Body); body != nil {
			if body.Code != "" {
				out.Code = body.Code
			}
			if body.Message != "" {
				out.Message = body.Message
			}
			if len(body.Details) > 0 {
				var details any
				if json.Unmarshal(body.Details, &details) == nil {
					out.Details = secret.RedactValue(details)
				}
			}
		}
	}

	out.Message = secret.Redact(out.Message)
	return out
}

// parseErrorBody extracts a structured error payload, accepting both the
// enveloped {"error": {...}} and the flat {"code": ..., "message": ...}
// shapes. Returns nil when the body is not structured JSON.
func parseErrorBody(raw []byte) *errorBody {
	var enveloped struct {
		Error *errorBody `json:"error"`
	}
	if err := json.Unmarshal(raw, &enveloped); err == nil && enveloped.Error != nil {
		return enveloped.Error
	}

	var flat errorBody
	if err := json.Unmarshal(raw, &flat); err == nil && (flat.Code != "" || flat.Message != "") {
		return &flat
	}
	return nil
}

// LogError records one classified failure at a severity matching its kind.
// Temporary failures log at warn, permanent ones at error. The executor
// calls this once per attempt, before the retry decision is made.
func LogError(logger zerolog.Logger, apiErr *APIError, attempt int) {
	evt := logger.Error()
	if IsTemporary(apiErr.Kind) {
		evt = logger.Warn()
	}
	evt.
		Int("attempt", attempt).
		Str("kind", apiErr.Kind.String()).
		Str("code", apiErr.Code).
		Bool("retryable", apiErr.Retryable).
		Msg(apiErr.Message)
}
