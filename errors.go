package vestaboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
)

var (
	// ErrCredentialsMissing indicates the API key or secret is empty.
	ErrCredentialsMissing = errors.New("vestaboard: API key and secret are required")
	// ErrInvalidText indicates text contains characters the board cannot show.
	// Supported characters: https://docs.vestaboard.com/characters
	ErrInvalidText = errors.New("vestaboard: invalid characters in text")
	// ErrInvalidGrid indicates a character grid that is not exactly 6 rows of 22 columns.
	ErrInvalidGrid = errors.New("vestaboard: characters must be exactly 6 rows of 22 columns")
	// ErrNoSubscriptions indicates the API key pair has no subscriptions to post to.
	ErrNoSubscriptions = errors.New("vestaboard: no subscriptions available for this API key")
)

// Operation names reported in TransportError.Op.
const (
	OpListSubscriptions = "list subscriptions"
	OpSendMessage       = "send message"
)

// TransportError wraps any failure at the network or protocol boundary:
// connectivity, DNS, non-2xx status, or a body that does not decode.
// The underlying cause is available through errors.Unwrap / errors.As.
type TransportError struct {
	// Op is the API operation that failed.
	Op string
	// Err is the underlying cause.
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return "vestaboard: " + e.Op + " failed"
	}
	return "vestaboard: " + e.Op + ": " + strings.TrimPrefix(e.Err.Error(), "vestaboard: ")
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError captures non-2xx responses. It is always delivered wrapped in a TransportError.
type APIError struct {
	StatusCode int
	// Code is a normalized string representation of a server error code when present.
	Code string
	// Message is a human-readable message from the server or synthesized from body.
	Message string
	// RawBody keeps the original payload for debugging.
	RawBody []byte
}

func (e *APIError) Error() string {
	b := strings.Builder{}
	b.WriteString("vestaboard: API error (status=")
	b.WriteString(strconv.Itoa(e.StatusCode))
	if e.Code != "" {
		b.WriteString(", code=")
		b.WriteString(e.Code)
	}
	b.WriteString(")")
	if m := strings.TrimSpace(e.Message); m != "" {
		b.WriteString(": ")
		b.WriteString(m)
	}
	return b.String()
}

// IsContentError reports whether err is a text validation failure.
func IsContentError(err error) bool {
	return errors.Is(err, ErrInvalidText)
}

// IsShapeError reports whether err is a grid shape failure.
func IsShapeError(err error) bool {
	return errors.Is(err, ErrInvalidGrid)
}

// IsTransportError reports whether err came from the network or protocol boundary.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsRateLimitError returns true if err carries an APIError with HTTP status 429.
func IsRateLimitError(err error) bool {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode == http.StatusTooManyRequests
	}
	return false
}

// IsAuthError returns true if err carries an APIError with HTTP status 401 or 403.
func IsAuthError(err error) bool {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode == http.StatusUnauthorized || ae.StatusCode == http.StatusForbidden
	}
	return false
}

func buildAPIError(status int, body []byte) error {
	trimmed := strings.TrimSpace(string(body))
	ae := &APIError{StatusCode: status, RawBody: body, Message: trimmed}
	if trimmed == "" {
		ae.Message = http.StatusText(status)
	}

	if isJSONObject(trimmed) {
		if obj := tryParseJSON(body); obj != nil {
			extractErrorFields(ae, obj, trimmed)
		}
	}
	return ae
}

// isJSONObject checks if a string looks like a JSON object
func isJSONObject(s string) bool {
	return len(s) > 0 && strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")
}

func tryParseJSON(body []byte) map[string]interface{} {
	var obj map[string]interface{}
	if err := json.Unmarshal(body, &obj); err == nil {
		return obj
	}
	return nil
}

// extractErrorFields fills message and code from "message"/"error" and "code"/"status".
func extractErrorFields(ae *APIError, obj map[string]interface{}, fallback string) {
	if v, ok := obj["message"].(string); ok && v != "" {
		ae.Message = v
	} else if v, ok := obj["error"].(string); ok && v != "" {
		ae.Message = v
	} else {
		ae.Message = fallback
	}
	if v, ok := obj["code"]; ok {
		ae.Code = formatCode(v)
	} else if v, ok := obj["status"]; ok {
		ae.Code = formatCode(v)
	}
}

func formatCode(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.Itoa(int(t))
	default:
		return ""
	}
}
