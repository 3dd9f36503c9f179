package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAborted is returned when the user walks away from the login before the
// token exchange, e.g. ctrl+c at the prompt or stdin closed.
var ErrAborted = errors.New("aborted by user")

// HTTPError is returned when an identity provider endpoint answers with a
// non-2xx status. Code and Description carry the OAuth error fields when the
// body had them.
type HTTPError struct {
	StatusCode  int
	Endpoint    string
	Code        string
	Description string
	RequestID   string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("HTTP/S status code %d", e.StatusCode)
	if e.Code != "" {
		msg += " (" + e.Code + ")"
	}
	if desc := firstLine(e.Description); desc != "" {
		msg += ": " + desc
	}
	return msg
}

// firstLine keeps the summary of an Azure error_description, which appends
// trace and correlation ids on following lines.
func firstLine(s string) string {
	s, _, _ = strings.Cut(s, "\n")
	return strings.TrimSpace(s)
}

// ParseError is returned when a 2xx response body cannot be mapped onto the
// expected fields. Field is empty when the body itself is not valid JSON.
type ParseError struct {
	Field string
	Cause error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("parsing response: %v", e.Cause)
	}
	return fmt.Sprintf("parsing response field %q: %v", e.Field, e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ErrMissingField is the cause of a ParseError for an absent or empty required field.
var ErrMissingField = errors.New("missing required field")
