package domain_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/waabox/snatch/internal/domain"
)

func TestErrAborted_CanBeDetectedWithErrorsIs(t *testing.T) {
	wrapped := fmt.Errorf("waiting for sign-in: %w", domain.ErrAborted)
	if !errors.Is(wrapped, domain.ErrAborted) {
		t.Error("expected errors.Is to detect ErrAborted in wrapped error")
	}
}

func TestHTTPError_MessageContainsStatusCode(t *testing.T) {
	err := &domain.HTTPError{StatusCode: 400}
	if !strings.Contains(err.Error(), "400") {
		t.Errorf("expected status code in message, got %q", err.Error())
	}
}

func TestHTTPError_MessageContainsOAuthCode(t *testing.T) {
	err := &domain.HTTPError{StatusCode: 400, Code: "authorization_pending"}
	if err.Error() != "HTTP/S status code 400 (authorization_pending)" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestHTTPError_MessageContainsDescriptionSummary(t *testing.T) {
	err := &domain.HTTPError{
		StatusCode:  400,
		Code:        "invalid_grant",
		Description: "AADSTS70000: The provided grant is invalid.\r\nTrace ID: 0c1d\r\nCorrelation ID: 9f2e",
	}
	want := "HTTP/S status code 400 (invalid_grant): AADSTS70000: The provided grant is invalid."
	if err.Error() != want {
		t.Errorf("message: want %q, got %q", want, err.Error())
	}
	if strings.Contains(err.Error(), "\n") {
		t.Errorf("expected a single line, got %q", err.Error())
	}
}

func TestHTTPError_CanBeExtractedWithErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("requesting device code: %w", &domain.HTTPError{StatusCode: 503})
	var httpErr *domain.HTTPError
	if !errors.As(wrapped, &httpErr) {
		t.Fatal("expected errors.As to find HTTPError")
	}
	if httpErr.StatusCode != 503 {
		t.Errorf("status: want 503, got %d", httpErr.StatusCode)
	}
}

func TestParseError_UnwrapsCause(t *testing.T) {
	err := &domain.ParseError{Field: "access_token", Cause: domain.ErrMissingField}
	if !errors.Is(err, domain.ErrMissingField) {
		t.Error("expected ParseError to unwrap to ErrMissingField")
	}
	if !strings.Contains(err.Error(), "access_token") {
		t.Errorf("expected field name in message, got %q", err.Error())
	}
}
