package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidRequest, "unknown service: %s", "xx")

	if err.Code != ErrCodeInvalidRequest {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidRequest)
	}

	if err.Message != "unknown service: xx" {
		t.Errorf("Message = %v, want %v", err.Message, "unknown service: xx")
	}

	expected := "INVALID_REQUEST: unknown service: xx"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "fetch get_balance")

	if err.Code != ErrCodeNetwork {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNetwork)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeTimeout, "deadline exceeded"),
			code:     ErrCodeTimeout,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeTimeout, "deadline exceeded"),
			code:     ErrCodeNetwork,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeNetwork, New(ErrCodeTimeout, "inner"), "outer"),
			code:     ErrCodeNetwork,
			expected: true,
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			code:     ErrCodeNetwork,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeNetwork,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if code := GetCode(New(ErrCodeDecode, "bad shape")); code != ErrCodeDecode {
		t.Errorf("GetCode() = %v, want %v", code, ErrCodeDecode)
	}
	if code := GetCode(errors.New("plain")); code != "" {
		t.Errorf("GetCode() for plain error = %v, want empty", code)
	}
	if code := GetCode(&APIError{RemoteCode: "bad_token"}); code != ErrCodeAPI {
		t.Errorf("GetCode() for APIError = %v, want %v", code, ErrCodeAPI)
	}
	if code := GetCode(&DecodeError{Operation: "get_balance"}); code != ErrCodeDecode {
		t.Errorf("GetCode() for DecodeError = %v, want %v", code, ErrCodeDecode)
	}
}

func TestUserMessage(t *testing.T) {
	if msg := UserMessage(New(ErrCodeInvalidToken, "token cannot be empty")); msg != "token cannot be empty" {
		t.Errorf("UserMessage() = %q", msg)
	}
	if msg := UserMessage(errors.New("plain failure")); msg != "plain failure" {
		t.Errorf("UserMessage() for plain error = %q", msg)
	}
}

func TestAPIError(t *testing.T) {
	apiErr := &APIError{RemoteCode: "rate_limited", Message: "slow down", Operation: "buy_number"}

	if apiErr.Code() != ErrCodeAPI {
		t.Errorf("Code() = %v, want %v", apiErr.Code(), ErrCodeAPI)
	}

	expected := "api error rate_limited: slow down (buy_number)"
	if apiErr.Error() != expected {
		t.Errorf("Error() = %q, want %q", apiErr.Error(), expected)
	}

	wrapped := fmt.Errorf("fetch: %w", apiErr)
	got, ok := AsAPIError(wrapped)
	if !ok {
		t.Fatal("AsAPIError() = false for wrapped APIError")
	}
	if got.RemoteCode != "rate_limited" {
		t.Errorf("RemoteCode = %q, want %q", got.RemoteCode, "rate_limited")
	}
}

func TestAPIError_NoMessage(t *testing.T) {
	apiErr := &APIError{RemoteCode: "bad_token", Operation: "get_balance"}
	expected := "api error bad_token (get_balance)"
	if apiErr.Error() != expected {
		t.Errorf("Error() = %q, want %q", apiErr.Error(), expected)
	}
}

func TestDecodeError(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	decErr := &DecodeError{Operation: "get_prices_by_country", Raw: []byte(`{"bro`), Cause: cause}

	if decErr.Code() != ErrCodeDecode {
		t.Errorf("Code() = %v, want %v", decErr.Code(), ErrCodeDecode)
	}
	if !errors.Is(decErr, cause) {
		t.Error("errors.Is(decErr, cause) = false, want true")
	}
	if string(decErr.Raw) != `{"bro` {
		t.Errorf("Raw = %q, want raw payload preserved", decErr.Raw)
	}
}
