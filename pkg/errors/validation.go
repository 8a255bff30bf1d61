package errors

import (
	"strings"
	"unicode"
)

// ValidateToken validates an API token for basic shape and safety.
// The GetAlts API issues opaque tokens, so validation is intentionally
// conservative: non-empty, reasonable length, printable characters only.
func ValidateToken(token string) error {
	if token == "" {
		return New(ErrCodeInvalidToken, "token cannot be empty")
	}

	if len(token) > 256 {
		return New(ErrCodeInvalidToken, "token too long (max 256 characters)")
	}

	for _, r := range token {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidToken, "token contains whitespace or control characters")
		}
	}

	return nil
}

// ValidateBaseURL validates the API base URL.
// It ensures the URL has a safe scheme (http or https) and no trailing junk.
func ValidateBaseURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "base URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidConfig, "base URL must use http or https scheme")
	}

	if strings.ContainsAny(rawURL, " \t\n") {
		return New(ErrCodeInvalidConfig, "base URL contains whitespace")
	}

	return nil
}

// ValidateActivationID validates an activation identifier received from
// the API before it is echoed back in follow-up requests.
func ValidateActivationID(id int64) error {
	if id <= 0 {
		return New(ErrCodeInvalidRequest, "activation id must be positive, got %d", id)
	}
	return nil
}

// ValidateParam validates a single query parameter value before
// transmission. Rejects values that could break URL encoding assumptions
// or smuggle control characters into the request line.
func ValidateParam(name, value string) error {
	if value == "" {
		return New(ErrCodeInvalidRequest, "parameter %q cannot be empty", name)
	}

	const maxParamLength = 128
	if len(value) > maxParamLength {
		return New(ErrCodeInvalidRequest, "parameter %q too long (max %d characters)", name, maxParamLength)
	}

	for _, r := range value {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidRequest, "parameter %q contains control characters", name)
		}
	}

	return nil
}
