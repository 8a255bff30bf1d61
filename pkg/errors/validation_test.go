package errors

import (
	"strings"
	"testing"
)

func TestValidateToken(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"valid token", "a1b2c3d4e5", false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 257), true},
		{"contains space", "abc def", true},
		{"contains newline", "abc\ndef", true},
		{"contains null byte", "abc\x00def", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateToken(tt.token)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateToken(%q) error = %v, wantErr %v", tt.token, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidToken) {
				t.Errorf("expected INVALID_TOKEN code, got %v", GetCode(err))
			}
		})
	}
}

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"http", "http://getalts.club/api", false},
		{"https", "https://api.example/getalts", false},
		{"empty", "", true},
		{"no scheme", "getalts.club/api", true},
		{"ftp scheme", "ftp://getalts.club", true},
		{"whitespace", "http://getalts.club/a b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBaseURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBaseURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidateActivationID(t *testing.T) {
	if err := ValidateActivationID(42); err != nil {
		t.Errorf("ValidateActivationID(42) = %v, want nil", err)
	}
	for _, id := range []int64{0, -1} {
		if err := ValidateActivationID(id); err == nil {
			t.Errorf("ValidateActivationID(%d) = nil, want error", id)
		}
	}
}

func TestValidateParam(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"valid", "tg", false},
		{"empty", "", true},
		{"too long", strings.Repeat("x", 129), true},
		{"control char", "ab\x01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateParam("service", tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateParam(service, %q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidRequest) {
				t.Errorf("expected INVALID_REQUEST code, got %v", GetCode(err))
			}
		})
	}
}
