package errors

import (
	"errors"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "error without cause",
			err:      &Error{Code: ErrCodeConfig, Message: "invalid configuration"},
			expected: "[CONFIG_ERROR] invalid configuration",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeNetwork, "failed to inspect interfaces", errors.New("permission denied")),
			expected: "[NETWORK_ERROR] failed to inspect interfaces: permission denied",
		},
		{
			name:     "parse error with cause",
			err:      NewParseError("unterminated quoted string", errors.New("line 4")),
			expected: "[PARSE_ERROR] unterminated quoted string: line 4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, "wrapper", cause)

	if unwrapped := err.Unwrap(); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestError_Is(t *testing.T) {
	err1 := &Error{Code: ErrCodeConfig, Message: "test error"}
	err2 := &Error{Code: ErrCodeConfig, Message: "another error"}
	err3 := &Error{Code: ErrCodeResolve, Message: "resolve error"}

	if !err1.Is(err2) {
		t.Errorf("Expected errors with same code to match")
	}

	if err1.Is(err3) {
		t.Errorf("Expected errors with different codes to not match")
	}
}

func TestErrorsIs_ThroughWrap(t *testing.T) {
	cause := NewResolveError("lookup failed", errors.New("timeout"))
	err := Wrap(ErrCodeConfig, "smtp_server", cause)

	if !errors.Is(err, &Error{Code: ErrCodeConfig}) {
		t.Errorf("Expected wrapped error to match CONFIG_ERROR")
	}
	if !errors.Is(err, &Error{Code: ErrCodeResolve}) {
		t.Errorf("Expected wrapped error to match RESOLVE_ERROR through cause")
	}
}
