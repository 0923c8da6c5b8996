package schedport

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil error", nil, ExitSuccess},
		{"invalid config", ErrInvalidConfig, ExitConfigError},
		{"wrapped invalid config", fmt.Errorf("bad flags: %w", ErrInvalidConfig), ExitConfigError},
		{"approval denied", ErrApprovalDenied, ExitApprovalDenied},
		{"schema rebuild", fmt.Errorf("%w: drop failed", ErrSchemaRebuild), ExitSchemaFailed},
		{"load failed", fmt.Errorf("%w: record 3", ErrLoadFailed), ExitLoadFailed},
		{"missing generated id", ErrMissingGeneratedID, ExitLoadFailed},
		{"connection failed", ErrConnectionFailed, ExitConnectionError},
		{"unsupported auth method", ErrUnsupportedAuthMethod, ExitConfigError},
		{"connect message pattern", errors.New("failed to connect to database"), ExitConnectionError},
		{"refused message pattern", errors.New("dial tcp: connection refused"), ExitConnectionError},
		{"unknown host pattern", errors.New("lookup db: no such host"), ExitConnectionError},
		{"unclassified", errors.New("something else"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCodeForError(tt.err); got != tt.expected {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.expected)
			}
		})
	}
}

func TestExitCodeForError_ExtractionFailedIsNotFatal(t *testing.T) {
	// Extraction failures are absorbed before they can reach exit-code
	// mapping; if one leaks through it must not claim a semantic code.
	if got := ExitCodeForError(ErrExtractionFailed); got != ExitGeneralError {
		t.Errorf("ExitCodeForError(ErrExtractionFailed) = %d, want %d", got, ExitGeneralError)
	}
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrInvalidConfig, ErrExtractionFailed, ErrApprovalDenied,
		ErrSchemaRebuild, ErrLoadFailed, ErrMissingGeneratedID,
		ErrUnsupportedAuthMethod, ErrConnectionFailed,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("Sentinel %v matches %v", a, b)
			}
		}
	}
}
