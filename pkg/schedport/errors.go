package schedport

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	count, err := loader.Load(ctx, config, batch)
//	if errors.Is(err, schedport.ErrApprovalDenied) {
//	    // Handle user denying the destructive reset
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrExtractionFailed indicates the source database could not be read.
	// The load orchestration above treats this as "no data", not as a run
	// failure, so it never maps to a non-zero exit code.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrApprovalDenied indicates the user denied the destructive reset.
	ErrApprovalDenied = errors.New("approval denied")

	// ErrSchemaRebuild indicates the destructive schema reset failed.
	ErrSchemaRebuild = errors.New("schema rebuild failed")

	// ErrLoadFailed indicates the load transaction failed and was rolled back.
	ErrLoadFailed = errors.New("load failed")

	// ErrMissingGeneratedID indicates an insert did not yield a generated
	// identifier. The pipeline never proceeds with an unresolved reference.
	ErrMissingGeneratedID = errors.New("insert returned no generated id")

	// ErrUnsupportedAuthMethod indicates the requested authentication method is not supported.
	ErrUnsupportedAuthMethod = errors.New("unsupported authentication method")

	// ErrConnectionFailed indicates the destination connection failed.
	ErrConnectionFailed = errors.New("connection failed")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Check for sentinel errors
	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	case errors.Is(err, ErrSchemaRebuild):
		return ExitSchemaFailed
	case errors.Is(err, ErrMissingGeneratedID), errors.Is(err, ErrLoadFailed):
		return ExitLoadFailed
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrUnsupportedAuthMethod):
		return ExitConfigError
	}

	// Check for common connection error patterns
	errStr := err.Error()
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
