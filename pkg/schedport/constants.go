package schedport

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Load completed successfully (or nothing to do)
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or parameters
	ExitConnectionError = 11 // Failed to connect to the destination database
	ExitApprovalDenied  = 12 // User denied the destructive reset approval
	ExitLoadFailed      = 13 // Load transaction failed and was rolled back
	ExitSchemaFailed    = 14 // Destination schema rebuild failed
)

// ServiceSlotCount is the fixed number of service-name columns on a legacy
// appointment row. The legacy schema encodes a variable-cardinality
// relationship as this fixed width; the cap is a source-system limitation,
// not something to derive dynamically.
const ServiceSlotCount = 11

const (
	// DefaultForceApprovalCountdown is the countdown duration before force approval proceeds.
	DefaultForceApprovalCountdown = 5 * time.Second

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 1 * time.Minute

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts.
	DefaultRetryMaxAttempts = 3
)
