package schedport

import "context"

// Approver handles user interaction for approval workflows, particularly the
// destructive schema reset that precedes every load.
//
// Implementations:
//   - ForcedApprover: Shows countdown and automatically approves
//   - InteractiveApprover: Prompts user to type the database name for confirmation
type Approver interface {
	// RequestApproval prompts for confirmation before destroying and
	// rebuilding the destination schema.
	//
	// Parameters:
	//   - ctx: Context for cancellation
	//   - dbName: Name of the database whose schema will be rebuilt
	//
	// Returns:
	//   - bool: true if approved, false if denied
	//   - error: Any error that occurred during the approval process
	RequestApproval(ctx context.Context, dbName string) (bool, error)
}
