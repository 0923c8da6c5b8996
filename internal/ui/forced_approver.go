package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schedport/schedport/pkg/schedport"
)

// ForcedApprover implements the Approver interface for forced
// (non-interactive) approval. It displays a countdown and automatically
// approves after it, used when the --force flag is provided.
type ForcedApprover struct {
	verbose bool

	// output and sleepFn are injectable so tests run without a terminal
	// and without real delays.
	output  io.Writer
	sleepFn func(time.Duration)
}

// NewForcedApprover creates a new ForcedApprover.
func NewForcedApprover(verbose bool) schedport.Approver {
	return &ForcedApprover{
		verbose: verbose,
		output:  os.Stderr,
		sleepFn: time.Sleep,
	}
}

// RequestApproval displays a countdown and automatically approves after it.
func (a *ForcedApprover) RequestApproval(ctx context.Context, dbName string) (bool, error) {
	fmt.Fprintf(a.output, "\n⚠️  --force: the scheduling tables in database '%s' will be destroyed and rebuilt.\n", dbName)

	countdownSeconds := int(schedport.DefaultForceApprovalCountdown.Seconds())
	for i := countdownSeconds; i > 0; i-- {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		default:
			fmt.Fprintf(a.output, "\rStarting in: %d seconds... (Press Ctrl+C to cancel)", i)
			a.sleepFn(1 * time.Second)
		}
	}

	fmt.Fprintf(a.output, "\r✓ Proceeding with the destructive reset...                        \n")
	return true, nil
}

// Verify ForcedApprover implements the Approver interface at compile time
var _ schedport.Approver = (*ForcedApprover)(nil)
