package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "schedport",
	Short: "Port legacy clinic scheduling data into PostgreSQL",
	Long: `schedport moves appointment records out of a legacy SQLite scheduling
database and into a normalized PostgreSQL analytical schema: patients and
services are deduplicated, the legacy fixed service slots become a proper
junction table, and the whole batch loads in one all-or-nothing transaction.

Exit Codes:
  0  - Success (including an empty or unreadable source: nothing to load)
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or parameters
  11 - Destination connection failed
  12 - User denied the destructive reset approval
  13 - Load transaction failed (rolled back in full)
  14 - Destination schema rebuild failed`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for schedport")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
