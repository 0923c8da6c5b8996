package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/schedport/schedport/internal/cli"
	"github.com/schedport/schedport/pkg/schedport"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(schedport.ExitPanic)
		}
	}()

	if os.Getenv("SCHEDPORT_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(schedport.ExitCodeForError(err))
	}
}
