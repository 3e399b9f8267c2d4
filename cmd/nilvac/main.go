// Command nilvac is the Nilva compiler driver CLI.
//
// Grounded on the teacher's cmd/ailang/main.go CLI shell (version info,
// colored output) and the pack's dominant cobra-based multi-subcommand
// pattern, generalized from the teacher's flag-based switch statement.
package main

import (
	"fmt"
	"os"

	"github.com/nilva-lang/nilva/cmd/nilvac/cmd"
)

// Version info, set by ldflags during build — same convention as the
// teacher's cmd/ailang/main.go.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "internal compiler error: %v\n", r)
			os.Exit(2)
		}
	}()

	cmd.Version = Version
	cmd.Commit = Commit
	cmd.BuildTime = BuildTime

	if err := cmd.Root().Execute(); err != nil {
		os.Exit(1)
	}
}
