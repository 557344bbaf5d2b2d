// Command tourplan is the CLI front end for the tournament scheduling
// planner core: seed a SQLite store from a JSON fixture, run the
// pruner and stagger assigner against it, and report the result.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chesscollective/tourplan/pkg/pruner"
)

var rootCmd = &cobra.Command{
	Use:   "tourplan",
	Short: "tourplan — deterministic tournament scheduling planner",
	Long: `tourplan loads candidate tournaments and existing commitments from
SQLite, prunes conflicting candidates, and assigns a stagger offset to
every admitted plan so no two tournaments share an identical start.`,
}

func init() {
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(statusCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tourplan: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps a command error to a process exit status: 2 for a
// usurpation (the caller's priority ordering is wrong), 1 for
// everything else.
func exitCode(err error) int {
	var usurp *pruner.UsurpationError
	if errors.As(err, &usurp) {
		return 2
	}
	return 1
}
