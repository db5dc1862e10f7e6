package main

import (
	"fmt"
	"os"

	"gassnap/internal/snapshot"

	"github.com/spf13/cobra"
)

var exit = os.Exit

// snapshotFile is the fixed input path, written by the gas benchmark
// harness into the working directory.
const snapshotFile = ".gas-snapshot"

// Compound mint tests for these collections run n mints inside a single
// transaction, so an intrinsic gas charge is added per extra mint to make
// them comparable with one-transaction-per-mint collections.
var collectionsToAdjust = []string{"solmateErc721", "edition"}

const intrinsicGas = 21000

var rootCmd = &cobra.Command{
	Use:   "gassnap",
	Short: "Pivot a gas snapshot into a per-collection benchmark table",
	Long: `Reads the .gas-snapshot file from the working directory, aggregates its
GasBench records, and prints a tab-separated table with one row per
collection and one column per test. Batch mint benchmarks of known
compound collections are adjusted for intrinsic transaction gas;
each adjustment is reported on stderr.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(snapshotFile)
	if err != nil {
		return fmt.Errorf("could not open gas snapshot: %w", err)
	}
	defer f.Close()

	reporter := snapshot.NewReporter(collectionsToAdjust, intrinsicGas, cmd.ErrOrStderr())

	table, tests, err := reporter.Parse(f)
	if err != nil {
		return err
	}
	return reporter.Render(cmd.OutOrStdout(), table, tests)
}

// Execute runs the root command and terminates the process with a non-zero
// status on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}
}
