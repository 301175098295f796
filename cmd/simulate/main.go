package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.2.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Artist-token economy simulator",
		Long: `simulate models a continuous-bonding-curve token economy over time:
a synthetic population of subscribers and speculators trades a
market-priced artist token against a reserve asset, and the run records
the resulting price, supply and revenue trajectories as ledger and OHLC
output.`,
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("simulate version %s\n", version)
		},
	}
}
