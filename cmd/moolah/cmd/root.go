// Package cmd implements the moolah command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "moolah",
	Short: "Exact decimal time-value-of-money calculations",
	Long: `moolah evaluates present value, future value, annuity and perpetuity
formulas with exact decimal arithmetic.

Commands:
  calc      - evaluate the calculations in a configuration file
  serve     - serve the calculation API over HTTP
  formulas  - list the available formulas and their inputs
  version   - print version information`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": %q, \"error\": %q}\n", msg, err.Error())
}
