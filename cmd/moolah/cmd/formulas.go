package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/moolah/pkg/finance"
	"github.com/spf13/cobra"
)

var formulasCmd = &cobra.Command{
	Use:   "formulas",
	Short: "List the available formulas and their inputs",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printFormulas(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(formulasCmd)
}

func printFormulas(w io.Writer) {
	for _, f := range finance.Formulas() {
		names := make([]string, 0, len(f.Params))
		for _, p := range f.Params {
			names = append(names, p.Name)
		}
		_, _ = fmt.Fprintf(w, "%s(%s)\n    %s\n", f.Name, strings.Join(names, ", "), f.Description)
		for _, p := range f.Params {
			_, _ = fmt.Fprintf(w, "    %-18s %-8s %s\n", p.Name, p.Kind, p.Description)
		}
	}
}
