package main

import (
	"github.com/spf13/cobra"
)

var (
	domainName string
	infix      bool
	verbose    bool

	rootCmd = &cobra.Command{
		Use:   "calc [expression...]",
		Short: "Evaluate prefix expressions over real or complex numbers",
		Long: `calc evaluates expressions written in prefix notation, e.g. "+ 2+3i 3+2i".
With no arguments it reads one expression per line from stdin.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE:         runCalc,
	}

	opsCmd = &cobra.Command{
		Use:   "ops",
		Short: "List the operation names known to the domain",
		Args:  cobra.NoArgs,
		RunE:  listOps,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&domainName, "domain", "d", "real", "number domain: real or complex")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
	rootCmd.Flags().BoolVarP(&infix, "infix", "i", false, "read infix expressions such as \"(1 + 2) * 3\"")
	rootCmd.AddCommand(opsCmd)
}
