package main

import (
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "schedctl",
		Short:        "Staff scheduler CLI",
		Long:         `Run the shift scheduler on local request files, plan departments and mint API keys.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(optimizeCmd())
	rootCmd.AddCommand(planCmd())
	rootCmd.AddCommand(keygenCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
