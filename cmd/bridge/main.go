package main

import (
	"os"

	"github.com/spf13/cobra"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           "bridge",
		Short:         "Integration message bridge for the host application",
		SilenceUsage:  true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (JSON, comments allowed)")

	rootCmd.AddCommand(serveCmd(), resolveCmd(), routesCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
