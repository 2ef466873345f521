package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configDir string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lottosync",
		Short:         "Lottery draw ingestion pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configDir, "config", "./config", "directory holding config.yaml")
	root.AddCommand(newServeCmd(), newIngestCmd(), newResetCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "lottosync:", err)
		os.Exit(1)
	}
}
