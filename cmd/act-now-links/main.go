package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "act-now-links",
		Short: "URL shortener and social share metadata service",
		Long: "act-now-links — deterministic short links that redirect to long URLs " +
			"with Open Graph and Twitter Card metadata attached.",
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
