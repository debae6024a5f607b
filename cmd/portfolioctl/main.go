// Package main implements portfolioctl, an operator CLI for the portfolio API and its store.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// serverURL is the base URL of a running portfolio API
	serverURL string
	version   = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "portfolioctl",
	Short: "Inspect and maintain portfolio projects",
	Long: `portfolioctl lists projects from a running portfolio API and
checks or imports project store documents.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "portfolio API base URL")
	rootCmd.AddCommand(newProjectsCmd())
	rootCmd.AddCommand(newStoreCmd())
}
