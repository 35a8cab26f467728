// Package cli provides the command-line interface for sarathi.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/devyanip/sarathi/internal/client"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	serverURL string

	// API client, created before every command runs.
	api *client.Client
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "sarathi",
	Short: "Converse with Krishna from your terminal",
	Long: `Sarathi is a client for the Sarathi guidance server: an AI rendition
of Krishna drawing on the Bhagavad Gita for life questions.

All commands talk to a running sarathi-server; start one with sarathi-server.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		api = client.New(serverURL)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "server URL (default: SARATHI_SERVER_URL or http://localhost:8480)")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(startersCmd)
	rootCmd.AddCommand(conversationsCmd)
	rootCmd.AddCommand(sayCmd)
}
