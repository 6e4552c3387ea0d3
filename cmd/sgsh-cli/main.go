package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sgsh-cli",
	Short: "SGSH CLI - Operational tool for the intake chatbot",
	Long: `sgsh-cli is the operational command-line interface for the
Satu Gaji Satu Harapan intake service.

Examples:
  # Re-drive summary emails for rows never stamped as sent
  sgsh-cli emails send-pending

  # Preview which rows would be re-driven
  sgsh-cli emails send-pending --dry-run`,
	Version: version,
}

func init() {
	rootCmd.AddCommand(emailsCmd)
}
