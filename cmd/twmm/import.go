package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <order-string | @file>",
	Short: "Import a shareable load order",
	Long: `Decode a shareable order string and apply it: listed mods present locally
are enabled and become the manual order, mods missing locally are reported.
Both the native encoded format and the plain 'mod "name.pack";' list are
accepted. Prefix a file path with @ to read the string from a file.

Examples:
  twmm import -g warhammer3 H4sIAAAAA...
  twmm import -g warhammer3 @order.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	input := args[0]
	if strings.HasPrefix(input, "@") {
		data, err := os.ReadFile(strings.TrimPrefix(input, "@"))
		if err != nil {
			return fmt.Errorf("reading order file: %w", err)
		}
		input = string(data)
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	report, err := s.ImportOrder(input)
	if err != nil {
		return fmt.Errorf("importing order: %w", err)
	}
	if err := persist(s); err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	cmd.Printf("Applied %d mod(s) as the manual order\n", len(report.Applied))
	for _, id := range report.Applied {
		cmd.Printf("  %s %s\n", colorGreen("+"), id)
	}
	if len(report.Missing) > 0 {
		cmd.Printf("Missing locally (%d), skipped:\n", len(report.Missing))
		for _, id := range report.Missing {
			cmd.Printf("  %s %s\n", colorRed("-"), id)
		}
	}
	if len(report.HashMismatch) > 0 {
		cmd.Printf("Local copies differ from the exporter's (%d):\n", len(report.HashMismatch))
		for _, id := range report.HashMismatch {
			cmd.Printf("  %s %s\n", colorYellow("~"), id)
		}
	}
	return nil
}
