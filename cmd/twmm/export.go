package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the load order as a shareable string",
	Long: `Encode the enabled, orderable mods as a compact string another user can
import. Movie packs are left out; the receiving side derives its own.

Example:
  twmm export -g warhammer3 > order.txt`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	encoded, err := s.ExportOrder()
	if err != nil {
		return fmt.Errorf("exporting order: %w", err)
	}

	fmt.Println(encoded)
	return nil
}
