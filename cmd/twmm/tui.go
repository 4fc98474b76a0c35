package main

import (
	"github.com/spf13/cobra"

	"twmm/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive load order view",
	Long: `Open a terminal UI showing every known mod grouped by category. Toggle
mods, rearrange the manual order, switch ordering modes, rescan, and save
without leaving the view.

Example:
  twmm tui -g warhammer3`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	return tui.Run(s)
}
