package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"twmm/internal/core"
)

var refreshSkipNetwork bool

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Rescan the install locations for mods",
	Long: `Rescan the game's data directory, the secondary mod directory, and the
Steam Workshop content folders, reconcile the registry with what is on disk,
and re-resolve the load order.

Examples:
  twmm refresh --game warhammer3
  twmm refresh -g shogun2 --skip-network`,
	Args: cobra.NoArgs,
	RunE: runRefresh,
}

func init() {
	refreshCmd.Flags().BoolVar(&refreshSkipNetwork, "skip-network", false, "do not refresh workshop metadata over the network")

	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	before := len(s.Order().IDs())

	meta, err := s.RefreshMods(cmd.Context(), core.RefreshOptions{SkipNetwork: refreshSkipNetwork})
	if err != nil {
		return fmt.Errorf("scanning mods: %w", err)
	}
	if err := s.Resolve(); err != nil {
		return fmt.Errorf("resolving load order: %w", err)
	}

	// The metadata refresh runs in the background; for a one-shot CLI
	// invocation we wait for it so the saved registry carries the names.
	if meta != nil {
		if res, ok := <-meta; ok {
			if res.Err != nil {
				fmt.Fprintf(os.Stderr, "Warning: workshop metadata refresh failed: %v\n", res.Err)
			} else if res.Updated > 0 && verbose {
				cmd.Printf("Workshop metadata updated for %d mod(s)\n", res.Updated)
			}
		}
	}

	if err := s.SaveConfig(); err != nil {
		return fmt.Errorf("saving registry: %w", err)
	}
	if err := s.SaveOrder(); err != nil {
		return fmt.Errorf("saving load order: %w", err)
	}

	order := s.Order()
	total := 0
	for _, group := range s.CategorizedMods() {
		total += len(group.Mods)
	}

	cmd.Printf("%s: %d mod(s) known, %d in the load order", s.Game().Name, total, len(order.Mods)+len(order.Movies))
	if delta := len(order.IDs()) - before; delta != 0 {
		cmd.Printf(" (%+d)", delta)
	}
	cmd.Println()
	return nil
}
