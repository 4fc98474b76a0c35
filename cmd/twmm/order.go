package main

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strconv"

	"github.com/spf13/cobra"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Show or change the load order",
	Long: `Show the resolved load order, switch between automatic and manual
ordering, or move a mod to a new slot.

Examples:
  twmm order -g warhammer3
  twmm order auto -g warhammer3
  twmm order move better_camera.pack 1 -g warhammer3`,
	Args: cobra.NoArgs,
	RunE: runOrderShow,
}

var orderAutoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Switch to automatic ordering",
	Long:  `Order enabled mods by pack file name. Any manual arrangement is discarded.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOrderMode(cmd, true)
	},
}

var orderManualCmd = &cobra.Command{
	Use:   "manual",
	Short: "Switch to manual ordering",
	Long: `Freeze the current sequence as a manual order. Newly enabled mods append
at the end; use 'order move' to arrange them.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOrderMode(cmd, false)
	},
}

var orderMoveCmd = &cobra.Command{
	Use:   "move <mod-id> <position>",
	Short: "Move a mod to a slot in the manual order",
	Long: `Move a mod to the given 1-based slot. Forces manual mode; movie packs
cannot be moved.

Example:
  twmm order move better_camera.pack 1 -g warhammer3`,
	Args: cobra.ExactArgs(2),
	RunE: runOrderMove,
}

func init() {
	orderCmd.AddCommand(orderAutoCmd)
	orderCmd.AddCommand(orderManualCmd)
	orderCmd.AddCommand(orderMoveCmd)
	rootCmd.AddCommand(orderCmd)
}

func runOrderShow(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	order := s.Order()

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(order)
	}

	mode := "manual"
	if order.Automatic {
		mode = "automatic"
	}
	fmt.Printf("%s: %s order\n", s.Game().Name, mode)

	if len(order.Mods) == 0 && len(order.Movies) == 0 {
		fmt.Println("No mods enabled.")
		return nil
	}

	for i, id := range order.Mods {
		name := id
		if m, ok := s.Mod(id); ok {
			name = m.Name
		}
		fmt.Printf("%3d. %s", i+1, id)
		if name != id {
			fmt.Printf("  (%s)", name)
		}
		fmt.Println()
	}
	for _, id := range order.Movies {
		fmt.Printf("  M. %s\n", id)
	}
	return nil
}

func runOrderMode(cmd *cobra.Command, automatic bool) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	s.SetAutomatic(automatic)
	if err := s.Resolve(); err != nil {
		return fmt.Errorf("resolving load order: %w", err)
	}
	if err := persist(s); err != nil {
		return err
	}

	if automatic {
		cmd.Println("Ordering is now automatic (by pack file name).")
	} else {
		cmd.Println("Ordering is now manual. Use 'twmm order move' to arrange mods.")
	}
	return nil
}

func runOrderMove(cmd *cobra.Command, args []string) error {
	id := args[0]
	pos, err := strconv.Atoi(args[1])
	if err != nil || pos < 1 {
		return fmt.Errorf("position %q: must be a 1-based slot number", args[1])
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	order := s.Order()
	from := slices.Index(order.Mods, id)
	if from < 0 {
		if _, ok := s.Mod(id); !ok {
			return fmt.Errorf("mod %q: not in the registry", id)
		}
		return fmt.Errorf("mod %q: not in the load order (movies and disabled mods cannot be moved)", id)
	}
	if pos > len(order.Mods) {
		return fmt.Errorf("position %d: only %d mod(s) in the order", pos, len(order.Mods))
	}

	s.MoveMod(from, pos-1)
	if err := s.Resolve(); err != nil {
		return fmt.Errorf("resolving load order: %w", err)
	}
	if err := persist(s); err != nil {
		return err
	}

	cmd.Printf("Moved %s to slot %d (manual order)\n", id, pos)
	return nil
}
