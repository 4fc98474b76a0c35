package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"twmm/internal/core"
)

var modCmd = &cobra.Command{
	Use:   "mod",
	Short: "Mod checkbox commands",
	Long:  `Commands for switching individual mods on and off.`,
}

var modEnableCmd = &cobra.Command{
	Use:   "enable <mod-id>",
	Short: "Enable a mod",
	Long: `Check a mod so it takes part in the load order.

Example:
  twmm mod enable better_camera.pack -g warhammer3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runModToggle(cmd, args[0], true)
	},
}

var modDisableCmd = &cobra.Command{
	Use:   "disable <mod-id>",
	Short: "Disable a mod",
	Long: `Uncheck a mod so it drops out of the load order. Disabling a movie pack
additionally masks or excludes it at launch, depending on the title.

Example:
  twmm mod disable better_camera.pack -g warhammer3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runModToggle(cmd, args[0], false)
	},
}

func init() {
	modCmd.AddCommand(modEnableCmd)
	modCmd.AddCommand(modDisableCmd)
	rootCmd.AddCommand(modCmd)
}

func runModToggle(cmd *cobra.Command, id string, enabled bool) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	m, ok := s.Mod(id)
	if !ok {
		return fmt.Errorf("mod %q: not in the registry (run 'twmm refresh' first)", id)
	}
	if !m.CanToggle() {
		return fmt.Errorf("mod %q: movie packs in the game data directory are always loaded", id)
	}

	if err := s.SetModEnabled(id, enabled); err != nil {
		return fmt.Errorf("mod %q: %w", id, err)
	}
	if err := s.Resolve(); err != nil {
		return fmt.Errorf("resolving load order: %w", err)
	}
	if err := persist(s); err != nil {
		return err
	}

	if enabled {
		cmd.Printf("Enabled: %s\n", colorGreen(m.Name))
	} else {
		cmd.Printf("Disabled: %s\n", colorYellow(m.Name))
	}
	return nil
}

// persist writes both per-game documents; every mutating verb ends here.
func persist(s *core.Session) error {
	if err := s.SaveConfig(); err != nil {
		return fmt.Errorf("saving registry: %w", err)
	}
	if err := s.SaveOrder(); err != nil {
		return fmt.Errorf("saving load order: %w", err)
	}
	return nil
}
