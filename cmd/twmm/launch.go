package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	launchDryRun bool
	launchScript string
)

var launchCmd = &cobra.Command{
	Use:   "launch",
	Short: "Write the launch script for the selected game",
	Long: `Compile the resolved load order into launch directives and write them to
the script file the game engine reads. Legacy titles get UTF-16LE output;
later titles get plain text.

With --dry-run the directives are printed instead of written.

Examples:
  twmm launch -g warhammer3
  twmm launch -g shogun2 --dry-run`,
	Args: cobra.NoArgs,
	RunE: runLaunch,
}

func init() {
	launchCmd.Flags().BoolVar(&launchDryRun, "dry-run", false, "print the launch directives instead of writing them")
	launchCmd.Flags().StringVar(&launchScript, "script", "", "write the script to this path instead of the game's own")

	rootCmd.AddCommand(launchCmd)
}

func runLaunch(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Resolve(); err != nil {
		return fmt.Errorf("resolving load order: %w", err)
	}

	if launchDryRun {
		plan := s.CompilePlan()
		if plan.Script() == "" {
			cmd.Println("Nothing to load: no mods enabled.")
			return nil
		}
		cmd.Print(plan.Script())
		return nil
	}

	path, err := s.WriteScript(launchScript)
	if err != nil {
		return fmt.Errorf("writing launch script: %w", err)
	}
	if err := s.SaveOrder(); err != nil {
		return fmt.Errorf("saving load order: %w", err)
	}

	order := s.Order()
	cmd.Printf("Wrote %s (%d mod(s), %d movie(s))\n", path, len(order.Mods), len(order.Movies))
	return nil
}
