package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var profileNoSideEffects bool

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Load order profile commands",
	Long: `Commands for saving and restoring named load order snapshots. A profile
captures the full order and which mods are enabled; loading one replaces the
current checkboxes wholesale.`,
}

var profileSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the current order as a profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileSave,
}

var profileLoadCmd = &cobra.Command{
	Use:   "load <name>",
	Short: "Load a profile",
	Long: `Replace the current load order and checkboxes with a saved profile.
Profile mods no longer installed are dropped with a note.

With --no-side-effects the profile is applied in memory only; nothing is
written to disk.`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileLoad,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profiles",
	Args:  cobra.NoArgs,
	RunE:  runProfileList,
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileDelete,
}

func init() {
	profileLoadCmd.Flags().BoolVar(&profileNoSideEffects, "no-side-effects", false, "apply in memory only, do not write the per-game documents")

	profileCmd.AddCommand(profileSaveCmd)
	profileCmd.AddCommand(profileLoadCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileDeleteCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileSave(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.SaveProfile(args[0]); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}

	order := s.Order()
	cmd.Printf("Saved profile %q (%d mod(s))\n", args[0], len(order.Mods))
	return nil
}

func runProfileLoad(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.LoadProfile(args[0], profileNoSideEffects); err != nil {
		return fmt.Errorf("loading profile: %w", err)
	}

	order := s.Order()
	cmd.Printf("Loaded profile %q (%d mod(s))", args[0], len(order.Mods))
	if profileNoSideEffects {
		cmd.Printf(" %s", colorYellow("[not persisted]"))
	}
	cmd.Println()
	return nil
}

func runProfileList(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	names, err := s.ListProfiles()
	if err != nil {
		return fmt.Errorf("listing profiles: %w", err)
	}

	if len(names) == 0 {
		cmd.Println("No profiles saved.")
		return nil
	}
	for _, name := range names {
		cmd.Println(name)
	}
	return nil
}

func runProfileDelete(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.DeleteProfile(args[0]); err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	cmd.Printf("Deleted profile %q\n", args[0])
	return nil
}
