package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Category management commands",
	Long: `Commands for organizing mods into categories. Categories only affect how
lists are grouped; they never change the load order.`,
}

var categoryCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoryCreate,
}

var categoryRenameCmd = &cobra.Command{
	Use:   "rename <old-name> <new-name>",
	Short: "Rename a category",
	Args:  cobra.ExactArgs(2),
	RunE:  runCategoryRename,
}

var categoryDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a category",
	Long:  `Delete a category. Its mods move back to the default category.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoryDelete,
}

var categoryMoveCmd = &cobra.Command{
	Use:   "move <mod-id> <category>",
	Short: "Move a mod into a category",
	Args:  cobra.ExactArgs(2),
	RunE:  runCategoryMove,
}

func init() {
	categoryCmd.AddCommand(categoryCreateCmd)
	categoryCmd.AddCommand(categoryRenameCmd)
	categoryCmd.AddCommand(categoryDeleteCmd)
	categoryCmd.AddCommand(categoryMoveCmd)
	rootCmd.AddCommand(categoryCmd)
}

func runCategoryCreate(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.CreateCategory(args[0]); err != nil {
		return fmt.Errorf("category %q: %w", args[0], err)
	}
	if err := s.SaveConfig(); err != nil {
		return fmt.Errorf("saving registry: %w", err)
	}
	cmd.Printf("Created category: %s\n", args[0])
	return nil
}

func runCategoryRename(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.RenameCategory(args[0], args[1]); err != nil {
		return fmt.Errorf("category %q: %w", args[0], err)
	}
	if err := s.SaveConfig(); err != nil {
		return fmt.Errorf("saving registry: %w", err)
	}
	cmd.Printf("Renamed category: %s -> %s\n", args[0], args[1])
	return nil
}

func runCategoryDelete(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.DeleteCategory(args[0]); err != nil {
		return fmt.Errorf("category %q: %w", args[0], err)
	}
	if err := s.SaveConfig(); err != nil {
		return fmt.Errorf("saving registry: %w", err)
	}
	cmd.Printf("Deleted category: %s\n", args[0])
	return nil
}

func runCategoryMove(cmd *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.MoveModToCategory(args[0], args[1]); err != nil {
		return fmt.Errorf("moving %q: %w", args[0], err)
	}
	if err := s.SaveConfig(); err != nil {
		return fmt.Errorf("saving registry: %w", err)
	}
	cmd.Printf("Moved %s into %s\n", args[0], args[1])
	return nil
}
