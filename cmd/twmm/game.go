package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"twmm/internal/domain"
	"twmm/internal/source/steam"
	"twmm/internal/storage/config"
)

var gameDetectSave bool

var gameCmd = &cobra.Command{
	Use:   "game",
	Short: "Game management commands",
	Long:  `Commands for listing the supported titles and configuring where they live.`,
}

var gameListCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported titles",
	Long:  `List every supported title with its config key and configured install path.`,
	Args:  cobra.NoArgs,
	RunE:  runGameList,
}

var gameDetectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect installed titles in the Steam libraries",
	Long: `Scan the Steam libraries for supported titles and print what was found.
With --save the install paths are written into settings.yaml.

Examples:
  twmm game detect
  twmm game detect --save`,
	Args: cobra.NoArgs,
	RunE: runGameDetect,
}

var gameSetDefaultCmd = &cobra.Command{
	Use:   "set-default <game-key>",
	Short: "Set the default game",
	Long: `Set the default game so you don't have to pass --game to every command.

Example:
  twmm game set-default warhammer3`,
	Args: cobra.ExactArgs(1),
	RunE: runGameSetDefault,
}

var gameShowDefaultCmd = &cobra.Command{
	Use:   "show-default",
	Short: "Show the current default game",
	Args:  cobra.NoArgs,
	RunE:  runGameShowDefault,
}

func init() {
	gameDetectCmd.Flags().BoolVar(&gameDetectSave, "save", false, "write detected install paths into settings.yaml")

	gameCmd.AddCommand(gameListCmd)
	gameCmd.AddCommand(gameDetectCmd)
	gameCmd.AddCommand(gameSetDefaultCmd)
	gameCmd.AddCommand(gameShowDefaultCmd)
	rootCmd.AddCommand(gameCmd)
}

func runGameList(cmd *cobra.Command, args []string) error {
	cfg, _, err := appDirs()
	if err != nil {
		return err
	}
	settings, err := config.LoadSettings(cfg)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tAPP ID\tINSTALL")
	fmt.Fprintln(w, "---\t----\t------\t-------")
	for _, g := range domain.Games() {
		install := "(not configured)"
		if gp, ok := settings.Games[g.Key]; ok && gp.InstallPath != "" {
			install = gp.InstallPath
		}
		marker := ""
		if g.Key == settings.DefaultGame {
			marker = " *"
		}
		fmt.Fprintf(w, "%s%s\t%s\t%s\t%s\n", g.Key, marker, g.Name, g.SteamAppID, install)
	}
	return w.Flush()
}

func runGameDetect(cmd *cobra.Command, args []string) error {
	cfg, _, err := appDirs()
	if err != nil {
		return err
	}
	settings, err := config.LoadSettings(cfg)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	roots := steam.FindSteamRoots()
	if settings.SteamRoot != "" {
		roots = append([]string{settings.SteamRoot}, roots...)
	}
	if len(roots) == 0 {
		return fmt.Errorf("no Steam installation found; set steam_root in settings.yaml")
	}

	seen := make(map[string]bool)
	var found []steam.Install
	for _, root := range roots {
		installs, err := steam.DetectInstalls(root)
		if err != nil {
			if verbose {
				fmt.Fprintf(os.Stderr, "Warning: scanning %s: %v\n", root, err)
			}
			continue
		}
		for _, inst := range installs {
			if seen[inst.Game.Key] {
				continue
			}
			seen[inst.Game.Key] = true
			found = append(found, inst)
		}
	}

	if len(found) == 0 {
		cmd.Println("No supported titles found in the Steam libraries.")
		return nil
	}

	cmd.Printf("Found %d title(s):\n", len(found))
	for _, inst := range found {
		cmd.Printf("  %s (%s)\n", inst.Game.Name, inst.Game.Key)
		cmd.Printf("      %s\n", inst.InstallPath)
	}

	if !gameDetectSave {
		cmd.Println("\nRun again with --save to record these paths in settings.yaml.")
		return nil
	}

	for _, inst := range found {
		gp := settings.Game(inst.Game.Key)
		gp.InstallPath = inst.InstallPath
		if gp.ContentDir == "" {
			gp.ContentDir = inst.ContentDir
		}
	}
	if err := settings.Save(cfg); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	cmd.Printf("Saved %d install path(s) to settings.yaml\n", len(found))
	return nil
}

func runGameSetDefault(cmd *cobra.Command, args []string) error {
	game, err := domain.GameByKey(args[0])
	if err != nil {
		return fmt.Errorf("game %q: %w", args[0], err)
	}

	cfg, _, err := appDirs()
	if err != nil {
		return err
	}
	settings, err := config.LoadSettings(cfg)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	settings.DefaultGame = game.Key
	if err := settings.Save(cfg); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}

	cmd.Printf("Default game set to: %s (%s)\n", game.Name, game.Key)
	return nil
}

func runGameShowDefault(cmd *cobra.Command, args []string) error {
	cfg, _, err := appDirs()
	if err != nil {
		return err
	}
	settings, err := config.LoadSettings(cfg)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	if settings.DefaultGame == "" {
		cmd.Println("No default game set")
		cmd.Println("Use 'twmm game set-default <game-key>' to set one")
		return nil
	}

	if game, err := domain.GameByKey(settings.DefaultGame); err == nil {
		cmd.Printf("Default game: %s (%s)\n", game.Name, game.Key)
	} else {
		cmd.Printf("Default game: %s\n", settings.DefaultGame)
	}
	return nil
}
