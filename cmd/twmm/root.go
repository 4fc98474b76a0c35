package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"twmm/internal/core"
	"twmm/internal/source/steam"
	"twmm/internal/storage/config"
)

var (
	version = "0.3.0"

	// Global flags
	configDir  string
	dataDir    string
	gameKey    string
	verbose    bool
	jsonOutput bool
	noColor    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "twmm",
	Short: "Total War Mod Manager - load order engine for the Total War games",
	Long: `twmm manages mods and their load order for the Total War games on Linux:
it scans the game's data directory, a secondary mod directory, and the Steam
Workshop content folders, resolves a deterministic load order, and writes the
launch script the game engine reads.

Use subcommands for operations. Run 'twmm --help' for available commands.`,
	Version:       version,
	SilenceUsage:  true, // Runtime errors should not print usage
	SilenceErrors: true, // We handle error output in Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default: ~/.config/twmm)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default: ~/.local/share/twmm)")
	rootCmd.PersistentFlags().StringVarP(&gameKey, "game", "g", "", "game key to operate on (e.g. warhammer3)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format (list, order, import)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// colorEnabled returns true if colored output should be used (respects --no-color and NO_COLOR env).
func colorEnabled() bool {
	if noColor {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return true
}

const (
	ansiReset  = "\033[0m"
	ansiGreen  = "\033[32m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
)

func colorGreen(s string) string {
	if !colorEnabled() {
		return s
	}
	return ansiGreen + s + ansiReset
}

func colorRed(s string) string {
	if !colorEnabled() {
		return s
	}
	return ansiRed + s + ansiReset
}

func colorYellow(s string) string {
	if !colorEnabled() {
		return s
	}
	return ansiYellow + s + ansiReset
}

// Execute runs the root command. Exit codes: 0 = success, 1 = error.
// When --json is set and an error occurs, prints {"error":"..."} to stdout.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if jsonOutput {
			fmt.Printf(`{"error":%q}`+"\n", err.Error())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// appDirs returns the resolved config and data directories.
func appDirs() (string, string, error) {
	cfg, data := configDir, dataDir
	if cfg != "" && data != "" {
		return cfg, data, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", "", fmt.Errorf("home directory: %w", err)
	}
	if cfg == "" {
		cfg = filepath.Join(home, ".config", "twmm")
	}
	if data == "" {
		data = filepath.Join(home, ".local", "share", "twmm")
	}
	return cfg, data, nil
}

// newLogger builds the CLI logger: debug-level development output with
// --verbose, warnings only otherwise.
func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// requireGame ensures a game is selected, falling back to the configured
// default.
func requireGame() error {
	if gameKey != "" {
		return nil
	}

	cfg, _, err := appDirs()
	if err != nil {
		return err
	}
	settings, err := config.LoadSettings(cfg)
	if err == nil && settings.DefaultGame != "" {
		gameKey = settings.DefaultGame
		if verbose {
			fmt.Printf("Using default game: %s\n", gameKey)
		}
		return nil
	}

	return errors.New("no game specified; use --game or -g, or set a default with 'twmm game set-default <key>'")
}

// newSession builds the engine session for the selected game. When the game
// has no configured install path, the Steam libraries are searched and any
// hit is used for this invocation without being persisted.
func newSession() (*core.Session, error) {
	if err := requireGame(); err != nil {
		return nil, err
	}

	cfg, data, err := appDirs()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg, 0755); err != nil {
		return nil, fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.MkdirAll(data, 0755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	logger, err := newLogger()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	s, err := core.NewSession(gameKey, core.SessionConfig{
		ConfigDir: cfg,
		DataDir:   data,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}

	if gp := s.Settings().Game(gameKey); gp.InstallPath == "" {
		var roots []string
		if sr := s.Settings().SteamRoot; sr != "" {
			roots = append(roots, sr)
		}
		if inst, err := steam.Locate(s.Game(), roots...); err == nil {
			gp.InstallPath = inst.InstallPath
			if gp.ContentDir == "" {
				gp.ContentDir = inst.ContentDir
			}
			if verbose {
				fmt.Printf("Found %s at %s\n", s.Game().Name, inst.InstallPath)
			}
		}
	}

	return s, nil
}
