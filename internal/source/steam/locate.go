package steam

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"twmm/internal/domain"
)

// Install is one Total War title found in a Steam library.
type Install struct {
	Game        domain.GameDef
	InstallPath string // <library>/steamapps/common/<dir>
	ContentDir  string // <library>/steamapps/workshop/content/<appid>
}

// FindSteamRoots returns candidate Steam installation roots in search order.
func FindSteamRoots() []string {
	home, _ := os.UserHomeDir()
	candidates := []string{
		filepath.Join(home, ".steam", "steam"),
		filepath.Join(home, ".local", "share", "Steam"),
		filepath.Join(home, ".var", "app", "com.valvesoftware.Steam", ".local", "share", "Steam"),
	}
	if p := os.Getenv("STEAM_ROOT"); p != "" {
		candidates = append([]string{p}, candidates...)
	}
	var out []string
	for _, p := range candidates {
		if p == "" {
			continue
		}
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			continue
		}
		out = append(out, p)
	}
	return out
}

// LibraryPaths returns all Steam library paths under a Steam root. A root
// without a libraryfolders.vdf is itself the single library.
func LibraryPaths(steamRoot string) ([]string, error) {
	vdfPath := filepath.Join(steamRoot, "steamapps", "libraryfolders.vdf")
	data, err := os.ReadFile(vdfPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{steamRoot}, nil
		}
		return nil, fmt.Errorf("reading libraryfolders: %w", err)
	}
	root, err := ParseVDF(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing libraryfolders: %w", err)
	}
	paths := libraryPaths(root)
	if len(paths) == 0 {
		return []string{steamRoot}, nil
	}
	return paths, nil
}

// DetectInstalls scans the libraries under steamRoot for supported titles.
func DetectInstalls(steamRoot string) ([]Install, error) {
	libraries, err := LibraryPaths(steamRoot)
	if err != nil {
		return nil, err
	}

	var found []Install
	for _, libPath := range libraries {
		steamapps := filepath.Join(libPath, "steamapps")
		entries, err := os.ReadDir(steamapps)
		if err != nil {
			continue
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || !strings.HasPrefix(name, "appmanifest_") || !strings.HasSuffix(name, ".acf") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(steamapps, name))
			if err != nil {
				continue
			}
			manifest, err := ParseAppManifest(string(data))
			if err != nil || manifest.AppID == "" || manifest.InstallDir == "" {
				continue
			}
			game, ok := domain.GameByAppID(manifest.AppID)
			if !ok {
				continue
			}
			installPath := filepath.Join(steamapps, "common", manifest.InstallDir)
			if _, err := os.Stat(installPath); err != nil {
				continue
			}
			found = append(found, Install{
				Game:        game,
				InstallPath: installPath,
				ContentDir:  ContentDir(installPath, game.SteamAppID),
			})
		}
	}
	return found, nil
}

// Locate finds the install of one title, searching the given roots (or the
// default candidates when none are given). The first hit wins.
func Locate(game domain.GameDef, roots ...string) (Install, error) {
	if len(roots) == 0 {
		roots = FindSteamRoots()
	}
	for _, root := range roots {
		installs, err := DetectInstalls(root)
		if err != nil {
			continue
		}
		for _, inst := range installs {
			if inst.Game.Key == game.Key {
				return inst, nil
			}
		}
	}
	return Install{}, domain.ErrGameNotInstalled
}

// ContentDir derives the workshop content directory for a title from its
// install path. Installs live at <library>/steamapps/common/<dir>; workshop
// items live beside them at <library>/steamapps/workshop/content/<appid>.
func ContentDir(installPath, appID string) string {
	return filepath.Join(installPath, "..", "..", "workshop", "content", appID)
}
