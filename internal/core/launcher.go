package core

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"twmm/internal/domain"
)

// Plan is the compiled launch directive text for the current load order:
// the working-directory declarations followed by the pack load and exclusion
// statements, exactly as the game engine reads them.
type Plan struct {
	Directories string // add_working_directory statements, one per line
	Packs       string // mod and exclude_pack_file statements, one per line
}

// Script returns the full launch script body.
func (p Plan) Script() string {
	return p.Directories + p.Packs
}

// CompilePlan turns the resolved load order into launch directives. It is
// pure with respect to the session state: no file I/O, all policy comes from
// the game's capability table.
//
// Mods are processed in order, then movies. Packs outside the game's data
// directory get their containing folder declared first: the secondary
// directory once no matter how many packs share it, workshop content folders
// once per distinct folder. Titles without the exclude command get a masks
// directory declared alongside the secondary one; titles with it get an
// explicit exclude_pack_file statement for every disabled movie pack sitting
// in data or in an already-declared secondary folder.
func (s *Session) CompilePlan() Plan {
	s.cfgMu.RLock()
	mods := make(map[string]domain.Mod, len(s.cfg.Mods))
	for id, m := range s.cfg.Mods {
		mods[id] = *m
	}
	s.cfgMu.RUnlock()

	s.orderMu.RLock()
	order := s.order.Clone()
	s.orderMu.RUnlock()

	var dirs, packs strings.Builder
	secondaryDeclared := false
	contentDeclared := make(map[string]bool)

	emit := func(m domain.Mod) {
		dir := filepath.Dir(m.PrimaryPath())
		switch m.PrimaryLocation() {
		case domain.LocationSecondary:
			if !secondaryDeclared {
				secondaryDeclared = true
				fmt.Fprintf(&dirs, "add_working_directory \"%s\";\n", dir)
				if !s.game.SupportsExcludeCommand {
					// No exclude grammar on this generation; disabled movie
					// packs are masked physically from a parallel directory.
					fmt.Fprintf(&dirs, "add_working_directory \"%s\";\n", filepath.Join(dir, "masks"))
				}
			}
		case domain.LocationContent:
			if !contentDeclared[dir] {
				contentDeclared[dir] = true
				fmt.Fprintf(&dirs, "add_working_directory \"%s\";\n", dir)
			}
		}
		if m.PackType == domain.PackMod {
			fmt.Fprintf(&packs, "mod \"%s\";\n", m.FileName())
		}
	}

	for _, id := range order.Mods {
		if m, ok := mods[id]; ok {
			emit(m)
		}
	}
	for _, id := range order.Movies {
		if m, ok := mods[id]; ok {
			emit(m)
		}
	}

	if s.game.SupportsExcludeCommand {
		// Disabled movie packs the engine would otherwise pick up on its own.
		var excluded []string
		for _, m := range mods {
			if m.PackType != domain.PackMovie || m.Enabled() {
				continue
			}
			loc := m.PrimaryLocation()
			if loc == domain.LocationData || (loc == domain.LocationSecondary && secondaryDeclared) {
				excluded = append(excluded, m.FileName())
			}
		}
		sort.Strings(excluded)
		for _, name := range excluded {
			fmt.Fprintf(&packs, "exclude_pack_file \"%s\";\n", name)
		}
	}

	return Plan{Directories: dirs.String(), Packs: packs.String()}
}

// WriteScript compiles the plan and writes the launch script. An empty path
// means the session's default script location. Titles predating the engine's
// unicode rework only read the script as UTF-16 little-endian; everything
// later takes plain text. The written path is returned.
func (s *Session) WriteScript(path string) (string, error) {
	if path == "" {
		path = s.ScriptPath()
	}
	if path == "" {
		return "", domain.ErrGameNotInstalled
	}

	data := []byte(s.CompilePlan().Script())
	if s.game.RequiresUTF16LE {
		encoded, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("encoding launch script: %w", err)
		}
		data = encoded
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating script dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing launch script: %w", err)
	}

	return path, nil
}
