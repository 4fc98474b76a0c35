package domain

import (
	"path/filepath"
	"time"
)

// PackType classifies a pack container by the type flag in its header.
// The numeric values mirror the on-disk header flag.
type PackType int

const (
	PackBoot PackType = iota
	PackRelease
	PackPatch
	PackMod
	PackMovie
	PackOther
)

func (t PackType) String() string {
	switch t {
	case PackBoot:
		return "boot"
	case PackRelease:
		return "release"
	case PackPatch:
		return "patch"
	case PackMod:
		return "mod"
	case PackMovie:
		return "movie"
	default:
		return "other"
	}
}

// ParsePackType converts a string to PackType
func ParsePackType(s string) PackType {
	switch s {
	case "boot":
		return PackBoot
	case "release":
		return PackRelease
	case "patch":
		return PackPatch
	case "mod":
		return PackMod
	case "movie":
		return PackMovie
	default:
		return PackOther
	}
}

// Location identifies which of the recognized install locations holds a copy
// of a mod's pack file.
type Location int

const (
	LocationNone      Location = iota // not under any recognized location
	LocationData                      // the game's own data directory
	LocationSecondary                 // the user-configured secondary mod directory
	LocationContent                   // a Steam Workshop content directory
)

func (l Location) String() string {
	switch l {
	case LocationData:
		return "data"
	case LocationSecondary:
		return "secondary"
	case LocationContent:
		return "content"
	default:
		return "none"
	}
}

// ModPath is one on-disk copy of a mod's pack file together with the install
// location it resolved under. Copies are ordered by location priority; index 0
// is the primary copy used for reading and merging.
type ModPath struct {
	Path     string   `json:"path"`
	Location Location `json:"location"`
}

// Mod is one installable content unit known to a game.
type Mod struct {
	ID       string    `json:"id"`   // pack file name, or the provider id for legacy wrapped packs
	Name     string    `json:"name"` // display name; equals ID when nothing better is known
	Paths    []ModPath `json:"paths"`
	PackType PackType  `json:"pack_type"`
	Checked  bool      `json:"checked"` // the persisted user checkbox; see Enabled

	// Workshop provenance, used for display and staleness comparison only.
	Creator     string    `json:"creator,omitempty"`
	SteamID     string    `json:"steam_id,omitempty"`
	FileSize    int64     `json:"file_size,omitempty"`
	TimeCreated time.Time `json:"time_created,omitzero"`
	TimeUpdated time.Time `json:"time_updated,omitzero"`
}

// PrimaryPath returns the path of the primary copy, or "" when the mod has no
// resolvable copy left.
func (m *Mod) PrimaryPath() string {
	if len(m.Paths) == 0 {
		return ""
	}
	return m.Paths[0].Path
}

// PrimaryLocation returns the install location of the primary copy.
func (m *Mod) PrimaryLocation() Location {
	if len(m.Paths) == 0 {
		return LocationNone
	}
	return m.Paths[0].Location
}

// FileName returns the base file name of the primary copy. This is the name
// the engine loads the pack by, and the sort key for automatic ordering.
func (m *Mod) FileName() string {
	if p := m.PrimaryPath(); p != "" {
		return filepath.Base(p)
	}
	return m.ID
}

// CanToggle reports whether the user checkbox has any effect. Movie packs
// sitting directly in the game's data directory are loaded unconditionally by
// the engine and cannot be switched off from here.
func (m *Mod) CanToggle() bool {
	return !(m.PackType == PackMovie && m.PrimaryLocation() == LocationData)
}

// Enabled reports whether the mod takes part in resolution: it must have at
// least one resolvable copy, and the user must not have unchecked it (unless
// it is not toggleable at all, in which case it is always on).
func (m *Mod) Enabled() bool {
	if len(m.Paths) == 0 {
		return false
	}
	if !m.CanToggle() {
		return true
	}
	return m.Checked
}

// ShareableMod is the minimal wire record used when exchanging a load order
// between users. Hash is the content digest of the primary copy at export
// time; it is empty on records imported from the legacy text format.
type ShareableMod struct {
	ID      string `json:"id"`
	Hash    string `json:"hash,omitempty"`
	SteamID string `json:"steam_id,omitempty"`
}
