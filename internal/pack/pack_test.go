package pack

import (
	"encoding/binary"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"twmm/internal/domain"
)

func writePack(t *testing.T, dir, name string, version byte, flags uint32) string {
	t.Helper()
	header := []byte{'P', 'F', 'H', version, 0, 0, 0, 0}
	binary.LittleEndian.PutUint32(header[4:], flags)
	// Pad past the header so the file looks like it has a table of contents.
	body := append(header, make([]byte, 24)...)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestHeaderOpenerClassify(t *testing.T) {
	tests := []struct {
		name    string
		version byte
		flags   uint32
		want    domain.PackType
	}{
		{"boot.pack", '5', 0, domain.PackBoot},
		{"data.pack", '5', 1, domain.PackRelease},
		{"patch.pack", '4', 2, domain.PackPatch},
		{"mymod.pack", '5', 3, domain.PackMod},
		{"movies.pack", '5', 4, domain.PackMovie},
		{"legacy.pack", '0', 3, domain.PackMod},
		// High bits carry encryption and index flags; only the low nibble
		// names the type.
		{"flagged.pack", '5', 0x0103, domain.PackMod},
		{"weird.pack", '5', 9, domain.PackOther},
	}

	dir := t.TempDir()
	opener := NewHeaderOpener()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePack(t, dir, tt.name, tt.version, tt.flags)
			p, err := opener.Open(path)
			if err != nil {
				t.Fatalf("Open(%s): %v", tt.name, err)
			}
			if p.Type != tt.want {
				t.Errorf("type = %v, want %v", p.Type, tt.want)
			}
			if p.Name != tt.name {
				t.Errorf("name = %q, want %q", p.Name, tt.name)
			}
			if p.Size == 0 {
				t.Error("size not recorded")
			}
			if len(p.Files) != 0 {
				t.Error("header open should not decode payload")
			}
		})
	}
}

func TestHeaderOpenerRejectsGarbage(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "notapack.pack")
	if err := os.WriteFile(bad, []byte("ZIPPYzip"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewHeaderOpener().Open(bad); err == nil {
		t.Error("expected error for wrong magic")
	}

	short := filepath.Join(dir, "short.pack")
	if err := os.WriteFile(short, []byte("PFH"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewHeaderOpener().Open(short); err == nil {
		t.Error("expected error for truncated header")
	}

	if _, err := NewHeaderOpener().Open(filepath.Join(dir, "missing.pack")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file: got %v, want fs.ErrNotExist", err)
	}

	unknown := writePack(t, dir, "future.pack", '9', 3)
	if _, err := NewHeaderOpener().Open(unknown); err == nil {
		t.Error("expected error for unknown format version")
	}
}

func TestMergeAllLaterWins(t *testing.T) {
	a := &Pack{Name: "a.pack", Files: map[string][]byte{
		"db/units":     []byte("a-units"),
		"db/weapons":   []byte("a-weapons"),
		"script/a.lua": []byte("a"),
	}}
	b := &Pack{Name: "b.pack", Files: map[string][]byte{
		"db/units":     []byte("b-units"),
		"script/b.lua": []byte("b"),
	}}

	merged := MergeAll("merged", a, b, nil)
	if got := string(merged.Files["db/units"]); got != "b-units" {
		t.Errorf("db/units = %q, want later pack to win", got)
	}
	if got := string(merged.Files["db/weapons"]); got != "a-weapons" {
		t.Errorf("db/weapons = %q, want earlier value kept", got)
	}
	if len(merged.Files) != 4 {
		t.Errorf("merged file count = %d, want 4", len(merged.Files))
	}

	// Sources must not be mutated.
	if string(a.Files["db/units"]) != "a-units" {
		t.Error("merge mutated source pack")
	}
}
