// Package pack defines the container collaborator boundary. The core only
// needs a pack's identity, header classification, and (when a full codec is
// plugged in) its decoded payload; the binary table format itself is decoded
// by an external codec, not here.
package pack

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"twmm/internal/domain"
)

// Pack is one opened container. Files holds the decoded payload keyed by
// path-within-pack; it stays empty when only the header was read.
type Pack struct {
	Name     string
	Path     string
	Type     domain.PackType
	Size     int64
	Modified time.Time
	Files    map[string][]byte
}

// Opener turns an on-disk path into an opened container.
type Opener interface {
	Open(path string) (*Pack, error)
}

// headerLen covers the magic and the type flag word.
const headerLen = 8

// typeMask extracts the container type from the header flag word.
const typeMask = 0x0F

// HeaderOpener reads just the pack preamble: enough to identify and classify
// a container without decoding its table of contents.
type HeaderOpener struct{}

// NewHeaderOpener returns an Opener that classifies packs by header only.
func NewHeaderOpener() *HeaderOpener {
	return &HeaderOpener{}
}

// Open reads the preamble of the pack at path.
func (HeaderOpener) Open(path string) (*Pack, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pack: %w", err)
	}
	defer f.Close()

	var header [headerLen]byte
	if _, err := io.ReadFull(f, header[:]); err != nil {
		return nil, fmt.Errorf("reading pack header %s: %w", filepath.Base(path), err)
	}
	typ, err := classify(header)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", filepath.Base(path), err)
	}

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat pack: %w", err)
	}

	return &Pack{
		Name:     filepath.Base(path),
		Path:     path,
		Type:     typ,
		Size:     info.Size(),
		Modified: info.ModTime(),
	}, nil
}

// classify maps the header preamble to a pack type. The first four bytes are
// the format magic ("PFH" plus a version digit); the next four are a
// little-endian flag word whose low nibble is the container type.
func classify(header [headerLen]byte) (domain.PackType, error) {
	if header[0] != 'P' || header[1] != 'F' || header[2] != 'H' {
		return domain.PackOther, fmt.Errorf("not a pack file (magic %q)", header[:4])
	}
	switch header[3] {
	case '0', '2', '3', '4', '5', '6':
	default:
		return domain.PackOther, fmt.Errorf("unknown pack format version %q", header[3])
	}
	flags := binary.LittleEndian.Uint32(header[4:8])
	typ := domain.PackType(flags & typeMask)
	if typ > domain.PackMovie {
		typ = domain.PackOther
	}
	return typ, nil
}

// Merge folds src's payload into dst; files present in both are taken from
// src. The merged container keeps dst's identity.
func Merge(dst, src *Pack) {
	if src == nil || len(src.Files) == 0 {
		return
	}
	if dst.Files == nil {
		dst.Files = make(map[string][]byte, len(src.Files))
	}
	for name, data := range src.Files {
		dst.Files[name] = data
	}
}

// MergeAll merges the given containers in order into a fresh container named
// name. Later containers override earlier ones file by file.
func MergeAll(name string, packs ...*Pack) *Pack {
	merged := &Pack{Name: name, Files: make(map[string][]byte)}
	for _, p := range packs {
		Merge(merged, p)
	}
	return merged
}
