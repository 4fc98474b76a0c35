package core

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"twmm/internal/domain"
)

// legacyMarker introduces a pack statement in the old plain-text mod list
// grammar, the same statement the launch scripts use.
const legacyMarker = "mod"

// ExportOrder serializes the resolved orderable mods into a portable
// ASCII-safe string: the enabled, locatable mods in their current order, each
// with a content digest of its primary copy. Movies are never exported.
// Hashing and compression run on the background worker.
func (s *Session) ExportOrder() (string, error) {
	s.cfgMu.RLock()
	s.orderMu.RLock()
	records := make([]domain.ShareableMod, 0, len(s.order.Mods))
	paths := make([]string, 0, len(s.order.Mods))
	for _, id := range s.order.Mods {
		m, ok := s.cfg.Mods[id]
		if !ok || !m.Enabled() || len(m.Paths) == 0 {
			continue
		}
		records = append(records, domain.ShareableMod{ID: id, SteamID: m.SteamID})
		paths = append(paths, m.PrimaryPath())
	}
	s.orderMu.RUnlock()
	s.cfgMu.RUnlock()

	var out string
	err := s.worker.Do(func() error {
		for i := range records {
			hash, err := hashFile(paths[i])
			if err != nil {
				s.logger.Debug("hashing pack failed", zap.String("id", records[i].ID), zap.Error(err))
				continue
			}
			records[i].Hash = hash
		}
		encoded, err := EncodeShareable(records)
		if err != nil {
			return err
		}
		out = encoded
		return nil
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

// ImportOrder decodes a shared order string (native or legacy grammar) and
// applies it to the session. The report lists what could not be matched.
func (s *Session) ImportOrder(input string) (*ImportReport, error) {
	var records []domain.ShareableMod
	err := s.worker.Do(func() error {
		var err error
		records, err = DecodeShareable(input)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.ApplyShareableOrder(records)
}

// ImportReport is the reconciliation outcome of an import. Missing and
// mismatched entries are warnings; everything matched was applied.
type ImportReport struct {
	Applied      []string // ids enabled and placed, in order
	Missing      []string // ids not present in the local registry
	HashMismatch []string // ids whose local primary copy hashes differently
}

// ApplyShareableOrder reconciles imported records against the local registry:
// matched ids are enabled and become the new manual order, ids absent locally
// are reported missing, and a record carrying a hash that differs from the
// local copy is reported as a mismatch but still applied. The session is
// re-resolved before returning; warnings never abort the import.
func (s *Session) ApplyShareableOrder(records []domain.ShareableMod) (*ImportReport, error) {
	report := &ImportReport{}

	// Hash comparisons read files, so collect the local paths first and
	// compute digests outside the registry lock.
	s.cfgMu.RLock()
	localPaths := make(map[string]string, len(records))
	for _, r := range records {
		if m, ok := s.cfg.Mods[r.ID]; ok {
			localPaths[r.ID] = m.PrimaryPath()
		}
	}
	s.cfgMu.RUnlock()

	localHashes := make(map[string]string, len(records))
	err := s.worker.Do(func() error {
		for _, r := range records {
			if r.Hash == "" {
				continue
			}
			path, ok := localPaths[r.ID]
			if !ok || path == "" {
				continue
			}
			hash, err := hashFile(path)
			if err != nil {
				s.logger.Debug("hashing local pack failed", zap.String("id", r.ID), zap.Error(err))
				continue
			}
			localHashes[r.ID] = hash
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cfgMu.Lock()
	for _, r := range records {
		m, ok := s.cfg.Mods[r.ID]
		if !ok {
			report.Missing = append(report.Missing, r.ID)
			continue
		}
		if r.Hash != "" {
			if local, ok := localHashes[r.ID]; ok && local != r.Hash {
				report.HashMismatch = append(report.HashMismatch, r.ID)
			}
		}
		m.Checked = true
		report.Applied = append(report.Applied, r.ID)
	}
	s.cfgMu.Unlock()

	// An imported order is externally specified: it is the manual order now.
	s.orderMu.Lock()
	s.order.Automatic = false
	s.order.Mods = append([]string(nil), report.Applied...)
	s.orderMu.Unlock()

	if err := s.Resolve(); err != nil {
		return nil, err
	}
	return report, nil
}

// EncodeShareable renders records in the native wire format: JSON, gzip,
// base64url.
func EncodeShareable(records []domain.ShareableMod) (string, error) {
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("marshaling shared order: %w", err)
	}
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(data); err != nil {
		return "", fmt.Errorf("compressing shared order: %w", err)
	}
	if err := gz.Close(); err != nil {
		return "", fmt.Errorf("compressing shared order: %w", err)
	}
	return base64.URLEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeShareable parses a shared order string. The native format is tried
// first; anything that fails it is handed to the legacy plain-text grammar.
func DecodeShareable(input string) ([]domain.ShareableMod, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("empty shared order")
	}

	records, nativeErr := decodeNative(input)
	if nativeErr == nil {
		return records, nil
	}
	if legacy := parseLegacyOrder(input); len(legacy) > 0 {
		return legacy, nil
	}
	return nil, fmt.Errorf("parsing shared order: %w", nativeErr)
}

func decodeNative(input string) ([]domain.ShareableMod, error) {
	raw, err := base64.URLEncoding.DecodeString(input)
	if err != nil {
		return nil, fmt.Errorf("decoding: %w", err)
	}
	gz, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decompressing: %w", err)
	}
	defer gz.Close()
	data, err := io.ReadAll(gz)
	if err != nil {
		return nil, fmt.Errorf("decompressing: %w", err)
	}
	var records []domain.ShareableMod
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshaling: %w", err)
	}
	return records, nil
}

// parseLegacyOrder reads the old line-oriented mod list: every line with the
// marker token followed by a quoted identifier yields one record with no hash
// and no workshop id.
func parseLegacyOrder(input string) []domain.ShareableMod {
	var records []domain.ShareableMod
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, legacyMarker) {
			continue
		}
		rest := strings.TrimSpace(strings.TrimPrefix(line, legacyMarker))
		if !strings.HasPrefix(rest, `"`) {
			continue
		}
		end := strings.Index(rest[1:], `"`)
		if end <= 0 {
			continue
		}
		records = append(records, domain.ShareableMod{ID: rest[1 : end+1]})
	}
	return records
}

// hashFile digests a pack's content for cross-machine comparison.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
