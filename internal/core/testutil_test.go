package core_test

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"twmm/internal/core"
	"twmm/internal/domain"
	"twmm/internal/workshop"

	"github.com/stretchr/testify/require"
)

// gameDirs is the fabricated install layout one test session scans.
type gameDirs struct {
	install   string
	data      string
	secondary string
	content   string
}

func newSession(t *testing.T, gameKey string, cfg core.SessionConfig) *core.Session {
	t.Helper()
	if cfg.ConfigDir == "" {
		cfg.ConfigDir = t.TempDir()
	}
	if cfg.DataDir == "" {
		cfg.DataDir = t.TempDir()
	}
	s, err := core.NewSession(gameKey, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// newInstalledSession builds a session pointed at a fabricated install with
// all three locations configured.
func newInstalledSession(t *testing.T, gameKey string, cfg core.SessionConfig) (*core.Session, gameDirs) {
	t.Helper()
	s := newSession(t, gameKey, cfg)

	root := t.TempDir()
	dirs := gameDirs{
		install:   filepath.Join(root, "install"),
		data:      filepath.Join(root, "install", "data"),
		secondary: filepath.Join(root, "secondary"),
		content:   filepath.Join(root, "content"),
	}
	for _, d := range []string{dirs.data, dirs.secondary, dirs.content} {
		require.NoError(t, os.MkdirAll(d, 0o755))
	}

	gp := s.Settings().Game(gameKey)
	gp.InstallPath = dirs.install
	gp.SecondaryDir = dirs.secondary
	gp.ContentDir = dirs.content
	return s, dirs
}

// writePackFile writes a minimal container with a valid header. Extra payload
// bytes vary the content digest.
func writePackFile(t *testing.T, path string, typ domain.PackType, payload ...byte) {
	t.Helper()
	header := []byte{'P', 'F', 'H', '5', 0, 0, 0, 0}
	binary.LittleEndian.PutUint32(header[4:], uint32(typ))
	body := append(header, make([]byte, 16)...)
	body = append(body, payload...)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, body, 0o644))
}

// refresh rescans offline and resolves, the way every CLI mutation path does.
func refresh(t *testing.T, s *core.Session) {
	t.Helper()
	_, err := s.RefreshMods(context.Background(), core.RefreshOptions{SkipNetwork: true})
	require.NoError(t, err)
	require.NoError(t, s.Resolve())
}

func enable(t *testing.T, s *core.Session, ids ...string) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, s.SetModEnabled(id, true))
	}
}

type fakeProvider struct {
	mu    sync.Mutex
	items []workshop.Item
	err   error
	calls int
}

func (f *fakeProvider) FetchItems(_ context.Context, _ []string) ([]workshop.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}
