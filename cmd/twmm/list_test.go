package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twmm/internal/domain"
)

func TestListCmd_NoGame(t *testing.T) {
	configDir = t.TempDir()
	dataDir = t.TempDir()
	gameKey = ""

	_, err := runCmd(t, listCmd, "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no game specified")
}

func TestCollectListItems_PositionsAndMovies(t *testing.T) {
	configDir = t.TempDir()
	dataDir = t.TempDir()
	gameKey = "warhammer3"

	install := configureInstall(t, "warhammer3")
	writePack(t, filepath.Join(install, "data", "b.pack"), domain.PackMod)
	writePack(t, filepath.Join(install, "data", "a.pack"), domain.PackMod)
	writePack(t, filepath.Join(install, "data", "intro.pack"), domain.PackMovie)

	_, err := runCmd(t, refreshCmd, "refresh", "--skip-network")
	require.NoError(t, err)
	_, err = runCmd(t, modCmd, "mod", "enable", "a.pack")
	require.NoError(t, err)
	_, err = runCmd(t, modCmd, "mod", "enable", "b.pack")
	require.NoError(t, err)

	s, err := newSession()
	require.NoError(t, err)
	defer s.Close()

	items := collectListItems(s)
	require.Len(t, items, 3)

	byID := make(map[string]listItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	assert.Equal(t, 1, byID["a.pack"].Position, "slots are 1-based in file name order")
	assert.Equal(t, 2, byID["b.pack"].Position)
	assert.Zero(t, byID["intro.pack"].Position, "movies hold no orderable slot")
	assert.True(t, byID["intro.pack"].Enabled, "movies in the data dir are always on")
	assert.Equal(t, domain.DefaultCategory, byID["a.pack"].Category)
	assert.Equal(t, "data", byID["a.pack"].Location)
	assert.Equal(t, domain.PackMovie.String(), byID["intro.pack"].Type)
}

func TestListCmd_Structure(t *testing.T) {
	assert.Equal(t, "list", listCmd.Use)
	assert.NotEmpty(t, listCmd.Short)
	assert.NotEmpty(t, listCmd.Long)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"far too long for ten", 10, "far too..."},
		{"héllo wörld", 8, "héllo..."},
		{"abc", 2, "ab"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, truncate(tt.in, tt.max), "truncate(%q, %d)", tt.in, tt.max)
	}
}
