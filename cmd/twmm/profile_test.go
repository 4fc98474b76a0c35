package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"twmm/internal/domain"
	"twmm/internal/storage/config"
)

func TestProfileCmds_SaveLoadListDelete(t *testing.T) {
	configDir = t.TempDir()
	dataDir = t.TempDir()
	gameKey = "warhammer3"

	install := configureInstall(t, "warhammer3")
	writePack(t, filepath.Join(install, "data", "a.pack"), domain.PackMod)

	_, err := runCmd(t, refreshCmd, "refresh", "--skip-network")
	require.NoError(t, err)
	_, err = runCmd(t, modCmd, "mod", "enable", "a.pack")
	require.NoError(t, err)

	out, err := runCmd(t, profileCmd, "profile", "save", "baseline")
	require.NoError(t, err)
	assert.Contains(t, out, `Saved profile "baseline"`)

	// Drift away from the snapshot, then restore it.
	_, err = runCmd(t, modCmd, "mod", "disable", "a.pack")
	require.NoError(t, err)

	out, err = runCmd(t, profileCmd, "profile", "load", "baseline")
	require.NoError(t, err)
	assert.Contains(t, out, `Loaded profile "baseline"`)

	order, err := config.LoadOrder(dataDir, "warhammer3")
	require.NoError(t, err)
	assert.False(t, order.Automatic)
	assert.Equal(t, []string{"a.pack"}, order.Mods)

	out, err = runCmd(t, profileCmd, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "baseline")

	_, err = runCmd(t, profileCmd, "profile", "delete", "baseline")
	require.NoError(t, err)

	out, err = runCmd(t, profileCmd, "profile", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No profiles saved.")
}

func TestProfileLoad_NoSideEffectsLeavesDocuments(t *testing.T) {
	configDir = t.TempDir()
	dataDir = t.TempDir()
	gameKey = "warhammer3"
	t.Cleanup(func() { profileNoSideEffects = false })

	install := configureInstall(t, "warhammer3")
	writePack(t, filepath.Join(install, "data", "a.pack"), domain.PackMod)

	_, err := runCmd(t, refreshCmd, "refresh", "--skip-network")
	require.NoError(t, err)
	_, err = runCmd(t, modCmd, "mod", "enable", "a.pack")
	require.NoError(t, err)
	_, err = runCmd(t, profileCmd, "profile", "save", "baseline")
	require.NoError(t, err)
	_, err = runCmd(t, modCmd, "mod", "disable", "a.pack")
	require.NoError(t, err)

	out, err := runCmd(t, profileCmd, "profile", "load", "baseline", "--no-side-effects")
	require.NoError(t, err)
	assert.Contains(t, out, "not persisted")

	// The on-disk documents still show the pre-load state.
	order, err := config.LoadOrder(dataDir, "warhammer3")
	require.NoError(t, err)
	assert.Empty(t, order.Mods)

	cfg, err := config.LoadGameConfig(dataDir, "warhammer3")
	require.NoError(t, err)
	assert.False(t, cfg.Mods["a.pack"].Checked)
}

func TestProfileLoad_UnknownProfile(t *testing.T) {
	configDir = t.TempDir()
	dataDir = t.TempDir()
	gameKey = "warhammer3"
	configureInstall(t, "warhammer3")

	_, err := runCmd(t, profileCmd, "profile", "load", "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}
