package core_test

import (
	"os"
	"path/filepath"
	"testing"

	"twmm/internal/core"
	"twmm/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_SaveLoadReplacesCheckboxesWholesale(t *testing.T) {
	dataDir := t.TempDir()
	s, dirs := newInstalledSession(t, "warhammer3", core.SessionConfig{DataDir: dataDir})
	writePackFile(t, filepath.Join(dirs.data, "a.pack"), domain.PackMod)
	writePackFile(t, filepath.Join(dirs.data, "b.pack"), domain.PackMod)
	writePackFile(t, filepath.Join(dirs.data, "c.pack"), domain.PackMod)

	refresh(t, s)
	enable(t, s, "a.pack", "b.pack")
	require.NoError(t, s.Resolve())
	require.Equal(t, []string{"a.pack", "b.pack"}, s.Order().Mods)

	require.NoError(t, s.SaveProfile("baseline"))

	// Drift away from the snapshot.
	require.NoError(t, s.SetModEnabled("a.pack", false))
	enable(t, s, "c.pack")
	require.NoError(t, s.Resolve())
	require.Equal(t, []string{"b.pack", "c.pack"}, s.Order().Mods)

	require.NoError(t, s.LoadProfile("baseline", false))

	for id, want := range map[string]bool{"a.pack": true, "b.pack": true, "c.pack": false} {
		m, ok := s.Mod(id)
		require.True(t, ok)
		assert.Equal(t, want, m.Checked, "checkbox for %s", id)
	}
	order := s.Order()
	assert.Equal(t, []string{"a.pack", "b.pack"}, order.Mods)
	assert.False(t, order.Automatic, "a loaded profile is a fixed manual order")

	// Both documents were written back.
	_, err := os.Stat(filepath.Join(dataDir, "loadorder_warhammer3.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dataDir, "mods_warhammer3.json"))
	assert.NoError(t, err)
}

func TestProfile_LoadWithSuppressedSideEffects(t *testing.T) {
	dataDir := t.TempDir()
	s, dirs := newInstalledSession(t, "warhammer3", core.SessionConfig{DataDir: dataDir})
	writePackFile(t, filepath.Join(dirs.data, "a.pack"), domain.PackMod)

	refresh(t, s)
	enable(t, s, "a.pack")
	require.NoError(t, s.Resolve())
	require.NoError(t, s.SaveProfile("quickstart"))

	require.NoError(t, s.SetModEnabled("a.pack", false))
	require.NoError(t, s.LoadProfile("quickstart", true))

	m, ok := s.Mod("a.pack")
	require.True(t, ok)
	assert.True(t, m.Checked, "in-memory state still follows the profile")
	assert.Equal(t, []string{"a.pack"}, s.Order().Mods)

	_, err := os.Stat(filepath.Join(dataDir, "loadorder_warhammer3.json"))
	assert.True(t, os.IsNotExist(err), "suppressed load writes nothing back")
	_, err = os.Stat(filepath.Join(dataDir, "mods_warhammer3.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestProfile_LoadDropsIdsThatNoLongerExist(t *testing.T) {
	s, dirs := newInstalledSession(t, "warhammer3", core.SessionConfig{})
	writePackFile(t, filepath.Join(dirs.data, "a.pack"), domain.PackMod)
	writePackFile(t, filepath.Join(dirs.data, "b.pack"), domain.PackMod)

	refresh(t, s)
	enable(t, s, "a.pack", "b.pack")
	require.NoError(t, s.Resolve())
	require.NoError(t, s.SaveProfile("full"))

	require.NoError(t, os.Remove(filepath.Join(dirs.data, "b.pack")))
	refresh(t, s)

	require.NoError(t, s.LoadProfile("full", false))
	assert.Equal(t, []string{"a.pack"}, s.Order().Mods,
		"a snapshot id with no surviving mod is resolved away")
}

func TestProfile_Errors(t *testing.T) {
	s := newSession(t, "warhammer3", core.SessionConfig{})

	assert.ErrorIs(t, s.SaveProfile(""), domain.ErrEmptyProfileName)
	assert.ErrorIs(t, s.LoadProfile("nope", false), domain.ErrProfileNotFound)
}

func TestProfile_ListAndDelete(t *testing.T) {
	s := newSession(t, "warhammer3", core.SessionConfig{})

	require.NoError(t, s.SaveProfile("zeta"))
	require.NoError(t, s.SaveProfile("alpha"))

	ids, err := s.ListProfiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zeta"}, ids)

	require.NoError(t, s.DeleteProfile("zeta"))
	ids, err = s.ListProfiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha"}, ids)
}
