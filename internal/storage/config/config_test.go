package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"twmm/internal/domain"
	"twmm/internal/storage/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_DefaultValues(t *testing.T) {
	dir := t.TempDir()
	s, err := config.LoadSettings(dir)
	require.NoError(t, err)

	assert.Empty(t, s.DefaultGame)
	assert.NotNil(t, s.Games)
	assert.Empty(t, s.Games)
}

func TestLoadSettings_FromFile(t *testing.T) {
	dir := t.TempDir()

	content := `
default_game: warhammer3
games:
  warhammer3:
    install_path: /games/steam/steamapps/common/Total War WARHAMMER III
    secondary_mod_dir: /mods/wh3
  shogun2:
    install_path: /games/steam/steamapps/common/Total War SHOGUN 2
`
	err := os.WriteFile(filepath.Join(dir, "settings.yaml"), []byte(content), 0644)
	require.NoError(t, err)

	s, err := config.LoadSettings(dir)
	require.NoError(t, err)

	assert.Equal(t, "warhammer3", s.DefaultGame)
	require.Len(t, s.Games, 2)
	assert.Equal(t, "/games/steam/steamapps/common/Total War WARHAMMER III", s.Game("warhammer3").InstallPath)
	assert.Equal(t, "/mods/wh3", s.Game("warhammer3").SecondaryDir)
	assert.Empty(t, s.Game("shogun2").SecondaryDir)
}

func TestLoadSettings_ExpandsTilde(t *testing.T) {
	dir := t.TempDir()

	content := `
games:
  attila:
    install_path: ~/games/attila
`
	err := os.WriteFile(filepath.Join(dir, "settings.yaml"), []byte(content), 0644)
	require.NoError(t, err)

	s, err := config.LoadSettings(dir)
	require.NoError(t, err)

	home, _ := os.UserHomeDir()
	assert.NotContains(t, s.Game("attila").InstallPath, "~")
	assert.Equal(t, filepath.Join(home, "games/attila"), s.Game("attila").InstallPath)
}

func TestSettings_SaveRoundTrip(t *testing.T) {
	dir := t.TempDir()

	s := &config.Settings{DefaultGame: "rome2"}
	s.Game("rome2").InstallPath = "/games/rome2"
	s.Game("rome2").ContentDir = "/games/workshop/content/214950"
	require.NoError(t, s.Save(dir))

	loaded, err := config.LoadSettings(dir)
	require.NoError(t, err)
	assert.Equal(t, "rome2", loaded.DefaultGame)
	assert.Equal(t, "/games/rome2", loaded.Game("rome2").InstallPath)
	assert.Equal(t, "/games/workshop/content/214950", loaded.Game("rome2").ContentDir)
}

func TestLoadSettings_Corrupt(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "settings.yaml"), []byte("games: [not: a: map"), 0644)
	require.NoError(t, err)

	_, err = config.LoadSettings(dir)
	assert.Error(t, err)
}

func TestLoadGameConfig_Missing(t *testing.T) {
	dir := t.TempDir()

	cfg, err := config.LoadGameConfig(dir, "warhammer3")
	require.NoError(t, err)
	assert.Equal(t, "warhammer3", cfg.Game)
	assert.Empty(t, cfg.Mods)
	assert.Contains(t, cfg.Categories, domain.DefaultCategory)
}

func TestGameConfig_SaveRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := domain.NewGameConfig("attila")
	cfg.InsertMod(&domain.Mod{
		ID:       "overhaul.pack",
		Name:     "Overhaul",
		Paths:    []domain.ModPath{{Path: "/games/attila/data/overhaul.pack", Location: domain.LocationData}},
		PackType: domain.PackMod,
		Checked:  true,
	})
	require.NoError(t, cfg.CreateCategory("Graphics"))
	require.NoError(t, config.SaveGameConfig(dir, cfg))

	loaded, err := config.LoadGameConfig(dir, "attila")
	require.NoError(t, err)
	require.Contains(t, loaded.Mods, "overhaul.pack")
	m := loaded.Mods["overhaul.pack"]
	assert.True(t, m.Checked)
	assert.Equal(t, domain.PackMod, m.PackType)
	assert.Equal(t, domain.LocationData, m.PrimaryLocation())
	assert.Equal(t, []string{domain.DefaultCategory, "Graphics"}, loaded.CategoryOrder)
	assert.Equal(t, domain.DefaultCategory, loaded.CategoryOf("overhaul.pack"))
}

func TestLoadGameConfig_Corrupt(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "mods_empire.json"), []byte("{oops"), 0644)
	require.NoError(t, err)

	_, err = config.LoadGameConfig(dir, "empire")
	assert.Error(t, err)
}

func TestLoadOrder_MissingDefaultsToAutomatic(t *testing.T) {
	dir := t.TempDir()

	order, err := config.LoadOrder(dir, "warhammer3")
	require.NoError(t, err)
	assert.True(t, order.Automatic)
	assert.Empty(t, order.Mods)
	assert.Empty(t, order.Movies)
}

func TestOrder_SaveRoundTrip(t *testing.T) {
	dir := t.TempDir()

	order := domain.LoadOrder{
		Automatic: false,
		Mods:      []string{"b.pack", "a.pack"},
		Movies:    []string{"trailer.pack"},
	}
	require.NoError(t, config.SaveOrder(dir, "warhammer3", order))

	loaded, err := config.LoadOrder(dir, "warhammer3")
	require.NoError(t, err)
	assert.False(t, loaded.Automatic)
	assert.Equal(t, []string{"b.pack", "a.pack"}, loaded.Mods)
	assert.Equal(t, []string{"trailer.pack"}, loaded.Movies)
}

func TestSaveProfile_EmptyID(t *testing.T) {
	dir := t.TempDir()
	err := config.SaveProfile(dir, &domain.Profile{Game: "warhammer3"})
	assert.ErrorIs(t, err, domain.ErrEmptyProfileName)
}

func TestProfile_SaveLoadListDelete(t *testing.T) {
	dir := t.TempDir()

	p := &domain.Profile{
		ID:   "campaign",
		Game: "warhammer3",
		Order: domain.LoadOrder{
			Mods:   []string{"a.pack", "b.pack"},
			Movies: []string{"intro.pack"},
		},
	}
	require.NoError(t, config.SaveProfile(dir, p))
	require.NoError(t, config.SaveProfile(dir, &domain.Profile{ID: "bretonnia", Game: "warhammer3"}))

	loaded, err := config.LoadProfile(dir, "warhammer3", "campaign")
	require.NoError(t, err)
	assert.Equal(t, "campaign", loaded.ID)
	assert.Equal(t, []string{"a.pack", "b.pack"}, loaded.Order.Mods)

	ids, err := config.ListProfiles(dir, "warhammer3")
	require.NoError(t, err)
	assert.Equal(t, []string{"bretonnia", "campaign"}, ids)

	require.NoError(t, config.DeleteProfile(dir, "warhammer3", "campaign"))
	_, err = config.LoadProfile(dir, "warhammer3", "campaign")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	err = config.DeleteProfile(dir, "warhammer3", "campaign")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestListProfiles_NoDir(t *testing.T) {
	dir := t.TempDir()
	ids, err := config.ListProfiles(dir, "empire")
	require.NoError(t, err)
	assert.Nil(t, ids)
}
