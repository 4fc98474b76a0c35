package steam

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"twmm/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVDF_LibraryFolders(t *testing.T) {
	vdf := `
"libraryfolders"
{
	"0"
	{
		"path"		"/home/user/.steam/steam"
		"label"		""
	}
	"1"
	{
		"path"		"/mnt/games/steam"
		"label"		"Games"
	}
}
`
	root, err := ParseVDF(vdf)
	require.NoError(t, err)

	lf, ok := root["libraryfolders"].(VDFMap)
	require.True(t, ok)
	entry0, ok := lf["0"].(VDFMap)
	require.True(t, ok)
	assert.Equal(t, "/home/user/.steam/steam", entry0["path"])

	assert.Equal(t, []string{"/home/user/.steam/steam", "/mnt/games/steam"}, libraryPaths(root))
}

func TestParseVDF_EscapesAndComments(t *testing.T) {
	vdf := `
// header comment
"root"
{
	"quoted"	"a \"quoted\" value"
	"bare"	value
}
`
	root, err := ParseVDF(vdf)
	require.NoError(t, err)
	inner, ok := root["root"].(VDFMap)
	require.True(t, ok)
	assert.Equal(t, `a "quoted" value`, inner["quoted"])
	assert.Equal(t, "value", inner["bare"])
}

func TestParseVDF_Errors(t *testing.T) {
	_, err := ParseVDF(`"key" "value`)
	assert.Error(t, err, "unclosed quote")

	_, err = ParseVDF(`"key" { "a" "b"`)
	assert.Error(t, err, "unterminated object")
}

func TestParseAppManifest(t *testing.T) {
	acf := `
"AppState"
{
	"appid"		"1142710"
	"name"		"Total War: WARHAMMER III"
	"installdir"		"Total War WARHAMMER III"
	"StateFlags"		"4"
}
`
	m, err := ParseAppManifest(acf)
	require.NoError(t, err)
	assert.Equal(t, "1142710", m.AppID)
	assert.Equal(t, "Total War: WARHAMMER III", m.Name)
	assert.Equal(t, "Total War WARHAMMER III", m.InstallDir)

	_, err = ParseAppManifest(`"NotAppState" {}`)
	assert.Error(t, err)
}

// writeInstall fabricates a Steam library containing one installed title.
func writeInstall(t *testing.T, root string, game domain.GameDef, installDir string) string {
	t.Helper()
	steamapps := filepath.Join(root, "steamapps")
	require.NoError(t, os.MkdirAll(filepath.Join(steamapps, "common", installDir), 0o755))

	acf := `"AppState"
{
	"appid"		"` + game.SteamAppID + `"
	"name"		"` + game.Name + `"
	"installdir"		"` + installDir + `"
}
`
	path := filepath.Join(steamapps, "appmanifest_"+game.SteamAppID+".acf")
	require.NoError(t, os.WriteFile(path, []byte(acf), 0o644))
	return filepath.Join(steamapps, "common", installDir)
}

func TestDetectInstalls(t *testing.T) {
	root := t.TempDir()
	wh3, err := domain.GameByKey("warhammer3")
	require.NoError(t, err)
	attila, err := domain.GameByKey("attila")
	require.NoError(t, err)

	wh3Path := writeInstall(t, root, wh3, "Total War WARHAMMER III")
	writeInstall(t, root, attila, "Total War Attila")

	// An unrelated title must be ignored.
	acf := `"AppState" { "appid" "440" "name" "Team Fortress 2" "installdir" "tf2" }`
	require.NoError(t, os.MkdirAll(filepath.Join(root, "steamapps", "common", "tf2"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "steamapps", "appmanifest_440.acf"), []byte(acf), 0o644))

	installs, err := DetectInstalls(root)
	require.NoError(t, err)
	require.Len(t, installs, 2)

	inst, err := Locate(wh3, root)
	require.NoError(t, err)
	assert.Equal(t, wh3Path, inst.InstallPath)
	assert.Equal(t, filepath.Join(root, "steamapps", "workshop", "content", "1142710"), inst.ContentDir)
}

func TestLocate_NotInstalled(t *testing.T) {
	root := t.TempDir()
	empire, err := domain.GameByKey("empire")
	require.NoError(t, err)

	_, err = Locate(empire, root)
	assert.True(t, errors.Is(err, domain.ErrGameNotInstalled))
}

func TestLibraryPaths_NoVDF(t *testing.T) {
	root := t.TempDir()
	paths, err := LibraryPaths(root)
	require.NoError(t, err)
	assert.Equal(t, []string{root}, paths)
}

func TestContentDir(t *testing.T) {
	got := ContentDir("/lib/steamapps/common/Total War WARHAMMER III", "1142710")
	assert.Equal(t, "/lib/steamapps/workshop/content/1142710", got)
}
