package steamfiles

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraryFromDirScansManifests(t *testing.T) {
	dir := newTestLibrary(t, garrysMod, graveyardKeeper)
	steamapps := filepath.Join(dir, "steamapps")
	// Files that must not be mistaken for manifests.
	for _, n := range []string{
		"appmanifest_4000.acf.tmp",
		"appmanifest_.acf",
		"appmanifest_x99.acf",
		"libraryfolders.vdf",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(steamapps, n), nil, 0o644))
	}

	lib, err := LibraryFromDir(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, lib.Path())
	assert.Equal(t, []AppID{4000, 599140}, lib.AppIDs())
	assert.True(t, lib.Contains(4000))
	assert.True(t, lib.Contains(599140))
	assert.False(t, lib.Contains(230410))
}

func TestLibraryFromDirMissing(t *testing.T) {
	_, err := LibraryFromDir(filepath.Join(t.TempDir(), "nowhere"))
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound), "want *NotFoundError, got %T", err)
}

func TestLibraryApp(t *testing.T) {
	dir := newTestLibrary(t, garrysMod)
	lib, err := LibraryFromDir(dir)
	require.NoError(t, err)

	app, err := lib.App(4000)
	require.NoError(t, err)
	assert.Equal(t, AppID(4000), app.AppID)
	require.NotNil(t, app.Name)
	assert.Equal(t, "Garry's Mod", *app.Name)

	_, err = lib.App(599140)
	var notFound *AppNotFoundError
	require.True(t, errors.As(err, &notFound), "want *AppNotFoundError, got %T", err)
	assert.Equal(t, AppID(599140), notFound.AppID)
}

func TestLibraryAppsIterSurvivesBadManifest(t *testing.T) {
	dir := newTestLibrary(t, garrysMod, graveyardKeeper)
	// Corrupt the middle of the ID range with a third, malformed manifest.
	bad := filepath.Join(dir, "steamapps", manifestFileName(17000))
	require.NoError(t, os.WriteFile(bad, []byte(`"AppState" { "appid"`), 0o644))

	lib, err := LibraryFromDir(dir)
	require.NoError(t, err)
	require.Equal(t, []AppID{4000, 17000, 599140}, lib.AppIDs())

	var got []AppID
	var badIDs []AppID
	for it := lib.Apps(); it.Next(); {
		if err := it.Err(); err != nil {
			var missing *MissingAppError
			require.True(t, errors.As(err, &missing))
			badIDs = append(badIDs, missing.AppID)
			assert.Nil(t, it.App())
			continue
		}
		got = append(got, it.App().AppID)
	}
	assert.Equal(t, []AppID{4000, 599140}, got,
		"one bad manifest must not stop the iteration")
	assert.Equal(t, []AppID{17000}, badIDs)
}

func TestLibraryIgnoresStaleListingClaims(t *testing.T) {
	// The libraryfolders.vdf "apps" table claims an app that has no
	// manifest on disk; the directory scan is authoritative, so the
	// library must not report it.
	steamDir := newTestSteamDir(t, []sampleApp{garrysMod})
	listing := filepath.Join(steamDir, "steamapps", "libraryfolders.vdf")
	text := libraryFoldersText([]string{steamDir}, [][]AppID{{4000, 999999}})
	require.NoError(t, os.WriteFile(listing, []byte(text), 0o644))

	d, err := SteamDirAt(steamDir)
	require.NoError(t, err)
	_, _, err = d.FindApp(999999)
	var notFound *AppNotFoundError
	require.True(t, errors.As(err, &notFound), "want *AppNotFoundError, got %T", err)
}

func TestLibraryValidateApp(t *testing.T) {
	dir := newTestLibrary(t, garrysMod)
	lib, err := LibraryFromDir(dir)
	require.NoError(t, err)
	app, err := lib.App(4000)
	require.NoError(t, err)

	assert.NoError(t, lib.ValidateApp(app), "install dir exists")
	assert.Equal(t, app.Path, lib.ResolveAppDir(app))

	require.NoError(t, os.RemoveAll(app.Path))
	err = lib.ValidateApp(app)
	var missing *MissingInstallDirError
	require.True(t, errors.As(err, &missing), "want *MissingInstallDirError, got %T", err)
	assert.Equal(t, AppID(4000), missing.AppID)
	assert.Equal(t, app.Path, missing.Path)
}
