// Functions etc for scanning a Steam Library Folder for installed apps.

package steamfiles

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

var reManifestFile = regexp.MustCompile(`^appmanifest_(\d+)\.acf$`)

// A Library is one Steam Library Folder: a directory with a "steamapps"
// subdirectory holding manifests and app files.
//
// The set of app IDs is taken from a scan of the steamapps directory at
// construction time, never from the "apps" table in libraryfolders.vdf,
// which can be stale.  A Library does not watch the filesystem; build a
// fresh one to pick up changes.
type Library struct {
	path   string
	appIDs []AppID
}

// LibraryFromDir scans <path>/steamapps for appmanifest_<N>.acf files and
// returns the resulting Library.  Most callers want SteamDir.Libraries or
// SteamDir.FindApp instead, which locate the library directories for them.
func LibraryFromDir(path string) (*Library, error) {
	steamappsDir := filepath.Join(path, "steamapps")
	dh, err := os.Open(steamappsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, cannotFind("Steam library folder at "+path, err)
		}
		return nil, cannot("open", "Steam library folder", steamappsDir, err)
	}
	allNames, err := dh.Readdirnames(-1)
	dh.Close()
	if err != nil {
		return nil, cannot("read", "directory", steamappsDir, err)
	}

	lib := &Library{path: path}
	for _, n := range allNames {
		if match := reManifestFile.FindStringSubmatch(n); match != nil {
			id, err := parseAppID(match[1], filepath.Join(steamappsDir, n))
			if err != nil {
				// A name that matched \d+ but does not fit an
				// AppID is not a manifest we can use.
				continue
			}
			lib.appIDs = append(lib.appIDs, id)
		}
	}
	sort.Slice(lib.appIDs, func(i, j int) bool { return lib.appIDs[i] < lib.appIDs[j] })
	return lib, nil
}

// Path returns the library's directory (the Steam Library Folder itself,
// not its steamapps subdirectory).
func (l *Library) Path() string { return l.path }

// AppIDs returns the IDs of every app with a manifest in this library, in
// ascending order.  This directory-derived set is authoritative.
func (l *Library) AppIDs() []AppID {
	ret := make([]AppID, len(l.appIDs))
	copy(ret, l.appIDs)
	return ret
}

// Contains reports whether an app has a manifest in this library.
func (l *Library) Contains(appID AppID) bool {
	i := sort.Search(len(l.appIDs), func(i int) bool { return l.appIDs[i] >= appID })
	return i < len(l.appIDs) && l.appIDs[i] == appID
}

// App decodes the manifest for one app.
//
// If the app has no manifest here the error is a *AppNotFoundError; that is
// a different condition from a manifest that exists but fails to decode,
// which reports the decode problem itself.
func (l *Library) App(appID AppID) (*App, error) {
	if !l.Contains(appID) {
		return nil, &AppNotFoundError{AppID: appID}
	}
	manifest := filepath.Join(l.path, "steamapps", manifestFileName(appID))
	return appFromManifest(manifest, l.path)
}

// Apps returns an iterator over every app in the library, in AppIDs order.
// Each Next decodes exactly one manifest, so abandoning the iterator early
// does no wasted work.
func (l *Library) Apps() *AppIter {
	return &AppIter{lib: l}
}

// ValidateApp checks the invariant that an app's computed installation
// directory actually exists, returning a *MissingInstallDirError when it
// does not.  Decoding never performs this check itself: whether a manifest
// pointing at a missing directory means "broken install" or merely "not
// installed" is the caller's policy.
func (l *Library) ValidateApp(app *App) error {
	info, err := os.Stat(app.Path)
	if err != nil || !info.IsDir() {
		return &MissingInstallDirError{AppID: app.AppID, Path: app.Path}
	}
	return nil
}

// ResolveAppDir returns the theoretical installation directory for app:
// <library>/steamapps/common/<installdir>.  The path is not checked against
// the filesystem.
func (l *Library) ResolveAppDir(app *App) string {
	return filepath.Join(l.path, "steamapps", "common", app.InstallDir)
}

func manifestFileName(appID AppID) string {
	return "appmanifest_" + strconv.FormatUint(uint64(appID), 10) + ".acf"
}

/*--------------------------------- AppIter ----------------------------------*/

// An AppIter steps through the apps of a Library one decoded manifest at a
// time:
//
//	for it := lib.Apps(); it.Next(); {
//		app, err := it.App(), it.Err()
//		...
//	}
//
// A manifest that fails to decode yields a nil App and a non-nil Err for
// that one ID — an ID obtained from the directory scan that then cannot be
// decoded is an inconsistency worth reporting, never silently skipped — and
// iteration continues with the next ID.
type AppIter struct {
	lib *Library
	i   int
	app *App
	err error
}

// Next advances to the next app ID.  It returns false once every ID has
// been visited.
func (it *AppIter) Next() bool {
	it.app, it.err = nil, nil
	if it.i >= len(it.lib.appIDs) {
		return false
	}
	id := it.lib.appIDs[it.i]
	it.i++
	app, err := it.lib.App(id)
	if err != nil {
		it.err = &MissingAppError{AppID: id, BaseErr: err}
	} else {
		it.app = app
	}
	return true
}

// App returns the app decoded by the last Next, or nil if that decode
// failed.
func (it *AppIter) App() *App { return it.app }

// Err returns the decode error from the last Next, or nil.
func (it *AppIter) Err() error { return it.err }
