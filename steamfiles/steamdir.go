// The SteamDir facade: install/library/app/shortcut/compat queries.

package steamfiles

import (
	"os"
	"path/filepath"
)

// A SteamDir is a located Steam installation directory.
//
// A SteamDir holds nothing but the path: every query re-reads and re-parses
// the relevant files, so results are never stale and concurrent use needs
// no locking.  Callers that query repeatedly in a hot path should keep
// their own copies of the results.
type SteamDir struct {
	path string
}

// Locate finds the current user's Steam installation by probing the usual
// per-OS locations (the registry on Windows, well-known home-directory
// paths elsewhere).  It returns a *NotFoundError if no installation is
// found.
func Locate() (*SteamDir, error) {
	path, err := locateSteamDir()
	if err != nil {
		return nil, err
	}
	return &SteamDir{path: path}, nil
}

// SteamDirAt wraps a known Steam installation directory, checking only that
// the directory itself exists.  Everything inside it is validated later,
// query by query.
func SteamDirAt(path string) (*SteamDir, error) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return nil, cannotFind("Steam installation at "+path, err)
	}
	return &SteamDir{path: path}, nil
}

// Path returns the installation directory.
func (d *SteamDir) Path() string { return d.path }

// LibraryPaths resolves the Steam Library Folder directories from
// libraryfolders.vdf, in the file's own order.  The installation directory
// itself appears in this list (Steam lists it as entry "0").
//
// A missing listing file is a *NotFoundError; a listing that is present but
// malformed is a *FileError and fails the whole resolution, since the
// listing is load-bearing for every downstream query.
func (d *SteamDir) LibraryPaths() ([]string, error) {
	vdfPath := filepath.Join(d.path, "steamapps", "libraryfolders.vdf")
	return parseLibraryPaths(vdfPath)
}

// Libraries returns an iterator over the installation's libraries, in
// listing order.
func (d *SteamDir) Libraries() (*LibraryIter, error) {
	paths, err := d.LibraryPaths()
	if err != nil {
		return nil, err
	}
	return &LibraryIter{paths: paths}, nil
}

// App finds and decodes the app with the given ID, searching every library.
// It is shorthand for FindApp when the containing library does not matter.
func (d *SteamDir) App(appID AppID) (*App, error) {
	app, _, err := d.FindApp(appID)
	return app, err
}

// FindApp searches the libraries in listing order for the app with the
// given ID, returning it together with the library that holds it.
//
// An app that is in no library yields a *AppNotFoundError; that is distinct
// from an app whose manifest exists but fails to decode, which reports the
// decode problem.  A library that cannot be scanned fails the search, since
// the app might have been there.
func (d *SteamDir) FindApp(appID AppID) (*App, *Library, error) {
	it, err := d.Libraries()
	if err != nil {
		return nil, nil, err
	}
	for it.Next() {
		if it.Err() != nil {
			return nil, nil, it.Err()
		}
		lib := it.Library()
		if !lib.Contains(appID) {
			continue
		}
		app, err := lib.App(appID)
		if err != nil {
			return nil, nil, err
		}
		return app, lib, nil
	}
	return nil, nil, &AppNotFoundError{AppID: appID}
}

// Shortcuts returns an iterator over the non-Steam shortcuts of every user
// of this installation, one decode result per userdata/<user-id>
// directory.  An installation that has no userdata directory at all yields
// a *NotFoundError.
func (d *SteamDir) Shortcuts() (*ShortcutIter, error) {
	return newShortcutIter(d.path)
}

// CompatTool returns the compatibility-tool mapping for one app from
// config.vdf.  An app with no mapping yields a *AppNotFoundError.
func (d *SteamDir) CompatTool(appID AppID) (*CompatTool, error) {
	mapping, err := compatToolMapping(d.path)
	if err != nil {
		return nil, err
	}
	tool, ok := mapping[appID]
	if !ok {
		return nil, &AppNotFoundError{AppID: appID}
	}
	return &tool, nil
}

// CompatToolMapping returns the whole app-to-compatibility-tool table from
// config.vdf.  Entry 0, when present, is the user's global default tool.
func (d *SteamDir) CompatToolMapping() (map[AppID]CompatTool, error) {
	return compatToolMapping(d.path)
}

/*----------------------------- DirectoryExists ------------------------------*/

// DirectoryExists checks that base and each successive child under it are
// directories (following symbolic links), returning the joined path
// base/child[0]/child[1]/… on success.  It is used by the locators and is
// useful to callers poking at an installation by hand.
func DirectoryExists(base string, childNames ...string) (string, error) {
	p := base
	for i := -1; i < len(childNames); i++ {
		if i >= 0 {
			p = filepath.Join(p, childNames[i])
		}
		nodeInfo, err := os.Stat(p)
		if err != nil {
			if os.IsNotExist(err) {
				return "", cannotFind("directory "+p, err)
			}
			return "", cannot("examine", "directory", p, err)
		}
		if !nodeInfo.IsDir() {
			return "", fileError(p, "not a directory")
		}
	}
	return p, nil
}
