// Resolving the list of Steam Library Folders from libraryfolders.vdf.

package steamfiles

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/c12h/steam-locate/sVDF"
)

// parseLibraryPaths extracts the library directories from a
// libraryfolders.vdf file, preserving their order of appearance (which is
// Steam's own priority order).
//
// The file looks like
//
//	"libraryfolders"
//	{
//		"0"
//		{
//			"path"		"/path/to/first/library"
//			...
//			"apps"		{ ... }
//		}
//		"1"
//		{ ... }
//	}
//
// Every direct entry whose name parses as an unsigned integer is one
// library; other entries (older Steam versions kept metadata here) are
// ignored.  A numbered entry without a "path" string fails the whole
// resolution: this file is load-bearing for everything downstream, and a
// malformed entry means the install itself is damaged, so there is no safe
// partial answer.  The per-entry "apps" table is deliberately not read —
// it can be stale, and LibraryFromDir re-derives the app set from the
// manifests on disk.
func parseLibraryPaths(vdfPath string) ([]string, error) {
	if _, err := os.Stat(vdfPath); os.IsNotExist(err) {
		return nil, cannotFind("Steam library folders list at "+vdfPath, err)
	}
	f, err := sVDF.FromFile(vdfPath)
	if err != nil {
		return nil, err
	}
	top, ok := f.TopValue.(*sVDF.Obj)
	if !ok {
		return nil, fileError(vdfPath, "top-level value is not a list")
	}

	var paths []string
	for _, entry := range top.Pairs() {
		if _, err := strconv.ParseUint(entry.Name, 10, 32); err != nil {
			continue
		}
		folder, ok := entry.Value.(*sVDF.Obj)
		if !ok {
			return nil, fileError(vdfPath,
				"library entry %q is not a list", entry.Name)
		}
		pathVal, ok := foldGet(folder, "path")
		if !ok {
			return nil, fileError(vdfPath,
				`library entry %q has no "path"`, entry.Name)
		}
		path, ok := pathVal.(string)
		if !ok {
			return nil, fileError(vdfPath,
				`library entry %q has a non-string "path"`, entry.Name)
		}
		paths = append(paths, filepath.FromSlash(path))
	}
	return paths, nil
}

/*-------------------------------- LibraryIter -------------------------------*/

// A LibraryIter steps through the Steam Library Folders of an installation.
// Each Next scans one library directory, so callers that only want the
// first library do not pay for the rest.
type LibraryIter struct {
	paths []string
	i     int
	lib   *Library
	err   error
}

// Next advances to the next library path.  It returns false once every path
// has been visited.
func (it *LibraryIter) Next() bool {
	it.lib, it.err = nil, nil
	if it.i >= len(it.paths) {
		return false
	}
	path := it.paths[it.i]
	it.i++
	it.lib, it.err = LibraryFromDir(path)
	return true
}

// Library returns the library opened by the last Next, or nil if opening it
// failed.
func (it *LibraryIter) Library() *Library { return it.lib }

// Err returns the error from the last Next, or nil.  A library directory
// that is listed but cannot be scanned yields an error for that entry only;
// iteration continues with the next listed library.
func (it *LibraryIter) Err() error { return it.err }

// Len returns the total number of listed libraries.
func (it *LibraryIter) Len() int { return len(it.paths) }
