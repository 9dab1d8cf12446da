// Package steamfiles locates a Steam installation and decodes the metadata
// describing what is installed there.
//
// The entry point is SteamDir, obtained from Locate (which probes the usual
// per-OS installation locations) or SteamDirAt (for a known path).  From a
// SteamDir callers can resolve the Steam Library Folders, enumerate and
// decode the apps installed in each, read the non-Steam shortcuts each user
// has added, and look up an app's compatibility-tool mapping.
//
// # Steam Library Folders
//
// Steam can spread installed apps across multiple "Steam Library Folders",
// each with its own "steamapps" subdirectory.  The list of folders lives in
//
//	<steam-dir>/steamapps/libraryfolders.vdf
//
// in the simple Valve Data Format that the sibling sVDF package parses.
// The order of entries in that file is Steam's own priority order and is
// preserved here.  The file also carries a per-folder "apps" table, but that
// table can be stale, so this package ignores it: the set of apps in a
// library is always re-derived by scanning the steamapps directory for
//
//	appmanifest_<AppID>.acf
//
// manifest files, which are the ground truth.
//
// # Shortcuts
//
// Non-Steam apps the user has added appear in a per-user binary file at
//
//	<steam-dir>/userdata/<user-id>/config/shortcuts.vdf
//
// which has no declared grammar; it is decoded by a tolerant byte scanner.
//
// Everything here is read-only and stateless: each query re-reads the
// filesystem and returns freshly allocated data, so concurrent callers need
// no locking.
package steamfiles // import "github.com/c12h/steam-locate/steamfiles"
