package steamfiles

import (
	"os"
	"path/filepath"
)

// locateSteamDir is the system-dependent part of Locate.
//
// On macOS Steam always installs under ~/Library/Application Support.
func locateSteamDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", cannotFind("user home directory(!?)", err)
	}
	path := filepath.Join(homeDir, "Library", "Application Support", "Steam")
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path, nil
	}
	return "", cannotFind("a Steam installation at "+path, nil)
}
