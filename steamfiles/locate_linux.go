package steamfiles

import (
	"os"
	"path/filepath"
)

// locateSteamDir is the system-dependent part of Locate.
//
// On Linux there are a surprising number of places a Steam installation can
// end up depending on how it was packaged (distro package, flatpak, snap),
// so we probe a candidate list and use the first directory that exists.
func locateSteamDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", cannotFind("user home directory(!?)", err)
	}
	snapDir := os.Getenv("SNAP_USER_DATA")
	if snapDir == "" {
		snapDir = filepath.Join(homeDir, "snap")
	}

	candidates := []string{
		// Flatpak installs
		filepath.Join(homeDir, ".var/app/com.valvesoftware.Steam/.local/share/Steam"),
		filepath.Join(homeDir, ".var/app/com.valvesoftware.Steam/.steam/steam"),
		filepath.Join(homeDir, ".var/app/com.valvesoftware.Steam/.steam/root"),
		// Standard installs
		filepath.Join(homeDir, ".local/share/Steam"),
		filepath.Join(homeDir, ".steam/steam"),
		filepath.Join(homeDir, ".steam/root"),
		filepath.Join(homeDir, ".steam"),
		// Snap installs
		filepath.Join(snapDir, "steam/common/.local/share/Steam"),
		filepath.Join(snapDir, "steam/common/.steam/steam"),
		filepath.Join(snapDir, "steam/common/.steam/root"),
	}
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path, nil
		}
	}
	return "", cannotFind("a Steam installation in any known location", nil)
}
