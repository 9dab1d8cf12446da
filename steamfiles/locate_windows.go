package steamfiles

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/windows/registry"
)

// locateSteamDir is the system-dependent part of Locate.
//
// On Windows the installer records the installation directory in the
// registry.  The machine-wide InstallPath value is tried first (32-bit view
// then 64-bit), then the per-user SteamPath value.
func locateSteamDir() (string, error) {
	keys := []struct {
		root registry.Key
		path string
		name string
	}{
		{registry.LOCAL_MACHINE, `SOFTWARE\Wow6432Node\Valve\Steam`, "InstallPath"},
		{registry.LOCAL_MACHINE, `SOFTWARE\Valve\Steam`, "InstallPath"},
		{registry.CURRENT_USER, `Software\Valve\Steam`, "SteamPath"},
	}
	for _, k := range keys {
		regKey, err := registry.OpenKey(k.root, k.path, registry.QUERY_VALUE)
		if err != nil {
			continue
		}
		path, _, err := regKey.GetStringValue(k.name)
		regKey.Close()
		if err != nil || path == "" {
			continue
		}
		// The per-user value uses forward slashes.
		path = filepath.FromSlash(path)
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path, nil
		}
	}
	return "", cannotFind("a Steam installation in the registry", nil)
}
