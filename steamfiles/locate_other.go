//go:build !linux && !darwin && !windows

package steamfiles

// locateSteamDir is the system-dependent part of Locate.
func locateSteamDir() (string, error) {
	return "", cannotFind("a Steam installation (unsupported operating system)", nil)
}
