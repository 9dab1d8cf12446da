// Helpers for setting up isolated dummy Steam installations under
// t.TempDir().

package steamfiles

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// A sampleApp is the raw material for one appmanifest_<id>.acf fixture.
type sampleApp struct {
	id         AppID
	name       string
	installDir string
	extra      string // extra entries, spliced into the AppState body
}

var (
	garrysMod = sampleApp{
		id:         4000,
		name:       "Garry's Mod",
		installDir: "GarrysMod",
		extra: `	"Universe"		"1"
	"StateFlags"		"4"
	"LastUpdated"		"1600350073"
	"SizeOnDisk"		"3076700584"
	"buildid"		"5437109"
	"LastOwner"		"76561198040894045"
	"AutoUpdateBehavior"		"0"
	"AllowOtherDownloadsWhileRunning"		"0"
	"ScheduledAutoUpdate"		"0"
	"InstalledDepots"
	{
		"4001"
		{
			"manifest"		"1234567890123456789"
			"size"		"3076700584"
		}
	}
	"UserConfig"
	{
		"language"		"english"
	}
`,
	}
	graveyardKeeper = sampleApp{
		id:         599140,
		name:       "Graveyard Keeper",
		installDir: "Graveyard Keeper",
		extra: `	"Universe"		"1"
	"LauncherPath"		"C:\\Program Files (x86)\\Steam\\steam.exe"
	"StateFlags"		"4"
	"LastUpdated"		"1672176869"
	"UpdateResult"		"0"
	"SizeOnDisk"		"1805798572"
	"StagingSize"		"0"
	"buildid"		"8559806"
	"LastOwner"		"76561198025419831"
	"BytesToDownload"		"24348080"
	"BytesDownloaded"		"24348080"
	"BytesToStage"		"69466910"
	"BytesStaged"		"69466910"
	"TargetBuildID"		"8559806"
	"AutoUpdateBehavior"		"1"
	"AllowOtherDownloadsWhileRunning"		"2"
	"ScheduledAutoUpdate"		"0"
	"FullValidateAfterNextUpdate"		"1"
	"InstalledDepots"
	{
		"599141"
		{
			"manifest"		"3928815240703639766"
			"size"		"1740346576"
		}
		"599142"
		{
			"manifest"		"7026324388747186647"
			"size"		"65451996"
			"dlcappid"		"903950"
		}
	}
	"SharedDepots"
	{
		"228990"		"228980"
	}
	"InstallScripts"
	{
		"599141"		"installscript.vdf"
	}
	"UserConfig"
	{
		"language"		"english"
	}
	"MountedConfig"
	{
		"language"		"english"
	}
`,
	}
	warframe = sampleApp{
		id:         230410,
		name:       "Warframe",
		installDir: "Warframe",
		extra: `	"StateFlags"		"4"
	"lastupdated"		"1700000000"
`,
	}
)

func (a sampleApp) manifestText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "\"AppState\"\n{\n")
	fmt.Fprintf(&b, "\t\"appid\"\t\t\"%d\"\n", a.id)
	fmt.Fprintf(&b, "\t\"name\"\t\t%q\n", a.name)
	fmt.Fprintf(&b, "\t\"installdir\"\t\t%q\n", a.installDir)
	b.WriteString(a.extra)
	b.WriteString("}\n")
	return b.String()
}

// writeManifests writes the manifest files for apps into an existing
// steamapps directory and creates each app's common/<installdir>.
func writeManifests(t *testing.T, steamappsDir string, apps ...sampleApp) {
	t.Helper()
	for _, a := range apps {
		manifest := filepath.Join(steamappsDir, manifestFileName(a.id))
		require.NoError(t, os.WriteFile(manifest, []byte(a.manifestText()), 0o644))
		require.NoError(t,
			os.MkdirAll(filepath.Join(steamappsDir, "common", a.installDir), 0o755))
	}
}

// newTestLibrary creates a bare auxiliary library directory holding apps.
func newTestLibrary(t *testing.T, apps ...sampleApp) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "test-library")
	steamapps := filepath.Join(dir, "steamapps")
	require.NoError(t, os.MkdirAll(steamapps, 0o755))
	writeManifests(t, steamapps, apps...)
	return dir
}

// libraryFoldersText renders a libraryfolders.vdf listing the given library
// directories, in order.  claimed lists the app IDs the per-library "apps"
// table should claim; tests use it to prove that table is not trusted.
func libraryFoldersText(libraryDirs []string, claimed [][]AppID) string {
	var b strings.Builder
	b.WriteString("\"libraryfolders\"\n{\n")
	b.WriteString("\t\"contentstatsid\"\t\t\"-8111272884497569218\"\n")
	for i, dir := range libraryDirs {
		fmt.Fprintf(&b, "\t\"%d\"\n\t{\n", i)
		fmt.Fprintf(&b, "\t\t\"path\"\t\t%q\n", dir)
		b.WriteString("\t\t\"label\"\t\t\"\"\n")
		b.WriteString("\t\t\"apps\"\n\t\t{\n")
		if i < len(claimed) {
			for _, id := range claimed[i] {
				fmt.Fprintf(&b, "\t\t\t\"%d\"\t\t\"0\"\n", id)
			}
		}
		b.WriteString("\t\t}\n")
		b.WriteString("\t}\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// newTestSteamDir builds a dummy Steam installation whose root library
// holds rootApps and which lists auxLibraryDirs as further libraries.
// It returns the installation directory.
func newTestSteamDir(t *testing.T, rootApps []sampleApp, auxLibraryDirs ...string) string {
	t.Helper()
	steamDir := filepath.Join(t.TempDir(), "Steam")
	steamapps := filepath.Join(steamDir, "steamapps")
	require.NoError(t, os.MkdirAll(steamapps, 0o755))
	writeManifests(t, steamapps, rootApps...)

	libraryDirs := append([]string{steamDir}, auxLibraryDirs...)
	claimed := make([][]AppID, len(libraryDirs))
	for _, a := range rootApps {
		claimed[0] = append(claimed[0], a.id)
	}
	listing := libraryFoldersText(libraryDirs, claimed)
	require.NoError(t, os.WriteFile(
		filepath.Join(steamapps, "libraryfolders.vdf"), []byte(listing), 0o644))
	return steamDir
}

/*------------------------- binary shortcut fixtures -------------------------*/

// A sampleShortcut is the raw material for one record of a shortcuts.vdf
// fixture.  The key casings default to Steam's own but can be overridden to
// reproduce the casing drift seen in real files.
type sampleShortcut struct {
	appID              uint32
	appName, exe, dir  string
	appIDKey, nameKey  string
	exeKey, startKey   string
}

func (s sampleShortcut) appendTo(b *bytes.Buffer, index int) {
	key := func(override, dflt string) string {
		if override != "" {
			return override
		}
		return dflt
	}
	fmt.Fprintf(b, "\x00%d\x00", index)
	b.WriteString("\x02" + key(s.appIDKey, "appid") + "\x00")
	var le [4]byte
	binary.LittleEndian.PutUint32(le[:], s.appID)
	b.Write(le[:])
	b.WriteString("\x01" + key(s.nameKey, "AppName") + "\x00" + s.appName + "\x00")
	b.WriteString("\x01" + key(s.exeKey, "Exe") + "\x00" + s.exe + "\x00")
	b.WriteString("\x01" + key(s.startKey, "StartDir") + "\x00" + s.dir + "\x00")
	// Trailing fields the decoder should scan straight past.
	b.WriteString("\x01icon\x00\x00")
	b.WriteString("\x01LaunchOptions\x00\x00")
	b.WriteString("\x02IsHidden\x00\x00\x00\x00\x00")
	b.WriteString("\x00tags\x00\x08")
	b.WriteString("\x08")
}

func shortcutsFileBytes(shortcuts ...sampleShortcut) []byte {
	var b bytes.Buffer
	b.WriteString("\x00shortcuts\x00")
	for i, s := range shortcuts {
		s.appendTo(&b, i)
	}
	b.WriteString("\x08\x08")
	return b.Bytes()
}

// writeShortcutsFile installs a shortcuts.vdf for one user of steamDir.
func writeShortcutsFile(t *testing.T, steamDir, userID string, data []byte) {
	t.Helper()
	configDir := filepath.Join(steamDir, "userdata", userID, "config")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t,
		os.WriteFile(filepath.Join(configDir, "shortcuts.vdf"), data, 0o644))
}
