// Decoding appmanifest_<AppID>.acf files into App values.

package steamfiles

import (
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/c12h/steam-locate/sVDF"
)

// An App holds the details of one installed Steam app, decoded from its
// appmanifest_<AppID>.acf file.
//
// Steam omits most entries for apps that have never updated, so everything
// except AppID and InstallDir is optional: pointer fields are nil when the
// manifest has no such entry, enum fields fall back to their documented
// defaults, and map fields are empty.
type App struct {
	AppID      AppID  // The app's identifier ("appid")
	InstallDir string // Its files go in/under <library>/steamapps/common/<InstallDir>
	Path       string // That full path, computed; see Library.ValidateApp

	Name         *string // The app's store name
	LauncherPath *string // Path to the launcher binary Steam last used

	Universe   *Universe
	StateFlags *StateFlags // Packed; decode with StateFlags.Flags

	// Timestamps.  Steam writes 0 for "never"/"not scheduled"; that
	// decodes to nil here, not to the epoch.
	LastUpdated         *time.Time
	ScheduledAutoUpdate *time.Time

	UpdateResult    *uint64
	SizeOnDisk      *uint64
	BuildID         *uint64
	TargetBuildID   *uint64
	BytesToDownload *uint64
	BytesDownloaded *uint64
	BytesToStage    *uint64
	BytesStaged     *uint64
	StagingSize     *uint64

	// LastUser is the SteamID64 of the last user that played this app
	// here ("LastOwner").
	LastUser *uint64

	AutoUpdateBehavior  AutoUpdateBehavior
	AllowOtherDownloads AllowOtherDownloads

	FullValidateBeforeNextUpdate bool
	FullValidateAfterNextUpdate  bool

	InstalledDepots map[uint64]Depot
	StagedDepots    map[uint64]Depot
	UserConfig      map[string]string
	MountedConfig   map[string]string
	InstallScripts  map[uint64]string
	SharedDepots    map[uint64]uint64
}

// A Depot is one content-delivery unit within an app (fx a DLC or a
// platform-specific payload), as referenced by the app's manifest.
type Depot struct {
	Manifest uint64  // The depot's manifest ID
	Size     uint64  // Its size in bytes
	DLCAppID *uint64 // The owning DLC's app ID, for DLC depots
}

// appFromManifest reads and decodes one manifest file.  libraryPath is the
// Steam Library Folder the manifest was found in; it is only used to compute
// App.Path, which is not checked against the filesystem here (decoding is
// purely structural — see Library.ValidateApp for the existence policy).
func appFromManifest(manifestPath, libraryPath string) (*App, error) {
	f, err := sVDF.FromFile(manifestPath)
	if err != nil {
		return nil, err
	}
	top, ok := f.TopValue.(*sVDF.Obj)
	if !ok || !strings.EqualFold(f.TopName, "AppState") {
		return nil, fileError(manifestPath, `expected an "AppState" list`)
	}
	d := manifestDecoder{path: manifestPath, obj: top}

	app := &App{}

	idText, err := d.needString("appid")
	if err != nil {
		return nil, err
	}
	app.AppID, err = parseAppID(idText, manifestPath)
	if err != nil {
		return nil, err
	}
	app.InstallDir, err = d.needString("installdir")
	if err != nil {
		return nil, err
	}
	app.Path = filepath.Join(libraryPath, "steamapps", "common", app.InstallDir)

	app.Name = d.optString("name")
	app.LauncherPath = d.optString("LauncherPath")

	if raw := d.optUint("Universe"); raw != nil {
		u := Universe(*raw)
		app.Universe = &u
	}
	if raw := d.optUint("StateFlags"); raw != nil {
		s := StateFlags(*raw)
		app.StateFlags = &s
	}

	app.LastUpdated = d.optTime("LastUpdated")
	app.ScheduledAutoUpdate = d.optTime("ScheduledAutoUpdate")

	app.UpdateResult = d.optUint("UpdateResult")
	app.SizeOnDisk = d.optUint("SizeOnDisk")
	app.BuildID = d.optUint("buildid")
	app.TargetBuildID = d.optUint("TargetBuildID")
	app.BytesToDownload = d.optUint("BytesToDownload")
	app.BytesDownloaded = d.optUint("BytesDownloaded")
	app.BytesToStage = d.optUint("BytesToStage")
	app.BytesStaged = d.optUint("BytesStaged")
	app.StagingSize = d.optUint("StagingSize")
	app.LastUser = d.optUint("LastOwner")

	if raw := d.optUint("AutoUpdateBehavior"); raw != nil {
		app.AutoUpdateBehavior = AutoUpdateBehavior(*raw)
	}
	if raw := d.optUint("AllowOtherDownloadsWhileRunning"); raw != nil {
		app.AllowOtherDownloads = AllowOtherDownloads(*raw)
	}
	app.FullValidateBeforeNextUpdate = d.optBool("FullValidateBeforeNextUpdate")
	app.FullValidateAfterNextUpdate = d.optBool("FullValidateAfterNextUpdate")

	if app.InstalledDepots, err = d.depotMap("InstalledDepots"); err != nil {
		return nil, err
	}
	if app.StagedDepots, err = d.depotMap("StagedDepots"); err != nil {
		return nil, err
	}
	app.UserConfig = d.stringMap("UserConfig")
	app.MountedConfig = d.stringMap("MountedConfig")
	if app.InstallScripts, err = d.pathMap("InstallScripts"); err != nil {
		return nil, err
	}
	if app.SharedDepots, err = d.uintMap("SharedDepots"); err != nil {
		return nil, err
	}

	return app, nil
}

/*--------------------------- manifest field access --------------------------*/
//
// Valve's own tooling is not consistent about entry-name casing across
// platforms (fx "LastUpdated" on some installs, "lastupdated" on others), so
// every lookup here folds case.  The names passed in are the canonical
// casings from Steam's current output.

type manifestDecoder struct {
	path string
	obj  *sVDF.Obj
}

// foldGet returns the first entry of obj whose name matches name
// case-insensitively.
func foldGet(obj *sVDF.Obj, name string) (sVDF.Value, bool) {
	for _, p := range obj.Pairs() {
		if strings.EqualFold(p.Name, name) {
			return p.Value, true
		}
	}
	return nil, false
}

// needString returns a mandatory string entry, or a structural error.
func (d *manifestDecoder) needString(name string) (string, error) {
	v, ok := foldGet(d.obj, name)
	if !ok {
		return "", fileError(d.path, "has no %q entry", name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fileError(d.path, "%q entry is a list, not a string", name)
	}
	return s, nil
}

// optString returns an optional string entry, or nil.  An entry that is
// present but is a list counts as absent: stale manifests are not worth
// failing the whole decode over for an optional field.
func (d *manifestDecoder) optString(name string) *string {
	v, ok := foldGet(d.obj, name)
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

// optUint returns an optional unsigned-integer entry, or nil for an absent
// or non-numeric entry.
func (d *manifestDecoder) optUint(name string) *uint64 {
	s := d.optString(name)
	if s == nil {
		return nil
	}
	n, err := strconv.ParseUint(*s, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func (d *manifestDecoder) optBool(name string) bool {
	n := d.optUint(name)
	return n != nil && *n != 0
}

// maxEpochSeconds is the largest seconds-since-epoch value that time.Unix
// can represent without int64 overflow (the epoch is 62135596800 seconds
// after time.Time's zero year).
const maxEpochSeconds = math.MaxInt64 - 62135596800

// optTime decodes a seconds-since-Unix-epoch entry.  A raw value of zero
// means "never"/"unset" and decodes to nil; values beyond the representable
// range saturate instead of overflowing.
func (d *manifestDecoder) optTime(name string) *time.Time {
	raw := d.optUint(name)
	if raw == nil || *raw == 0 {
		return nil
	}
	secs := *raw
	if secs > maxEpochSeconds {
		secs = maxEpochSeconds
	}
	t := time.Unix(int64(secs), 0).UTC()
	return &t
}

// subObj returns a named sub-list, or nil if absent.
func (d *manifestDecoder) subObj(name string) *sVDF.Obj {
	v, ok := foldGet(d.obj, name)
	if !ok {
		return nil
	}
	obj, _ := v.(*sVDF.Obj)
	return obj
}

// depotMap decodes a depot table: each entry's name is a depot ID, each
// value a list with "manifest", "size" and optionally "dlcappid" entries.
func (d *manifestDecoder) depotMap(name string) (map[uint64]Depot, error) {
	obj := d.subObj(name)
	ret := make(map[uint64]Depot)
	if obj == nil {
		return ret, nil
	}
	for _, p := range obj.Pairs() {
		depotID, err := strconv.ParseUint(p.Name, 10, 64)
		if err != nil {
			return nil, fileError(d.path, "%q has non-numeric depot ID %q",
				name, p.Name)
		}
		depotObj, ok := p.Value.(*sVDF.Obj)
		if !ok {
			return nil, fileError(d.path, "depot %d in %q is not a list",
				depotID, name)
		}
		dd := manifestDecoder{path: d.path, obj: depotObj}
		var depot Depot
		if n := dd.optUint("manifest"); n != nil {
			depot.Manifest = *n
		} else {
			return nil, fileError(d.path, "depot %d in %q has no manifest ID",
				depotID, name)
		}
		if n := dd.optUint("size"); n != nil {
			depot.Size = *n
		} else {
			return nil, fileError(d.path, "depot %d in %q has no size",
				depotID, name)
		}
		depot.DLCAppID = dd.optUint("dlcappid")
		ret[depotID] = depot
	}
	return ret, nil
}

// stringMap decodes a flat list of string entries; non-string values are
// skipped (UserConfig can contain nested tables we have no use for).
func (d *manifestDecoder) stringMap(name string) map[string]string {
	obj := d.subObj(name)
	ret := make(map[string]string)
	if obj == nil {
		return ret
	}
	for _, p := range obj.Pairs() {
		if s, ok := p.Value.(string); ok {
			ret[p.Name] = s
		}
	}
	return ret
}

// pathMap decodes a table of numeric-ID → path-string entries.
func (d *manifestDecoder) pathMap(name string) (map[uint64]string, error) {
	obj := d.subObj(name)
	ret := make(map[uint64]string)
	if obj == nil {
		return ret, nil
	}
	for _, p := range obj.Pairs() {
		id, err := strconv.ParseUint(p.Name, 10, 64)
		if err != nil {
			return nil, fileError(d.path, "%q has non-numeric ID %q",
				name, p.Name)
		}
		s, ok := p.Value.(string)
		if !ok {
			return nil, fileError(d.path, "entry %d in %q is not a string",
				id, name)
		}
		ret[id] = s
	}
	return ret, nil
}

// uintMap decodes a table of numeric-ID → unsigned-integer entries.
func (d *manifestDecoder) uintMap(name string) (map[uint64]uint64, error) {
	obj := d.subObj(name)
	ret := make(map[uint64]uint64)
	if obj == nil {
		return ret, nil
	}
	for _, p := range obj.Pairs() {
		id, err := strconv.ParseUint(p.Name, 10, 64)
		if err != nil {
			return nil, fileError(d.path, "%q has non-numeric ID %q",
				name, p.Name)
		}
		s, ok := p.Value.(string)
		if !ok {
			return nil, fileError(d.path, "entry %d in %q is not a string",
				id, name)
		}
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, fileError(d.path, "entry %d in %q is not a number",
				id, name)
		}
		ret[id] = n
	}
	return ret, nil
}
