// Reading the compatibility-tool (Proton etc) mapping from config.vdf.

package steamfiles

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/c12h/steam-locate/sVDF"
)

// A CompatTool describes the compatibility tool Steam runs an app with, fx
// "proton_experimental".
type CompatTool struct {
	Name     *string // The tool's name; Valve sometimes omits it
	Config   *string // Unknown purpose, carried through
	Priority *uint64 // Unknown purpose, carried through
}

// compatToolMapping parses <steam-dir>/config/config.vdf and returns the
// per-app compatibility-tool table.  The mapping lives four levels deep, at
// InstallConfigStore → Software → Valve → Steam → CompatToolMapping; each
// level is matched case-insensitively because Valve's tooling varies the
// casing of "Software" and friends between platforms.
func compatToolMapping(steamDir string) (map[AppID]CompatTool, error) {
	configPath := filepath.Join(steamDir, "config", "config.vdf")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, cannotFind("Steam config file at "+configPath, err)
	}
	f, err := sVDF.FromFile(configPath)
	if err != nil {
		return nil, err
	}

	obj, ok := f.TopValue.(*sVDF.Obj)
	if !ok || !strings.EqualFold(f.TopName, "InstallConfigStore") {
		return nil, fileError(configPath, `expected an "InstallConfigStore" list`)
	}
	for _, name := range []string{"Software", "Valve", "Steam"} {
		v, found := foldGet(obj, name)
		if !found {
			return nil, fileError(configPath, "has no %q entry", name)
		}
		if obj, ok = v.(*sVDF.Obj); !ok {
			return nil, fileError(configPath, "%q entry is not a list", name)
		}
	}
	v, found := foldGet(obj, "CompatToolMapping")
	if !found {
		// Never having assigned a compat tool is normal.
		return map[AppID]CompatTool{}, nil
	}
	mappingObj, ok := v.(*sVDF.Obj)
	if !ok {
		return nil, fileError(configPath, `"CompatToolMapping" is not a list`)
	}

	mapping := make(map[AppID]CompatTool, mappingObj.Len())
	for _, p := range mappingObj.Pairs() {
		// Entry "0" is the global default; it decodes like any app.
		id, err := strconv.ParseUint(p.Name, 10, 32)
		if err != nil {
			continue
		}
		toolObj, ok := p.Value.(*sVDF.Obj)
		if !ok {
			continue
		}
		d := manifestDecoder{path: configPath, obj: toolObj}
		mapping[AppID(id)] = CompatTool{
			Name:     d.optString("name"),
			Config:   d.optString("config"),
			Priority: d.optUint("priority"),
		}
	}
	return mapping, nil
}
