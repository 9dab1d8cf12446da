// Command steam-apps lists what a Steam installation has installed: its
// library folders, the apps in each, the per-user non-Steam shortcuts and
// the compatibility-tool assignments.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/docopt/docopt-go"

	"github.com/c12h/steam-locate/steamfiles"
)

const VERSION = "0.1"

const USAGEf = `Usage:
  %s [options] [libs | apps | shortcuts | compat]
  %s (-h | --help  |  --version)

Report what a Steam installation has installed.  With no subcommand, apps.

Subcommands:
  libs       List the Steam library folders, in Steam's priority order
  apps       List the installed apps in every library
  shortcuts  List each user's non-Steam shortcuts
  compat     List the per-app compatibility-tool assignments

Options:
  -s=<steam-dir>  Use this Steam directory instead of probing for one
  -m              With apps: also report apps whose install directory is missing
  -v              Output progress reports
`

func main() {
	progName := filepath.Base(os.Args[0])
	usageText := fmt.Sprintf(USAGEf, progName, progName)
	parsedArgs, err := docopt.ParseArgs(usageText, os.Args[1:], VERSION)
	if err != nil {
		log.Fatal("docopt failed", "err", err)
	}

	if optSpecified("-v", parsedArgs) {
		log.SetLevel(log.DebugLevel)
	}

	var steamDir *steamfiles.SteamDir
	if dir := getArg("-s", parsedArgs); dir != "" {
		steamDir, err = steamfiles.SteamDirAt(dir)
	} else {
		steamDir, err = steamfiles.Locate()
	}
	if err != nil {
		log.Fatal("cannot find a Steam installation", "err", err)
	}
	log.Debug("found Steam installation", "path", steamDir.Path())

	switch {
	case optSpecified("libs", parsedArgs):
		listLibs(steamDir)
	case optSpecified("shortcuts", parsedArgs):
		listShortcuts(steamDir)
	case optSpecified("compat", parsedArgs):
		listCompat(steamDir)
	default:
		listApps(steamDir, optSpecified("-m", parsedArgs))
	}
}

func listLibs(steamDir *steamfiles.SteamDir) {
	paths, err := steamDir.LibraryPaths()
	if err != nil {
		log.Fatal("cannot resolve library folders", "err", err)
	}
	for _, p := range paths {
		fmt.Println(p)
	}
}

func listApps(steamDir *steamfiles.SteamDir, reportMissing bool) {
	it, err := steamDir.Libraries()
	if err != nil {
		log.Fatal("cannot resolve library folders", "err", err)
	}
	nApps, nProblems := 0, 0
	for it.Next() {
		if it.Err() != nil {
			log.Error("cannot scan library", "err", it.Err())
			nProblems++
			continue
		}
		lib := it.Library()
		log.Debug("scanning library", "path", lib.Path(),
			"apps", len(lib.AppIDs()))
		for apps := lib.Apps(); apps.Next(); {
			if apps.Err() != nil {
				log.Error("bad manifest", "err", apps.Err())
				nProblems++
				continue
			}
			app := apps.App()
			name := "(unnamed)"
			if app.Name != nil {
				name = *app.Name
			}
			fmt.Printf("%8d  %s\n", app.AppID, name)
			nApps++
			if reportMissing {
				if err := lib.ValidateApp(app); err != nil {
					log.Warn("not on disk", "err", err)
				}
			}
		}
	}
	log.Debug("done", "apps", nApps, "problems", nProblems)
	if nProblems > 0 {
		os.Exit(1)
	}
}

func listShortcuts(steamDir *steamfiles.SteamDir) {
	it, err := steamDir.Shortcuts()
	if err != nil {
		log.Fatal("cannot open userdata", "err", err)
	}
	for it.Next() {
		if it.Err() != nil {
			log.Error("bad shortcuts file", "user-dir", it.UserDir(),
				"err", it.Err())
			continue
		}
		for _, sc := range it.Shortcuts() {
			fmt.Printf("%10d  %-30s %s\n", sc.AppID, sc.AppName, sc.Executable)
			log.Debug("shortcut", "steam-id", fmt.Sprintf("%#x", sc.SteamID),
				"start-dir", sc.StartDir)
		}
	}
}

func listCompat(steamDir *steamfiles.SteamDir) {
	mapping, err := steamDir.CompatToolMapping()
	if err != nil {
		log.Fatal("cannot read compat-tool mapping", "err", err)
	}
	ids := make([]steamfiles.AppID, 0, len(mapping))
	for id := range mapping {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		name := "(default)"
		if mapping[id].Name != nil {
			name = *mapping[id].Name
		}
		fmt.Printf("%8d  %s\n", id, name)
	}
}

func optSpecified(key string, parsedArgs docopt.Opts) bool {
	val, err := parsedArgs.Bool(key)
	return err == nil && val
}

func getArg(key string, parsedArgs docopt.Opts) string {
	val, err := parsedArgs.String(key)
	if err != nil {
		return ""
	}
	return val
}
