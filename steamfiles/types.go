package steamfiles

import (
	"fmt"
	"math"
	"strconv"
)

// Steam identifies apps by a positive integer, which Valve calls "appid".
//
// Valve's own tooling treats these as unsigned 32-bit values (shortcut app
// IDs use the full range), so we do too.
type AppID uint32

// parseAppID gets an AppID from a string, with lots of error checking.
func parseAppID(text, path string) (AppID, error) {
	appID, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0, fileError(path, "has app ID %q, need unsigned integer", text)
	}
	if appID > math.MaxUint32 {
		return 0, fileError(path, "has app ID %d, too big for an appid", appID)
	}
	return AppID(appID), nil
}

/*----------------- Enums with an unknown-value escape hatch -----------------*/
//
// These fields belong to a format Valve versions without us; values outside
// the known set are carried through unchanged instead of being rejected.
// Known() reports whether a value is in the named set.

// Universe says which Steam universe an app belongs to.
//
// See https://developer.valvesoftware.com/wiki/SteamID#Universes_Available_for_Steam_Accounts
type Universe uint64

const (
	UniverseInvalid  Universe = 0
	UniversePublic   Universe = 1
	UniverseBeta     Universe = 2
	UniverseInternal Universe = 3
	UniverseDev      Universe = 4
)

func (u Universe) Known() bool { return u <= UniverseDev }

func (u Universe) String() string {
	switch u {
	case UniverseInvalid:
		return "Invalid"
	case UniversePublic:
		return "Public"
	case UniverseBeta:
		return "Beta"
	case UniverseInternal:
		return "Internal"
	case UniverseDev:
		return "Dev"
	}
	return fmt.Sprintf("Universe(%d)", uint64(u))
}

// AutoUpdateBehavior is an app's per-app update policy.  A manifest without
// the field means KeepUpToDate.
type AutoUpdateBehavior uint64

const (
	KeepUpToDate           AutoUpdateBehavior = 0
	OnlyUpdateOnLaunch     AutoUpdateBehavior = 1
	UpdateWithHighPriority AutoUpdateBehavior = 2
)

func (b AutoUpdateBehavior) Known() bool { return b <= UpdateWithHighPriority }

func (b AutoUpdateBehavior) String() string {
	switch b {
	case KeepUpToDate:
		return "KeepUpToDate"
	case OnlyUpdateOnLaunch:
		return "OnlyUpdateOnLaunch"
	case UpdateWithHighPriority:
		return "UpdateWithHighPriority"
	}
	return fmt.Sprintf("AutoUpdateBehavior(%d)", uint64(b))
}

// AllowOtherDownloads says whether Steam may download other apps while this
// one is running.  A manifest without the field means UseGlobalSetting.
type AllowOtherDownloads uint64

const (
	UseGlobalSetting AllowOtherDownloads = 0
	AllowDownloads   AllowOtherDownloads = 1
	NeverAllow       AllowOtherDownloads = 2
)

func (a AllowOtherDownloads) Known() bool { return a <= NeverAllow }

func (a AllowOtherDownloads) String() string {
	switch a {
	case UseGlobalSetting:
		return "UseGlobalSetting"
	case AllowDownloads:
		return "Allow"
	case NeverAllow:
		return "Never"
	}
	return fmt.Sprintf("AllowOtherDownloads(%d)", uint64(a))
}
