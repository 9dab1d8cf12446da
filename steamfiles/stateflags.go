package steamfiles

import "fmt"

// StateFlags is the packed bitfield from a manifest's "StateFlags" entry:
// one integer encoding several independent installation-state conditions by
// bit position.  The raw value is kept as-is; use Flags to decode it.
//
// The bit assignments come from Valve and are documented (unofficially) at
// https://github.com/lutris/lutris/blob/master/docs/steam.rst
type StateFlags uint64

// A StateFlag is one decoded installation-state condition.  Its integer
// value is the bit offset it was decoded from, except for FlagInvalid, which
// stands for a packed value of zero.  Offsets outside the named table
// (13-15 and 24 up) are carried through as themselves and render as
// "Unknown(n)".
type StateFlag int8

const FlagInvalid StateFlag = -1

const (
	FlagUninstalled    StateFlag = 0
	FlagUpdateRequired StateFlag = 1
	FlagFullyInstalled StateFlag = 2
	FlagEncrypted      StateFlag = 3
	FlagLocked         StateFlag = 4
	FlagFilesMissing   StateFlag = 5
	FlagAppRunning     StateFlag = 6
	FlagFilesCorrupt   StateFlag = 7
	FlagUpdateRunning  StateFlag = 8
	FlagUpdatePaused   StateFlag = 9
	FlagUpdateStarted  StateFlag = 10
	FlagUninstalling   StateFlag = 11
	FlagBackupRunning  StateFlag = 12

	FlagReconfiguring  StateFlag = 16
	FlagValidating     StateFlag = 17
	FlagAddingFiles    StateFlag = 18
	FlagPreallocating  StateFlag = 19
	FlagDownloading    StateFlag = 20
	FlagStaging        StateFlag = 21
	FlagCommitting     StateFlag = 22
	FlagUpdateStopping StateFlag = 23
)

var stateFlagNames = map[StateFlag]string{
	FlagInvalid:        "Invalid",
	FlagUninstalled:    "Uninstalled",
	FlagUpdateRequired: "UpdateRequired",
	FlagFullyInstalled: "FullyInstalled",
	FlagEncrypted:      "Encrypted",
	FlagLocked:         "Locked",
	FlagFilesMissing:   "FilesMissing",
	FlagAppRunning:     "AppRunning",
	FlagFilesCorrupt:   "FilesCorrupt",
	FlagUpdateRunning:  "UpdateRunning",
	FlagUpdatePaused:   "UpdatePaused",
	FlagUpdateStarted:  "UpdateStarted",
	FlagUninstalling:   "Uninstalling",
	FlagBackupRunning:  "BackupRunning",
	FlagReconfiguring:  "Reconfiguring",
	FlagValidating:     "Validating",
	FlagAddingFiles:    "AddingFiles",
	FlagPreallocating:  "Preallocating",
	FlagDownloading:    "Downloading",
	FlagStaging:        "Staging",
	FlagCommitting:     "Committing",
	FlagUpdateStopping: "UpdateStopping",
}

// Known reports whether the flag has a name in Valve's table.
func (f StateFlag) Known() bool {
	_, ok := stateFlagNames[f]
	return ok
}

func (f StateFlag) String() string {
	if name, ok := stateFlagNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", int8(f))
}

// Flags returns an iterator over the conditions packed into s.
//
// A packed value of exactly zero yields FlagInvalid once.  Otherwise the
// iterator scans bit offsets 0 through 63 in ascending order and yields one
// StateFlag per set bit.  Each call to Next does one step of work, so it is
// cheap to abandon the iterator early, and a fresh iterator can always be
// obtained by calling Flags again.
func (s StateFlags) Flags() *FlagIter {
	return &FlagIter{flags: s}
}

// All returns every condition packed into s, in ascending bit order.
func (s StateFlags) All() []StateFlag {
	var ret []StateFlag
	for it := s.Flags(); ; {
		f, ok := it.Next()
		if !ok {
			return ret
		}
		ret = append(ret, f)
	}
}

// A FlagIter steps through the flags of a StateFlags value.  The zero value
// is an exhausted iterator; use StateFlags.Flags.
type FlagIter struct {
	flags StateFlags
	// offset is the next bit to examine.  done covers both terminal
	// states: the zero-value Invalid has been emitted, or all 64 bits
	// have been scanned.
	offset uint
	done   bool
}

// Next returns the next decoded flag, or ok == false when the iterator is
// exhausted.
func (it *FlagIter) Next() (StateFlag, bool) {
	if it.done {
		return 0, false
	}
	if it.flags == 0 {
		it.done = true
		return FlagInvalid, true
	}
	for it.offset < 64 {
		offset := it.offset
		it.offset++
		if it.flags&(1<<offset) != 0 {
			return StateFlag(offset), true
		}
	}
	it.done = true
	return 0, false
}
