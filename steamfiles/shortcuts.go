// Decoding the per-user shortcuts.vdf binary files.

package steamfiles

import (
	"encoding/binary"
	"hash/crc32"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// A Shortcut is a non-Steam app the user has added to their Steam library,
// recorded in a per-user userdata/<user-id>/config/shortcuts.vdf file.
type Shortcut struct {
	AppID      uint32 // Steam's own numeric ID for the shortcut
	AppName    string // The display name
	Executable string // The command used to launch the app, quotes and all
	StartDir   string // The directory the app should be run in
	// SteamID is the 64-bit ID Steam derives from Executable and AppName
	// (see ShortcutSteamID).  It is not stored in the file; it is
	// recomputed here so callers can correlate shortcuts with Steam's
	// in-client identifiers.
	SteamID uint64
}

// ShortcutSteamID derives the 64-bit Steam ID for a shortcut from its
// executable string and display name, the way Steam itself does: CRC-32
// (the ISO-HDLC polynomial, Go's crc32.IEEE) over the executable bytes then
// the name bytes, with the top bit forced on, shifted into the high half,
// and the fixed 0x02000000 suffix in the low half.
func ShortcutSteamID(executable, appName string) uint64 {
	crc := crc32.Update(0, crc32.IEEETable, []byte(executable))
	crc = crc32.Update(crc, crc32.IEEETable, []byte(appName))
	top := uint64(crc) | 0x80000000
	return top<<32 | 0x02000000
}

// The shortcuts file has no declared grammar: fields are demarcated only by
// an ASCII key literal preceded by a type-tag byte (0x01 for strings, 0x02
// for little-endian u32s) and followed by NUL.  Records are positionally,
// not syntactically, delimited, so this is a tolerant scanner over the raw
// bytes rather than a structured parser.
var (
	markerAppID    = []byte("\x02appid\x00")
	markerAppName  = []byte("\x01AppName\x00")
	markerExe      = []byte("\x01Exe\x00")
	markerStartDir = []byte("\x01StartDir\x00")
)

// parseShortcuts decodes every shortcut record in data.  path is only used
// in error messages.
//
// Running out of input while looking for the next "appid" marker is the
// normal end of the stream.  Running out anywhere else — after an app ID
// has been read but before its name, executable and start directory have
// been found — means the file is truncated or malformed, which is a
// structural error.
func parseShortcuts(data []byte, path string) ([]Shortcut, error) {
	c := cursor{buf: data}
	var shortcuts []Shortcut

	for {
		if !c.advanceToMarker(markerAppID) {
			return shortcuts, nil
		}
		appID, ok := c.readUint32()
		if !ok {
			return nil, fileError(path, "truncated shortcut record (no app ID value)")
		}

		if !c.advanceToMarker(markerAppName) {
			return nil, fileError(path, "shortcut %d has no AppName", appID)
		}
		appName, ok := c.readCString()
		if !ok {
			return nil, fileError(path, "truncated shortcut record (unterminated AppName)")
		}

		if !c.advanceToMarker(markerExe) {
			return nil, fileError(path, "shortcut %q has no Exe", appName)
		}
		executable, ok := c.readCString()
		if !ok {
			return nil, fileError(path, "truncated shortcut record (unterminated Exe)")
		}

		if !c.advanceToMarker(markerStartDir) {
			return nil, fileError(path, "shortcut %q has no StartDir", appName)
		}
		startDir, ok := c.readCString()
		if !ok {
			return nil, fileError(path, "truncated shortcut record (unterminated StartDir)")
		}

		shortcuts = append(shortcuts, Shortcut{
			AppID:      appID,
			AppName:    appName,
			Executable: executable,
			StartDir:   startDir,
			SteamID:    ShortcutSteamID(executable, appName),
		})
	}
}

/*--------------------------------- cursor -----------------------------------*/

// A cursor provides the two primitive scanning operations over an immutable
// byte buffer: advance past the next occurrence of a marker, and read a
// NUL-terminated byte run.
type cursor struct {
	buf []byte
	pos int
}

// advanceToMarker scans forward byte-by-byte (no alignment is assumed) for
// needle, matching ASCII case-insensitively since real-world files vary the
// key casing.  On success the cursor is left just after the marker.  On
// failure the cursor is left at end-of-buffer.
func (c *cursor) advanceToMarker(needle []byte) bool {
	for ; c.pos+len(needle) <= len(c.buf); c.pos++ {
		if asciiFoldEqual(c.buf[c.pos:c.pos+len(needle)], needle) {
			c.pos += len(needle)
			return true
		}
	}
	c.pos = len(c.buf)
	return false
}

// readCString reads bytes up to a NUL terminator, decoding them as UTF-8
// and replacing any ill-formed sequences rather than failing.
func (c *cursor) readCString() (string, bool) {
	start := c.pos
	for ; c.pos < len(c.buf); c.pos++ {
		if c.buf[c.pos] == 0x00 {
			s := strings.ToValidUTF8(string(c.buf[start:c.pos]), "�")
			c.pos++ // step over the NUL
			return s, true
		}
	}
	return "", false
}

// readUint32 reads a little-endian unsigned 32-bit value.
func (c *cursor) readUint32() (uint32, bool) {
	if c.pos+4 > len(c.buf) {
		return 0, false
	}
	v := binary.LittleEndian.Uint32(c.buf[c.pos:])
	c.pos += 4
	return v, true
}

func asciiFoldEqual(a, b []byte) bool {
	for i := range b {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

/*------------------------------- ShortcutIter -------------------------------*/

// A ShortcutIter steps through the per-user shortcuts files of a Steam
// installation, yielding one decode result per userdata/<user-id>
// directory.  One user's malformed file is that item's error only and does
// not stop the other users' shortcuts from being decoded:
//
//	for it := steamDir.Shortcuts(); it.Next(); {
//		if err := it.Err(); err != nil { ... }
//		for _, sc := range it.Shortcuts() { ... }
//	}
type ShortcutIter struct {
	userDirs []string
	i        int
	dir      string
	found    []Shortcut
	err      error
}

// newShortcutIter lists the userdata directory up front (so the directory
// handle is not held across the caller's iteration) but reads nothing else
// until Next is called.
func newShortcutIter(steamDir string) (*ShortcutIter, error) {
	userData := filepath.Join(steamDir, "userdata")
	dh, err := os.Open(userData)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, cannotFind("userdata directory at "+userData, err)
		}
		return nil, cannot("open", "userdata directory", userData, err)
	}
	names, err := dh.Readdirnames(-1)
	dh.Close()
	if err != nil {
		return nil, cannot("read", "directory", userData, err)
	}
	sort.Strings(names)

	it := &ShortcutIter{}
	for _, n := range names {
		it.userDirs = append(it.userDirs, filepath.Join(userData, n))
	}
	return it, nil
}

// Next advances to the next user directory that has a shortcuts file,
// decoding it.  User directories without one are skipped silently: not
// every user adds non-Steam apps.  Next returns false when every user
// directory has been visited.
func (it *ShortcutIter) Next() bool {
	it.found, it.err = nil, nil
	for it.i < len(it.userDirs) {
		dir := it.userDirs[it.i]
		it.i++
		shortcutsPath := filepath.Join(dir, "config", "shortcuts.vdf")
		data, err := os.ReadFile(shortcutsPath)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			it.dir = dir
			it.err = cannot("read", "shortcuts file", shortcutsPath, err)
			return true
		}
		it.dir = dir
		it.found, it.err = parseShortcuts(data, shortcutsPath)
		return true
	}
	return false
}

// UserDir returns the userdata/<user-id> directory the last Next visited.
func (it *ShortcutIter) UserDir() string { return it.dir }

// Shortcuts returns the shortcuts decoded by the last Next.
func (it *ShortcutIter) Shortcuts() []Shortcut { return it.found }

// Err returns the decode error from the last Next, or nil.
func (it *ShortcutIter) Err() error { return it.err }
