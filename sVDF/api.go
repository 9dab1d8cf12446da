// Package sVDF parses simple, string-only Valve Data Format files.
//
// “Simple” VDF is the all-text subset of Valve's key-value format: a
// double-quoted name followed by either a double-quoted string value or a
// brace-delimited list of further name/value pairs.  Steam writes its
// libraryfolders.vdf, appmanifest_<N>.acf and config.vdf files in this
// format.
//
// The format permits the same name to appear more than once in a list, and
// Steam relies on the order of entries (library folders are listed in
// priority order), so this package keeps every pair in order of appearance
// rather than collapsing them into a plain map.
package sVDF

import (
	"fmt"
	"os"
	"time"
)

/*======================== Types for Names and Values ========================*/

// A Value is a datum from a VDF file: either a string or a *Obj.
type Value interface{}

// A Pair is one name/value entry in an Obj.
type Pair struct {
	Name  string
	Value Value
}

// An Obj is an ordered list of name/value pairs.  Duplicate names are kept;
// lookups by name are case-sensitive and return the first match.  Callers
// that need to absorb Valve's own casing drift (fx "LastUpdated" vs
// "lastupdated") should scan Pairs() and fold for themselves.
type Obj struct {
	pairs []Pair
}

// Len returns the number of pairs in an Obj.
func (o *Obj) Len() int { return len(o.pairs) }

// Pairs returns the pairs of an Obj in order of appearance.  The returned
// slice is the Obj's own storage; callers must not modify it.
func (o *Obj) Pairs() []Pair { return o.pairs }

// Get returns the value for the first pair with exactly the given name.
func (o *Obj) Get(name string) (Value, bool) {
	for _, p := range o.pairs {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

// GetAll returns the values of every pair with exactly the given name, in
// order of appearance.
func (o *Obj) GetAll(name string) []Value {
	var ret []Value
	for _, p := range o.pairs {
		if p.Name == name {
			ret = append(ret, p.Value)
		}
	}
	return ret
}

func (o *Obj) add(name string, v Value) {
	o.pairs = append(o.pairs, Pair{Name: name, Value: v})
}

/*==================== Types and Functions for VDF Files =====================*/

// A File represents a VDF file that has been parsed successfully.
type File struct {
	Path    string    // The (or at least a) path of the file
	ModTime time.Time // When the file was last modified
	Size    int64     // The size of the file in bytes
	//
	TopName  string // The name of the file's single top-level entry
	TopValue Value  // That entry's value
}

// FromFile opens, reads and parses a simple-VDF file.
func FromFile(filespec string) (*File, error) {
	data, err := os.ReadFile(filespec)
	if err != nil {
		return nil, cannot(err, "read", filespec)
	}
	ret := &File{Path: filespec, Size: int64(len(data))}
	if fileInfo, err := os.Stat(filespec); err == nil {
		ret.ModTime = fileInfo.ModTime()
	}
	ret.TopName, ret.TopValue, err = Parse(data, filespec)
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// Lookup returns the string value, if any, reached by following a chain of
// names through nested objects: the first name selects an entry of the
// top-level object, the next an entry of that entry's object, and so on.
// All names but the last must lead to objects; the last must lead to a
// string.
func (f *File) Lookup(names ...string) (string, error) {
	v := f.TopValue
	for i := 0; i < len(names); i++ {
		obj, ok := v.(*Obj)
		if !ok {
			return "", &IsStringError{NamePath: names[:i]}
		}
		v, ok = obj.Get(names[i])
		if !ok {
			return "", &UnknownNameError{NamePath: names[:i+1]}
		}
	}
	s, ok := v.(string)
	if !ok {
		return "", &NotStringError{NamePath: names}
	}
	return s, nil
}

/*================================== Errors ==================================*/

// An IsStringError reports that a name in a Lookup chain led to a string
// where an object was needed.
type IsStringError struct {
	NamePath []string
}

// A NotStringError reports that the final name of a Lookup chain led to an
// object, not a string.
type NotStringError struct {
	NamePath []string
}

// An UnknownNameError reports that a name in a Lookup chain was absent.
type UnknownNameError struct {
	NamePath []string
}

func (e *IsStringError) Error() string {
	return fmt.Sprintf("value at %s is a string, not a list", namesPath(e.NamePath))
}
func (e *NotStringError) Error() string {
	return fmt.Sprintf("value at %s is a list, not a string", namesPath(e.NamePath))
}
func (e *UnknownNameError) Error() string {
	last := len(e.NamePath) - 1
	return fmt.Sprintf("no entry named %q at %s",
		e.NamePath[last], namesPath(e.NamePath[:last]))
}

func namesPath(names []string) string {
	if len(names) == 0 {
		return "top level"
	}
	text := ""
	for _, n := range names {
		text += fmt.Sprintf("→%q", n)
	}
	return text[len("→"):]
}

// A CannotError wraps an I/O failure with the verb that failed and the file
// it failed on.
type CannotError struct {
	Verb    string
	Noun    string
	BaseErr error
}

func cannot(baseErr error, verb, filespec string) error {
	return &CannotError{Verb: verb, Noun: filespec, BaseErr: baseErr}
}
func (e *CannotError) Error() string {
	return fmt.Sprintf("cannot %s %q: %s", e.Verb, e.Noun, e.BaseErr)
}
func (e *CannotError) Unwrap() error {
	return e.BaseErr
}
