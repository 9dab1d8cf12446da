package steamfiles

import (
	"fmt"

	"github.com/c12h/errs" //???TO-DO: better name coming one day ...
)

/*------------- cannot is a convenience wrapper for errs.Cannot --------------*/

func cannot(verb, adjective, noun string, baseError error) error {
	return errs.Cannot(verb, adjective, noun, true, "", baseError)
}

/*-------------------------------- FileError ---------------------------------*/

// A FileError reports a structural defect in a file that exists and was
// readable: a required entry is missing, an entry has the wrong shape, or a
// binary record is truncated.
type FileError struct {
	Path    string // The file that we have a problem with
	Problem string // Our complaint
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s in file %q", e.Problem, e.Path)
}

// fileError is a convenience function to return a (pointer to a) FileError.
func fileError(filepath, format string, args ...interface{}) error {
	return &FileError{
		Path:    filepath,
		Problem: fmt.Sprintf(format, args...),
	}
}

/*------------------------------ NotFoundError -------------------------------*/

// A NotFoundError reports that a file, directory or other part of a Steam
// instance is absent.  It is reserved for genuinely missing things; a file
// that is present but malformed is a *FileError instead.
type NotFoundError struct {
	What    string
	BaseErr error
}

func (e *NotFoundError) Error() string {
	text := fmt.Sprintf("cannot find %s", e.What)
	if e.BaseErr != nil {
		text = fmt.Sprintf("%s: %s", text, e.BaseErr)
	}
	return text
}
func (e *NotFoundError) Unwrap() error {
	return e.BaseErr
}

func cannotFind(what string, err error) *NotFoundError {
	return &NotFoundError{What: what, BaseErr: err}
}

/*---------------------------- App-related errors ----------------------------*/

// An AppNotFoundError reports that an app is simply not present: its ID does
// not appear in the library's (or installation's) manifest scan.  This is
// distinct from a manifest that is present but fails to decode.
type AppNotFoundError struct {
	AppID AppID
}

func (e *AppNotFoundError) Error() string {
	return fmt.Sprintf("app %d is not installed here", e.AppID)
}

// A MissingAppError reports an inconsistency: an app ID that was obtained by
// enumerating manifest files could not be read back.  The filesystem changed
// underneath us or the manifest is unreadable.
type MissingAppError struct {
	AppID   AppID
	BaseErr error
}

func (e *MissingAppError) Error() string {
	return fmt.Sprintf("app %d was enumerated but its manifest cannot be decoded: %s",
		e.AppID, e.BaseErr)
}
func (e *MissingAppError) Unwrap() error {
	return e.BaseErr
}

// A MissingInstallDirError reports that an app's manifest decoded cleanly
// but the installation directory it names does not exist on disk.  Whether
// this is fatal is the caller's policy; see Library.ValidateApp.
type MissingInstallDirError struct {
	AppID AppID
	Path  string
}

func (e *MissingInstallDirError) Error() string {
	return fmt.Sprintf("app %d has no installation directory at %q", e.AppID, e.Path)
}
