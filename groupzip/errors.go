package groupzip

import (
	"errors"
	"fmt"
)

// Sentinel errors for package groupzip.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Directory errors
	ErrDirectoryNotFound = errors.New("directory not found")
	ErrNotDirectory      = errors.New("expected directory but got file")

	// Group errors
	ErrEmptyGroup             = errors.New("group has no members")
	ErrInvalidBaseName        = errors.New("invalid base name")
	ErrMemberOutsideDirectory = errors.New("member is not directly under the target directory")

	// Configuration errors
	ErrUnknownRule   = errors.New("unknown base name rule")
	ErrUnknownPolicy = errors.New("unknown selection policy")
	ErrInvalidPolicy = errors.New("invalid selection policy")

	// Archive errors
	ErrNonFlatEntry    = errors.New("archive entry has a directory component")
	ErrContentMismatch = errors.New("archive entry differs from file on disk")
)

// Archiving steps reported in GroupArchiveError.Op.
const (
	OpCreate = "create"
	OpMove   = "move"
	OpRemove = "remove"
)

// GroupArchiveError reports a failure to archive a single group. The run that
// produced it continues with the remaining groups.
type GroupArchiveError struct {
	BaseName string
	Op       string
	Err      error
}

func (e *GroupArchiveError) Error() string {
	return fmt.Sprintf("archive group %q: %s: %v", e.BaseName, e.Op, e.Err)
}

func (e *GroupArchiveError) Unwrap() error {
	return e.Err
}
