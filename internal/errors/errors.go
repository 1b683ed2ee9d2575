// Package errors provides sentinel errors and custom error types for ddw.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrEmptyClipboard indicates a paste or fill with nothing on the clipboard
	ErrEmptyClipboard = errors.New("no clipboard to paste")

	// ErrEmptySelection indicates an operation that needs selected elements
	ErrEmptySelection = errors.New("nothing selected")

	// ErrNothingUnderCursor indicates an operation that needs an element at the cursor
	ErrNothingUnderCursor = errors.New("nothing under cursor")

	// ErrDegroupRef indicates an attempt to degroup a ref element
	ErrDegroupRef = errors.New("can't degroup reference")

	// ErrDuplicateRow indicates the same element was added to a store twice
	ErrDuplicateRow = errors.New("duplicate row reference")

	// ErrDuplicateGroup indicates a group id that is already taken
	ErrDuplicateGroup = errors.New("group id already exists")

	// ErrGroupNotFound indicates a lookup of a group id that does not exist
	ErrGroupNotFound = errors.New("group not found")

	// ErrRefNotFound indicates a ref naming a group that does not exist
	ErrRefNotFound = errors.New("ref names a missing group")

	// ErrCyclicRef indicates a group that contains itself through refs
	ErrCyclicRef = errors.New("cyclic group reference")

	// ErrNothingToUndo indicates an empty undo log
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo indicates an empty redo log
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrNoFrames indicates a frame operation on a drawing without frames
	ErrNoFrames = errors.New("no frames")

	// ErrFirstFrame indicates a step backwards from the first frame
	ErrFirstFrame = errors.New("first frame")

	// ErrLastFrame indicates a step forwards from the last frame
	ErrLastFrame = errors.New("last frame")

	// ErrInvalidInput indicates user input that could not be parsed
	ErrInvalidInput = errors.New("invalid input")
)

// RefNotFoundError represents a ref whose group does not exist
type RefNotFoundError struct {
	Ref string
}

func (e *RefNotFoundError) Error() string {
	return fmt.Sprintf("ref to missing group %q", e.Ref)
}

// Is returns true if the target error is ErrRefNotFound
func (e *RefNotFoundError) Is(target error) bool {
	return target == ErrRefNotFound
}

// NewRefNotFoundError creates a new RefNotFoundError
func NewRefNotFoundError(ref string) *RefNotFoundError {
	return &RefNotFoundError{Ref: ref}
}

// CyclicRefError represents a group reached again while resolving itself
type CyclicRefError struct {
	Group string
	Path  []string
}

func (e *CyclicRefError) Error() string {
	if len(e.Path) > 0 {
		return fmt.Sprintf("group %q references itself via %v", e.Group, e.Path)
	}
	return fmt.Sprintf("group %q references itself", e.Group)
}

// Is returns true if the target error is ErrCyclicRef
func (e *CyclicRefError) Is(target error) bool {
	return target == ErrCyclicRef
}

// NewCyclicRefError creates a new CyclicRefError
func NewCyclicRefError(group string, path []string) *CyclicRefError {
	return &CyclicRefError{Group: group, Path: path}
}

// DuplicateGroupError represents a group id collision
type DuplicateGroupError struct {
	ID string
}

func (e *DuplicateGroupError) Error() string {
	return fmt.Sprintf("group %q already exists", e.ID)
}

// Is returns true if the target error is ErrDuplicateGroup
func (e *DuplicateGroupError) Is(target error) bool {
	return target == ErrDuplicateGroup
}

// NewDuplicateGroupError creates a new DuplicateGroupError
func NewDuplicateGroupError(id string) *DuplicateGroupError {
	return &DuplicateGroupError{ID: id}
}

// DecodeError represents a malformed line in a record stream
type DecodeError struct {
	Line int
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewDecodeError creates a new DecodeError
func NewDecodeError(line int, err error) *DecodeError {
	return &DecodeError{Line: line, Err: err}
}

// Is reports whether any error in err's tree matches target
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's tree that matches target
func As(err error, target any) bool { return errors.As(err, target) }

// Join wraps errs, discarding nils
func Join(errs ...error) error { return errors.Join(errs...) }
