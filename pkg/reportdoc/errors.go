// Package reportdoc provides custom error types for better error handling and reporting.
package reportdoc

import (
	"errors"
	"fmt"
)

// ArchiveError represents a failure to read or write the DOCX container archive
type ArchiveError struct {
	Path  string
	Cause error
}

func (e *ArchiveError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("archive error for '%s': %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("archive error for '%s'", e.Path)
}

func (e *ArchiveError) Unwrap() error {
	return e.Cause
}

// NewArchiveError creates a new archive error
func NewArchiveError(path string, cause error) error {
	return &ArchiveError{
		Path:  path,
		Cause: cause,
	}
}

// MarkupError represents an XML parse failure in one of the document parts
type MarkupError struct {
	Path  string
	Cause error
}

func (e *MarkupError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("markup error in '%s': %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("markup error in '%s'", e.Path)
}

func (e *MarkupError) Unwrap() error {
	return e.Cause
}

// NewMarkupError creates a new markup error
func NewMarkupError(path string, cause error) error {
	return &MarkupError{
		Path:  path,
		Cause: cause,
	}
}

// StructureError represents an expected node or placeholder that is absent
// from an otherwise well-formed document
type StructureError struct {
	Message string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("structure error: %s", e.Message)
}

// NewStructureError creates a new structure error
func NewStructureError(message string) error {
	return &StructureError{
		Message: message,
	}
}

// DuplicateIDError represents a relationship id collision in the manifest
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate relationship id '%s'", e.ID)
}

// NewDuplicateIDError creates a new duplicate id error
func NewDuplicateIDError(id string) error {
	return &DuplicateIDError{
		ID: id,
	}
}

// EntryError wraps a failure with the index of the report entry that was
// being processed, so a caller can fix a single bad entry without guessing
type EntryError struct {
	Index int
	Cause error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("entry %d: %v", e.Index, e.Cause)
}

func (e *EntryError) Unwrap() error {
	return e.Cause
}

// NewEntryError creates a new entry error
func NewEntryError(index int, cause error) error {
	return &EntryError{
		Index: index,
		Cause: cause,
	}
}

// IsArchiveError checks if an error is an archive error
func IsArchiveError(err error) bool {
	var target *ArchiveError
	return errors.As(err, &target)
}

// IsMarkupError checks if an error is a markup error
func IsMarkupError(err error) bool {
	var target *MarkupError
	return errors.As(err, &target)
}

// IsStructureError checks if an error is a structure error
func IsStructureError(err error) bool {
	var target *StructureError
	return errors.As(err, &target)
}

// IsDuplicateIDError checks if an error is a duplicate id error
func IsDuplicateIDError(err error) bool {
	var target *DuplicateIDError
	return errors.As(err, &target)
}

// EntryIndex returns the index of the entry an error occurred on,
// or -1 if the error is not associated with an entry
func EntryIndex(err error) int {
	var target *EntryError
	if errors.As(err, &target) {
		return target.Index
	}
	return -1
}
