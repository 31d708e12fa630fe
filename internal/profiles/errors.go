package profiles

import (
	"errors"
	"fmt"

	pathutils "github.com/temirov/gitp/internal/utils/path"
)

const (
	notFoundMessageConstant             = "not found"
	emptyCollectionMessageConstant      = "no profiles configured"
	notFoundTemplateConstant            = "%s %q not found"
	parseErrorTemplateConstant          = "unable to parse %s: %v"
	validationErrorTemplateConstant     = "invalid %s: %s"
	duplicateProfileTemplateConstant    = "profile %q already exists"
	selectionErrorTemplateConstant      = "profile selection failed: %v"
	internalConsistencyTemplateConstant = "internal error: selected profile %q is missing from the collection"
	profileSubjectConstant              = "profile"
	storeSubjectConstant                = "profile store"
	validationMessageConstant           = "validation failed"
)

var (
	// ErrNotFound is matched by every NotFoundError.
	ErrNotFound = errors.New(notFoundMessageConstant)
	// ErrHomeNotSet indicates the store path cannot be derived from the environment.
	ErrHomeNotSet = pathutils.ErrHomeNotSet
	// ErrEmptyCollection indicates an operation requires at least one profile.
	ErrEmptyCollection = errors.New(emptyCollectionMessageConstant)
	// ErrValidation is matched by ValidationError and DuplicateProfileError.
	ErrValidation = errors.New(validationMessageConstant)
)

// NotFoundError reports a missing profile or store file.
type NotFoundError struct {
	Subject string
	Name    string
}

// Error describes the missing item.
func (notFoundError NotFoundError) Error() string {
	return fmt.Sprintf(notFoundTemplateConstant, notFoundError.Subject, notFoundError.Name)
}

// Is matches ErrNotFound.
func (notFoundError NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ParseError reports a store document that cannot be decoded.
type ParseError struct {
	Source string
	Cause  error
}

// Error describes the parse failure.
func (parseError ParseError) Error() string {
	return fmt.Sprintf(parseErrorTemplateConstant, parseError.Source, parseError.Cause)
}

// Unwrap exposes the underlying decoding failure.
func (parseError ParseError) Unwrap() error {
	return parseError.Cause
}

// ValidationError reports an invalid profile field.
type ValidationError struct {
	Field   string
	Message string
}

// Error describes the invalid field.
func (validationError ValidationError) Error() string {
	return fmt.Sprintf(validationErrorTemplateConstant, validationError.Field, validationError.Message)
}

// Is matches ErrValidation.
func (validationError ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// DuplicateProfileError reports an insert whose name is already taken.
type DuplicateProfileError struct {
	Name string
}

// Error describes the conflicting name.
func (duplicateError DuplicateProfileError) Error() string {
	return fmt.Sprintf(duplicateProfileTemplateConstant, duplicateError.Name)
}

// Is matches ErrValidation.
func (duplicateError DuplicateProfileError) Is(target error) bool {
	return target == ErrValidation
}

// SelectionError reports an interactive selection that did not produce a profile.
type SelectionError struct {
	Cause error
}

// Error describes the selection failure.
func (selectionError SelectionError) Error() string {
	return fmt.Sprintf(selectionErrorTemplateConstant, selectionError.Cause)
}

// Unwrap exposes the prompt failure or ErrEmptyCollection.
func (selectionError SelectionError) Unwrap() error {
	return selectionError.Cause
}

// InternalConsistencyError reports a selected profile that vanished from the collection.
type InternalConsistencyError struct {
	Name string
}

// Error describes the inconsistency.
func (consistencyError InternalConsistencyError) Error() string {
	return fmt.Sprintf(internalConsistencyTemplateConstant, consistencyError.Name)
}
