package core

import (
	"fmt"
	"strings"
)

// Kind enumerates the error categories the core's public API can surface.
type Kind int

// Error kinds, grouped by taxonomy (see spec's error-handling design).
const (
	KindIssueNotFound Kind = iota
	KindIdCollision
	KindAmbiguousId
	KindInvalidId
	KindValidation
	KindValidationErrors
	KindInvalidStatus
	KindInvalidType
	KindInvalidPriority
	KindJsonlParse
	KindPrefixMismatch
	KindDependencyCycle
	KindHasDependents
	KindSelfDependency
	KindDependencyNotFound
	KindDuplicateDependency
	KindStorage
	KindFileNotFound
	KindIo
	KindJson
	KindNothingToDo
)

// FieldError is a single field-level validation violation.
type FieldError struct {
	Field  string
	Reason string
}

func (f FieldError) Error() string {
	return fmt.Sprintf("%s: %s", f.Field, f.Reason)
}

// Error is the core's single error type. Only the fields below that are
// tagged with a given Kind are meaningful for it.
type Error struct {
	Kind Kind

	ID      string // IssueNotFound, IdCollision, InvalidId, SelfDependency, DependencyNotFound, HasDependents
	Partial string // AmbiguousId
	Matches []string

	Field  string // Validation
	Reason string // Validation, NothingToDo
	Errors []FieldError // ValidationErrors

	Status   string // InvalidStatus
	Type     string // InvalidType
	Priority int    // InvalidPriority

	Line int // JsonlParse

	Expected string // PrefixMismatch
	Found    string

	Path string // DependencyCycle (path string like "C -> A")

	Count int // HasDependents

	From string // DuplicateDependency
	To   string

	Message string // Storage
	File    string // FileNotFound

	Wrapped error // Io, Json
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindIssueNotFound:
		return fmt.Sprintf("issue not found: %s", e.ID)
	case KindIdCollision:
		return fmt.Sprintf("issue id collision: %s", e.ID)
	case KindAmbiguousId:
		return fmt.Sprintf("ambiguous id %q: matches %v", e.Partial, e.Matches)
	case KindInvalidId:
		return fmt.Sprintf("invalid issue id format: %s", e.ID)
	case KindValidation:
		return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
	case KindValidationErrors:
		parts := make([]string, len(e.Errors))
		for i, fe := range e.Errors {
			parts[i] = fe.Error()
		}
		return fmt.Sprintf("validation errors: %s", strings.Join(parts, "; "))
	case KindInvalidStatus:
		return fmt.Sprintf("invalid status: %s", e.Status)
	case KindInvalidType:
		return fmt.Sprintf("invalid issue type: %s", e.Type)
	case KindInvalidPriority:
		return fmt.Sprintf("priority must be 0-4, got: %d", e.Priority)
	case KindJsonlParse:
		return fmt.Sprintf("jsonl parse error at line %d: %s", e.Line, e.Reason)
	case KindPrefixMismatch:
		return fmt.Sprintf("prefix mismatch: expected %q, found %q", e.Expected, e.Found)
	case KindDependencyCycle:
		return fmt.Sprintf("cycle detected in dependencies: %s", e.Path)
	case KindHasDependents:
		return fmt.Sprintf("cannot delete: %s has %d dependents", e.ID, e.Count)
	case KindSelfDependency:
		return fmt.Sprintf("issue cannot depend on itself: %s", e.ID)
	case KindDependencyNotFound:
		return fmt.Sprintf("dependency target not found: %s", e.ID)
	case KindDuplicateDependency:
		return fmt.Sprintf("dependency already exists: %s -> %s", e.From, e.To)
	case KindStorage:
		return fmt.Sprintf("storage error: %s", e.Message)
	case KindFileNotFound:
		return fmt.Sprintf("file not found: %s", e.File)
	case KindIo:
		return fmt.Sprintf("i/o error: %v", e.Wrapped)
	case KindJson:
		return fmt.Sprintf("json error: %v", e.Wrapped)
	case KindNothingToDo:
		return fmt.Sprintf("nothing to do: %s", e.Reason)
	default:
		return "unknown core error"
	}
}

// Unwrap exposes the wrapped I/O or JSON error for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// newValidationError builds a single-or-multi validation error per the
// convention: exactly one violation surfaces as Validation, otherwise as
// ValidationErrors.
func newValidationError(errs []FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return &Error{Kind: KindValidation, Field: errs[0].Field, Reason: errs[0].Reason}
	}
	return &Error{Kind: KindValidationErrors, Errors: errs}
}
