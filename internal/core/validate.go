package core

import (
	"regexp"
	"strings"
)

// idPattern is the contract every generated or user-supplied id must match:
// prefix-hash with optional hierarchical ".n" suffixes.
var idPattern = regexp.MustCompile(`^[a-z0-9]{1,10}-[a-z0-9]{3,12}(\.[0-9]+)*$`)

const (
	maxIDLength          = 50
	maxTitleLength       = 500
	maxDescriptionBytes  = 102_400
	maxExternalRefLength = 200
	maxLabelLength       = 50
	maxCommentBodyBytes  = 51_200
	maxCommentAuthor     = 200
)

var labelPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateIssue checks id/title/description/priority/timestamp/external-ref
// invariants, returning a single Validation error or a ValidationErrors
// aggregate per the one-vs-many convention.
func ValidateIssue(issue *Issue) error {
	var errs []FieldError

	if issue.ID != "" {
		if len(issue.ID) > maxIDLength {
			errs = append(errs, FieldError{"id", "must be 50 characters or fewer"})
		} else if !idPattern.MatchString(issue.ID) {
			errs = append(errs, FieldError{"id", "does not match required id format"})
		}
	}

	if strings.TrimSpace(issue.Title) == "" {
		errs = append(errs, FieldError{"title", "is required"})
	} else if len(issue.Title) > maxTitleLength {
		errs = append(errs, FieldError{"title", "must be 500 characters or fewer"})
	}

	if len(issue.Description) > maxDescriptionBytes {
		errs = append(errs, FieldError{"description", "must be 102400 bytes or fewer"})
	}

	if issue.Priority < PriorityCritical || issue.Priority > PriorityBacklog {
		errs = append(errs, FieldError{"priority", "must be between 0 and 4"})
	}

	if issue.UpdatedAt.Before(issue.CreatedAt) {
		errs = append(errs, FieldError{"updated_at", "must not be before created_at"})
	}

	if issue.ExternalRef != "" {
		if len(issue.ExternalRef) > maxExternalRefLength {
			errs = append(errs, FieldError{"external_ref", "must be 200 characters or fewer"})
		}
		if strings.ContainsAny(issue.ExternalRef, " \t\n\r") {
			errs = append(errs, FieldError{"external_ref", "must not contain whitespace"})
		}
	}

	return newValidationError(errs)
}

// ValidateLabel checks non-emptiness, length, and the allowed character set.
func ValidateLabel(label string) error {
	var errs []FieldError
	if label == "" {
		errs = append(errs, FieldError{"label", "is required"})
	} else {
		if len(label) > maxLabelLength {
			errs = append(errs, FieldError{"label", "must be 50 characters or fewer"})
		}
		if !labelPattern.MatchString(label) {
			errs = append(errs, FieldError{"label", "must contain only letters, digits, '_' or '-'"})
		}
	}
	return newValidationError(errs)
}

// ValidateComment checks that the id is set (positive), that issue id,
// author, and body are non-empty after trimming, and that body/author
// respect their length limits.
func ValidateComment(c *Comment) error {
	var errs []FieldError
	if c.ID <= 0 {
		errs = append(errs, FieldError{"id", "is required"})
	}
	if strings.TrimSpace(c.IssueID) == "" {
		errs = append(errs, FieldError{"issue_id", "is required"})
	}
	if strings.TrimSpace(c.Author) == "" {
		errs = append(errs, FieldError{"author", "is required"})
	} else if len(c.Author) > maxCommentAuthor {
		errs = append(errs, FieldError{"author", "must be 200 characters or fewer"})
	}
	if strings.TrimSpace(c.Text) == "" {
		errs = append(errs, FieldError{"text", "is required"})
	} else if len(c.Text) > maxCommentBodyBytes {
		errs = append(errs, FieldError{"text", "must be 51200 bytes or fewer"})
	}
	return newValidationError(errs)
}

// DependencyStore is the injected capability ValidateDependency consults:
// existence of endpoints, existence of the candidate edge, and whether
// adding it would close a cycle. Store implements this interface.
type DependencyStore interface {
	IssueExists(id string) bool
	DependencyExists(issueID, dependsOnID string) bool
	WouldCreateCycle(issueID, dependsOnID string) (bool, string)
}

// ValidateDependency rejects self-edges and, via the injected store,
// missing endpoints, duplicate edges, and cycles. It returns the first
// violation found, checking in that order (SelfDependency, IssueNotFound
// for the source, DependencyNotFound for the target, DuplicateDependency,
// DependencyCycle); violations are not aggregated into one error.
func ValidateDependency(dep *Dependency, store DependencyStore) error {
	if dep.IssueID == dep.DependsOnID {
		return &Error{Kind: KindSelfDependency, ID: dep.IssueID}
	}
	if !store.IssueExists(dep.IssueID) {
		return &Error{Kind: KindIssueNotFound, ID: dep.IssueID}
	}
	if !store.IssueExists(dep.DependsOnID) {
		return &Error{Kind: KindDependencyNotFound, ID: dep.DependsOnID}
	}
	if store.DependencyExists(dep.IssueID, dep.DependsOnID) {
		return &Error{Kind: KindDuplicateDependency, From: dep.IssueID, To: dep.DependsOnID}
	}
	if cycles, path := store.WouldCreateCycle(dep.IssueID, dep.DependsOnID); cycles {
		return &Error{Kind: KindDependencyCycle, Path: path}
	}
	return nil
}
