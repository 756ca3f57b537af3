// Package core implements the in-process issue store: data model, content
// hashing, adaptive id generation, dependency graph, ready/blocked queries,
// and JSONL persistence. It is synchronous and single-threaded by design;
// callers needing concurrent access supply their own mutual exclusion.
package core

import (
	"strconv"
	"strings"
	"time"
)

// Status is the lifecycle state of an Issue. Unknown strings are rejected by
// ParseStatus rather than silently accepted, unlike Type.
type Status string

// Known status values.
const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusBlocked    Status = "blocked"
	StatusDeferred   Status = "deferred"
	StatusClosed     Status = "closed"
	StatusTombstone  Status = "tombstone"
	StatusPinned     Status = "pinned"
)

// ParseStatus is case-insensitive on known values and fails on anything
// else: Status has no Custom escape hatch, unlike Type.
func ParseStatus(s string) (Status, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	switch Status(norm) {
	case StatusOpen, StatusInProgress, StatusBlocked, StatusDeferred,
		StatusClosed, StatusTombstone, StatusPinned:
		return Status(norm), nil
	}
	return "", &Error{Kind: KindInvalidStatus, Status: s}
}

// IsTerminal reports whether the status is Closed or Tombstone.
func (s Status) IsTerminal() bool {
	return s == StatusClosed || s == StatusTombstone
}

// IsActive reports whether the status is Open or InProgress.
func (s Status) IsActive() bool {
	return s == StatusOpen || s == StatusInProgress
}

// IssueType categorizes the kind of work. Unknown strings become Custom
// rather than failing.
type IssueType string

// Known issue types.
const (
	TypeTask     IssueType = "task"
	TypeBug      IssueType = "bug"
	TypeFeature  IssueType = "feature"
	TypeEpic     IssueType = "epic"
	TypeChore    IssueType = "chore"
	TypeDocs     IssueType = "docs"
	TypeQuestion IssueType = "question"
)

// ParseType is case-insensitive on known values and falls back to treating
// the trimmed, lower-cased input as a custom type rather than erroring.
func ParseType(s string) IssueType {
	norm := strings.ToLower(strings.TrimSpace(s))
	switch IssueType(norm) {
	case TypeTask, TypeBug, TypeFeature, TypeEpic, TypeChore, TypeDocs, TypeQuestion:
		return IssueType(norm)
	}
	return IssueType(norm)
}

// IsStandard reports whether t is one of the built-in types rather than a
// custom tag.
func (t IssueType) IsStandard() bool {
	switch t {
	case TypeTask, TypeBug, TypeFeature, TypeEpic, TypeChore, TypeDocs, TypeQuestion:
		return true
	}
	return false
}

// Priority is a thin wrapper over int, 0 (most urgent) through 4 (least).
type Priority int

// Priority constants.
const (
	PriorityCritical Priority = 0
	PriorityHigh     Priority = 1
	PriorityMedium   Priority = 2
	PriorityLow      Priority = 3
	PriorityBacklog  Priority = 4
)

// String renders the priority in its wire-adjacent display form "P{n}".
func (p Priority) String() string {
	return "P" + strconv.Itoa(int(p))
}

// ParsePriority accepts an optional leading 'P'/'p', trims whitespace, and
// rejects values outside 0..=4.
func ParsePriority(s string) (Priority, error) {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimPrefix(trimmed, "P")
	trimmed = strings.TrimPrefix(trimmed, "p")
	n, err := strconv.Atoi(trimmed)
	if err != nil || n < 0 || n > 4 {
		return 0, &Error{Kind: KindInvalidPriority, Priority: n}
	}
	return Priority(n), nil
}

// DependencyType categorizes a dependency edge. Unknown strings become
// Custom rather than failing.
type DependencyType string

// Known dependency types. The first four are blocking.
const (
	DepBlocks            DependencyType = "blocks"
	DepParentChild       DependencyType = "parent-child"
	DepConditionalBlocks DependencyType = "conditional-blocks"
	DepWaitsFor          DependencyType = "waits-for"
	DepRelated           DependencyType = "related"
	DepDiscoveredFrom    DependencyType = "discovered-from"
	DepRepliesTo         DependencyType = "replies-to"
	DepRelatesTo         DependencyType = "relates-to"
	DepDuplicates        DependencyType = "duplicates"
	DepSupersedes        DependencyType = "supersedes"
	DepCausedBy          DependencyType = "caused-by"
)

// ParseDependencyType is case-insensitive on known values and falls back to
// a custom tag rather than erroring.
func ParseDependencyType(s string) DependencyType {
	norm := strings.ToLower(strings.TrimSpace(s))
	return DependencyType(norm)
}

// IsBlocking reports whether d belongs to the blocking subset.
func (d DependencyType) IsBlocking() bool {
	switch d {
	case DepBlocks, DepParentChild, DepConditionalBlocks, DepWaitsFor:
		return true
	}
	return false
}

// EventType categorizes an audit log entry.
type EventType string

// Known event types.
const (
	EventCreated           EventType = "created"
	EventUpdated           EventType = "updated"
	EventStatusChanged     EventType = "status_changed"
	EventPriorityChanged   EventType = "priority_changed"
	EventAssigneeChanged   EventType = "assignee_changed"
	EventCommented         EventType = "commented"
	EventClosed            EventType = "closed"
	EventReopened          EventType = "reopened"
	EventDependencyAdded   EventType = "dependency_added"
	EventDependencyRemoved EventType = "dependency_removed"
	EventLabelAdded        EventType = "label_added"
	EventLabelRemoved      EventType = "label_removed"
	EventDeleted           EventType = "deleted"
	EventRestored          EventType = "restored"
)

// Issue is the primary tracked entity.
type Issue struct {
	ID                 string     `json:"id"`
	ContentHash        string     `json:"-"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	Design             string     `json:"design,omitempty"`
	AcceptanceCriteria string     `json:"acceptance_criteria,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	Status             Status     `json:"status"`
	Priority           Priority   `json:"priority"`
	IssueType          IssueType  `json:"issue_type"`
	Assignee           string     `json:"assignee,omitempty"`
	Owner              string     `json:"owner,omitempty"`
	Creator            string     `json:"creator,omitempty"`
	EstimatedMinutes   *int       `json:"estimated_minutes,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	ClosedAt           *time.Time `json:"closed_at,omitempty"`
	DueAt              *time.Time `json:"due_at,omitempty"`
	DeferUntil         *time.Time `json:"defer_until,omitempty"`
	ExternalRef        string     `json:"external_ref,omitempty"`
	SourceSystem       string     `json:"source_system,omitempty"`
	SourceRepo         string     `json:"source_repo,omitempty"`
	CloseReason        string     `json:"close_reason,omitempty"`
	ClosedBySession    string     `json:"closed_by_session,omitempty"`
	DeletedAt          *time.Time `json:"deleted_at,omitempty"`
	DeletedBy          string     `json:"deleted_by,omitempty"`
	DeleteReason       string     `json:"delete_reason,omitempty"`
	OriginalType       string     `json:"original_type,omitempty"`
	Pinned             bool       `json:"pinned,omitempty"`
	IsTemplate         bool       `json:"is_template,omitempty"`
	CompactionLevel    int        `json:"compaction_level"`

	Labels       []string      `json:"labels,omitempty"`
	Dependencies []*Dependency `json:"dependencies,omitempty"`
	Comments     []*Comment    `json:"comments,omitempty"`
}

// Dependency is a directed edge from IssueID to DependsOnID.
type Dependency struct {
	IssueID     string    `json:"issue_id"`
	DependsOnID string    `json:"depends_on_id"`
	Type        DependencyType `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
	CreatedBy   string    `json:"created_by,omitempty"`
	Metadata    *string   `json:"metadata,omitempty"`
	ThreadID    *string   `json:"thread_id,omitempty"`
}

// Comment is a remark attached to an issue.
type Comment struct {
	ID        int64     `json:"id"`
	IssueID   string    `json:"issue_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Event is an append-only audit record.
type Event struct {
	ID        int64     `json:"id"`
	IssueID   string    `json:"issue_id"`
	EventType EventType `json:"event_type"`
	Actor     string    `json:"actor"`
	OldValue  *string   `json:"old_value,omitempty"`
	NewValue  *string   `json:"new_value,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
