package core

import (
	"sort"
	"strings"
	"time"
)

// SortPolicy determines the ordering of ready-work queries.
type SortPolicy string

// Sort policy constants.
const (
	SortHybrid   SortPolicy = "hybrid"
	SortPriority SortPolicy = "priority"
	SortOldest   SortPolicy = "oldest"
)

// OptionalPatch distinguishes "leave alone" (zero value, Set=false) from
// "clear to empty" (Set=true, Value=nil) from "set to value" (Set=true,
// Value=&v) for a single patch field.
type OptionalPatch[T any] struct {
	Set   bool
	Value *T
}

// Clear produces a patch field that clears the target to its zero value.
func Clear[T any]() OptionalPatch[T] { return OptionalPatch[T]{Set: true} }

// SetTo produces a patch field that sets the target to v.
func SetTo[T any](v T) OptionalPatch[T] { return OptionalPatch[T]{Set: true, Value: &v} }

// IssueUpdate carries the fields to apply to an issue. Title, Status,
// Priority, and IssueType are plain optional (leave-or-set only, via a
// pointer); every other mutable field distinguishes leave/clear/set via
// OptionalPatch.
type IssueUpdate struct {
	Title     *string
	Status    *Status
	Priority  *Priority
	IssueType *IssueType

	Description        OptionalPatch[string]
	Design             OptionalPatch[string]
	AcceptanceCriteria OptionalPatch[string]
	Notes              OptionalPatch[string]
	Assignee           OptionalPatch[string]
	Owner              OptionalPatch[string]
	Creator            OptionalPatch[string]
	EstimatedMinutes   OptionalPatch[int]
	DueAt              OptionalPatch[time.Time]
	DeferUntil         OptionalPatch[time.Time]
	ExternalRef        OptionalPatch[string]
	ClosedAt           OptionalPatch[time.Time] // explicit override of the automatic status-driven closed_at management
	CloseReason        OptionalPatch[string]
	ClosedBySession    OptionalPatch[string]
	DeletedAt          OptionalPatch[time.Time]
	DeletedBy          OptionalPatch[string]
	DeleteReason       OptionalPatch[string]
}

// IsEmpty reports whether the patch changes nothing.
func (u *IssueUpdate) IsEmpty() bool {
	return u.Title == nil && u.Status == nil && u.Priority == nil && u.IssueType == nil &&
		!u.Description.Set && !u.Design.Set && !u.AcceptanceCriteria.Set && !u.Notes.Set &&
		!u.Assignee.Set && !u.Owner.Set && !u.Creator.Set && !u.EstimatedMinutes.Set &&
		!u.DueAt.Set && !u.DeferUntil.Set && !u.ExternalRef.Set && !u.ClosedAt.Set && !u.CloseReason.Set &&
		!u.ClosedBySession.Set && !u.DeletedAt.Set && !u.DeletedBy.Set && !u.DeleteReason.Set
}

// ListFilters bundles the predicates List applies.
type ListFilters struct {
	Statuses         []Status
	Types            []IssueType
	Priorities       []Priority
	Assignee         *string
	Unassigned       bool
	IncludeClosed    bool
	IncludeDeferred  bool
	IncludeTemplates bool
	TitleContains    string
	Limit            int
	Sort             string // priority | created_at | updated_at | title
	Reverse          bool
	Labels           []string // AND
	LabelsOr         []string // OR
	UpdatedBefore    *time.Time
	UpdatedAfter     *time.Time
}

// ReadyFilters bundles the predicates Ready applies beyond blocking status.
type ReadyFilters struct {
	Assignee        *string
	Unassigned      bool
	LabelsAnd       []string
	LabelsOr        []string
	Types           []IssueType
	Priorities      []Priority
	IncludeDeferred bool
	Limit           int
	Parent          string
	Recursive       bool
}

// LabelCount is one entry of a unique-label-counts query result.
type LabelCount struct {
	Label string
	Count int
}

// Store holds all state in process memory: the spec'd in-memory aggregate.
type Store struct {
	Prefix string
	Path   string

	issues map[string]*Issue
	labels map[string][]string // insertion-ordered, deduplicated on add
	deps   []*Dependency
	comms  map[string][]*Comment
	events []*Event

	dirty map[string]bool

	config map[string]string

	nextCommentID int64
	nextEventID   int64

	idGen *IdGenerator
}

// NewStore returns an empty store configured with the given id prefix.
func NewStore(prefix string) *Store {
	return &Store{
		Prefix:        prefix,
		issues:        make(map[string]*Issue),
		labels:        make(map[string][]string),
		comms:         make(map[string][]*Comment),
		dirty:         make(map[string]bool),
		config:        make(map[string]string),
		nextCommentID: 1,
		nextEventID:   1,
		idGen:         NewIdGenerator(prefix),
	}
}

// LoadFromJournal populates the store from a Journal.Load result, replacing
// its issues, labels, dependencies, and comments. The event log, dirty set,
// and config map are left as they are.
func (s *Store) LoadFromJournal(data *LoadedData) {
	s.issues = make(map[string]*Issue, len(data.Issues))
	for _, issue := range data.Issues {
		cp := *issue
		s.issues[cp.ID] = &cp
	}
	s.labels = make(map[string][]string, len(data.Labels))
	for id, ls := range data.Labels {
		s.labels[id] = append([]string(nil), ls...)
	}
	s.deps = append([]*Dependency(nil), data.Dependencies...)
	s.comms = make(map[string][]*Comment, len(data.Comments))
	maxCommentID := int64(0)
	for id, cs := range data.Comments {
		s.comms[id] = append([]*Comment(nil), cs...)
		for _, c := range cs {
			if c.ID > maxCommentID {
				maxCommentID = c.ID
			}
		}
	}
	s.nextCommentID = maxCommentID + 1
}

func (s *Store) recordEvent(issueID string, eventType EventType, actor string, oldValue, newValue *string) {
	ev := &Event{
		ID:        s.nextEventID,
		IssueID:   issueID,
		EventType: eventType,
		Actor:     actor,
		OldValue:  oldValue,
		NewValue:  newValue,
		CreatedAt: time.Now().UTC(),
	}
	s.nextEventID++
	s.events = append(s.events, ev)
}

func strPtr(s string) *string { return &s }

func (s *Store) markDirty(id string) {
	s.dirty[id] = true
}

// Dirty returns the ids dirtied since the last ClearDirty/ClearDirtyID.
func (s *Store) Dirty() []string {
	out := make([]string, 0, len(s.dirty))
	for id := range s.dirty {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// ClearDirty empties the dirty set. Save does not call this; the caller
// decides when to clear.
func (s *Store) ClearDirty() {
	s.dirty = make(map[string]bool)
}

// ClearDirtyID removes a single id from the dirty set.
func (s *Store) ClearDirtyID(id string) {
	delete(s.dirty, id)
}

// IssueExists implements DependencyStore.
func (s *Store) IssueExists(id string) bool {
	_, ok := s.issues[id]
	return ok
}

// DependencyExists implements DependencyStore: type-agnostic existence of
// an edge between the two endpoints.
func (s *Store) DependencyExists(issueID, dependsOnID string) bool {
	for _, d := range s.deps {
		if d.IssueID == issueID && d.DependsOnID == dependsOnID {
			return true
		}
	}
	return false
}

// WouldCreateCycle implements DependencyStore: a candidate edge
// issueID->dependsOnID would create a cycle iff issueID is reachable from
// dependsOnID by breadth-first traversal of all edges, irrespective of
// type. The path returned on a hit is simply the candidate edge's own
// endpoints, matching the source behavior.
func (s *Store) WouldCreateCycle(issueID, dependsOnID string) (bool, string) {
	if issueID == dependsOnID {
		return true, issueID + " -> " + dependsOnID
	}
	visited := map[string]bool{dependsOnID: true}
	queue := []string{dependsOnID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range s.deps {
			if d.IssueID != cur {
				continue
			}
			if d.DependsOnID == issueID {
				return true, issueID + " -> " + dependsOnID
			}
			if !visited[d.DependsOnID] {
				visited[d.DependsOnID] = true
				queue = append(queue, d.DependsOnID)
			}
		}
	}
	return false, ""
}

// Create validates, assigns an id (generating one via IdGen if absent) and
// timestamps, computes the content hash, inserts, emits a Created event,
// marks the new id dirty, and returns the fully populated issue.
func (s *Store) Create(issue *Issue, actor string) (*Issue, error) {
	if strings.TrimSpace(issue.Title) == "" {
		return nil, &Error{Kind: KindValidation, Field: "title", Reason: "is required"}
	}

	now := time.Now().UTC()
	created := *issue

	if created.ID == "" {
		exists := func(candidate string) bool {
			_, ok := s.issues[candidate]
			return ok
		}
		created.ID = s.idGen.Generate(created.Title, created.Description, actor, now, len(s.issues), exists)
	} else if _, collides := s.issues[created.ID]; collides {
		return nil, &Error{Kind: KindIdCollision, ID: created.ID}
	}

	if created.Creator == "" {
		created.Creator = actor
	}
	if created.Status == "" {
		created.Status = StatusOpen
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	labels := created.Labels
	deps := created.Dependencies
	comments := created.Comments
	created.Labels = nil
	created.Dependencies = nil
	created.Comments = nil

	created.ContentHash = created.ComputeContentHash()

	stored := created
	s.issues[stored.ID] = &stored

	for _, l := range labels {
		s.addLabelNoEvent(stored.ID, l)
	}
	for _, d := range deps {
		d.IssueID = stored.ID
		s.deps = append(s.deps, d)
	}
	for _, c := range comments {
		c.IssueID = stored.ID
		if c.ID == 0 {
			c.ID = s.nextCommentID
			s.nextCommentID++
		}
		s.comms[stored.ID] = append(s.comms[stored.ID], c)
	}

	s.recordEvent(stored.ID, EventCreated, actor, nil, nil)
	s.markDirty(stored.ID)

	result := stored
	return &result, nil
}

// Get returns a copy of the issue with its labels, dependencies, and
// comments attached, or IssueNotFound if absent.
func (s *Store) Get(id string) (*Issue, error) {
	issue, ok := s.issues[id]
	if !ok {
		return nil, &Error{Kind: KindIssueNotFound, ID: id}
	}
	return s.attach(issue), nil
}

func (s *Store) attach(issue *Issue) *Issue {
	cp := *issue
	cp.Labels = append([]string(nil), s.labels[issue.ID]...)
	cp.Comments = append([]*Comment(nil), s.comms[issue.ID]...)
	for _, d := range s.deps {
		if d.IssueID == issue.ID {
			cp.Dependencies = append(cp.Dependencies, d)
		}
	}
	return &cp
}

// GetMany returns copies for every id found; missing ids are silently
// omitted.
func (s *Store) GetMany(ids []string) []*Issue {
	out := make([]*Issue, 0, len(ids))
	for _, id := range ids {
		if issue, ok := s.issues[id]; ok {
			out = append(out, s.attach(issue))
		}
	}
	return out
}

// Update looks up the issue, applies the patch, recomputes its content
// hash, bumps updated_at, and emits the appropriate events.
func (s *Store) Update(id string, patch *IssueUpdate, actor string) (*Issue, error) {
	issue, ok := s.issues[id]
	if !ok {
		return nil, &Error{Kind: KindIssueNotFound, ID: id}
	}

	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, &Error{Kind: KindValidation, Field: "title", Reason: "is required"}
	}

	updated := *issue
	now := time.Now().UTC()

	var statusOld, statusNew *string
	statusChanged := false
	if patch.Title != nil {
		updated.Title = *patch.Title
	}
	if patch.Status != nil && *patch.Status != updated.Status {
		old := string(updated.Status)
		statusOld = &old
		n := string(*patch.Status)
		statusNew = &n
		statusChanged = true
		wasTerminal := updated.Status.IsTerminal()
		updated.Status = *patch.Status
		nowTerminal := updated.Status.IsTerminal()
		if !wasTerminal && nowTerminal {
			if updated.ClosedAt == nil {
				updated.ClosedAt = &now
			}
		} else if wasTerminal && !nowTerminal {
			updated.ClosedAt = nil
		}
	}

	var priorityOld, priorityNew *string
	priorityChanged := false
	if patch.Priority != nil && *patch.Priority != updated.Priority {
		old := updated.Priority.String()
		priorityOld = &old
		n := patch.Priority.String()
		priorityNew = &n
		priorityChanged = true
		updated.Priority = *patch.Priority
	}

	if patch.IssueType != nil {
		updated.IssueType = *patch.IssueType
	}

	var assigneeOld, assigneeNew *string
	assigneeChanged := false
	applyStringPatch(&updated.Assignee, patch.Assignee, &assigneeChanged, &assigneeOld, &assigneeNew)

	applyOptional(&updated.Description, patch.Description)
	applyOptional(&updated.Design, patch.Design)
	applyOptional(&updated.AcceptanceCriteria, patch.AcceptanceCriteria)
	applyOptional(&updated.Notes, patch.Notes)
	applyOptional(&updated.Owner, patch.Owner)
	applyOptional(&updated.Creator, patch.Creator)
	applyOptional(&updated.ExternalRef, patch.ExternalRef)
	applyOptional(&updated.CloseReason, patch.CloseReason)
	applyOptional(&updated.ClosedBySession, patch.ClosedBySession)
	applyOptional(&updated.DeletedBy, patch.DeletedBy)
	applyOptional(&updated.DeleteReason, patch.DeleteReason)

	if patch.EstimatedMinutes.Set {
		updated.EstimatedMinutes = patch.EstimatedMinutes.Value
	}
	if patch.DueAt.Set {
		updated.DueAt = patch.DueAt.Value
	}
	if patch.DeferUntil.Set {
		updated.DeferUntil = patch.DeferUntil.Value
	}
	if patch.DeletedAt.Set {
		updated.DeletedAt = patch.DeletedAt.Value
	}
	if patch.ClosedAt.Set {
		updated.ClosedAt = patch.ClosedAt.Value
	}

	updated.UpdatedAt = now
	updated.ContentHash = updated.ComputeContentHash()

	if statusChanged {
		s.recordEvent(id, EventStatusChanged, actor, statusOld, statusNew)
		if updated.ClosedAt != nil && issue.ClosedAt == nil {
			s.recordEvent(id, EventClosed, actor, nil, nil)
		} else if updated.ClosedAt == nil && issue.ClosedAt != nil {
			s.recordEvent(id, EventReopened, actor, nil, nil)
		}
	}
	if priorityChanged {
		s.recordEvent(id, EventPriorityChanged, actor, priorityOld, priorityNew)
	}
	if assigneeChanged {
		s.recordEvent(id, EventAssigneeChanged, actor, assigneeOld, assigneeNew)
	}
	s.recordEvent(id, EventUpdated, actor, nil, nil)

	s.issues[id] = &updated
	s.markDirty(id)

	return s.attach(&updated), nil
}

func applyStringPatch(field *string, patch OptionalPatch[string], changed *bool, oldOut, newOut **string) {
	if !patch.Set {
		return
	}
	newVal := ""
	if patch.Value != nil {
		newVal = *patch.Value
	}
	if newVal == *field {
		return
	}
	old := *field
	*oldOut = &old
	n := newVal
	*newOut = &n
	*changed = true
	*field = newVal
}

func applyOptional(field *string, patch OptionalPatch[string]) {
	if !patch.Set {
		return
	}
	if patch.Value == nil {
		*field = ""
		return
	}
	*field = *patch.Value
}

// Delete removes the issue, its labels, comments, and every edge touching
// it, emitting a Deleted event. Refuses (HasDependents) if the target has
// inbound edges and force is false.
func (s *Store) Delete(id string, actor string, force bool) error {
	if _, ok := s.issues[id]; !ok {
		return &Error{Kind: KindIssueNotFound, ID: id}
	}
	if !force {
		count := 0
		for _, d := range s.deps {
			if d.DependsOnID == id {
				count++
			}
		}
		if count > 0 {
			return &Error{Kind: KindHasDependents, ID: id, Count: count}
		}
	}

	delete(s.issues, id)
	delete(s.labels, id)
	delete(s.comms, id)

	kept := s.deps[:0]
	for _, d := range s.deps {
		if d.IssueID != id && d.DependsOnID != id {
			kept = append(kept, d)
		}
	}
	s.deps = kept

	s.recordEvent(id, EventDeleted, actor, nil, nil)
	s.markDirty(id)
	return nil
}

// AddDependency validates via ValidateDependency (self-edge, endpoints,
// duplicates, cycles) and, on success, appends the edge and emits a
// DependencyAdded event.
func (s *Store) AddDependency(dep *Dependency, actor string) error {
	if err := ValidateDependency(dep, s); err != nil {
		return err
	}
	if dep.CreatedAt.IsZero() {
		dep.CreatedAt = time.Now().UTC()
	}
	if dep.CreatedBy == "" {
		dep.CreatedBy = actor
	}
	s.deps = append(s.deps, dep)
	s.recordEvent(dep.IssueID, EventDependencyAdded, actor, nil, nil)
	s.markDirty(dep.IssueID)
	return nil
}

// RemoveDependency deletes the first matching edge; NothingToDo if none
// matches.
func (s *Store) RemoveDependency(issueID, dependsOnID string, actor string) error {
	for i, d := range s.deps {
		if d.IssueID == issueID && d.DependsOnID == dependsOnID {
			s.deps = append(s.deps[:i], s.deps[i+1:]...)
			s.recordEvent(issueID, EventDependencyRemoved, actor, nil, nil)
			s.markDirty(issueID)
			return nil
		}
	}
	return &Error{Kind: KindNothingToDo, Reason: "no matching dependency edge"}
}

// GetDependencies returns the issues issueID directly depends on.
func (s *Store) GetDependencies(issueID string) []*Issue {
	var out []*Issue
	for _, d := range s.deps {
		if d.IssueID == issueID {
			if issue, ok := s.issues[d.DependsOnID]; ok {
				out = append(out, s.attach(issue))
			}
		}
	}
	return out
}

// GetDependents returns the issues that directly depend on issueID.
func (s *Store) GetDependents(issueID string) []*Issue {
	var out []*Issue
	for _, d := range s.deps {
		if d.DependsOnID == issueID {
			if issue, ok := s.issues[d.IssueID]; ok {
				out = append(out, s.attach(issue))
			}
		}
	}
	return out
}

// IsBlocked reports whether some outgoing edge from id is of a blocking
// type and its target is non-terminal.
func (s *Store) IsBlocked(id string) bool {
	for _, d := range s.deps {
		if d.IssueID != id || !d.Type.IsBlocking() {
			continue
		}
		if target, ok := s.issues[d.DependsOnID]; ok && !target.Status.IsTerminal() {
			return true
		}
	}
	return false
}

// Blocked returns non-terminal issues with at least one outgoing blocking
// edge to a non-terminal target.
func (s *Store) Blocked() []*Issue {
	var out []*Issue
	for id, issue := range s.issues {
		if issue.Status.IsTerminal() {
			continue
		}
		if s.IsBlocked(id) {
			out = append(out, s.attach(issue))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Store) addLabelNoEvent(issueID, label string) {
	for _, l := range s.labels[issueID] {
		if l == label {
			return
		}
	}
	s.labels[issueID] = append(s.labels[issueID], label)
}

// AddLabel is idempotent and silent on duplicates.
func (s *Store) AddLabel(issueID, label string, actor string) error {
	if _, ok := s.issues[issueID]; !ok {
		return &Error{Kind: KindIssueNotFound, ID: issueID}
	}
	if err := ValidateLabel(label); err != nil {
		return err
	}
	before := len(s.labels[issueID])
	s.addLabelNoEvent(issueID, label)
	if len(s.labels[issueID]) != before {
		s.recordEvent(issueID, EventLabelAdded, actor, nil, strPtr(label))
		s.markDirty(issueID)
	}
	return nil
}

// RemoveLabel removes a label if present; no error if absent.
func (s *Store) RemoveLabel(issueID, label string, actor string) error {
	labels := s.labels[issueID]
	for i, l := range labels {
		if l == label {
			s.labels[issueID] = append(labels[:i], labels[i+1:]...)
			s.recordEvent(issueID, EventLabelRemoved, actor, strPtr(label), nil)
			s.markDirty(issueID)
			return nil
		}
	}
	return nil
}

// SetLabels replaces an issue's labels wholesale.
func (s *Store) SetLabels(issueID string, labels []string, actor string) error {
	if _, ok := s.issues[issueID]; !ok {
		return &Error{Kind: KindIssueNotFound, ID: issueID}
	}
	deduped := make([]string, 0, len(labels))
	seen := make(map[string]bool)
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			deduped = append(deduped, l)
		}
	}
	s.labels[issueID] = deduped
	s.markDirty(issueID)
	return nil
}

// GetLabels returns issueID's labels in insertion order.
func (s *Store) GetLabels(issueID string) []string {
	return append([]string(nil), s.labels[issueID]...)
}

// LabelCounts returns (label, count) pairs across all issues, sorted by
// count descending with label ascending on ties.
func (s *Store) LabelCounts() []LabelCount {
	counts := make(map[string]int)
	for _, labels := range s.labels {
		for _, l := range labels {
			counts[l]++
		}
	}
	out := make([]LabelCount, 0, len(counts))
	for l, c := range counts {
		out = append(out, LabelCount{Label: l, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// AddComment validates and appends a comment, assigning its id from the
// store's counter.
func (s *Store) AddComment(issueID, author, text, actor string) (*Comment, error) {
	if _, ok := s.issues[issueID]; !ok {
		return nil, &Error{Kind: KindIssueNotFound, ID: issueID}
	}
	c := &Comment{
		ID:        s.nextCommentID,
		IssueID:   issueID,
		Author:    author,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := ValidateComment(c); err != nil {
		return nil, err
	}
	s.nextCommentID++
	s.comms[issueID] = append(s.comms[issueID], c)
	s.recordEvent(issueID, EventCommented, actor, nil, nil)
	s.markDirty(issueID)
	return c, nil
}

// GetComments returns issueID's comments in insertion order.
func (s *Store) GetComments(issueID string) []*Comment {
	return append([]*Comment(nil), s.comms[issueID]...)
}

// Resolve resolves a partial id against the store's known ids.
func (s *Store) Resolve(input string) (string, error) {
	ids := make([]string, 0, len(s.issues))
	for id := range s.issues {
		ids = append(ids, id)
	}
	return Resolve(input, s.Prefix, ids)
}

// Save delegates to Journal.Save with the store's current state.
func (s *Store) Save(path string) error {
	if path == "" {
		path = s.Path
	}
	if path == "" {
		return &Error{Kind: KindStorage, Message: "no file path set"}
	}
	issues := make([]*Issue, 0, len(s.issues))
	for _, issue := range s.issues {
		issues = append(issues, issue)
	}
	return journalSave(path, issues, s.labels, s.deps, s.comms)
}

// journalSave is a seam so tests can stub persistence; production code
// delegates straight to Save.
var journalSave = Save

// SetConfig stores a key/value pair in the store's small config map.
func (s *Store) SetConfig(key, value string) {
	s.config[key] = value
}

// GetConfig retrieves a config value.
func (s *Store) GetConfig(key string) (string, bool) {
	v, ok := s.config[key]
	return v, ok
}

// List returns issues satisfying filters, sorted and limited per spec.
func (s *Store) List(filters ListFilters) []*Issue {
	var out []*Issue
	for _, issue := range s.issues {
		attached := s.attach(issue)
		if !matchesListFilters(attached, filters) {
			continue
		}
		out = append(out, attached)
	}
	sortIssues(out, filters.Sort, filters.Reverse)
	if filters.Limit > 0 && len(out) > filters.Limit {
		out = out[:filters.Limit]
	}
	return out
}

func matchesListFilters(issue *Issue, f ListFilters) bool {
	if len(f.Statuses) > 0 {
		if !containsStatus(f.Statuses, issue.Status) {
			return false
		}
	} else {
		if issue.Status.IsTerminal() && !f.IncludeClosed {
			return false
		}
		if issue.Status == StatusDeferred && !f.IncludeDeferred {
			return false
		}
	}
	if issue.IsTemplate && !f.IncludeTemplates {
		return false
	}
	if len(f.Types) > 0 && !containsType(f.Types, issue.IssueType) {
		return false
	}
	if len(f.Priorities) > 0 && !containsPriority(f.Priorities, issue.Priority) {
		return false
	}
	if f.Unassigned && issue.Assignee != "" {
		return false
	}
	if f.Assignee != nil && issue.Assignee != *f.Assignee {
		return false
	}
	if f.TitleContains != "" && !strings.Contains(strings.ToLower(issue.Title), strings.ToLower(f.TitleContains)) {
		return false
	}
	if len(f.Labels) > 0 && !hasAllLabels(issue.Labels, f.Labels) {
		return false
	}
	if len(f.LabelsOr) > 0 && !hasAnyLabel(issue.Labels, f.LabelsOr) {
		return false
	}
	if f.UpdatedBefore != nil && issue.UpdatedAt.After(*f.UpdatedBefore) {
		return false
	}
	if f.UpdatedAfter != nil && issue.UpdatedAt.Before(*f.UpdatedAfter) {
		return false
	}
	return true
}

func containsStatus(list []Status, v Status) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func containsType(list []IssueType, v IssueType) bool {
	for _, t := range list {
		if t == v {
			return true
		}
	}
	return false
}

func containsPriority(list []Priority, v Priority) bool {
	for _, p := range list {
		if p == v {
			return true
		}
	}
	return false
}

func hasAllLabels(issueLabels, required []string) bool {
	set := make(map[string]bool, len(issueLabels))
	for _, l := range issueLabels {
		set[l] = true
	}
	for _, r := range required {
		if !set[r] {
			return false
		}
	}
	return true
}

func hasAnyLabel(issueLabels, any []string) bool {
	set := make(map[string]bool, len(issueLabels))
	for _, l := range issueLabels {
		set[l] = true
	}
	for _, a := range any {
		if set[a] {
			return true
		}
	}
	return false
}

func sortIssues(issues []*Issue, sortKey string, reverse bool) {
	less := func(i, j int) bool {
		switch sortKey {
		case "created_at":
			return issues[i].CreatedAt.Before(issues[j].CreatedAt)
		case "updated_at":
			return issues[i].UpdatedAt.Before(issues[j].UpdatedAt)
		case "title":
			return issues[i].Title < issues[j].Title
		case "priority":
			if issues[i].Priority != issues[j].Priority {
				return issues[i].Priority < issues[j].Priority
			}
			return issues[i].CreatedAt.Before(issues[j].CreatedAt)
		default:
			if issues[i].Priority != issues[j].Priority {
				return issues[i].Priority < issues[j].Priority
			}
			return issues[i].CreatedAt.Before(issues[j].CreatedAt)
		}
	}
	sort.SliceStable(issues, func(i, j int) bool {
		if reverse {
			return less(j, i)
		}
		return less(i, j)
	})
}

// Search performs a case-insensitive substring match over title and
// description.
func (s *Store) Search(query string) []*Issue {
	q := strings.ToLower(query)
	var out []*Issue
	for _, issue := range s.issues {
		if strings.Contains(strings.ToLower(issue.Title), q) || strings.Contains(strings.ToLower(issue.Description), q) {
			out = append(out, s.attach(issue))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Ready returns issues satisfying the ready predicate, sorted per policy.
func (s *Store) Ready(filters ReadyFilters, policy SortPolicy) []*Issue {
	var out []*Issue
	for _, issue := range s.issues {
		if !s.isReadyIssue(issue, filters) {
			continue
		}
		out = append(out, s.attach(issue))
	}
	sortReady(out, policy)
	if filters.Limit > 0 && len(out) > filters.Limit {
		out = out[:filters.Limit]
	}
	return out
}

func (s *Store) isReadyIssue(issue *Issue, f ReadyFilters) bool {
	activeOK := issue.Status.IsActive()
	deferredOK := issue.Status == StatusDeferred && f.IncludeDeferred
	if !activeOK && !deferredOK {
		return false
	}
	if issue.IsTemplate {
		return false
	}
	if s.IsBlocked(issue.ID) {
		return false
	}
	if f.Unassigned && issue.Assignee != "" {
		return false
	}
	if f.Assignee != nil && issue.Assignee != *f.Assignee {
		return false
	}
	if len(f.Types) > 0 && !containsType(f.Types, issue.IssueType) {
		return false
	}
	if len(f.Priorities) > 0 && !containsPriority(f.Priorities, issue.Priority) {
		return false
	}
	if len(f.LabelsAnd) > 0 && !hasAllLabels(s.labels[issue.ID], f.LabelsAnd) {
		return false
	}
	if len(f.LabelsOr) > 0 && !hasAnyLabel(s.labels[issue.ID], f.LabelsOr) {
		return false
	}
	if f.Parent != "" {
		prefix := f.Parent + "."
		if !strings.HasPrefix(issue.ID, prefix) {
			return false
		}
		rest := strings.TrimPrefix(issue.ID, prefix)
		if !f.Recursive && strings.Contains(rest, ".") {
			return false
		}
	}
	return true
}

func sortReady(issues []*Issue, policy SortPolicy) {
	switch policy {
	case SortPriority:
		sort.SliceStable(issues, func(i, j int) bool {
			if issues[i].Priority != issues[j].Priority {
				return issues[i].Priority < issues[j].Priority
			}
			return issues[i].CreatedAt.Before(issues[j].CreatedAt)
		})
	case SortOldest:
		sort.SliceStable(issues, func(i, j int) bool {
			return issues[i].CreatedAt.Before(issues[j].CreatedAt)
		})
	default: // Hybrid
		sort.SliceStable(issues, func(i, j int) bool {
			iUrgent := issues[i].Priority <= PriorityHigh
			jUrgent := issues[j].Priority <= PriorityHigh
			if iUrgent != jUrgent {
				return iUrgent
			}
			return issues[i].CreatedAt.Before(issues[j].CreatedAt)
		})
	}
}

