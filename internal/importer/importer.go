// Package importer merges issues from a foreign JSONL export (for example
// another bd project's journal) into a core.Store. Matching is by
// external_ref first, then by id, the same precedence the teacher's SQLite
// importer used, but simplified: since core.Issue's ContentHash already
// folds every substantive field, "did this issue change" is a single hash
// comparison rather than a field-by-field diff.
package importer

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/ttrei/bd/internal/core"
)

// Options controls import behavior.
type Options struct {
	DryRun     bool // Preview changes without applying them.
	SkipUpdate bool // Skip updating existing issues (create-only mode).
	Strict     bool // Fail on the first per-item error instead of skipping it.
}

// Result reports what an import did.
type Result struct {
	Created        int
	Updated        int
	Unchanged      int
	Skipped        int
	PrefixMismatch bool
	ExpectedPrefix string
	MismatchCounts map[string]int
	Warnings       []string
}

// Import merges issues into s. Issues are matched first by external_ref (if
// set), then by id. A content-hash match against the matched record leaves
// it Unchanged; a mismatch updates it unless newer-wins says otherwise or
// SkipUpdate is set. Unmatched issues are created. Dependencies, labels, and
// comments embedded on an issue are imported after all issues are placed,
// so cross-references resolve regardless of input order.
func Import(s *core.Store, issues []*core.Issue, actor string, opts Options) (*Result, error) {
	result := &Result{MismatchCounts: make(map[string]int)}

	checkPrefixMismatch(s, issues, result)

	if err := validateNoDuplicateExternalRefs(issues); err != nil {
		return result, err
	}

	existing := s.List(core.ListFilters{IncludeClosed: true, IncludeDeferred: true, IncludeTemplates: true})
	byID := make(map[string]*core.Issue, len(existing))
	byExternalRef := make(map[string]*core.Issue)
	for _, issue := range existing {
		byID[issue.ID] = issue
		if issue.ExternalRef != "" {
			byExternalRef[issue.ExternalRef] = issue
		}
	}

	seenHashes := make(map[string]bool)
	var toCreate []*core.Issue

	for _, incoming := range issues {
		if incoming.ExternalRef != "" {
			warnIfUnusualVersionRef(incoming.ExternalRef, result)
		}

		hash := incoming.ComputeContentHash()
		if seenHashes[hash] {
			result.Skipped++
			continue
		}
		seenHashes[hash] = true

		target := matchExisting(incoming, byID, byExternalRef)
		if target == nil {
			toCreate = append(toCreate, incoming)
			continue
		}

		if target.ContentHash == hash {
			result.Unchanged++
			continue
		}
		if opts.SkipUpdate {
			result.Skipped++
			continue
		}
		if !incoming.UpdatedAt.IsZero() && !incoming.UpdatedAt.After(target.UpdatedAt) {
			result.Unchanged++
			continue
		}
		if opts.DryRun {
			result.Updated++
			continue
		}
		if _, err := s.Update(target.ID, updatePatchFrom(incoming), actor); err != nil {
			if opts.Strict {
				return result, fmt.Errorf("updating %s: %w", target.ID, err)
			}
			result.Skipped++
			continue
		}
		result.Updated++
	}

	if opts.DryRun {
		result.Created += len(toCreate)
		return result, nil
	}

	placedIDs := make([]string, 0, len(toCreate))
	placed := make([]*core.Issue, 0, len(toCreate))
	for _, incoming := range toCreate {
		shell := *incoming
		shell.Labels, shell.Dependencies, shell.Comments = nil, nil, nil
		created, err := s.Create(&shell, actor)
		if err != nil {
			if opts.Strict {
				return result, fmt.Errorf("creating issue %q: %w", incoming.Title, err)
			}
			result.Skipped++
			continue
		}
		result.Created++
		placedIDs = append(placedIDs, created.ID)
		placed = append(placed, incoming)
	}
	for i, incoming := range placed {
		if err := importRelations(s, placedIDs[i], incoming, actor, opts); err != nil && opts.Strict {
			return result, err
		}
	}

	return result, nil
}

func matchExisting(incoming *core.Issue, byID, byExternalRef map[string]*core.Issue) *core.Issue {
	if incoming.ExternalRef != "" {
		if existing, ok := byExternalRef[incoming.ExternalRef]; ok {
			return existing
		}
	}
	if incoming.ID != "" {
		if existing, ok := byID[incoming.ID]; ok {
			return existing
		}
	}
	return nil
}

func updatePatchFrom(incoming *core.Issue) *core.IssueUpdate {
	title := incoming.Title
	status := incoming.Status
	priority := incoming.Priority
	issueType := incoming.IssueType
	return &core.IssueUpdate{
		Title:              &title,
		Status:             &status,
		Priority:           &priority,
		IssueType:          &issueType,
		Description:        core.SetTo(incoming.Description),
		Design:             core.SetTo(incoming.Design),
		AcceptanceCriteria: core.SetTo(incoming.AcceptanceCriteria),
		Notes:              core.SetTo(incoming.Notes),
		Assignee:           core.SetTo(incoming.Assignee),
		ExternalRef:        core.SetTo(incoming.ExternalRef),
	}
}

func importRelations(s *core.Store, issueID string, incoming *core.Issue, actor string, opts Options) error {
	for _, label := range incoming.Labels {
		if err := s.AddLabel(issueID, label, actor); err != nil && opts.Strict {
			return fmt.Errorf("adding label %s to %s: %w", label, issueID, err)
		}
	}
	for _, dep := range incoming.Dependencies {
		dep.IssueID = issueID
		if err := s.AddDependency(dep, actor); err != nil && opts.Strict {
			return fmt.Errorf("adding dependency %s -> %s: %w", dep.IssueID, dep.DependsOnID, err)
		}
	}
	for _, c := range incoming.Comments {
		if _, err := s.AddComment(issueID, c.Author, c.Text, actor); err != nil && opts.Strict {
			return fmt.Errorf("adding comment to %s: %w", issueID, err)
		}
	}
	return nil
}

func checkPrefixMismatch(s *core.Store, issues []*core.Issue, result *Result) {
	prefix := s.Prefix
	if prefix == "" {
		return
	}
	result.ExpectedPrefix = prefix
	for _, issue := range issues {
		if issue.ID == "" {
			continue
		}
		idx := strings.LastIndex(issue.ID, "-")
		if idx <= 0 {
			continue
		}
		if found := issue.ID[:idx]; found != prefix {
			result.PrefixMismatch = true
			result.MismatchCounts[found]++
		}
	}
}

func validateNoDuplicateExternalRefs(issues []*core.Issue) error {
	seen := make(map[string][]string)
	for _, issue := range issues {
		if issue.ExternalRef != "" {
			seen[issue.ExternalRef] = append(seen[issue.ExternalRef], issue.ID)
		}
	}
	var duplicates []string
	for ref, ids := range seen {
		if len(ids) > 1 {
			duplicates = append(duplicates, fmt.Sprintf("external_ref %q appears on issues: %v", ref, ids))
		}
	}
	if len(duplicates) == 0 {
		return nil
	}
	sort.Strings(duplicates)
	return fmt.Errorf("batch import contains duplicate external_ref values:\n%s", strings.Join(duplicates, "\n"))
}

// warnIfUnusualVersionRef flags external_ref values shaped like semantic
// version tags ("v1.2.3") that aren't valid semver, since trackers that use
// version-tagged releases as external_ref (release-note importers, changelog
// bots) are a common source of malformed tags worth surfacing.
func warnIfUnusualVersionRef(ref string, result *Result) {
	if !strings.HasPrefix(ref, "v") || len(ref) < 2 || ref[1] < '0' || ref[1] > '9' {
		return
	}
	if !semver.IsValid(ref) {
		result.Warnings = append(result.Warnings, fmt.Sprintf("external_ref %q looks like a version tag but is not valid semver", ref))
	}
}
