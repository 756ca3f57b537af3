package importer

import (
	"testing"
	"time"

	"github.com/ttrei/bd/internal/core"
)

func newStore() *core.Store {
	return core.NewStore("bd")
}

func TestImportCreatesNewIssues(t *testing.T) {
	s := newStore()
	result, err := Import(s, []*core.Issue{{Title: "Fix login", Status: core.StatusOpen, IssueType: core.TypeBug}}, "import", Options{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Created != 1 {
		t.Fatalf("expected 1 created, got %+v", result)
	}
}

func TestImportMatchesByExternalRefAndUpdatesWhenNewer(t *testing.T) {
	s := newStore()
	created, err := s.Create(&core.Issue{Title: "Old title", ExternalRef: "gh-9", Status: core.StatusOpen}, "me")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	newer := created.UpdatedAt.Add(time.Hour)
	result, err := Import(s, []*core.Issue{
		{Title: "New title", ExternalRef: "gh-9", Status: core.StatusOpen, UpdatedAt: newer},
	}, "import", Options{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Updated != 1 {
		t.Fatalf("expected 1 updated, got %+v", result)
	}
	got, _ := s.Get(created.ID)
	if got.Title != "New title" {
		t.Fatalf("expected title updated, got %q", got.Title)
	}
}

func TestImportSkipsExactContentMatch(t *testing.T) {
	s := newStore()
	created, _ := s.Create(&core.Issue{Title: "Same", Status: core.StatusOpen, IssueType: core.TypeTask}, "me")

	result, err := Import(s, []*core.Issue{
		{ID: created.ID, Title: "Same", Status: core.StatusOpen, IssueType: core.TypeTask, Creator: "me"},
	}, "import", Options{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Unchanged != 1 || result.Created != 0 || result.Updated != 0 {
		t.Fatalf("expected unchanged match, got %+v", result)
	}
}

func TestImportDetectsDuplicateExternalRefsInBatch(t *testing.T) {
	s := newStore()
	_, err := Import(s, []*core.Issue{
		{Title: "A", ExternalRef: "gh-1"},
		{Title: "B", ExternalRef: "gh-1"},
	}, "import", Options{})
	if err == nil {
		t.Fatal("expected duplicate external_ref error")
	}
}

func TestImportFlagsPrefixMismatch(t *testing.T) {
	s := newStore()
	result, err := Import(s, []*core.Issue{{ID: "other-abc123", Title: "x"}}, "import", Options{})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !result.PrefixMismatch || result.MismatchCounts["other"] != 1 {
		t.Fatalf("expected prefix mismatch on 'other', got %+v", result)
	}
}

func TestImportDryRunChangesNothing(t *testing.T) {
	s := newStore()
	result, err := Import(s, []*core.Issue{{Title: "dry run"}}, "import", Options{DryRun: true})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if result.Created != 1 {
		t.Fatalf("expected dry-run create count of 1, got %+v", result)
	}
	if len(s.List(core.ListFilters{IncludeClosed: true})) != 0 {
		t.Fatal("dry run must not mutate the store")
	}
}
