package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.jsonl"))
	fe, ok := err.(*Error)
	if !ok || fe.Kind != KindFileNotFound {
		t.Fatalf("expected FileNotFound, got %v", err)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.jsonl")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	data, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(data.Issues) != 0 {
		t.Fatalf("expected no issues, got %d", len(data.Issues))
	}
}

func TestLoadSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.jsonl")
	content := "\n" + `{"id":"bd-a1","title":"a","status":"open","priority":0,"issue_type":"task","created_at":"2024-01-01T00:00:00Z","updated_at":"2024-01-01T00:00:00Z"}` + "\n\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	data, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(data.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(data.Issues))
	}
}

func TestLoadParseErrorReportsLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.jsonl")
	content := `{"id":"bd-a1","title":"a"}` + "\n" + `not json` + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	pe, ok := err.(*Error)
	if !ok || pe.Kind != KindJsonlParse || pe.Line != 2 {
		t.Fatalf("expected JsonlParse at line 2, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	issues := []*Issue{
		{ID: "bd-a1", Title: "Alpha", Status: StatusOpen, IssueType: TypeTask, CreatedAt: now, UpdatedAt: now},
		{ID: "bd-a2", Title: "Beta", Status: StatusOpen, IssueType: TypeBug, CreatedAt: now, UpdatedAt: now},
	}
	labels := map[string][]string{"bd-a1": {"urgent", "backend"}}
	deps := []*Dependency{{IssueID: "bd-a2", DependsOnID: "bd-a1", Type: DepBlocks, CreatedAt: now}}
	comments := map[string][]*Comment{"bd-a1": {{ID: 1, IssueID: "bd-a1", Author: "me", Text: "hi", CreatedAt: now}}}

	path := filepath.Join(dir, "issues.jsonl")
	if err := Save(path, issues, labels, deps, comments); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("expected temp file to be renamed away")
	}

	data, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(data.Issues) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(data.Issues))
	}
	if len(data.Labels["bd-a1"]) != 2 {
		t.Fatalf("expected 2 labels on bd-a1, got %v", data.Labels["bd-a1"])
	}
	if len(data.Dependencies) != 1 {
		t.Fatalf("expected 1 dependency, got %d", len(data.Dependencies))
	}
	if len(data.Comments["bd-a1"]) != 1 {
		t.Fatalf("expected 1 comment on bd-a1, got %d", len(data.Comments["bd-a1"]))
	}

	// Determinism: saving the loaded data again produces byte-identical output.
	path2 := filepath.Join(dir, "issues2.jsonl")
	if err := Save(path2, data.Issues, data.Labels, data.Dependencies, data.Comments); err != nil {
		t.Fatalf("save2: %v", err)
	}
	b1, _ := os.ReadFile(path)
	b2, _ := os.ReadFile(path2)
	if string(b1) != string(b2) {
		t.Fatalf("expected byte-identical output on re-save, got:\n%s\n---\n%s", b1, b2)
	}
}
