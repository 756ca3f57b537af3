package core

import "testing"

func TestComputeContentHashDeterministic(t *testing.T) {
	a := &Issue{Title: "Fix login", Description: "desc", Status: StatusOpen, Priority: PriorityHigh, IssueType: TypeBug}
	b := &Issue{Title: "Fix login", Description: "desc", Status: StatusOpen, Priority: PriorityHigh, IssueType: TypeBug}
	if a.ComputeContentHash() != b.ComputeContentHash() {
		t.Fatalf("expected equal hashes for equal content")
	}
}

func TestComputeContentHashIgnoresTimestamps(t *testing.T) {
	a := &Issue{Title: "same", CreatedAt: mustParseTime(t, "2020-01-01T00:00:00Z")}
	b := &Issue{Title: "same", CreatedAt: mustParseTime(t, "2021-06-01T00:00:00Z")}
	if a.ComputeContentHash() != b.ComputeContentHash() {
		t.Fatalf("expected hash to be independent of timestamps")
	}
}

func TestComputeContentHashDiffersOnContent(t *testing.T) {
	a := &Issue{Title: "one"}
	b := &Issue{Title: "two"}
	if a.ComputeContentHash() == b.ComputeContentHash() {
		t.Fatalf("expected different hashes for different titles")
	}
}

func TestComputeContentHashEmbeddedNull(t *testing.T) {
	a := &Issue{Title: "a\x00b"}
	b := &Issue{Title: "a b"}
	if a.ComputeContentHash() != b.ComputeContentHash() {
		t.Fatalf("expected embedded null byte to be treated as space")
	}
}
