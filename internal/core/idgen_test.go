package core

import (
	"testing"
	"time"
)

func TestOptimalLengthGrowsWithIssueCount(t *testing.T) {
	g := NewIdGenerator("bd")
	small := g.OptimalLength(0)
	large := g.OptimalLength(1_000_000)
	if small < idMinLength || small > idMaxLength {
		t.Fatalf("small length out of range: %d", small)
	}
	if large < small {
		t.Fatalf("expected length to grow with issue count, got small=%d large=%d", small, large)
	}
}

func TestGenerateAvoidsPredicateHits(t *testing.T) {
	g := NewIdGenerator("bd")
	createdAt := time.Now()
	length := g.OptimalLength(0)

	blocked := make(map[string]bool)
	for nonce := 0; nonce < 5; nonce++ {
		blocked[g.GenerateCandidate("title", "desc", "me", createdAt, nonce, length)] = true
	}
	exists := func(candidate string) bool { return blocked[candidate] }

	id := g.Generate("title", "desc", "me", createdAt, 0, exists)
	want := g.GenerateCandidate("title", "desc", "me", createdAt, 5, length)
	if id != want {
		t.Fatalf("expected sixth candidate %q, got %q", want, id)
	}
	if exists(id) {
		t.Fatalf("returned id %q must not satisfy the existence predicate at return time", id)
	}
}

func TestGenerateEscalatesLength(t *testing.T) {
	g := NewIdGenerator("bd")
	createdAt := time.Now()

	calls := 0
	exists := func(string) bool {
		calls++
		// First 10 calls (nonces 0-9 at the initial length) collide; the
		// 11th call (nonce 0 at length+1) succeeds.
		return calls <= 10
	}
	id := g.Generate("title", "desc", "me", createdAt, 0, exists)
	length := len(id) - len(g.Prefix) - 1
	if length != idMinLength+1 {
		t.Fatalf("expected escalated length %d, got %d (id=%s)", idMinLength+1, length, id)
	}
}

func TestChildIDAndDepth(t *testing.T) {
	parent := "bd-abc123"
	child := ChildID(parent, 1)
	if child != "bd-abc123.1" {
		t.Fatalf("unexpected child id: %s", child)
	}
	if IDDepth(child) != 1 {
		t.Fatalf("expected depth 1, got %d", IDDepth(child))
	}
	if ParentID(child) != parent {
		t.Fatalf("expected parent id %s, got %s", parent, ParentID(child))
	}
}

func TestComputeIdHashHasRequestedLength(t *testing.T) {
	h := computeIdHash("some-seed", 5)
	if len(h) != 5 {
		t.Fatalf("expected length 5, got %d (%s)", len(h), h)
	}
}
