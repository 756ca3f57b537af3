package core

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// ComputeContentHash computes the deterministic SHA-256 digest over the
// fifteen semantic fields, in the order: title, description, design,
// acceptance criteria, notes, status, priority (as "P{n}"), type, assignee,
// owner, creator, external ref, source system, pinned flag, template flag.
// Each field is null-byte terminated; any embedded null byte in a field is
// replaced with a space first. Excludes id, timestamps, labels, relations,
// and tombstone fields. Total and deterministic: never fails.
func (i *Issue) ComputeContentHash() string {
	h := sha256.New()
	write := func(s string) {
		h.Write([]byte(strings.ReplaceAll(s, "\x00", " ")))
		h.Write([]byte{0})
	}
	write(i.Title)
	write(i.Description)
	write(i.Design)
	write(i.AcceptanceCriteria)
	write(i.Notes)
	write(string(i.Status))
	write(i.Priority.String())
	write(string(i.IssueType))
	write(i.Assignee)
	write(i.Owner)
	write(i.Creator)
	write(i.ExternalRef)
	write(i.SourceSystem)
	write(boolString(i.Pinned))
	write(boolString(i.IsTemplate))
	return fmt.Sprintf("%x", h.Sum(nil))
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
