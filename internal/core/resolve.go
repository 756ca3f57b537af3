package core

import "strings"

// Resolve looks up a user-supplied, possibly partial id against the full
// set of known ids. The input is trimmed and lower-cased. An exact match
// wins immediately; otherwise, if the input contains no dash, "prefix-input"
// is tried as an exact match; otherwise (or if that also misses) every
// known id is matched by substring against its tail-after-last-dash,
// truncated at the first dot (isolating the root hash from any
// hierarchical suffix). Zero matches is IssueNotFound, one is returned
// directly, more than one is AmbiguousId carrying every match.
func Resolve(input string, prefix string, knownIDs []string) (string, error) {
	needle := strings.ToLower(strings.TrimSpace(input))

	known := make(map[string]bool, len(knownIDs))
	for _, id := range knownIDs {
		known[id] = true
	}

	if known[needle] {
		return needle, nil
	}

	if !strings.Contains(needle, "-") {
		candidate := prefix + "-" + needle
		if known[candidate] {
			return candidate, nil
		}
	}

	var matches []string
	for _, id := range knownIDs {
		tail := id
		if idx := strings.LastIndex(id, "-"); idx != -1 {
			tail = id[idx+1:]
		}
		if idx := strings.Index(tail, "."); idx != -1 {
			tail = tail[:idx]
		}
		if strings.Contains(tail, needle) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", &Error{Kind: KindIssueNotFound, ID: input}
	case 1:
		return matches[0], nil
	default:
		return "", &Error{Kind: KindAmbiguousId, Partial: input, Matches: matches}
	}
}
