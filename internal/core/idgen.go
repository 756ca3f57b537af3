package core

import (
	"crypto/sha256"
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	idMinLength     = 3
	idMaxLength     = 8
	idFallbackLength = 12
	idMaxCollisionProbability = 0.25
	idNoncesPerLength = 10
	idFallbackNonces  = 1000
)

// base36Alphabet is the lowercase alphanumeric alphabet used by id hashes.
const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// IdGenerator produces prefix-hash identifiers with adaptive, collision-
// resistant length. It holds no state of its own: callers supply an
// existence predicate per call.
type IdGenerator struct {
	Prefix                 string
	MinLength              int
	MaxLength              int
	MaxCollisionProbability float64
}

// NewIdGenerator returns a generator with the spec's default tuning.
func NewIdGenerator(prefix string) *IdGenerator {
	return &IdGenerator{
		Prefix:                  prefix,
		MinLength:               idMinLength,
		MaxLength:               idMaxLength,
		MaxCollisionProbability: idMaxCollisionProbability,
	}
}

// OptimalLength returns the smallest hash length in [MinLength, MaxLength]
// for which the birthday-problem collision estimate is below the configured
// threshold, given issueCount existing issues. Falls back to MaxLength if no
// length in range satisfies the threshold.
func (g *IdGenerator) OptimalLength(issueCount int) int {
	n := float64(issueCount)
	for length := g.MinLength; length <= g.MaxLength; length++ {
		space := math.Pow(36, float64(length))
		prob := 1.0 - math.Exp(-(n*n)/(2.0*space))
		if prob < g.MaxCollisionProbability {
			return length
		}
	}
	return g.MaxLength
}

// idSeed builds the deterministic input string "title|description|creator|created_at_nanos|nonce".
func idSeed(title, description, creator string, createdAt time.Time, nonce int) string {
	return fmt.Sprintf("%s|%s|%s|%d|%d", title, description, creator, createdAt.UnixNano(), nonce)
}

// computeIdHash SHA-256-hashes input, packs the first 8 bytes big-endian
// into a uint64, base36-encodes it, left-pads with '0' to length, then
// truncates to exactly length characters.
func computeIdHash(input string, length int) string {
	sum := sha256.Sum256([]byte(input))
	var num uint64
	for _, b := range sum[:8] {
		num = (num << 8) | uint64(b)
	}
	encoded := base36Encode(num)
	if len(encoded) < length {
		encoded = strings.Repeat("0", length-len(encoded)) + encoded
	}
	if len(encoded) > length {
		encoded = encoded[:length]
	}
	return encoded
}

func base36Encode(num uint64) string {
	if num == 0 {
		return "0"
	}
	var buf [64]byte
	pos := len(buf)
	for num > 0 {
		pos--
		buf[pos] = base36Alphabet[num%36]
		num /= 36
	}
	return string(buf[pos:])
}

// GenerateCandidate builds a single candidate id at the given hash length
// and nonce, without checking existence.
func (g *IdGenerator) GenerateCandidate(title, description, creator string, createdAt time.Time, nonce int, hashLength int) string {
	seed := idSeed(title, description, creator, createdAt, nonce)
	return fmt.Sprintf("%s-%s", g.Prefix, computeIdHash(seed, hashLength))
}

// Generate produces a fresh id. exists reports whether a candidate id is
// already taken; Generate never returns an id for which exists returns true
// at the moment of return.
//
// Algorithm: start at OptimalLength(issueCount); probe nonces 0..10 at that
// length; if all ten collide, grow the length by one and repeat up to
// MaxLength. Beyond MaxLength, switch to a fixed length of 12 and iterate
// nonce up to 1000; the final fallback appends the nonce used.
func (g *IdGenerator) Generate(title, description, creator string, createdAt time.Time, issueCount int, exists func(string) bool) string {
	length := g.OptimalLength(issueCount)

	for {
		for nonce := 0; nonce < idNoncesPerLength; nonce++ {
			id := g.GenerateCandidate(title, description, creator, createdAt, nonce, length)
			if !exists(id) {
				return id
			}
		}
		if length < g.MaxLength {
			length++
			continue
		}
		break
	}

	for nonce := 0; nonce < idFallbackNonces; nonce++ {
		id := g.GenerateCandidate(title, description, creator, createdAt, nonce, idFallbackLength)
		if !exists(id) {
			return id
		}
	}
	// Final fallback: append the last nonce tried, accepting the
	// (astronomically unlikely) risk of a collision.
	seed := idSeed(title, description, creator, createdAt, idFallbackNonces-1)
	return fmt.Sprintf("%s-%s.%d", g.Prefix, computeIdHash(seed, idFallbackLength), idFallbackNonces-1)
}

// ChildID appends the next hierarchical suffix ".n" to a parent id.
func ChildID(parentID string, n int) string {
	return fmt.Sprintf("%s.%d", parentID, n)
}

// IDDepth returns the number of dot-separated suffix segments after the
// hash portion of id.
func IDDepth(id string) int {
	return strings.Count(id, ".")
}

// ParentID strips the last dot-suffix segment from a hierarchical id. If id
// has no suffix, ParentID returns id unchanged.
func ParentID(id string) string {
	idx := strings.LastIndex(id, ".")
	if idx == -1 {
		return id
	}
	return id[:idx]
}
