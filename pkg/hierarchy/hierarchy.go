// Package hierarchy generates the human-readable identifiers that thread the
// requirement tree together. Identifiers are built from letter segments
// derived from titles plus a zero-padded sequence number, for example:
//
//	project prefix           PTES
//	client requirement       PTES-RAU01
//	epic                     PTES-RAU-EAU01
//	functional requirement   PTES-RAU-EAU-FRL01
//	task                     PTES-RAU-EAU-FRL-01
//
// Non-leaf artifacts append their own letter segment and a sequence to the
// parent's letter path; tasks append only a sequence. The letter path handed
// to children omits the sequence.
package hierarchy

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// SegmentLen is the number of letters taken from a title for an ID segment.
const SegmentLen = 3

// seqLimit bounds collision probing so a pathological store cannot loop us
// forever.
const seqLimit = 9999

// ExistsFunc reports whether a candidate identifier is already taken.
type ExistsFunc func(ctx context.Context, id string) (bool, error)

// Segment derives the letter segment for a title: the first three alphabetic
// characters, uppercased. Titles with fewer than three letters are padded
// with 'X' so segments stay fixed width.
func Segment(title string) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
			if b.Len() >= SegmentLen {
				break
			}
		}
	}
	for b.Len() < SegmentLen {
		b.WriteByte('X')
	}
	return b.String()
}

// ProjectPrefix derives the root of every identifier under a project:
// "P" followed by the project name's letter segment.
func ProjectPrefix(name string) string {
	return "P" + Segment(name)
}

// Compose builds an artifact identifier from the parent's letter path, the
// artifact's own title and a 1-based sequence number.
func Compose(parentPath, title string, seq int) string {
	return fmt.Sprintf("%s-%s%02d", parentPath, Segment(title), seq)
}

// ChildPath returns the letter path children of this artifact extend. It is
// Compose without the sequence suffix.
func ChildPath(parentPath, title string) string {
	return parentPath + "-" + Segment(title)
}

// LetterPath strips the trailing sequence from a stored identifier, yielding
// the path its children extend. LetterPath("PTES-RAU01") is "PTES-RAU".
func LetterPath(id string) string {
	return strings.TrimRightFunc(id, unicode.IsDigit)
}

// ComposeTask builds a task identifier: the owning functional requirement's
// letter path plus a dash-separated sequence.
func ComposeTask(parentPath string, seq int) string {
	return fmt.Sprintf("%s-%02d", parentPath, seq)
}

// Generator allocates collision-free identifiers against a store.
type Generator struct {
	exists ExistsFunc
}

// NewGenerator returns a Generator that checks candidates with exists.
func NewGenerator(exists ExistsFunc) *Generator {
	return &Generator{exists: exists}
}

// Next returns the first free identifier for the artifact, starting the probe
// at startSeq. When the candidate is taken the sequence advances until a free
// slot is found; sequence numbers are never skipped on a fresh path, so IDs
// stay dense.
func (g *Generator) Next(ctx context.Context, parentPath, title string, startSeq int) (string, error) {
	if startSeq < 1 {
		startSeq = 1
	}
	for seq := startSeq; seq <= seqLimit; seq++ {
		candidate := Compose(parentPath, title, seq)
		taken, err := g.exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("checking hierarchy ID %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free hierarchy ID under %s-%s", parentPath, Segment(title))
}

// NextTask is Next for task identifiers, which carry no letter segment of
// their own.
func (g *Generator) NextTask(ctx context.Context, parentPath string, startSeq int) (string, error) {
	if startSeq < 1 {
		startSeq = 1
	}
	for seq := startSeq; seq <= seqLimit; seq++ {
		candidate := ComposeTask(parentPath, seq)
		taken, err := g.exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("checking hierarchy ID %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free task ID under %s", parentPath)
}

// DistributeRoundRobin assigns each of n children a parent index by cycling
// through the parents in order. Children that arrive without an explicit
// parent during bulk import are spread evenly this way.
func DistributeRoundRobin(n, parents int) []int {
	if parents <= 0 {
		return nil
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		out[i] = i % parents
	}
	return out
}
