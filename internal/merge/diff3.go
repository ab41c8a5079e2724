package merge

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Diff3Merger performs a line-based three-way merge in-process. Both sides
// are diffed against base; non-conflicting hunks are concatenated and
// overlapping hunks with divergent content leave the merge unresolved.
type Diff3Merger struct{}

// Merge implements Merger.
func (m *Diff3Merger) Merge(base, ours, theirs string) Outcome {
	baseLines := splitLines(base)
	oursLines := splitLines(ours)
	theirsLines := splitLines(theirs)

	oursOps := difflib.NewMatcher(baseLines, oursLines).GetOpCodes()
	theirsOps := difflib.NewMatcher(baseLines, theirsLines).GetOpCodes()

	regions := combineRegions(changedSpans(oursOps), changedSpans(theirsOps))

	oursPre, oursPost := anchors(oursOps, len(baseLines))
	theirsPre, theirsPost := anchors(theirsOps, len(baseLines))

	var out strings.Builder
	cursor := 0
	for _, r := range regions {
		for _, line := range baseLines[cursor:r.lo] {
			out.WriteString(line)
		}
		cursor = r.hi

		baseSlice := baseLines[r.lo:r.hi]
		oursSlice := oursLines[oursPre[r.lo]:oursPost[r.hi]]
		theirsSlice := theirsLines[theirsPre[r.lo]:theirsPost[r.hi]]

		switch {
		case equalLines(oursSlice, theirsSlice):
			writeLines(&out, oursSlice)
		case equalLines(oursSlice, baseSlice):
			writeLines(&out, theirsSlice)
		case equalLines(theirsSlice, baseSlice):
			writeLines(&out, oursSlice)
		default:
			return Outcome{Status: StatusUnresolved}
		}
	}
	for _, line := range baseLines[cursor:] {
		out.WriteString(line)
	}

	return Outcome{Status: StatusResolved, Content: out.String()}
}

// span is a half-open range of base line indexes touched by one side.
type span struct {
	lo, hi int
}

// changedSpans extracts the base ranges of all non-equal opcodes.
func changedSpans(ops []difflib.OpCode) []span {
	var spans []span
	for _, op := range ops {
		if op.Tag != 'e' {
			spans = append(spans, span{op.I1, op.I2})
		}
	}
	return spans
}

// combineRegions merges the changed spans of both sides into disjoint
// unstable regions. Spans that strictly overlap are always combined;
// touching spans combine only when one of them is an insertion point, so
// that a pure insertion is resolved together with the edit it abuts.
func combineRegions(ours, theirs []span) []span {
	all := make([]span, 0, len(ours)+len(theirs))
	all = append(all, ours...)
	all = append(all, theirs...)
	for i := 1; i < len(all); i++ {
		for j := i; j > 0 && less(all[j], all[j-1]); j-- {
			all[j], all[j-1] = all[j-1], all[j]
		}
	}

	var regions []span
	for _, s := range all {
		if len(regions) > 0 {
			cur := &regions[len(regions)-1]
			if s.lo < cur.hi || (s.lo == cur.hi && (s.lo == s.hi || cur.lo == cur.hi)) {
				if s.hi > cur.hi {
					cur.hi = s.hi
				}
				continue
			}
		}
		regions = append(regions, s)
	}
	return regions
}

func less(a, b span) bool {
	if a.lo != b.lo {
		return a.lo < b.lo
	}
	return a.hi < b.hi
}

// anchors maps base line boundaries to side line boundaries. For a
// boundary with an insertion attached, pre points before the inserted
// lines and post after them; everywhere else pre and post agree. Interior
// boundaries of replaced ranges are never queried because unstable
// regions always cover whole opcodes.
func anchors(ops []difflib.OpCode, n int) (pre, post []int) {
	pre = make([]int, n+1)
	post = make([]int, n+1)
	seen := make([]bool, n+1)

	set := func(b, v int) {
		if !seen[b] {
			pre[b], post[b] = v, v
			seen[b] = true
			return
		}
		if v < pre[b] {
			pre[b] = v
		}
		if v > post[b] {
			post[b] = v
		}
	}

	for _, op := range ops {
		if op.Tag == 'e' {
			for b := op.I1; b <= op.I2; b++ {
				set(b, op.J1+(b-op.I1))
			}
			continue
		}
		set(op.I1, op.J1)
		set(op.I2, op.J2)
	}
	if !seen[0] {
		set(0, 0)
	}
	if !seen[n] {
		set(n, 0)
	}
	return pre, post
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func writeLines(out *strings.Builder, lines []string) {
	for _, line := range lines {
		out.WriteString(line)
	}
}
