// Package prompt renders the instruction block sent to the reasoning
// agent when the deterministic merge cannot resolve a conflict.
package prompt

import "strings"

// Strategy selects which side the agent should favor when base/ours/theirs
// cannot be reconciled mechanically.
type Strategy int

const (
	// PreferOurs keeps our content and folds in theirs only when it is
	// clearly additive.
	PreferOurs Strategy = iota
	// PreferTheirs keeps their content and folds in ours only when it is
	// clearly additive.
	PreferTheirs
)

func (s Strategy) String() string {
	if s == PreferTheirs {
		return "prefer-theirs"
	}
	return "prefer-ours"
}

// StrategyFor derives the resolution strategy from the conflict provenance
// hint. A source mentioning a stash means THEIRS carries the stashed work
// being restored, so it wins; everything else favors OURS.
func StrategyFor(source string) Strategy {
	if strings.Contains(strings.ToLower(source), "stash") {
		return PreferTheirs
	}
	return PreferOurs
}

const directive = `You are resolving a merge conflict in a single file.
Return ONLY the final resolved file content: no conflict markers, no
markdown fences, no commentary.`

const preferOursRule = `Resolution strategy: prefer the OURS version.
Incorporate content from THEIRS only when it is clearly additive and does
not conflict with the intent of OURS.`

const preferTheirsRule = `Resolution strategy: prefer the THEIRS version.
Incorporate content from OURS only when it is clearly additive and does
not conflict with the intent of THEIRS.`

// Build renders the full instruction block. Pure; the three versions are
// embedded verbatim in fixed order inside named delimiters that cannot be
// mistaken for conflict markers.
func Build(base, ours, theirs, source string) string {
	var b strings.Builder
	b.WriteString(directive)
	b.WriteString("\n\n")

	if StrategyFor(source) == PreferTheirs {
		b.WriteString(preferTheirsRule)
	} else {
		b.WriteString(preferOursRule)
	}
	b.WriteString("\n\n")

	writeSection(&b, "BASE", base)
	writeSection(&b, "OURS", ours)
	writeSection(&b, "THEIRS", theirs)

	return b.String()
}

func writeSection(b *strings.Builder, name, content string) {
	b.WriteString("<<<" + name + ">>>\n")
	b.WriteString(content)
	if content != "" && !strings.HasSuffix(content, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("<<<END " + name + ">>>\n\n")
}
