package resolve

import "testing"

func TestStripFences(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"language tag", "```js\nHELLO\n```", "HELLO"},
		{"bare fence", "```\nHELLO\n```", "HELLO"},
		{"no fences", "HELLO", "HELLO"},
		{"whitespace", "  \nHELLO\n  ", "HELLO"},
		{"unpaired leading", "```go\ncontent", "```go\ncontent"},
		{"unpaired trailing", "content\n```", "content\n```"},
		{"multiline body", "```\nline1\nline2\n```", "line1\nline2"},
		{"nested pairs", "```\n```js\nHELLO\n```\n```", "HELLO"},
		{"empty body", "```\n\n```", ""},
		{"lone fence", "```", ""},
		{"empty", "", ""},
		{"backticks inline", "use ``` for fences", "use ``` for fences"},
	}

	for _, tc := range cases {
		if got := StripFences(tc.input); got != tc.want {
			t.Errorf("%s: StripFences(%q) = %q, want %q", tc.name, tc.input, got, tc.want)
		}
	}
}

func TestStripFencesIdempotent(t *testing.T) {
	// Includes inputs where peeling one fence pair exposes another fence
	// line underneath; a single-pair pass would change them again on a
	// second call.
	inputs := []string{
		"```js\nHELLO\n```",
		"```\n```js\nHELLO\n```",
		"```\n```\nA",
		"```\n```\n```",
		"```\n```a\nX\n```\n```",
		"plain text\nwith lines\n",
		"```\n\n```",
		"```go\ncontent",
		"content\n```",
		"",
		"no fences here",
	}
	for _, input := range inputs {
		once := StripFences(input)
		twice := StripFences(once)
		if once != twice {
			t.Errorf("StripFences not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}
