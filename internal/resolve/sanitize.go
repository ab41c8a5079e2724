package resolve

import "strings"

// StripFences removes markdown fence lines (three backticks with an
// optional language tag) that wrap the response, then trims surrounding
// whitespace. Language-generation backends routinely wrap plain-text
// answers this way despite instructions not to.
//
// Fences are removed only in matched pairs: a leading fence line comes off
// together with its closing fence line, and an unpaired fence is left
// intact. Wrapping can nest, so pairs are peeled until none remain, which
// makes the result a fixed point: a second pass never changes it.
func StripFences(text string) string {
	s := strings.TrimSpace(text)
	for strings.HasPrefix(s, "```") {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			// The whole remainder is a single fence line.
			return ""
		}
		body := s[i+1:]

		if idx := strings.LastIndexByte(body, '\n'); idx >= 0 && strings.TrimSpace(body[idx+1:]) == "```" {
			body = body[:idx]
		} else if strings.TrimSpace(body) == "```" {
			body = ""
		} else {
			// Opening fence with no closing fence; keep the response
			// as the agent produced it.
			break
		}
		s = strings.TrimSpace(body)
	}
	return s
}
