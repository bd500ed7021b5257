// Package report derives the display-ready structures served to the UI from
// the analyzer backend's raw payloads: reconciled per-line clause matches,
// highlighted spans, score tiers and the unified two-document comparison
// view. Everything in this package is a pure transformation; no I/O.
package report

import (
	"regexp"
	"strings"
)

// Upstream extraction sometimes embeds markdown-style bold markers and
// numbered heading prefixes ("**3. Termination**") in the text it returns.
var ordinalPrefix = regexp.MustCompile(`^\*\*\d+\.\s*`)

// LineAt returns the cleaned content of the 1-based lineNumber in fullText,
// which is split on line breaks. ok is false when lineNumber falls outside
// [1, lineCount]; callers fall back to the raw matched keyword instead of
// failing.
func LineAt(fullText string, lineNumber int) (string, bool) {
	lines := strings.Split(fullText, "\n")
	if lineNumber < 1 || lineNumber > len(lines) {
		return "", false
	}

	line := strings.TrimSpace(lines[lineNumber-1])
	line = ordinalPrefix.ReplaceAllString(line, "")
	line = strings.ReplaceAll(line, "**", "")
	return line, true
}
