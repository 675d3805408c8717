package render

import (
	"html"
	"strings"
)

// LineBreak joins formatted lines.
const LineBreak = "<br>"

// FormatText converts trusted case text into an HTML fragment: LaTeX tables
// become HTML tables, surrounding blank lines are dropped and newlines become
// <br>. Math delimiters are left for MathJax; nothing is escaped.
func FormatText(text string) string {
	if text == "" {
		return ""
	}
	text = ConvertTables(normalizeNewlines(text))
	return strings.Join(trimBlankLines(strings.Split(text, "\n")), LineBreak)
}

// FormatPlain is FormatText for untrusted text: no table conversion and the
// content is HTML escaped before newlines become <br>.
func FormatPlain(text string) string {
	if text == "" {
		return ""
	}
	lines := trimBlankLines(strings.Split(normalizeNewlines(text), "\n"))
	return strings.ReplaceAll(EscapeHTML(strings.Join(lines, "\n")), "\n", LineBreak)
}

// EscapeHTML escapes text for use in element content and attribute values.
func EscapeHTML(text string) string {
	return html.EscapeString(text)
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// trimBlankLines drops whitespace-only lines at both ends.
func trimBlankLines(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[start:end]
}
