// Package export assembles the session's blocks into a printable exam
// paper.
package export

import (
	"regexp"
	"strings"
)

var (
	marksRe        = regexp.MustCompile(`\[\s*(\d+)\s*\]$`)
	subPartRe      = regexp.MustCompile(`^(\(?\w+\)|\d+\.)`)
	leadQuestionRe = regexp.MustCompile(`(?i)^Question\s*\d+[:.)]?`)
)

// SplitMarks separates a trailing marks annotation like "[5]" from the
// rest of the line. Malformed annotations stay in the line text.
func SplitMarks(line string) (text, marks string) {
	loc := marksRe.FindStringIndex(line)
	if loc == nil {
		return line, ""
	}
	return strings.TrimSpace(line[:loc[0]]), line[loc[0]:loc[1]]
}

// IsSubPart reports whether a line starts a lettered or numbered
// sub-question, e.g. "(a)", "i)", "1.".
func IsSubPart(line string) bool {
	return subPartRe.MatchString(line)
}

// StripLeadQuestion removes a leading "Question N" marker. The section
// title paragraph already names the question, so the marker would render
// twice.
func StripLeadQuestion(text string) string {
	return strings.TrimSpace(leadQuestionRe.ReplaceAllString(strings.TrimSpace(text), ""))
}
