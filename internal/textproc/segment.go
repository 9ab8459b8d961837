package textproc

import (
	"regexp"
	"strings"
)

// questionMarkerRe matches top-level question lead markers: "Question 12",
// "Q3", "q 4", case-insensitive. The boundary stops matches inside words
// like "FAQ 1".
var questionMarkerRe = regexp.MustCompile(`(?i)\bQ(?:uestion)?\s*\d+`)

// minSegmentLen is the noise threshold: split segments whose trimmed
// length does not exceed it are dropped (stray page numbers, scan
// artifacts before the first question).
const minSegmentLen = 5

// Segment splits a text blob into ordered question segments, cutting
// immediately before each top-level question marker. If no marker is
// found the whole trimmed blob is returned as a single segment. Empty
// input yields nil.
func Segment(text string) []string {
	trimmedAll := strings.TrimSpace(text)
	if trimmedAll == "" {
		return nil
	}

	locs := questionMarkerRe.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []string{trimmedAll}
	}

	cuts := make([]int, 0, len(locs)+2)
	cuts = append(cuts, 0)
	for _, loc := range locs {
		if loc[0] > cuts[len(cuts)-1] {
			cuts = append(cuts, loc[0])
		}
	}
	cuts = append(cuts, len(text))

	var segs []string
	for i := 0; i+1 < len(cuts); i++ {
		seg := strings.TrimSpace(text[cuts[i]:cuts[i+1]])
		if len(seg) > minSegmentLen {
			segs = append(segs, seg)
		}
	}

	// Totality: never return nothing for non-empty input, even if every
	// split segment fell under the noise threshold.
	if len(segs) == 0 {
		return []string{trimmedAll}
	}
	return segs
}
