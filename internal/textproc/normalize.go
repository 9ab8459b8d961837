// Package textproc holds the text-shaping heuristics of the pipeline:
// sub-question normalization, question segmentation and category guessing.
package textproc

import (
	"regexp"
	"strings"
)

// subMarkerRe matches sub-question markers: a bracketed single letter
// "(a)", a lowercase roman numeral followed by ")" such as "ii)", or a
// digit-dot pattern "1.". The word boundary keeps roman tails of ordinary
// words ("taxi)") from matching.
var subMarkerRe = regexp.MustCompile(`\([A-Za-z]\)|\b[ivx]+\)|\d+\.`)

// Normalize inserts a newline before every sub-question marker that does
// not already start its own line, so the segmenter sees one marker per
// line. Spaces and tabs directly before a marker are consumed by the
// inserted newline, which makes the function idempotent:
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) string {
	locs := subMarkerRe.FindAllStringIndex(raw, -1)
	if len(locs) == 0 {
		return raw
	}

	var b strings.Builder
	b.Grow(len(raw) + len(locs))
	prev := 0
	last := byte('\n') // document start counts as a line start
	for _, loc := range locs {
		seg := strings.TrimRight(raw[prev:loc[0]], " \t")
		if seg != "" {
			b.WriteString(seg)
			last = seg[len(seg)-1]
		}
		if last != '\n' {
			b.WriteByte('\n')
		}
		marker := raw[loc[0]:loc[1]]
		b.WriteString(marker)
		last = marker[len(marker)-1]
		prev = loc[1]
	}
	b.WriteString(raw[prev:])
	return b.String()
}
