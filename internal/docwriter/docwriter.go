// Package docwriter writes minimal WordprocessingML (.docx) documents.
//
// It covers exactly the layout features an exam paper needs: page margins,
// left/center alignment, one right-aligned tab stop, hanging indents,
// before/after paragraph spacing and bold/italic/underline runs. The docx
// library used on the read path does not expose these in its authoring
// API, so the handful of elements are emitted directly.
package docwriter

import (
	"io"
)

// Alignment is paragraph-level justification.
type Alignment string

const (
	AlignLeft   Alignment = "" // default, no w:jc emitted
	AlignCenter Alignment = "center"
)

// Run is a span of text with uniform character formatting. The document's
// base font and size apply to every run.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Underline bool
	// TabBefore emits a tab before the text, jumping to the paragraph's
	// right tab stop when one is set.
	TabBefore bool
}

// Spacing is vertical paragraph spacing in twentieths of a point.
type Spacing struct {
	Before int
	After  int
}

// Indent is paragraph indentation in twips. Hanging pulls the first line
// back toward the margin, nesting wrapped lines under it.
type Indent struct {
	Left    int
	Hanging int
}

// Paragraph is one block-level element.
type Paragraph struct {
	Align   Alignment
	Spacing Spacing
	Indent  Indent
	// RightTab places a right-aligned tab stop at the page's maximum
	// writable width.
	RightTab bool
	Runs     []Run
}

// A4 page geometry in twips.
const (
	pageWidthTwips  = 11906
	pageHeightTwips = 16838
)

// Document accumulates paragraphs and serializes them as a .docx package.
type Document struct {
	// Font is the base font family for all runs.
	Font string
	// SizeHalfPoints is the base font size in half-points (28 = 14pt).
	SizeHalfPoints int
	// MarginTwips is the uniform page margin (720 = 0.5in).
	MarginTwips int

	paras []Paragraph
}

// New returns a Document with the exam-paper defaults: Times New Roman,
// 14pt, half-inch margins.
func New() *Document {
	return &Document{
		Font:           "Times New Roman",
		SizeHalfPoints: 28,
		MarginTwips:    720,
	}
}

// AddParagraph appends a paragraph.
func (d *Document) AddParagraph(p Paragraph) {
	d.paras = append(d.paras, p)
}

// AddBlank appends an empty paragraph with the given after-spacing,
// used as a vertical gap between blocks.
func (d *Document) AddBlank(spacingAfter int) {
	d.paras = append(d.paras, Paragraph{Spacing: Spacing{After: spacingAfter}})
}

// Paragraphs returns the accumulated paragraphs in order.
func (d *Document) Paragraphs() []Paragraph {
	return d.paras
}

// MaxTabPos is the right tab stop position: the page's maximum writable
// width between the margins.
func (d *Document) MaxTabPos() int {
	return pageWidthTwips - 2*d.MarginTwips
}

// WriteTo serializes the document as a .docx (OPC zip) package.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := writePackage(cw, d)
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
