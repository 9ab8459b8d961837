package parser

import (
	"fmt"
	"testing"
)

func TestForFile(t *testing.T) {
	cases := []struct {
		filename string
		want     string
	}{
		{"paper.txt", "*parser.TextParser"},
		{"paper.md", "*parser.MarkdownParser"},
		{"paper.markdown", "*parser.MarkdownParser"},
		{"paper.html", "*parser.HTMLParser"},
		{"paper.htm", "*parser.HTMLParser"},
		{"Paper.PDF", "*parser.PDFParser"},
		{"paper.docx", "*parser.DOCXParser"},
	}
	for _, tc := range cases {
		p, err := ForFile(tc.filename)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.filename, err)
			continue
		}
		if got := fmt.Sprintf("%T", p); got != tc.want {
			t.Errorf("%s: got %s, want %s", tc.filename, got, tc.want)
		}
	}

	if _, err := ForFile("paper.xlsx"); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestIsSupportedExtension(t *testing.T) {
	if !IsSupportedExtension("exam.pdf") {
		t.Error("pdf should be supported")
	}
	if IsSupportedExtension("exam.exe") {
		t.Error("exe should not be supported")
	}
}
