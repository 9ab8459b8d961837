package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_FlattensHeadingsAndBody(t *testing.T) {
	input := "# Question 1\n\nWrite a composition on one of the following.\n\n## Question 2\n\nWrite a letter."
	p := &MarkdownParser{}
	text, err := p.Parse(strings.NewReader(input), "paper.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"Question 1", "Write a composition", "Question 2", "Write a letter."} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q: %q", want, text)
		}
	}
	if strings.Contains(text, "#") {
		t.Errorf("heading markers should not survive: %q", text)
	}
}

func TestMarkdownParser_NoHeadings(t *testing.T) {
	p := &MarkdownParser{}
	text, err := p.Parse(strings.NewReader("Just a paragraph."), "plain.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "Just a paragraph.") {
		t.Errorf("got %q", text)
	}
}
