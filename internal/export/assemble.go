package export

import (
	"fmt"
	"strings"

	"github.com/nkapre/paperforge/internal/docwriter"
	"github.com/nkapre/paperforge/internal/schema"
	"github.com/nkapre/paperforge/internal/session"
)

// Metadata is the user-entered header information. Missing values render
// as empty strings, never placeholders.
type Metadata struct {
	ExamName  string `json:"exam_name"`
	ClassName string `json:"class_name"`
	Time      string `json:"time"`
	MaxMarks  string `json:"max_marks"`
}

// Assemble builds the exam paper from the schema, the assigned blocks
// and the header metadata. Output is deterministic: same inputs, same
// paragraph sequence.
func Assemble(sch *schema.TemplateSchema, blocks []session.Block, meta Metadata) *docwriter.Document {
	d := docwriter.New()

	bySection := make(map[string][]session.Block)
	for _, b := range blocks {
		bySection[b.SectionID] = append(bySection[b.SectionID], b)
	}

	writeHeader(d, sch, bySection, meta)
	writeInstructions(d, sch, bySection)

	for _, sec := range sch.Sections {
		if schema.IsReserved(sec.ID) {
			continue
		}
		writeSection(d, sec, bySection[sec.ID])
	}

	return d
}

// writeHeader emits the centered title lines. A block assigned to the
// HEADER section overrides the metadata-built header entirely.
func writeHeader(d *docwriter.Document, sch *schema.TemplateSchema, bySection map[string][]session.Block, meta Metadata) {
	if custom, ok := bySection[schema.SectionHeader]; ok {
		for _, line := range strings.Split(custom[0].Text, "\n") {
			d.AddParagraph(docwriter.Paragraph{
				Align: docwriter.AlignCenter,
				Runs:  []docwriter.Run{{Text: line, Bold: true}},
			})
		}
		d.AddBlank(240)
		return
	}

	for _, line := range []string{meta.ExamName, meta.ClassName} {
		d.AddParagraph(docwriter.Paragraph{
			Align: docwriter.AlignCenter,
			Runs:  []docwriter.Run{{Text: line, Bold: true}},
		})
	}
	d.AddParagraph(docwriter.Paragraph{
		Align:   docwriter.AlignCenter,
		Spacing: docwriter.Spacing{After: 240},
		Runs:    []docwriter.Run{{Text: sch.DefaultSubjectTitle, Bold: true}},
	})
	d.AddParagraph(docwriter.Paragraph{
		RightTab: true,
		Spacing:  docwriter.Spacing{After: 240},
		Runs: []docwriter.Run{
			{Text: "Time: " + meta.Time, Bold: true},
			{Text: "M.M: " + meta.MaxMarks, Bold: true, TabBefore: true},
		},
	})
}

// writeInstructions emits the "General Instructions:" label followed by
// either the GEN_INST block's lines or the schema's standard set.
func writeInstructions(d *docwriter.Document, sch *schema.TemplateSchema, bySection map[string][]session.Block) {
	d.AddParagraph(docwriter.Paragraph{
		Runs: []docwriter.Run{{Text: "General Instructions:", Bold: true, Underline: true}},
	})

	lines := sch.StandardInstructions
	if custom, ok := bySection[schema.SectionGeneralInstructions]; ok {
		lines = strings.Split(custom[0].Text, "\n")
	}
	for _, line := range lines {
		d.AddParagraph(docwriter.Paragraph{
			Runs: []docwriter.Run{{Text: line}},
		})
	}
	d.AddBlank(240)
}

// writeSection emits one scored section: title with right-tabbed marks,
// italic per-section instructions, then the question body line by line.
// Sections with no assigned blocks are omitted entirely.
func writeSection(d *docwriter.Document, sec schema.SectionDef, blocks []session.Block) {
	if len(blocks) == 0 {
		return
	}

	d.AddParagraph(docwriter.Paragraph{
		RightTab: true,
		Spacing:  docwriter.Spacing{Before: 300, After: 120},
		Runs: []docwriter.Run{
			{Text: sec.Title, Bold: true},
			{Text: fmt.Sprintf("[%d]", sec.Marks), Bold: true, TabBefore: true},
		},
	})

	for _, inst := range sec.Instructions {
		d.AddParagraph(docwriter.Paragraph{
			Spacing: docwriter.Spacing{After: 120},
			Runs:    []docwriter.Run{{Text: inst, Italic: true}},
		})
	}

	for _, b := range blocks {
		for _, line := range strings.Split(StripLeadQuestion(b.Text), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			writeBodyLine(d, line)
		}
	}
}

func writeBodyLine(d *docwriter.Document, line string) {
	text, marks := SplitMarks(line)

	p := docwriter.Paragraph{
		Spacing: docwriter.Spacing{After: 120},
		Runs:    []docwriter.Run{{Text: text}},
	}
	if IsSubPart(text) {
		p.Indent = docwriter.Indent{Left: 720, Hanging: 360}
	}
	if marks != "" {
		p.RightTab = true
		p.Runs = append(p.Runs, docwriter.Run{Text: marks, Bold: true, TabBefore: true})
	}
	d.AddParagraph(p)
}
