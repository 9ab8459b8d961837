package docwriter

import (
	"encoding/xml"
	"fmt"
	"strconv"
)

// WordprocessingML element structs. Field order matters: the OOXML schema
// fixes child order inside w:pPr (tabs, spacing, ind, jc) and w:rPr
// (rFonts, b, i, sz, szCs, u).

const nsMain = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

type xmlDocument struct {
	XMLName xml.Name `xml:"w:document"`
	NS      string   `xml:"xmlns:w,attr"`
	Body    xmlBody  `xml:"w:body"`
}

type xmlBody struct {
	Paragraphs []xmlParagraph
	SectPr     xmlSectPr `xml:"w:sectPr"`
}

type xmlParagraph struct {
	XMLName xml.Name `xml:"w:p"`
	Props   *xmlPPr
	Runs    []xmlRun
}

type xmlPPr struct {
	XMLName xml.Name `xml:"w:pPr"`
	Tabs    *xmlTabs
	Spacing *xmlSpacing
	Ind     *xmlInd
	Jc      *xmlJc
}

type xmlTabs struct {
	XMLName xml.Name `xml:"w:tabs"`
	Tabs    []xmlTabStop
}

type xmlTabStop struct {
	XMLName xml.Name `xml:"w:tab"`
	Val     string   `xml:"w:val,attr"`
	Pos     int      `xml:"w:pos,attr"`
}

type xmlSpacing struct {
	XMLName xml.Name `xml:"w:spacing"`
	Before  string   `xml:"w:before,attr,omitempty"`
	After   string   `xml:"w:after,attr,omitempty"`
}

type xmlInd struct {
	XMLName xml.Name `xml:"w:ind"`
	Left    string   `xml:"w:left,attr,omitempty"`
	Hanging string   `xml:"w:hanging,attr,omitempty"`
}

type xmlJc struct {
	XMLName xml.Name `xml:"w:jc"`
	Val     string   `xml:"w:val,attr"`
}

type xmlRun struct {
	XMLName xml.Name `xml:"w:r"`
	Props   *xmlRPr
	Tab     *xmlTab
	Text    *xmlText
}

type xmlRPr struct {
	XMLName   xml.Name `xml:"w:rPr"`
	Fonts     *xmlFonts
	Bold      *xmlFlag `xml:"w:b,omitempty"`
	Italic    *xmlFlag `xml:"w:i,omitempty"`
	Size      *xmlSz
	SizeCs    *xmlSzCs
	Underline *xmlU
}

type xmlFonts struct {
	XMLName xml.Name `xml:"w:rFonts"`
	ASCII   string   `xml:"w:ascii,attr"`
	HAnsi   string   `xml:"w:hAnsi,attr"`
	CS      string   `xml:"w:cs,attr"`
}

type xmlFlag struct{}

type xmlSz struct {
	XMLName xml.Name `xml:"w:sz"`
	Val     string   `xml:"w:val,attr"`
}

type xmlSzCs struct {
	XMLName xml.Name `xml:"w:szCs"`
	Val     string   `xml:"w:val,attr"`
}

type xmlU struct {
	XMLName xml.Name `xml:"w:u"`
	Val     string   `xml:"w:val,attr"`
}

type xmlTab struct {
	XMLName xml.Name `xml:"w:tab"`
}

type xmlText struct {
	XMLName xml.Name `xml:"w:t"`
	Space   string   `xml:"xml:space,attr"`
	Text    string   `xml:",chardata"`
}

type xmlSectPr struct {
	XMLName xml.Name `xml:"w:sectPr"`
	PgSz    xmlPgSz
	PgMar   xmlPgMar
}

type xmlPgSz struct {
	XMLName xml.Name `xml:"w:pgSz"`
	W       int      `xml:"w:w,attr"`
	H       int      `xml:"w:h,attr"`
}

type xmlPgMar struct {
	XMLName xml.Name `xml:"w:pgMar"`
	Top     int      `xml:"w:top,attr"`
	Right   int      `xml:"w:right,attr"`
	Bottom  int      `xml:"w:bottom,attr"`
	Left    int      `xml:"w:left,attr"`
	Header  int      `xml:"w:header,attr"`
	Footer  int      `xml:"w:footer,attr"`
	Gutter  int      `xml:"w:gutter,attr"`
}

// documentXML renders word/document.xml for the accumulated paragraphs.
func documentXML(d *Document) ([]byte, error) {
	doc := xmlDocument{NS: nsMain}

	for _, p := range d.paras {
		doc.Body.Paragraphs = append(doc.Body.Paragraphs, paragraphXML(d, p))
	}

	doc.Body.SectPr = xmlSectPr{
		PgSz: xmlPgSz{W: pageWidthTwips, H: pageHeightTwips},
		PgMar: xmlPgMar{
			Top:    d.MarginTwips,
			Right:  d.MarginTwips,
			Bottom: d.MarginTwips,
			Left:   d.MarginTwips,
			Header: 708,
			Footer: 708,
		},
	}

	body, err := xml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}

func paragraphXML(d *Document, p Paragraph) xmlParagraph {
	out := xmlParagraph{}

	props := &xmlPPr{}
	hasProps := false
	if p.RightTab {
		props.Tabs = &xmlTabs{Tabs: []xmlTabStop{{Val: "right", Pos: d.MaxTabPos()}}}
		hasProps = true
	}
	if p.Spacing.Before != 0 || p.Spacing.After != 0 {
		props.Spacing = &xmlSpacing{
			Before: nonZero(p.Spacing.Before),
			After:  nonZero(p.Spacing.After),
		}
		hasProps = true
	}
	if p.Indent.Left != 0 || p.Indent.Hanging != 0 {
		props.Ind = &xmlInd{
			Left:    nonZero(p.Indent.Left),
			Hanging: nonZero(p.Indent.Hanging),
		}
		hasProps = true
	}
	if p.Align != AlignLeft {
		props.Jc = &xmlJc{Val: string(p.Align)}
		hasProps = true
	}
	if hasProps {
		out.Props = props
	}

	for _, r := range p.Runs {
		out.Runs = append(out.Runs, runXML(d, r))
	}
	return out
}

func runXML(d *Document, r Run) xmlRun {
	props := &xmlRPr{
		Fonts:  &xmlFonts{ASCII: d.Font, HAnsi: d.Font, CS: d.Font},
		Size:   &xmlSz{Val: strconv.Itoa(d.SizeHalfPoints)},
		SizeCs: &xmlSzCs{Val: strconv.Itoa(d.SizeHalfPoints)},
	}
	if r.Bold {
		props.Bold = &xmlFlag{}
	}
	if r.Italic {
		props.Italic = &xmlFlag{}
	}
	if r.Underline {
		props.Underline = &xmlU{Val: "single"}
	}

	out := xmlRun{Props: props}
	if r.TabBefore {
		out.Tab = &xmlTab{}
	}
	if r.Text != "" {
		out.Text = &xmlText{Space: "preserve", Text: r.Text}
	}
	return out
}

func nonZero(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}
