package hwpx

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/injoon-kim/hwpdoc/internal/document"
)

// parseSection walks one section XML file's top-level <p> and <tbl>
// elements in document order, building a *document.Section. Element
// lookups use the local name only (namespace-tolerant per spec.md §6):
// OWPML producers vary their namespace prefix (hp:, ha:, ...) across HWPX
// versions, but the local element names are stable.
func parseSection(index int, r io.Reader) (*document.Section, error) {
	sec := &document.Section{Index: index}
	dec := xml.NewDecoder(r)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "p":
			if err := decodeParagraphOrTable(dec, start, sec); err != nil {
				return nil, err
			}
		case "tbl":
			tbl, err := decodeTableElement(dec, start)
			if err != nil {
				return nil, err
			}
			if tbl != nil {
				sec.AppendTable(tbl)
			}
		}
	}
	return sec, nil
}

type paragraphElement struct {
	Runs []runElement `xml:"run"`
}

type runElement struct {
	TextNodes []string      `xml:"t"`
	LineBreak *struct{}     `xml:"lineBreak"`
	Table     *tableElement `xml:"tbl"`
}

func (r runElement) text() string {
	var b strings.Builder
	for _, t := range r.TextNodes {
		b.WriteString(t)
	}
	if r.LineBreak != nil {
		b.WriteByte('\n')
	}
	return b.String()
}

func (p paragraphElement) text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.text())
	}
	return b.String()
}

func (p paragraphElement) embeddedTable() *tableElement {
	for _, r := range p.Runs {
		if r.Table != nil {
			return r.Table
		}
	}
	return nil
}

type tableElement struct {
	RowCnt int               `xml:"rowCnt,attr"`
	ColCnt int               `xml:"colCnt,attr"`
	Rows   []tableRowElement `xml:"tr"`
}

type tableRowElement struct {
	Cells []tableCellElement `xml:"tc"`
}

type tableCellElement struct {
	SubList  subListElement  `xml:"subList"`
	CellAddr cellAddrElement `xml:"cellAddr"`
}

type subListElement struct {
	Paragraphs []paragraphElement `xml:"p"`
}

type cellAddrElement struct {
	RowAddr int `xml:"rowAddr,attr"`
	ColAddr int `xml:"colAddr,attr"`
}

// decodeParagraphOrTable decodes one top-level <p> element. Per the
// teacher's own model, a paragraph whose run embeds a <tbl> contributes
// that table (hoisted to section scope, per DESIGN.md) rather than its own
// paragraph text — HWPX never mixes meaningful prose with an embedded
// table in the same run.
func decodeParagraphOrTable(dec *xml.Decoder, start xml.StartElement, sec *document.Section) error {
	var para paragraphElement
	if err := dec.DecodeElement(&para, &start); err != nil {
		return err
	}
	if tbl := para.embeddedTable(); tbl != nil {
		sec.AppendTable(buildTable(tbl))
		return nil
	}
	if text := para.text(); text != "" {
		sec.AppendParagraph(document.Paragraph{Text: text})
	}
	return nil
}

func decodeTableElement(dec *xml.Decoder, start xml.StartElement) (*document.Table, error) {
	var tbl tableElement
	if err := dec.DecodeElement(&tbl, &start); err != nil {
		return nil, err
	}
	return buildTable(&tbl), nil
}

// buildTable flattens OWPML's row/cell structure into the plain rows x
// cols grid spec.md's data model expects, placing each cell's joined
// paragraph text at its declared (rowAddr, colAddr); spans are not
// represented (spec.md's Table carries no span info) so a merged cell's
// text appears only once, at its anchor address.
func buildTable(tbl *tableElement) *document.Table {
	if tbl.RowCnt <= 0 || tbl.ColCnt <= 0 {
		return &document.Table{}
	}
	data := make([][]string, tbl.RowCnt)
	for i := range data {
		data[i] = make([]string, tbl.ColCnt)
	}
	for _, row := range tbl.Rows {
		for _, cell := range row.Cells {
			r, c := cell.CellAddr.RowAddr, cell.CellAddr.ColAddr
			if r < 0 || r >= tbl.RowCnt || c < 0 || c >= tbl.ColCnt {
				continue
			}
			var parts []string
			for _, p := range cell.SubList.Paragraphs {
				if t := p.text(); t != "" {
					parts = append(parts, t)
				}
			}
			data[r][c] = strings.Join(parts, "\n")
		}
	}
	return &document.Table{Rows: tbl.RowCnt, Cols: tbl.ColCnt, Data: data}
}
