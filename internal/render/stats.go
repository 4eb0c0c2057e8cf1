package render

import (
	"fmt"
	"io"
	"unicode"

	"github.com/alexeyco/simpletable"
	"github.com/clipperhouse/uax29/v2/words"

	"github.com/injoon-kim/hwpdoc/internal/document"
)

// RenderStats writes a per-section summary table (paragraph count, table
// count, word count) to w, followed by a totals row.
func RenderStats(doc *document.Document, w io.Writer) error {
	table := simpletable.New()
	table.Header = &simpletable.Header{
		Cells: []*simpletable.Cell{
			{Align: simpletable.AlignCenter, Text: "Section"},
			{Align: simpletable.AlignCenter, Text: "Paragraphs"},
			{Align: simpletable.AlignCenter, Text: "Tables"},
			{Align: simpletable.AlignCenter, Text: "Words"},
		},
	}

	var totalParas, totalTables, totalWords int
	for _, sec := range doc.Sections {
		wc := wordCount(sec)
		totalParas += len(sec.Paragraphs)
		totalTables += len(sec.Tables)
		totalWords += wc

		table.Body.Cells = append(table.Body.Cells, []*simpletable.Cell{
			{Text: fmt.Sprintf("%d", sec.Index)},
			{Align: simpletable.AlignRight, Text: fmt.Sprintf("%d", len(sec.Paragraphs))},
			{Align: simpletable.AlignRight, Text: fmt.Sprintf("%d", len(sec.Tables))},
			{Align: simpletable.AlignRight, Text: fmt.Sprintf("%d", wc)},
		})
	}

	table.Footer = &simpletable.Footer{
		Cells: []*simpletable.Cell{
			{Text: "Total"},
			{Align: simpletable.AlignRight, Text: fmt.Sprintf("%d", totalParas)},
			{Align: simpletable.AlignRight, Text: fmt.Sprintf("%d", totalTables)},
			{Align: simpletable.AlignRight, Text: fmt.Sprintf("%d", totalWords)},
		},
	}

	table.SetStyle(simpletable.StyleDefault)
	_, err := fmt.Fprintln(w, table.String())
	return err
}

// wordCount counts words across a section's paragraphs and table cells
// using a Unicode word-boundary segmenter (UAX #29), which handles Korean
// text correctly where a naive whitespace split would not.
func wordCount(sec *document.Section) int {
	n := 0
	count := func(text string) {
		seg := words.FromString(text)
		for seg.Next() {
			if isWordlike(seg.Value()) {
				n++
			}
		}
	}
	for _, p := range sec.Paragraphs {
		count(p.Text)
	}
	for _, t := range sec.Tables {
		for _, row := range t.Data {
			for _, cell := range row {
				count(cell)
			}
		}
	}
	return n
}

// isWordlike reports whether a UAX #29 word segment contains at least one
// letter or digit, filtering out pure-whitespace and punctuation segments.
func isWordlike(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
