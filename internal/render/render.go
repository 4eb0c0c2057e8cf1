// Package render turns a *document.Document into human-readable output:
// plain text with ASCII-bordered tables by default, or an alternate
// tablewriter-backed style selectable by the caller.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/injoon-kim/hwpdoc/internal/document"
)

// RenderText writes doc as plain text: each section's paragraphs and
// tables in original document order, tables rendered with ASCII borders
// and followed by a blank line.
func RenderText(doc *document.Document, w io.Writer) error {
	for _, sec := range doc.Sections {
		var walkErr error
		sec.Walk(
			func(p document.Paragraph) {
				if walkErr != nil {
					return
				}
				walkErr = renderParagraph(p, w)
			},
			func(t *document.Table) {
				if walkErr != nil || t.Rows == 0 || t.Cols == 0 {
					return
				}
				if err := renderTable(t, w); err != nil {
					walkErr = err
					return
				}
				_, walkErr = fmt.Fprintln(w)
			},
		)
		if walkErr != nil {
			return walkErr
		}
	}
	return nil
}

func renderParagraph(p document.Paragraph, w io.Writer) error {
	text := strings.TrimRight(p.Text, "\n")
	if text == "" {
		_, err := fmt.Fprintln(w)
		return err
	}
	_, err := fmt.Fprintln(w, text)
	return err
}

func renderTable(docTable *document.Table, w io.Writer) error {
	if docTable.Rows == 0 || docTable.Cols == 0 {
		return nil
	}

	t := &Table{Rows: docTable.Rows, Cols: docTable.Cols}
	for r := 0; r < docTable.Rows; r++ {
		for c := 0; c < docTable.Cols; c++ {
			t.Cells = append(t.Cells, &Cell{
				Row:     r,
				Col:     c,
				Text:    strings.TrimSpace(docTable.Data[r][c]),
				RowSpan: 1,
				ColSpan: 1,
			})
		}
	}

	_, err := fmt.Fprint(w, t.Render())
	return err
}
