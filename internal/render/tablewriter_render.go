package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/injoon-kim/hwpdoc/internal/document"
)

// RenderTextTablewriter is an alternate rendering of doc that delegates
// table drawing to tablewriter instead of the hand-rolled ASCII layout in
// table.go — selectable via the CLI's -format=tablewriter flag for users
// who prefer tablewriter's box-drawing borders.
func RenderTextTablewriter(doc *document.Document, w io.Writer) error {
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
				if walkErr != nil {
					return
				}
				walkErr = renderTableWithTablewriter(t, w)
			},
		)
		if walkErr != nil {
			return walkErr
		}
	}
	return nil
}

func renderTableWithTablewriter(t *document.Table, w io.Writer) error {
	if t.Rows == 0 || t.Cols == 0 {
		return nil
	}
	tw := tablewriter.NewWriter(w)
	for _, row := range t.Data {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = strings.TrimSpace(cell)
		}
		tw.Append(cells)
	}
	tw.Render()
	_, err := fmt.Fprintln(w)
	return err
}
