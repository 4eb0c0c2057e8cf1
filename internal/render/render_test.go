package render

import (
	"strings"
	"testing"

	"github.com/injoon-kim/hwpdoc/internal/document"
)

func buildSampleSection() *document.Section {
	sec := &document.Section{Index: 0}
	sec.AppendParagraph(document.Paragraph{Text: "Intro"})
	sec.AppendTable(&document.Table{
		Rows: 2, Cols: 2,
		Data: [][]string{{"a", "b"}, {"c", "d"}},
	})
	sec.AppendParagraph(document.Paragraph{Text: "Outro"})
	return sec
}

func TestRenderText_OrdersParagraphsAndTables(t *testing.T) {
	doc := &document.Document{Sections: []*document.Section{buildSampleSection()}}

	var b strings.Builder
	if err := RenderText(doc, &b); err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	out := b.String()

	introIdx := strings.Index(out, "Intro")
	tableIdx := strings.Index(out, "a")
	outroIdx := strings.Index(out, "Outro")
	if introIdx < 0 || tableIdx < 0 || outroIdx < 0 {
		t.Fatalf("expected Intro, table cell, and Outro all present, got:\n%s", out)
	}
	if !(introIdx < tableIdx && tableIdx < outroIdx) {
		t.Errorf("expected original document order Intro < table < Outro, got:\n%s", out)
	}
}

func TestRenderText_EmptyTableSkipped(t *testing.T) {
	sec := &document.Section{Index: 0}
	sec.AppendTable(&document.Table{Rows: 0, Cols: 0})
	doc := &document.Document{Sections: []*document.Section{sec}}

	var b strings.Builder
	if err := RenderText(doc, &b); err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	if b.String() != "" {
		t.Errorf("expected no output for an empty table, got %q", b.String())
	}
}
