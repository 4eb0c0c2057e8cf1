// Package serialize renders a *document.Document to the tree-format (YAML)
// output schema: a metadata block plus structure, a flattened table list,
// and a raw_text view built from each section's original top-level
// paragraph/table interleaving.
package serialize

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/injoon-kim/hwpdoc/internal/document"
)

// Metadata describes provenance of the serialized document.
type Metadata struct {
	Source      string `yaml:"source"`
	Method      string `yaml:"method"`
	GeneratedAt string `yaml:"generated_at"`
}

type paragraphOut struct {
	Text  string `yaml:"text"`
	Level uint16 `yaml:"level"`
}

type tableOut struct {
	Rows int        `yaml:"rows"`
	Cols int        `yaml:"cols"`
	Data [][]string `yaml:"data"`
}

type taggedTableOut struct {
	Section int        `yaml:"section"`
	Rows    int        `yaml:"rows"`
	Cols    int        `yaml:"cols"`
	Data    [][]string `yaml:"data"`
}

type sectionOut struct {
	Index      int            `yaml:"index"`
	Paragraphs []paragraphOut `yaml:"paragraphs"`
	Tables     []tableOut     `yaml:"tables"`
}

type structureOut struct {
	Version    string       `yaml:"version"`
	Compressed bool         `yaml:"compressed"`
	Sections   []sectionOut `yaml:"sections"`
}

type documentOut struct {
	Metadata  Metadata         `yaml:"metadata"`
	Structure structureOut     `yaml:"structure"`
	Tables    []taggedTableOut `yaml:"tables"`
	RawText   string           `yaml:"raw_text"`
}

// WriteYAML renders doc as the tree-format YAML document described in
// spec.md §6, tagging provenance with meta.
func WriteYAML(w io.Writer, doc *document.Document, meta Metadata) error {
	out := documentOut{
		Metadata: meta,
		Structure: structureOut{
			Version:    doc.Version.String(),
			Compressed: doc.Compressed,
		},
		RawText: RawText(doc),
	}

	for _, sec := range doc.Sections {
		so := sectionOut{Index: sec.Index}
		for _, p := range sec.Paragraphs {
			so.Paragraphs = append(so.Paragraphs, paragraphOut{Text: p.Text, Level: p.Level})
		}
		for _, t := range sec.Tables {
			so.Tables = append(so.Tables, tableOut{Rows: t.Rows, Cols: t.Cols, Data: t.Data})
			out.Tables = append(out.Tables, taggedTableOut{Section: sec.Index, Rows: t.Rows, Cols: t.Cols, Data: t.Data})
		}
		out.Structure.Sections = append(out.Structure.Sections, so)
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("serialize: encode yaml: %w", err)
	}
	return nil
}

// RawText flattens doc into the §6 post-order view: per section, each
// top-level paragraph's text joined by newline, with each table
// interleaved at its point of occurrence as a tab-delimited dump.
func RawText(doc *document.Document) string {
	var b strings.Builder
	for i, sec := range doc.Sections {
		if i > 0 {
			b.WriteByte('\n')
		}
		sec.Walk(
			func(p document.Paragraph) {
				b.WriteString(p.Text)
				b.WriteByte('\n')
			},
			func(t *document.Table) {
				for _, row := range t.Data {
					b.WriteString(strings.Join(row, "\t"))
					b.WriteByte('\n')
				}
			},
		)
	}
	return b.String()
}
