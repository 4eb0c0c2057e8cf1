package hwpv5

import (
	"errors"
	"io"
	"strings"

	"github.com/injoon-kim/hwpdoc/internal/document"
)

type scopeKind int

const (
	scopeTable scopeKind = iota
	scopeCell
)

// assemblyScope is one open TABLE_SCOPE or CELL_SCOPE frame. SECTION_SCOPE
// is never materialised as a frame; it is whatever is true when the stack
// is empty.
type assemblyScope struct {
	kind  scopeKind
	level uint16

	// table fields
	table     *document.Table
	cellIndex int

	// cell fields
	row, col  int
	cellParas []string
}

// sectionAssembler implements the scope-stack state machine of spec.md
// §4.4.2: it consumes records in stream order and produces a *document.
// Section. One assembler is used per section stream; it is not reusable.
type sectionAssembler struct {
	sec   *document.Section
	stack []*assemblyScope

	paraOpen  bool
	paraLevel uint16
	paraUnits []uint16
	paraOwner *assemblyScope // nil means the paragraph belongs to the section

	awaitTable bool
}

func newSectionAssembler(index int) *sectionAssembler {
	return &sectionAssembler{sec: &document.Section{Index: index}}
}

func (a *sectionAssembler) top() *assemblyScope {
	if len(a.stack) == 0 {
		return nil
	}
	return a.stack[len(a.stack)-1]
}

func (a *sectionAssembler) openParagraph(level uint16) {
	a.paraOpen = true
	a.paraLevel = level
	a.paraUnits = nil
	if top := a.top(); top != nil && top.kind == scopeCell {
		a.paraOwner = top
	} else {
		a.paraOwner = nil
	}
}

// appendText accumulates one PARA_TEXT record's raw units into the
// currently-open paragraph. Decoding — control-code expansion and the
// trailing-padding trim — happens once, in finalizeParagraph, over every
// record's units concatenated together (§4.5).
func (a *sectionAssembler) appendText(units []uint16) {
	if !a.paraOpen {
		// A stray PARA_TEXT without a preceding PARA_HEADER: per §4.4.5 a
		// paragraph always begins at PARA_HEADER, so this can only arise
		// from a malformed stream. Open an anonymous paragraph rather than
		// drop the text.
		a.openParagraph(0)
	}
	a.paraUnits = append(a.paraUnits, units...)
}

// finalizeParagraph closes the currently-open paragraph (if any), decoding
// its concatenated raw units and appending the result to whichever scope
// it was opened under — T1/T2.
func (a *sectionAssembler) finalizeParagraph() {
	if !a.paraOpen {
		return
	}
	text := decodeUnits(trimTrailingNulUnits(a.paraUnits))
	a.paraOpen = false
	a.paraUnits = nil
	owner := a.paraOwner
	a.paraOwner = nil
	if owner != nil {
		owner.cellParas = append(owner.cellParas, text)
		return
	}
	a.sec.AppendParagraph(document.Paragraph{Text: text, Level: a.paraLevel})
}

// closeCell flushes any paragraph it owns into its (r,c) slot, pops it, and
// writes the joined cell text into the parent table's data grid — T7.
func (a *sectionAssembler) closeCell(cell *assemblyScope) {
	if a.paraOpen && a.paraOwner == cell {
		a.finalizeParagraph()
	}
	a.stack = a.stack[:len(a.stack)-1]
	text := strings.Join(cell.cellParas, "\n")
	if parent := a.top(); parent != nil && parent.kind == scopeTable {
		if cell.row < parent.table.Rows && cell.col < parent.table.Cols {
			parent.table.Data[cell.row][cell.col] = text
		}
	}
}

// closeTable pops the table scope and appends its completed Table to the
// section — T8. A TABLE_SCOPE never owns a paragraph directly (§4.4.4), so
// there is nothing to flush here.
func (a *sectionAssembler) closeTable(tbl *assemblyScope) {
	a.stack = a.stack[:len(a.stack)-1]
	a.sec.AppendTable(tbl.table)
}

// closeScopesForLevel pops scopes made stale by a record arriving at level,
// applying T7 and T8 in stack order. isListHeader distinguishes the sibling-
// cell-start case (T7b/T5): a LIST_HEADER at the cell's own level ends it,
// while a PARA_HEADER/PARA_TEXT at that same level is the cell's own
// content and must not close it.
func (a *sectionAssembler) closeScopesForLevel(level uint16, isListHeader bool) {
	for {
		top := a.top()
		if top == nil {
			return
		}
		switch top.kind {
		case scopeCell:
			if level < top.level || (level == top.level && isListHeader) {
				a.closeCell(top)
				continue
			}
			return
		case scopeTable:
			if level <= top.level {
				a.closeTable(top)
				continue
			}
			return
		}
	}
}

// closeAll force-closes every open scope and the open paragraph, in stack
// order, regardless of level — T9 (EOF).
func (a *sectionAssembler) closeAll() {
	a.finalizeParagraph()
	for {
		top := a.top()
		if top == nil {
			return
		}
		switch top.kind {
		case scopeCell:
			a.closeCell(top)
		case scopeTable:
			a.closeTable(top)
		}
	}
}

// feed processes one decoded record.
func (a *sectionAssembler) feed(rec Rec) {
	level := rec.Lvl()
	_, isListHeader := rec.(RecListHeader)
	a.closeScopesForLevel(level, isListHeader)

	switch r := rec.(type) {
	case RecParaHeader:
		a.finalizeParagraph()
		a.openParagraph(level)
	case RecParaText:
		a.appendText(r.Units)
	case RecCtrlHeader:
		if r.CtrlID == ctrlIDTable {
			a.awaitTable = true
		}
	case RecTable:
		if !a.awaitTable {
			return // defensive: TABLE without a preceding "tbl " CTRL_HEADER
		}
		a.awaitTable = false
		data := make([][]string, r.Rows)
		for i := range data {
			data[i] = make([]string, r.Cols)
		}
		a.stack = append(a.stack, &assemblyScope{
			kind:  scopeTable,
			level: level,
			table: &document.Table{Rows: r.Rows, Cols: r.Cols, Data: data},
		})
	case RecListHeader:
		top := a.top()
		if top == nil || top.kind != scopeTable {
			return // T6: stray LIST_HEADER outside a table is a no-op
		}
		if top.cellIndex >= top.table.Rows*top.table.Cols {
			return // defensive: overflow cell, silently dropped per §9
		}
		row := top.cellIndex / top.table.Cols
		col := top.cellIndex % top.table.Cols
		top.cellIndex++
		a.stack = append(a.stack, &assemblyScope{kind: scopeCell, level: level, row: row, col: col})
	}
}

// assembleSection drains scanner to completion, returning a Section built
// by the scope-stack state machine. Per §7's policy, a clean io.EOF and a
// mid-payload ErrTruncated are both treated as graceful end-of-stream (the
// section is finalized with whatever it has so far); ErrMalformedRecord and
// any other error propagate to the caller, which applies document-level
// scoping (§7: malformed record drops only this section; decode-limit/IO
// errors abort the whole document).
func assembleSection(index int, scanner *RecScanner) (*document.Section, error) {
	a := newSectionAssembler(index)
	for {
		rec, err := scanner.ScanNext()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, ErrTruncated) {
				a.closeAll()
				return a.sec, nil
			}
			return nil, err
		}
		a.feed(rec)
	}
}
