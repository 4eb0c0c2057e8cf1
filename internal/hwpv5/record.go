package hwpv5

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Tag ids relevant to section assembly, per spec.md §4.4.1. Every other id
// decodes to RecUnknown and is skipped without inspection.
const (
	tagParaHeader    = 66
	tagParaText      = 67
	tagParaCharShape = 68
	tagParaLineSeg   = 69
	tagCtrlHeader    = 71
	tagTable         = 72
	tagListHeader    = 73
)

// ctrlIDTable is the FourCC stored little-endian at the start of a
// CTRL_HEADER payload that introduces a table. Per spec.md §4.4.2 T3, the
// literal "tbl " is compared as the reversed byte sequence (payload bytes
// ' ','l','b','t').
const ctrlIDTable = 0x74626c20

// recHeader holds the common metadata shared by all concrete record nodes.
type recHeader struct {
	TagID uint16
	Level uint16
	Size  uint32
}

// Rec is a typed, decoded record. Unknown tag ids decode to RecUnknown,
// carrying their raw payload so the assembler can still advance past them.
type Rec interface {
	Tag() uint16
	Lvl() uint16
	Len() uint32
}

func (b recHeader) Tag() uint16 { return b.TagID }
func (b recHeader) Lvl() uint16 { return b.Level }
func (b recHeader) Len() uint32 { return b.Size }

type (
	// RecParaHeader starts a new paragraph.
	RecParaHeader struct{ recHeader }

	// RecParaText carries one paragraph-text record's raw UTF-16 units,
	// undecoded: a paragraph's text can span several PARA_TEXT records, and
	// decoding (control-code expansion, trailing-padding trim) only happens
	// once the whole paragraph's units are concatenated (section.go).
	RecParaText struct {
		recHeader
		Units []uint16
	}

	// RecCtrlHeader introduces an inline control; CtrlID is its FourCC.
	RecCtrlHeader struct {
		recHeader
		CtrlID uint32
	}

	// RecTable carries a table's declared geometry.
	RecTable struct {
		recHeader
		Rows int
		Cols int
	}

	// RecListHeader begins a list container (a table cell, when inside a
	// table; a body scope otherwise — the assembler only cares about the
	// table-cell case).
	RecListHeader struct{ recHeader }

	// RecUnknown is any record the assembler treats as opaque: char-shape,
	// line-seg records, and every tag id spec.md §4.4.1 doesn't name.
	RecUnknown struct {
		recHeader
		Data []byte
	}
)

// RecScanner is a lazy, single-pass iterator over a decompressed section
// stream's records. Payload slices are views into freshly allocated
// per-record buffers, not the whole stream, keeping peak memory at
// O(one record) rather than O(one section).
type RecScanner struct {
	r io.Reader
}

func NewRecScanner(r io.Reader) *RecScanner {
	return &RecScanner{r: r}
}

// ScanNext returns the next record. It returns io.EOF both when the stream
// is cleanly exhausted and when fewer than 4 bytes remain for a header
// (spec.md §4.3: a partial trailing header is benign, not an error).
func (s *RecScanner) ScanNext() (Rec, error) {
	var hdrBuf [4]byte
	n, err := io.ReadFull(s.r, hdrBuf[:])
	if err != nil {
		if errors.Is(err, ErrDecodeLimit) {
			return nil, err
		}
		if n == 0 || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("hwpv5: read record header: %w", ErrIO)
	}

	headerRaw := binary.LittleEndian.Uint32(hdrBuf[:])
	base := recHeader{
		TagID: uint16(headerRaw & 0x3ff),
		Level: uint16((headerRaw >> 10) & 0x3ff),
		Size:  (headerRaw >> 20) & 0xfff,
	}

	extended := base.Size == 0xfff
	if extended {
		var extLen uint32
		if err := binary.Read(s.r, binary.LittleEndian, &extLen); err != nil {
			if errors.Is(err, ErrDecodeLimit) {
				return nil, err
			}
			return nil, fmt.Errorf("hwpv5: read extended record length: %w", ErrTruncated)
		}
		base.Size = extLen
	}

	data := make([]byte, base.Size)
	if _, err := io.ReadFull(s.r, data); err != nil {
		if errors.Is(err, ErrDecodeLimit) {
			return nil, err
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			if extended {
				return nil, fmt.Errorf("hwpv5: record tag %d declares %d bytes past end of stream: %w", base.TagID, base.Size, ErrMalformedRecord)
			}
			return nil, fmt.Errorf("hwpv5: record tag %d payload short: %w", base.TagID, ErrTruncated)
		}
		return nil, fmt.Errorf("hwpv5: read record payload: %w", ErrIO)
	}

	switch base.TagID {
	case tagParaHeader:
		return RecParaHeader{base}, nil
	case tagParaText:
		return RecParaText{recHeader: base, Units: bytesToUTF16LE(data)}, nil
	case tagCtrlHeader:
		rec := RecCtrlHeader{recHeader: base}
		if len(data) >= 4 {
			rec.CtrlID = binary.LittleEndian.Uint32(data[:4])
		}
		return rec, nil
	case tagTable:
		rec := RecTable{recHeader: base}
		if len(data) >= 12 {
			rec.Rows = int(binary.LittleEndian.Uint16(data[8:10]))
			rec.Cols = int(binary.LittleEndian.Uint16(data[10:12]))
		}
		return rec, nil
	case tagListHeader:
		return RecListHeader{base}, nil
	default:
		return RecUnknown{recHeader: base, Data: data}, nil
	}
}
