package hwpv5

import "testing"

// decode is a test helper composing the same pipeline section.go's
// finalizeParagraph runs over a paragraph's accumulated raw units.
func decode(units ...uint16) string {
	return decodeUnits(trimTrailingNulUnits(units))
}

func TestDecodeUnits_Literal(t *testing.T) {
	got := decode('H', 'i', '!')
	if got != "Hi!" {
		t.Errorf("got %q, want %q", got, "Hi!")
	}
}

func TestDecodeUnits_InlineLineBreakSurvives(t *testing.T) {
	// S3: units ['P', 0x000A] decode to "P\n", and the trailing '\n' it
	// produces is content, not padding — it must not be trimmed away.
	got := decode('P', 10)
	if got != "P\n" {
		t.Errorf("got %q, want %q", got, "P\n")
	}
}

func TestDecodeUnits_TrailingNulPaddingTrimmed(t *testing.T) {
	// Trailing raw zero units are fixed-width record slack and are
	// stripped before classification, so they never surface as trailing
	// '\n's in the decoded text.
	got := decode('A', 'B', 0, 0, 0)
	if got != "AB" {
		t.Errorf("got %q, want %q", got, "AB")
	}
}

func TestDecodeUnits_TrailingNulAcrossRecordBoundary(t *testing.T) {
	// A 0x0000 unit at the end of one PARA_TEXT record is interior, not
	// trailing, once the next record's units are concatenated onto it —
	// the trim must run on the whole paragraph, not per record.
	recordA := []uint16{'A', 0}
	recordB := []uint16{'B'}
	var whole []uint16
	whole = append(whole, recordA...)
	whole = append(whole, recordB...)

	got := decode(whole...)
	if got != "A\nB" {
		t.Errorf("got %q, want %q", got, "A\nB")
	}
}

func TestDecodeUnits_InteriorNulStillEmitsLineBreak(t *testing.T) {
	// Only *trailing* zero units are slack; an interior 0x0000 unit is
	// still an inline line break per §4.5.
	got := decode('A', 0, 'B')
	if got != "A\nB" {
		t.Errorf("got %q, want %q", got, "A\nB")
	}
}

func TestDecodeUnits_ControlCodeSkipsSevenUnits(t *testing.T) {
	units := []uint16{'X'}
	units = append(units, 1, 0, 0, 0, 0, 0, 0, 0) // control code 1 + 7 params
	units = append(units, 'Y')
	got := decode(units...)
	if got != "XY" {
		t.Errorf("got %q, want %q", got, "XY")
	}
}

func TestDecodeUnits_OtherLowValueDiscardedAlone(t *testing.T) {
	// 22 and 25 are <32 but not in the {0,10,13} or the 7-unit control set.
	got := decode('X', 22, 'Y')
	if got != "XY" {
		t.Errorf("got %q, want %q", got, "XY")
	}
}

func TestDecodeUnits_CarriageReturnEmitsLineBreak(t *testing.T) {
	got := decode('A', 13, 'B')
	if got != "A\nB" {
		t.Errorf("got %q, want %q", got, "A\nB")
	}
}

func TestDecodeUnits_SurrogatePair(t *testing.T) {
	// U+1F600 GRINNING FACE as a UTF-16 surrogate pair: D83D DE00.
	got := decode(0xD83D, 0xDE00)
	want := string(rune(0x1F600))
	if got != want {
		t.Errorf("got %q (%U), want %q", got, []rune(got), want)
	}
}

func TestDecodeUnits_EmptyPayload(t *testing.T) {
	if got := decode(); got != "" {
		t.Errorf("got %q, want empty string", got)
	}
}

func TestBytesToUTF16LE(t *testing.T) {
	got := bytesToUTF16LE(u16le('H', 'i'))
	want := []uint16{'H', 'i'}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("got %v, want %v", got, want)
	}
}
