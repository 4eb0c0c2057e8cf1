package hwpv5

import "unicode/utf16"

// controlCodes7 is the literal set from spec.md §4.5: inline control codes
// that are each followed by exactly 7 extra 16-bit parameter units, which
// are consumed and discarded without emitting anything themselves.
var controlCodes7 = map[uint16]struct{}{
	1: {}, 2: {}, 3: {}, 4: {}, 5: {}, 6: {}, 7: {}, 8: {}, 9: {},
	11: {}, 12: {}, 14: {}, 15: {}, 16: {}, 17: {}, 18: {}, 19: {}, 20: {}, 21: {}, 23: {}, 24: {},
}

// decodeUnits decodes a full paragraph's raw UTF-16 units — the
// concatenation of every PARA_TEXT record belonging to it, already
// trimmed of trailing padding by trimTrailingNulUnits — per spec.md §4.5:
// codes >= 32 are literal, {0,10,13} emit a line break, the 21-value
// control-code set consumes itself plus 7 trailing parameter units, and
// any other value below 32 is discarded on its own.
func decodeUnits(units []uint16) string {
	out := make([]uint16, 0, len(units))
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case u >= 32:
			out = append(out, u)
		case u == 0 || u == 10 || u == 13:
			out = append(out, '\n')
		default:
			if _, ok := controlCodes7[u]; ok {
				i += 7
			}
		}
	}
	return string(utf16.Decode(out))
}

// trimTrailingNulUnits drops trailing raw U+0000 units — fixed-width
// record slack left over at the very end of a paragraph's text, per
// spec.md §4.5 — without touching a unit any earlier in the stream. It
// must run on the full paragraph, after every PARA_TEXT record's units
// have been concatenated: a 0x0000 unit at the end of a non-final record
// is interior once joined with the next record and must still decode to
// '\n', not be stripped as if it were final.
func trimTrailingNulUnits(units []uint16) []uint16 {
	for len(units) > 0 && units[len(units)-1] == 0 {
		units = units[:len(units)-1]
	}
	return units
}

func bytesToUTF16LE(b []byte) []uint16 {
	n := len(b) / 2
	units := make([]uint16, n)
	for i := 0; i < n; i++ {
		units[i] = uint16(b[2*i]) | uint16(b[2*i+1])<<8
	}
	return units
}
