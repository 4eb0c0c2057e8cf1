// Package prvtext decodes an HWP document's optional PrvText preview
// stream: plain UTF-16LE text with no control-code interleaving, used as a
// fallback when structural extraction is undesired or fails. It never
// participates in the structural core (spec.md §4.9).
package prvtext

import (
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// StreamName is the case-sensitive OLE stream holding the preview text.
const StreamName = "PrvText"

// Decode reads r (an open PrvText stream) as UTF-16LE and returns the
// trimmed plain-text result.
func Decode(r io.Reader) (string, error) {
	decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	tr := transform.NewReader(r, decoder)
	data, err := io.ReadAll(tr)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(strings.TrimRight(string(data), "\x00"), " \t\r\n"), nil
}
