// Package summary reads the optional OLE property-set metadata stream
// (\005HwpSummaryInformation) carried alongside an HWP 5.x document's body
// streams. It is independent of body-text extraction: a missing or
// unparsable summary stream is reported as an ordinary error, never one of
// hwpv5's core error kinds, and never fails the caller's extraction.
package summary

import (
	"io"

	"github.com/richardlehane/msoleps"

	"github.com/injoon-kim/hwpdoc/internal/document"
)

// StreamName is the case-sensitive OLE stream holding the property set.
const StreamName = "\x05HwpSummaryInformation"

// Parse decodes r (an open \005HwpSummaryInformation stream) as an MS-OLEPS
// property set and maps its well-known property names onto a
// document.Summary. Properties this reader doesn't recognize are ignored.
func Parse(r io.Reader) (*document.Summary, error) {
	doc := msoleps.New()
	if err := doc.Reset(r); err != nil {
		return nil, err
	}

	sum := &document.Summary{}
	for _, ps := range doc.PropertySets {
		for _, prop := range ps.Properties {
			value := prop.String()
			switch prop.Name {
			case "Title":
				sum.Title = value
			case "Author":
				sum.Author = value
			case "LastSavedBy":
				sum.LastSavedBy = value
			case "LastSavedTime", "LastSaveDtm":
				sum.LastSavedAt = value
			}
		}
	}
	return sum, nil
}
