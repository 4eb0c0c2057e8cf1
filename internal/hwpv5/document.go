package hwpv5

import (
	"errors"
	"fmt"
	"io"

	"github.com/injoon-kim/hwpdoc/internal/document"
	"github.com/injoon-kim/hwpdoc/internal/summary"
)

// summaryStreamName is the OLE stream carrying SummaryInformation
// metadata. A leading \005 marks it as a hidden/special stream, per the
// MS-OLEPS convention HWP 5.x follows.
const summaryStreamName = "\x05HwpSummaryInformation"

// Options configures a single Extract call.
type Options struct {
	// MaxExpansionRatio bounds decompressed/compressed size (§4.2). Zero
	// selects the default of 100.
	MaxExpansionRatio int
}

// Extract decodes an HWP 5.x document into the structural tree. Per §7's
// policy: header/container failures (NotHWP5, Encrypted, IOError,
// DecodeLimit) abort the whole document; a MalformedRecord in one section
// drops only that section and extraction continues with the rest.
func Extract(ra io.ReaderAt, opts Options) (*document.Document, error) {
	r, err := OpenReader(ra)
	if err != nil {
		return nil, err
	}
	if r.Header.Properties.Encrypted() {
		return nil, fmt.Errorf("hwpv5: extract: %w", ErrEncrypted)
	}

	indices, err := r.ListSectionIndices()
	if err != nil {
		return nil, fmt.Errorf("hwpv5: enumerate sections: %w", err)
	}

	doc := &document.Document{
		Version:    r.Header.Version,
		Compressed: r.Header.Properties.Compressed(),
		Encrypted:  r.Header.Properties.Encrypted(),
	}

	if stream, err := r.OpenStream(summaryStreamName); err == nil {
		if sum, err := summary.Parse(stream); err == nil {
			doc.Summary = sum
		}
	}

	for _, idx := range indices {
		sec, err := r.extractSection(idx, opts)
		if err != nil {
			if errors.Is(err, ErrMalformedRecord) {
				continue
			}
			return nil, fmt.Errorf("hwpv5: section %d: %w", idx, err)
		}
		doc.Sections = append(doc.Sections, sec)
	}
	return doc, nil
}

func (r *Reader) extractSection(idx int, opts Options) (*document.Section, error) {
	stream, err := r.OpenSection(idx, opts.MaxExpansionRatio)
	if err != nil {
		return nil, err
	}
	defer stream.Close()
	return assembleSection(idx, NewRecScanner(stream))
}
