// Package hwpx extracts the structural text tree from HWPX documents: ZIP
// containers holding namespace-qualified OWPML XML, one file per section.
package hwpx

import (
	"archive/zip"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"

	"github.com/injoon-kim/hwpdoc/internal/document"
)

// ErrNotHWPX is returned when the container isn't a valid HWPX package
// (wrong mimetype entry, or no section files present).
var ErrNotHWPX = fmt.Errorf("hwpx: not a valid HWPX package")

var sectionFileRe = regexp.MustCompile(`^Contents/section(\d+)\.xml$`)

// Extract opens r as a ZIP container of size bytes and decodes every
// Contents/section{n}.xml entry into a *document.Document, visiting
// sections in ascending numeric order of n (spec.md §4.6 applies to HWPX
// the same way it applies to HWP 5.x's BodyText streams).
func Extract(r io.ReaderAt, size int64) (*document.Document, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("hwpx: open as ZIP: %w", err)
	}

	if err := validateMimetype(zr); err != nil {
		return nil, err
	}

	type sectionFile struct {
		index int
		file  *zip.File
	}
	var sections []sectionFile
	for _, f := range zr.File {
		m := sectionFileRe.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		sections = append(sections, sectionFile{index: n, file: f})
	}
	if len(sections) == 0 {
		return nil, fmt.Errorf("hwpx: no Contents/section*.xml entries: %w", ErrNotHWPX)
	}
	sort.Slice(sections, func(i, j int) bool { return sections[i].index < sections[j].index })

	doc := &document.Document{}
	for _, sf := range sections {
		rc, err := sf.file.Open()
		if err != nil {
			return nil, fmt.Errorf("hwpx: open %s: %w", sf.file.Name, err)
		}
		sec, err := parseSection(sf.index, rc)
		closeErr := rc.Close()
		if err != nil {
			return nil, fmt.Errorf("hwpx: parse %s: %w", sf.file.Name, err)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("hwpx: close %s: %w", sf.file.Name, closeErr)
		}
		doc.Sections = append(doc.Sections, sec)
	}
	return doc, nil
}

func validateMimetype(zr *zip.Reader) error {
	f, err := zr.Open("mimetype")
	if err != nil {
		return fmt.Errorf("hwpx: missing mimetype entry: %w", ErrNotHWPX)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("hwpx: read mimetype: %w", err)
	}
	if string(data) != "application/hwp+zip" {
		return fmt.Errorf("hwpx: unexpected mimetype %q: %w", data, ErrNotHWPX)
	}
	return nil
}
