package hwpv5

import (
	"crypto/aes"
	"encoding/binary"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/richardlehane/mscfb"
)

// Reader wraps an open HWP 5.x compound-file document.
type Reader struct {
	ra     io.ReaderAt
	Header FileHeader
}

// OpenReader reads and validates the FileHeader stream, returning a Reader
// positioned to enumerate and extract sections. DocInfo is never consulted:
// section presence is determined by walking the container directly (see
// ListSectionIndices), per spec.md §4.6.
func OpenReader(ra io.ReaderAt) (*Reader, error) {
	r := &Reader{ra: ra}

	headerStream, _, err := r.openStream("FileHeader")
	if err != nil {
		return nil, fmt.Errorf("hwpv5: open FileHeader: %w", ErrNotHWP5)
	}
	r.Header, err = readFileHeader(headerStream)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// OpenStream opens an arbitrary named stream from the container, for
// collaborators outside this package (metadata, preview-text fallback)
// that need a stream this reader doesn't interpret itself.
func (r *Reader) OpenStream(name string) (io.Reader, error) {
	stream, _, err := r.openStream(name)
	return stream, err
}

// openStream opens a named stream from the OLE2 container by walking its
// directory once, also returning the entry's on-disk (pre-decompression)
// size for callers that need it to bound decompression (OpenSection).
// mscfb.Reader does not support random-access reopen, so each call opens a
// fresh container handle.
func (r *Reader) openStream(name string) (io.Reader, int64, error) {
	doc, err := mscfb.New(r.ra)
	if err != nil {
		return nil, 0, fmt.Errorf("hwpv5: open compound file: %w", ErrIO)
	}
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		if streamPath(entry) == name {
			return doc, int64(entry.Size), nil
		}
	}
	return nil, 0, fmt.Errorf("hwpv5: stream %q not found: %w", name, ErrIO)
}

func streamPath(entry *mscfb.File) string {
	var b strings.Builder
	for _, p := range entry.Path {
		b.WriteString(p)
		b.WriteByte('/')
	}
	b.WriteString(entry.Name)
	return b.String()
}

// IsDistributionDoc reports whether this is a distribution document, whose
// body lives under ViewText/ rather than BodyText/ and is AES-encrypted.
func (r *Reader) IsDistributionDoc() bool { return r.Header.Properties.Distributed() }

var sectionNameRe = regexp.MustCompile(`^Section(\d+)$`)

// ListSectionIndices walks the container directory once, collecting every
// BodyText/Section{n} (or ViewText/Section{n} for distribution documents)
// stream and returning their numeric suffixes sorted ascending — spec.md
// §4.6: ordering is by the integer value of the suffix, not lexicographic.
func (r *Reader) ListSectionIndices() ([]int, error) {
	prefix := "BodyText/"
	if r.IsDistributionDoc() {
		prefix = "ViewText/"
	}

	doc, err := mscfb.New(r.ra)
	if err != nil {
		return nil, fmt.Errorf("hwpv5: open compound file: %w", ErrIO)
	}

	var indices []int
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		path := streamPath(entry)
		rest, ok := strings.CutPrefix(path, prefix)
		if !ok {
			continue
		}
		m := sectionNameRe.FindStringSubmatch(rest)
		if m == nil {
			continue
		}
		n, convErr := strconv.Atoi(m[1])
		if convErr != nil {
			continue
		}
		indices = append(indices, n)
	}
	sort.Ints(indices)
	return indices, nil
}

// OpenSection opens a section stream by index, applying distribution-
// document decryption and expansion-ratio-bounded decompression as needed.
// A zero maxRatio selects the default (100x, per spec.md §4.2).
func (r *Reader) OpenSection(index int, maxRatio int) (io.ReadCloser, error) {
	streamName := fmt.Sprintf("BodyText/Section%d", index)
	if r.IsDistributionDoc() {
		streamName = fmt.Sprintf("ViewText/Section%d", index)
	}

	rawStream, compressedSize, err := r.openStream(streamName)
	if err != nil {
		return nil, err
	}

	currentReader := rawStream

	if r.IsDistributionDoc() {
		var hBuf [4]byte
		if _, err := io.ReadFull(currentReader, hBuf[:]); err != nil {
			return nil, fmt.Errorf("hwpv5: read distribution header: %w", ErrTruncated)
		}
		tagVal := binary.LittleEndian.Uint32(hBuf[:])
		tagID := uint16(tagVal & 0x3ff)
		size := tagVal >> 20

		const distributeDocDataTag = 0x1c
		if tagID != distributeDocDataTag || size != 256 {
			return nil, fmt.Errorf("hwpv5: unexpected distribution header (tag=0x%x size=%d): %w", tagID, size, ErrMalformedRecord)
		}

		distData := make([]byte, 256)
		if _, err := io.ReadFull(currentReader, distData); err != nil {
			return nil, fmt.Errorf("hwpv5: read distribution key material: %w", ErrTruncated)
		}

		key, err := deriveKey(distData)
		if err != nil {
			return nil, fmt.Errorf("hwpv5: derive distribution key: %w", ErrIO)
		}
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("hwpv5: build AES cipher: %w", ErrIO)
		}
		currentReader = &cryptoReader{r: currentReader, block: block}
	}

	return decompressSection(currentReader, r.Header.Properties.Compressed(), compressedSize, maxRatio)
}
