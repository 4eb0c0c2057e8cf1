package hwpv5

import (
	"compress/flate"
	"io"
)

// defaultMaxExpansionRatio bounds decompressed-size / compressed-size.
// Chosen per spec.md §4.2 ("default 100x").
const defaultMaxExpansionRatio = 100

// minRatioFloor keeps the ratio guard from tripping on tiny legitimate
// streams whose compressed size is itself only a handful of bytes.
const minRatioFloor = 256

// limitedInflater wraps a flate.Reader and fails with ErrDecodeLimit once
// more than maxSize bytes have been produced, guarding against pathological
// (zip-bomb-style) inputs.
type limitedInflater struct {
	r       io.ReadCloser
	maxSize int64
	read    int64
}

func (l *limitedInflater) Read(p []byte) (int, error) {
	n, err := l.r.Read(p)
	l.read += int64(n)
	if l.read > l.maxSize {
		return n, ErrDecodeLimit
	}
	return n, err
}

func (l *limitedInflater) Close() error { return l.r.Close() }

// decompressSection returns a reader over the section's decoded bytes.
// compressedSize is the raw (pre-decompression) stream size, used only to
// compute the expansion-ratio ceiling; any value below minRatioFloor,
// including a non-positive one, is raised to minRatioFloor before the
// ratio is applied.
func decompressSection(r io.Reader, compressed bool, compressedSize int64, maxRatio int) (io.ReadCloser, error) {
	if !compressed {
		return io.NopCloser(r), nil
	}
	if maxRatio <= 0 {
		maxRatio = defaultMaxExpansionRatio
	}
	floor := compressedSize
	if floor < minRatioFloor {
		floor = minRatioFloor
	}
	return &limitedInflater{
		r:       flate.NewReader(r),
		maxSize: floor * int64(maxRatio),
	}, nil
}
