package hwpv5

import (
	"bytes"
	"compress/flate"
	"errors"
	"io"
	"testing"
)

func deflate(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		t.Fatalf("new flate writer: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return buf.Bytes()
}

func TestDecompressSection_Uncompressed(t *testing.T) {
	rc, err := decompressSection(bytes.NewReader([]byte("raw bytes")), false, 0, 0)
	if err != nil {
		t.Fatalf("decompressSection: %v", err)
	}
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "raw bytes" {
		t.Errorf("got %q, want %q", data, "raw bytes")
	}
}

func TestDecompressSection_WithinRatio(t *testing.T) {
	plain := bytes.Repeat([]byte("a"), 1000)
	compressed := deflate(t, plain)

	rc, err := decompressSection(bytes.NewReader(compressed), true, int64(len(compressed)), defaultMaxExpansionRatio)
	if err != nil {
		t.Fatalf("decompressSection: %v", err)
	}
	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, plain) {
		t.Errorf("decompressed %d bytes, want %d matching", len(got), len(plain))
	}
}

func TestDecompressSection_ExceedsRatioTripsDecodeLimit(t *testing.T) {
	plain := bytes.Repeat([]byte("a"), 1000)
	compressed := deflate(t, plain)

	// floor = max(compressedSize, 256); force a tiny ratio so 1000
	// decompressed bytes blow past the guard.
	rc, err := decompressSection(bytes.NewReader(compressed), true, int64(len(compressed)), 1)
	if err != nil {
		t.Fatalf("decompressSection: %v", err)
	}
	_, err = io.ReadAll(rc)
	if !errors.Is(err, ErrDecodeLimit) {
		t.Errorf("expected ErrDecodeLimit, got %v", err)
	}
}
