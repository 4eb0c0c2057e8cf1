package triage

import (
	"archive/zip"
	"bytes"
	"testing"
)

func TestSniff_HWPX(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("mimetype")
	if err != nil {
		t.Fatalf("create mimetype: %v", err)
	}
	if _, err := w.Write([]byte("application/hwp+zip")); err != nil {
		t.Fatalf("write mimetype: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	got, err := Sniff(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Sniff: %v", err)
	}
	if got != HWPX {
		t.Errorf("got %v, want HWPX", got)
	}
}

func TestSniff_PlainZipIsNotHWPX(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("mimetype")
	if err != nil {
		t.Fatalf("create mimetype: %v", err)
	}
	if _, err := w.Write([]byte("application/zip")); err != nil {
		t.Fatalf("write mimetype: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	got, err := Sniff(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Sniff: %v", err)
	}
	if got != Unknown {
		t.Errorf("got %v, want Unknown", got)
	}
}

func TestSniff_NeitherSignatureIsUnknown(t *testing.T) {
	got, err := Sniff(bytes.NewReader([]byte("not a document at all")))
	if err != nil {
		t.Fatalf("Sniff: %v", err)
	}
	if got != Unknown {
		t.Errorf("got %v, want Unknown", got)
	}
}

func TestSniff_ShortInputIsUnknownNotError(t *testing.T) {
	got, err := Sniff(bytes.NewReader([]byte{0x01, 0x02}))
	if err != nil {
		t.Fatalf("Sniff: %v", err)
	}
	if got != Unknown {
		t.Errorf("got %v, want Unknown", got)
	}
}

func TestFormat_String(t *testing.T) {
	cases := map[Format]string{
		Unknown: "Unknown",
		HWP5:    "HWP5",
		HWP3:    "HWP3",
		HWPX:    "HWPX",
	}
	for f, want := range cases {
		if got := f.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", f, got, want)
		}
	}
}
