package hwpv5

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// buildFileHeader assembles a synthetic 256-byte FileHeader stream:
// signature (32 bytes), version (u32), properties (u32), then padding out
// to 256 bytes total.
func buildFileHeader(t *testing.T, signature string, version uint32, properties uint32) []byte {
	t.Helper()
	buf := make([]byte, 256)
	copy(buf, signature)
	binary.LittleEndian.PutUint32(buf[32:36], version)
	binary.LittleEndian.PutUint32(buf[36:40], properties)
	return buf
}

func TestReadFileHeader_Valid(t *testing.T) {
	data := buildFileHeader(t, signatureText, 0x05000702, 0x1) // compressed
	hdr, err := readFileHeader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("readFileHeader: %v", err)
	}
	if hdr.Signature != signatureText {
		t.Errorf("signature = %q, want %q", hdr.Signature, signatureText)
	}
	if hdr.Version.Major != 5 || hdr.Version.Minor != 0 || hdr.Version.Patch != 7 || hdr.Version.Rev != 2 {
		t.Errorf("version = %+v, want {5 0 7 2}", hdr.Version)
	}
	if !hdr.Properties.Compressed() {
		t.Error("expected Compressed() true")
	}
	if hdr.Properties.Encrypted() {
		t.Error("expected Encrypted() false")
	}
}

func TestReadFileHeader_WrongSignatureIsNotHWP5(t *testing.T) {
	data := buildFileHeader(t, "not the right signature", 0, 0)
	_, err := readFileHeader(bytes.NewReader(data))
	if !errors.Is(err, ErrNotHWP5) {
		t.Errorf("expected ErrNotHWP5, got %v", err)
	}
}

func TestReadFileHeader_EncryptedFlagRejected(t *testing.T) {
	// S5: FileHeader with the encrypted flag (bit 1, mask 0x2) set.
	data := buildFileHeader(t, signatureText, 0x05000500, 0x2)
	_, err := readFileHeader(bytes.NewReader(data))
	if !errors.Is(err, ErrEncrypted) {
		t.Errorf("expected ErrEncrypted, got %v", err)
	}
}

func TestReadFileHeader_TruncatedStream(t *testing.T) {
	_, err := readFileHeader(bytes.NewReader([]byte("too short")))
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
}

func TestFileProperties_Flags(t *testing.T) {
	p := FileProperties{Raw: 0x1 | 0x4} // compressed + distributed, not encrypted
	if !p.Compressed() {
		t.Error("expected Compressed() true")
	}
	if p.Encrypted() {
		t.Error("expected Encrypted() false")
	}
	if !p.Distributed() {
		t.Error("expected Distributed() true")
	}
}
