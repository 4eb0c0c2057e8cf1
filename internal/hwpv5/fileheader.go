package hwpv5

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/injoon-kim/hwpdoc/internal/document"
)

const signatureText = "HWP Document File"

// FileProperties exposes the flags carried at bytes 36..40 of FileHeader.
type FileProperties struct {
	Raw uint32
}

func (p FileProperties) Compressed() bool  { return p.Raw&0x1 != 0 }
func (p FileProperties) Encrypted() bool   { return p.Raw&0x2 != 0 }
func (p FileProperties) Distributed() bool { return p.Raw&0x4 != 0 }

// FileHeader mirrors the 256-byte FileHeader stream.
type FileHeader struct {
	Signature       string
	Version         document.Version
	Properties      FileProperties
	SecondFlags     uint32
	EncryptVersion  uint32
	KoglLicenseCode byte
	Reserved        [207]byte
}

func readFileHeader(r io.Reader) (FileHeader, error) {
	var hdr FileHeader

	var sig [32]byte
	if _, err := io.ReadFull(r, sig[:]); err != nil {
		return hdr, fmt.Errorf("hwpv5: read signature: %w", ErrTruncated)
	}
	hdr.Signature = string(bytes.TrimRight(sig[:], "\x00"))
	if hdr.Signature != signatureText {
		return hdr, fmt.Errorf("hwpv5: unexpected signature %q: %w", hdr.Signature, ErrNotHWP5)
	}

	var ver uint32
	if err := binary.Read(r, binary.LittleEndian, &ver); err != nil {
		return hdr, fmt.Errorf("hwpv5: read version: %w", ErrTruncated)
	}
	hdr.Version = document.Version{
		Major: byte(ver >> 24),
		Minor: byte(ver >> 16),
		Patch: byte(ver >> 8),
		Rev:   byte(ver),
	}

	if err := binary.Read(r, binary.LittleEndian, &hdr.Properties.Raw); err != nil {
		return hdr, fmt.Errorf("hwpv5: read properties: %w", ErrTruncated)
	}
	if hdr.Properties.Encrypted() {
		return hdr, fmt.Errorf("hwpv5: password-protected flag set: %w", ErrEncrypted)
	}
	if err := binary.Read(r, binary.LittleEndian, &hdr.SecondFlags); err != nil {
		return hdr, fmt.Errorf("hwpv5: read second properties: %w", ErrTruncated)
	}
	if err := binary.Read(r, binary.LittleEndian, &hdr.EncryptVersion); err != nil {
		return hdr, fmt.Errorf("hwpv5: read encrypt version: %w", ErrTruncated)
	}
	if err := binary.Read(r, binary.LittleEndian, &hdr.KoglLicenseCode); err != nil {
		return hdr, fmt.Errorf("hwpv5: read kogl license code: %w", ErrTruncated)
	}
	if _, err := io.ReadFull(r, hdr.Reserved[:]); err != nil {
		return hdr, fmt.Errorf("hwpv5: read reserved region: %w", ErrTruncated)
	}
	return hdr, nil
}
