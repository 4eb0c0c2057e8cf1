// Package triage sniffs a file's container format without fully parsing
// it, classifying it as HWP 5.x, legacy HWP 3.x, HWPX, or unknown.
package triage

import (
	"archive/zip"
	"bytes"
	"io"

	"github.com/richardlehane/mscfb"
)

// Format is one of the file-format classifications triage can return.
type Format int

const (
	Unknown Format = iota
	HWP5
	HWP3
	HWPX
)

func (f Format) String() string {
	switch f {
	case HWP5:
		return "HWP5"
	case HWP3:
		return "HWP3"
	case HWPX:
		return "HWPX"
	default:
		return "Unknown"
	}
}

var (
	ole2Signature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	zipSignature  = []byte{'P', 'K', 0x03, 0x04}
	hwp5Signature = []byte("HWP Document File")
)

// Sniff classifies ra by magic bytes and, for OLE2/ZIP candidates, its
// inner structure — never by file extension.
func Sniff(ra io.ReaderAt) (Format, error) {
	var head [8]byte
	if _, err := ra.ReadAt(head[:], 0); err != nil && err != io.EOF {
		return Unknown, err
	}

	switch {
	case bytes.Equal(head[:], ole2Signature):
		return sniffOLE2(ra)
	case bytes.Equal(head[:4], zipSignature):
		return sniffZIP(ra)
	default:
		return Unknown, nil
	}
}

func sniffOLE2(ra io.ReaderAt) (Format, error) {
	doc, err := mscfb.New(ra)
	if err != nil {
		return Unknown, err
	}
	for entry, err := doc.Next(); err == nil; entry, err = doc.Next() {
		if len(entry.Path) != 0 || entry.Name != "FileHeader" {
			continue
		}
		var sig [32]byte
		n, _ := doc.Read(sig[:])
		if n >= len(hwp5Signature) && bytes.Equal(sig[:len(hwp5Signature)], hwp5Signature) {
			return HWP5, nil
		}
		return HWP3, nil
	}
	return HWP3, nil
}

func sniffZIP(ra io.ReaderAt) (Format, error) {
	sized, ok := ra.(interface{ Size() int64 })
	var size int64
	if ok {
		size = sized.Size()
	} else if seeker, ok := ra.(io.Seeker); ok {
		end, err := seeker.Seek(0, io.SeekEnd)
		if err != nil {
			return Unknown, err
		}
		size = end
	} else {
		return Unknown, nil
	}

	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return Unknown, nil
	}
	for _, f := range zr.File {
		if f.Name != "mimetype" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return Unknown, nil
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return Unknown, nil
		}
		if string(data) == "application/hwp+zip" {
			return HWPX, nil
		}
	}
	return Unknown, nil
}
