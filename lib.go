// Package hwp extracts structured text — sections, paragraphs, and
// tables — from Korean HWP documents.
//
// Two source formats are supported:
//
//   - HWP 5.x (.hwp): an OLE2 compound-file container holding a binary
//     record-stream body, optionally DEFLATE-compressed and, for
//     "distribution" documents, wrapped in a deterministic AES-128 cipher.
//   - HWPX (.hwpx): a ZIP container holding namespace-qualified OWPML XML,
//     one file per section.
//
// Legacy HWP 3.x documents are handled by shelling out to an external
// converter (internal/convert3x); this package never parses HWP 3.x's
// binary layout directly.
//
// # Example
//
//	file, err := os.Open("document.hwp")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer file.Close()
//
//	doc, err := hwp.ExtractFile(context.Background(), file, hwp.ExtractOptions{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	hwp.RenderText(doc, os.Stdout)
package hwp

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/injoon-kim/hwpdoc/internal/convert3x"
	"github.com/injoon-kim/hwpdoc/internal/document"
	"github.com/injoon-kim/hwpdoc/internal/hwpv5"
	"github.com/injoon-kim/hwpdoc/internal/hwpx"
	"github.com/injoon-kim/hwpdoc/internal/prvtext"
	"github.com/injoon-kim/hwpdoc/internal/render"
	"github.com/injoon-kim/hwpdoc/internal/triage"
)

// Document is the structural tree produced by extraction. It is an alias
// for the internal representation so callers never import internal/.
type Document = document.Document

// ExtractHWP5 decodes a binary HWP 5.x document from an already-open
// *os.File (random access is required to read the OLE2 container).
func ExtractHWP5(file *os.File, opts hwpv5.Options) (*Document, error) {
	doc, err := hwpv5.Extract(file, opts)
	if err != nil {
		return nil, fmt.Errorf("hwp: extract HWP5: %w", err)
	}
	return doc, nil
}

// ExtractHWPX decodes an HWPX (ZIP+XML) document from r, whose total size
// in bytes must be supplied for ZIP directory parsing.
func ExtractHWPX(r io.ReaderAt, size int64) (*Document, error) {
	doc, err := hwpx.Extract(r, size)
	if err != nil {
		return nil, fmt.Errorf("hwp: extract HWPX: %w", err)
	}
	return doc, nil
}

// ExtractOptions configures ExtractFile's handling of the collaborator
// paths: HWP 3.x conversion and the PrvText preview fallback.
type ExtractOptions struct {
	// HWP5 is passed through to ExtractHWP5 when file sniffs as HWP 5.x.
	HWP5 hwpv5.Options
	// Converter3xPath, if non-empty, is the external converter binary
	// (internal/convert3x) used to handle HWP 3.x documents. Left empty,
	// HWP 3.x files are rejected, since the converter path requires
	// external configuration this package cannot default.
	Converter3xPath string
	// PreviewFallback, when true, falls back to the PrvText preview
	// stream (internal/prvtext) if structural HWP 5.x extraction fails,
	// per spec.md §4.9 ("a plain-text fallback when structural
	// extraction ... fails").
	PreviewFallback bool
}

// ExtractFile sniffs file's format and extracts it, returning the
// structural tree.
func ExtractFile(ctx context.Context, file *os.File, opts ExtractOptions) (*Document, error) {
	format, err := triage.Sniff(file)
	if err != nil {
		return nil, fmt.Errorf("hwp: sniff format: %w", err)
	}

	switch format {
	case triage.HWP5:
		doc, err := ExtractHWP5(file, opts.HWP5)
		if err != nil {
			if opts.PreviewFallback {
				if fallback, ferr := extractPreviewFallback(file); ferr == nil {
					return fallback, nil
				}
			}
			return nil, err
		}
		return doc, nil
	case triage.HWPX:
		info, err := file.Stat()
		if err != nil {
			return nil, fmt.Errorf("hwp: stat file: %w", err)
		}
		return ExtractHWPX(file, info.Size())
	case triage.HWP3:
		if opts.Converter3xPath == "" {
			return nil, fmt.Errorf("hwp: %s is HWP 3.x; set ExtractOptions.Converter3xPath to a configured converter", file.Name())
		}
		doc, err := convert3x.Convert(ctx, file.Name(), convert3x.Options{ConverterPath: opts.Converter3xPath})
		if err != nil {
			return nil, fmt.Errorf("hwp: convert HWP 3.x: %w", err)
		}
		return doc, nil
	default:
		return nil, fmt.Errorf("hwp: %s is not a recognized HWP/HWPX file", file.Name())
	}
}

// extractPreviewFallback reopens file's OLE2 container to read its PrvText
// stream directly, bypassing the record-stream decoder entirely. The
// result is a single section holding the preview as one paragraph — no
// table structure survives, since PrvText never carried any.
func extractPreviewFallback(file *os.File) (*Document, error) {
	r, err := hwpv5.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("hwp: reopen for preview fallback: %w", err)
	}
	stream, err := r.OpenStream(prvtext.StreamName)
	if err != nil {
		return nil, fmt.Errorf("hwp: open %s: %w", prvtext.StreamName, err)
	}
	text, err := prvtext.Decode(stream)
	if err != nil {
		return nil, fmt.Errorf("hwp: decode %s: %w", prvtext.StreamName, err)
	}

	sec := &document.Section{Index: 0}
	sec.AppendParagraph(document.Paragraph{Text: text})
	return &Document{Version: r.Header.Version, Sections: []*document.Section{sec}}, nil
}

// RenderText writes doc as plain text with ASCII-bordered tables.
func RenderText(doc *Document, w io.Writer) error {
	return render.RenderText(doc, w)
}
