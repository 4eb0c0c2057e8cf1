// Package convert3x handles legacy HWP 3.x documents by shelling out to an
// external converter binary and parsing its plain-text output into a
// single-section Document. HWP 3.x predates the record-stream format the
// rest of this module decodes, so no table reconstruction is attempted
// here — this path is entirely outside the structural core.
package convert3x

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/injoon-kim/hwpdoc/internal/document"
)

// Options configures a single conversion.
type Options struct {
	// ConverterPath is the path to the converter binary. Never hardcoded;
	// the caller supplies it (e.g. from configuration or flag).
	ConverterPath string
}

// Convert runs the configured converter against srcPath and parses its
// plain-text output into a Document with one section. A missing or
// failing converter is an ordinary error — it never touches the HWP 5.x
// code path and never produces one of hwpv5's core error kinds.
func Convert(ctx context.Context, srcPath string, opts Options) (*document.Document, error) {
	if opts.ConverterPath == "" {
		return nil, fmt.Errorf("convert3x: no converter configured")
	}

	outFile, err := os.CreateTemp("", "hwp3-*.txt")
	if err != nil {
		return nil, fmt.Errorf("convert3x: create temp output: %w", err)
	}
	outPath := outFile.Name()
	outFile.Close()
	defer os.Remove(outPath)

	cmd := exec.CommandContext(ctx, opts.ConverterPath, srcPath, outPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("convert3x: converter failed: %w (output: %s)", err, strings.TrimSpace(string(out)))
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("convert3x: read converter output: %w", err)
	}

	sec := &document.Section{Index: 0}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		sec.AppendParagraph(document.Paragraph{Text: line})
	}

	return &document.Document{Sections: []*document.Section{sec}}, nil
}
